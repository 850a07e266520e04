package service

import (
	"testing"
	"time"

	"github.com/sahajm/Civet/internal/model"
)

func resultAt(studentID uint, score float64, submittedAt time.Time) model.Result {
	return model.Result{TestID: 1, StudentID: studentID, Score: score, SubmittedAt: submittedAt}
}

func TestRankOrdersByScoreThenSubmissionTime(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	results := []model.Result{
		resultAt(1, 8, base.Add(time.Minute)),
		resultAt(2, 10, base.Add(5*time.Minute)),
		resultAt(3, 8, base.Add(30*time.Second)), // same score as #1, earlier
		resultAt(4, 2, base),
	}

	ranked := Rank(results)
	if len(ranked) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(ranked))
	}

	wantOrder := []uint{2, 3, 1, 4}
	for i, want := range wantOrder {
		if ranked[i].Result.StudentID != want {
			t.Errorf("position %d: expected student %d, got %d", i, want, ranked[i].Result.StudentID)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("position %d: expected rank %d, got %d", i, i+1, ranked[i].Rank)
		}
		if ranked[i].TotalStudents != 4 {
			t.Errorf("position %d: expected totalStudents 4, got %d", i, ranked[i].TotalStudents)
		}
	}
}

func TestRankEqualScoresDoNotShareRank(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	results := []model.Result{
		resultAt(1, 10, base),
		resultAt(2, 10, base.Add(time.Minute)),
		resultAt(3, 10, base.Add(2*time.Minute)),
	}

	ranked := Rank(results)
	for i, entry := range ranked {
		if entry.Rank != i+1 {
			t.Errorf("entry %d: expected rank %d, got %d", i, i+1, entry.Rank)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	results := []model.Result{
		resultAt(1, 2, base),
		resultAt(2, 9, base),
	}
	Rank(results)
	if results[0].StudentID != 1 || results[1].StudentID != 2 {
		t.Fatal("input slice order changed")
	}
}

func TestCalculateRanking(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	results := []model.Result{
		resultAt(7, 10, base),
		resultAt(8, 8, base.Add(time.Minute)),
	}

	rank, total, ok := CalculateRanking(results, 8)
	if !ok {
		t.Fatal("expected student 8 to be ranked")
	}
	if rank != 2 || total != 2 {
		t.Fatalf("expected rank 2 of 2, got %d of %d", rank, total)
	}

	rank, total, ok = CalculateRanking(results, 99)
	if ok {
		t.Fatal("expected student 99 to be unranked")
	}
	if rank != 0 || total != 2 {
		t.Fatalf("expected rank 0 of 2 for absent student, got %d of %d", rank, total)
	}
}

func TestCalculateRankingEmpty(t *testing.T) {
	rank, total, ok := CalculateRanking(nil, 1)
	if ok || rank != 0 || total != 0 {
		t.Fatalf("expected no ranking on empty set, got rank=%d total=%d ok=%v", rank, total, ok)
	}
}
