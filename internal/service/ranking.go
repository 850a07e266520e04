package service

import (
	"sort"

	"github.com/sahajm/Civet/internal/model"
)

// RankedResult pairs a result with its dense rank within one test.
type RankedResult struct {
	Result        model.Result
	Rank          int
	TotalStudents int
}

// Rank orders all results of a single test by score descending, earlier
// submission first on equal scores, and assigns consecutive ranks 1..N.
// Equal scores do not share a rank. The input slice is not modified.
func Rank(results []model.Result) []RankedResult {
	ordered := make([]model.Result, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Score != ordered[j].Score {
			return ordered[i].Score > ordered[j].Score
		}
		return ordered[i].SubmittedAt.Before(ordered[j].SubmittedAt)
	})

	ranked := make([]RankedResult, len(ordered))
	for i, r := range ordered {
		ranked[i] = RankedResult{Result: r, Rank: i + 1, TotalStudents: len(ordered)}
	}
	return ranked
}

// CalculateRanking finds one student's position among all results of a test.
// ok is false when the student has no result there; the caller must treat
// that as "not ranked".
func CalculateRanking(results []model.Result, studentID uint) (rank, totalStudents int, ok bool) {
	for _, entry := range Rank(results) {
		if entry.Result.StudentID == studentID {
			return entry.Rank, entry.TotalStudents, true
		}
	}
	return 0, len(results), false
}
