package model

import (
	"testing"
	"time"
)

func scheduledTest(start time.Time, minutes int) *Test {
	return &Test{
		StartTime:       start,
		DurationMinutes: minutes,
		Questions: []TestQuestion{
			{Position: 0, QuestionUID: "a"},
			{Position: 1, QuestionUID: "b"},
			{Position: 2, QuestionUID: "c"},
		},
		MarksPerQuestion: 1.5,
	}
}

func TestTestEndTime(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	test := scheduledTest(start, 90)
	want := start.Add(90 * time.Minute)
	if got := test.EndTime(); !got.Equal(want) {
		t.Errorf("EndTime() = %v, want %v", got, want)
	}
}

func TestTestTotalMarksDerived(t *testing.T) {
	test := scheduledTest(time.Now(), 60)
	if got := test.TotalMarks(); got != 4.5 {
		t.Errorf("TotalMarks() = %v, want 4.5", got)
	}
	test.Questions = nil
	if got := test.TotalMarks(); got != 0 {
		t.Errorf("TotalMarks() with no questions = %v, want 0", got)
	}
}

func TestTestStatus(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	test := scheduledTest(start, 60)

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"before start", start.Add(-time.Second), TestStatusUpcoming},
		{"at start", start, TestStatusActive},
		{"mid window", start.Add(30 * time.Minute), TestStatusActive},
		{"at end", test.EndTime(), TestStatusActive},
		{"after end", test.EndTime().Add(time.Second), TestStatusCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := test.Status(tc.now); got != tc.want {
				t.Errorf("Status(%v) = %s, want %s", tc.now, got, tc.want)
			}
		})
	}
}

func TestQuestionUIDsPreserveOrder(t *testing.T) {
	test := scheduledTest(time.Now(), 60)
	uids := test.QuestionUIDs()
	want := []string{"a", "b", "c"}
	if len(uids) != len(want) {
		t.Fatalf("expected %d uids, got %d", len(want), len(uids))
	}
	for i, uid := range want {
		if uids[i] != uid {
			t.Errorf("position %d: expected %s, got %s", i, uid, uids[i])
		}
	}
}
