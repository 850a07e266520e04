package service

import (
	"errors"
	"testing"
	"time"

	"github.com/sahajm/Civet/internal/apperr"
	"github.com/sahajm/Civet/internal/model"
)

func TestValidateAccess(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	test := &model.Test{StartTime: start, DurationMinutes: 60}

	cases := []struct {
		name      string
		role      string
		hasResult bool
		now       time.Time
		wantErr   error
	}{
		{
			name: "student inside window",
			role: model.RoleStudent,
			now:  start.Add(30 * time.Minute),
		},
		{
			name:    "student before start",
			role:    model.RoleStudent,
			now:     start.Add(-time.Minute),
			wantErr: apperr.ErrTemporalViolation,
		},
		{
			name:    "student after end",
			role:    model.RoleStudent,
			now:     start.Add(61 * time.Minute),
			wantErr: apperr.ErrTemporalViolation,
		},
		{
			name:      "student already submitted",
			role:      model.RoleStudent,
			hasResult: true,
			now:       start.Add(30 * time.Minute),
			wantErr:   apperr.ErrDuplicateSubmission,
		},
		{
			name: "admin bypasses schedule",
			role: model.RoleAdmin,
			now:  start.Add(-time.Hour),
		},
		{
			name:      "admin bypasses submission check",
			role:      model.RoleAdmin,
			hasResult: true,
			now:       start.Add(24 * time.Hour),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAccess(test, tc.role, tc.hasResult, tc.now)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected access, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateAccessBoundaries(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	test := &model.Test{StartTime: start, DurationMinutes: 60}

	// Exactly at start and exactly at end are both inside the window.
	if err := ValidateAccess(test, model.RoleStudent, false, start); err != nil {
		t.Fatalf("start instant should be allowed, got %v", err)
	}
	if err := ValidateAccess(test, model.RoleStudent, false, test.EndTime()); err != nil {
		t.Fatalf("end instant should be allowed, got %v", err)
	}
}
