package service

import (
	"time"

	"github.com/sahajm/Civet/internal/apperr"
	"github.com/sahajm/Civet/internal/model"
)

// ValidateAccess decides whether a user may open or submit a test at the
// given instant. Students are held to the schedule and to the one-submission
// rule; any other role bypasses all three checks. Read-only.
func ValidateAccess(test *model.Test, role string, hasExistingResult bool, now time.Time) error {
	if role != model.RoleStudent {
		return nil
	}
	if now.Before(test.StartTime) {
		return apperr.Errorf("%w: test has not started yet", apperr.ErrTemporalViolation)
	}
	if now.After(test.EndTime()) {
		return apperr.Errorf("%w: test has ended", apperr.ErrTemporalViolation)
	}
	if hasExistingResult {
		return apperr.ErrDuplicateSubmission
	}
	return nil
}
