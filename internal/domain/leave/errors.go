package leave

import "errors"

var (
	ErrInvalidCategory      = errors.New("invalid leave category")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrQuotaExceeded        = errors.New("leave quota exceeded for the current period")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrAlreadyProcessed     = errors.New("leave request has already been processed")
	ErrCommentRequired      = errors.New("a comment is required when rejecting a leave request")
)
