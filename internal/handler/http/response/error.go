package response

import (
	"errors"
	"net/http"

	"github.com/qubix-crm/crm-backend-go/internal/domain/attendance"
	"github.com/qubix-crm/crm-backend-go/internal/domain/employee"
	"github.com/qubix-crm/crm-backend-go/internal/domain/leave"
	"github.com/qubix-crm/crm-backend-go/internal/domain/notification"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrForbidden):
		Forbidden(w, "You are not allowed to perform this action")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadySignedIn):
		Conflict(w, "You have already signed in today")
	case errors.Is(err, attendance.ErrAlreadySignedOut):
		Conflict(w, "You have already signed out today")
	case errors.Is(err, attendance.ErrNoActiveSignIn):
		BadRequest(w, "No active sign-in found. Please sign in first", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrInvalidCategory):
		BadRequest(w, "Invalid leave category", nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrQuotaExceeded):
		BadRequest(w, "Leave quota exceeded for the current period", nil)
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrCommentRequired):
		BadRequest(w, "A comment is required when rejecting a leave request", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrInvalidType):
		BadRequest(w, "Invalid notification type", nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
