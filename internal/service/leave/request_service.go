package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/qubix-crm/crm-backend-go/internal/domain/employee"
	"github.com/qubix-crm/crm-backend-go/internal/domain/leave"
	"github.com/qubix-crm/crm-backend-go/internal/domain/notification"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/calendar"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/database"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/validator"
	"github.com/qubix-crm/crm-backend-go/internal/repository/postgresql"
)

// RequestService runs the leave request state machine. A request is born
// PENDING or AUTO_APPROVED and moves to APPROVED or REJECTED exactly once.
// Quota is consumed at auto-approval or approval, never at plain submission.
type RequestService struct {
	db            *database.DB
	requests      leave.RequestRepository
	quotas        *QuotaService
	employees     employee.Repository
	notifications notification.Service
}

func NewRequestService(
	db *database.DB,
	requests leave.RequestRepository,
	quotas *QuotaService,
	employees employee.Repository,
	notifications notification.Service,
) *RequestService {
	return &RequestService{
		db:            db,
		requests:      requests,
		quotas:        quotas,
		employees:     employees,
		notifications: notifications,
	}
}

// withTx runs fn inside a database transaction. A nil db (in-memory
// repositories) runs fn without a transaction boundary.
func (s *RequestService) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

func (s *RequestService) Submit(ctx context.Context, employeeID string, input *leave.SubmitRequestInput, now time.Time) (*leave.Request, error) {
	if errs := input.Validate(); errs.HasErrors() {
		return nil, errs
	}

	startDate, _ := validator.ParseDate(input.StartDate)
	endDate, _ := validator.ParseDate(input.EndDate)
	if endDate.Before(startDate) {
		return nil, leave.ErrInvalidDateRange
	}

	days := calendar.InclusiveDaySpan(startDate, endDate)

	req := &leave.Request{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Category:   input.Category,
		StartDate:  startDate,
		EndDate:    endDate,
		Days:       days,
		Reason:     input.Reason,
		Status:     leave.StatusPending,
		CreatedAt:  now,
	}

	switch input.Category {
	case leave.CategorySick:
		if err := s.submitSick(ctx, req, now); err != nil {
			return nil, err
		}
	case leave.CategoryVacation:
		// Vacation never auto-approves, but a request that cannot possibly
		// fit the remaining quota is refused outright.
		quota, err := s.quotas.Current(ctx, employeeID, leave.CategoryVacation, now)
		if err != nil {
			return nil, err
		}
		if quota.Remaining() < days {
			return nil, leave.ErrQuotaExceeded
		}
		if err := s.requests.Create(ctx, req); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// submitSick decides the sick-leave fast path: the first sick request of the
// month auto-approves when the quota covers it, anything later waits for an
// admin even if days remain.
func (s *RequestService) submitSick(ctx context.Context, req *leave.Request, now time.Time) error {
	quota, err := s.quotas.Current(ctx, req.EmployeeID, leave.CategorySick, now)
	if err != nil {
		return err
	}

	autoApprove := quota.Used == 0 && quota.Remaining() >= req.Days
	if autoApprove {
		req.Status = leave.StatusAutoApproved
		decidedAt := now
		req.DecidedAt = &decidedAt

		err := s.withTx(ctx, func(ctx context.Context) error {
			if err := s.requests.Create(ctx, req); err != nil {
				return err
			}
			_, err := s.quotas.Consume(ctx, req.EmployeeID, leave.CategorySick, req.Days, now)
			return err
		})
		if err != nil {
			return err
		}

		s.notify(ctx, req.EmployeeID, "Sick Leave Auto-Approved",
			fmt.Sprintf("Your sick leave request (%s) has been auto-approved", dayLabel(req.Days)),
			map[string]interface{}{"request_id": req.ID, "status": string(leave.StatusAutoApproved)},
		)
		return nil
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return err
	}

	s.notifyAdmins(ctx, req, quota)
	return nil
}

// notifyAdmins tells every admin about a pending sick request.
func (s *RequestService) notifyAdmins(ctx context.Context, req *leave.Request, quota *leave.Quota) {
	admins, err := s.employees.ListByRoles(ctx, []employee.Role{employee.RoleAdmin})
	if err != nil {
		slog.Error("list admins for leave notification", "error", err)
		return
	}

	requester, err := s.employees.GetByID(ctx, req.EmployeeID)
	requesterName := "An employee"
	if err == nil {
		requesterName = requester.FullName()
	}

	quotaNote := fmt.Sprintf("(%d days remaining in quota)", quota.Remaining())
	if quota.Remaining() < req.Days {
		quotaNote = fmt.Sprintf("(Quota exhausted - %d/%d days used)", quota.Used, quota.Allowance)
	}

	for _, admin := range admins {
		s.notify(ctx, admin.ID, "New Sick Leave Request",
			fmt.Sprintf("%s requested %s sick %s. Requires your approval.",
				requesterName, dayLabel(req.Days), quotaNote),
			map[string]interface{}{
				"request_id": req.ID,
				"status":     string(leave.StatusPending),
				"category":   string(leave.CategorySick),
			},
		)
	}
}

func (s *RequestService) Approve(ctx context.Context, reviewerID, requestID string, input *leave.ReviewRequestInput, now time.Time) (*leave.Request, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != leave.StatusPending {
		return nil, leave.ErrAlreadyProcessed
	}

	// Vacation gets an authoritative quota check at decision time; sick
	// approval is at the reviewer's discretion even with the quota spent.
	if req.Category == leave.CategoryVacation {
		quota, err := s.quotas.Current(ctx, req.EmployeeID, leave.CategoryVacation, now)
		if err != nil {
			return nil, err
		}
		if quota.Remaining() < req.Days {
			return nil, leave.ErrQuotaExceeded
		}
	}

	req.Status = leave.StatusApproved
	req.ReviewerID = &reviewerID
	if input != nil && input.Comment != "" {
		req.ReviewNote = &input.Comment
	}
	decidedAt := now
	req.DecidedAt = &decidedAt

	err = s.withTx(ctx, func(ctx context.Context) error {
		if err := s.requests.Update(ctx, req); err != nil {
			return err
		}
		// Sick approvals may exceed the allowance at the reviewer's
		// discretion, so they skip the remaining-days guard.
		if req.Category == leave.CategorySick {
			_, err := s.quotas.ConsumeUnchecked(ctx, req.EmployeeID, req.Category, req.Days, now)
			return err
		}
		_, err := s.quotas.Consume(ctx, req.EmployeeID, req.Category, req.Days, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your sick leave request (%s) has been approved", dayLabel(req.Days))
	if req.Category == leave.CategoryVacation {
		message = fmt.Sprintf("Your vacation leave request (%s) has been approved and deducted from your quarterly quota", dayLabel(req.Days))
	}
	s.notify(ctx, req.EmployeeID, "Leave Request Approved", message,
		map[string]interface{}{"request_id": req.ID, "status": string(leave.StatusApproved)},
	)

	return req, nil
}

func (s *RequestService) Reject(ctx context.Context, reviewerID, requestID string, input *leave.ReviewRequestInput, now time.Time) (*leave.Request, error) {
	if input == nil || validator.IsEmpty(input.Comment) {
		return nil, leave.ErrCommentRequired
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != leave.StatusPending {
		return nil, leave.ErrAlreadyProcessed
	}

	req.Status = leave.StatusRejected
	req.ReviewerID = &reviewerID
	req.ReviewNote = &input.Comment
	decidedAt := now
	req.DecidedAt = &decidedAt

	if err := s.requests.Update(ctx, req); err != nil {
		return nil, err
	}

	s.notify(ctx, req.EmployeeID, "Leave Request Rejected",
		fmt.Sprintf("Your %s leave request has been rejected", categoryLabel(req.Category)),
		map[string]interface{}{
			"request_id": req.ID,
			"status":     string(leave.StatusRejected),
			"comment":    input.Comment,
		},
	)

	return req, nil
}

func (s *RequestService) MyRequests(ctx context.Context, employeeID string) ([]leave.Request, error) {
	return s.requests.ListByEmployee(ctx, employeeID)
}

func (s *RequestService) AllRequests(ctx context.Context, status *leave.Status) ([]leave.RequestWithEmployee, error) {
	return s.requests.List(ctx, status)
}

// notify fires a leave-update notification. Delivery problems are logged
// and never surface to the caller.
func (s *RequestService) notify(ctx context.Context, recipientID, title, message string, payload map[string]interface{}) {
	_, err := s.notifications.Create(ctx, &notification.CreateInput{
		RecipientID: recipientID,
		Type:        notification.TypeLeaveUpdate,
		Title:       title,
		Message:     message,
		Payload:     payload,
	})
	if err != nil {
		slog.Error("create leave notification", "recipient_id", recipientID, "error", err)
	}
}

func dayLabel(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

func categoryLabel(c leave.Category) string {
	if c == leave.CategorySick {
		return "sick"
	}
	return "vacation"
}
