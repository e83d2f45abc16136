package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/qubix-crm/crm-backend-go/internal/domain/leave"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/database"
)

type LeaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) *LeaveRequestRepository {
	return &LeaveRequestRepository{db: db}
}

const leaveRequestColumns = `
	id, employee_id, category, start_date, end_date, days, reason, status,
	reviewer_id, review_note, decided_at, created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (*leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Category, &req.StartDate, &req.EndDate,
		&req.Days, &req.Reason, &req.Status,
		&req.ReviewerID, &req.ReviewNote, &req.DecidedAt,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *LeaveRequestRepository) Create(ctx context.Context, req *leave.Request) error {
	querier := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, category, start_date, end_date, days, reason, status,
			reviewer_id, review_note, decided_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
	`

	_, err := querier.Exec(ctx, query,
		req.ID, req.EmployeeID, req.Category, req.StartDate, req.EndDate,
		req.Days, req.Reason, req.Status,
		req.ReviewerID, req.ReviewNote, req.DecidedAt,
		req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create leave request: %w", err)
	}

	return nil
}

func (r *LeaveRequestRepository) GetByID(ctx context.Context, id string) (*leave.Request, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM leave_requests
		WHERE id = $1
	`, leaveRequestColumns)

	req, err := scanLeaveRequest(querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrLeaveRequestNotFound
		}
		return nil, fmt.Errorf("get leave request by id: %w", err)
	}

	return req, nil
}

func (r *LeaveRequestRepository) Update(ctx context.Context, req *leave.Request) error {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, reviewer_id = $2, review_note = $3, decided_at = $4,
		    updated_at = NOW()
		WHERE id = $5
	`

	tag, err := querier.Exec(ctx, query,
		req.Status, req.ReviewerID, req.ReviewNote, req.DecidedAt, req.ID,
	)
	if err != nil {
		return fmt.Errorf("update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

func (r *LeaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM leave_requests
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`, leaveRequestColumns)

	rows, err := querier.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list leave requests by employee: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

func (r *LeaveRequestRepository) List(ctx context.Context, status *leave.Status) ([]leave.RequestWithEmployee, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT
			lr.id, lr.employee_id, lr.category, lr.start_date, lr.end_date,
			lr.days, lr.reason, lr.status,
			lr.reviewer_id, lr.review_note, lr.decided_at,
			lr.created_at, lr.updated_at,
			e.first_name || ' ' || e.last_name AS employee_name,
			e.email, e.department
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE ($1::text IS NULL OR lr.status = $1)
		ORDER BY lr.created_at DESC
	`

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := querier.Query(ctx, query, statusArg)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	defer rows.Close()

	var results []leave.RequestWithEmployee
	for rows.Next() {
		var rw leave.RequestWithEmployee
		err := rows.Scan(
			&rw.ID, &rw.EmployeeID, &rw.Category, &rw.StartDate, &rw.EndDate,
			&rw.Days, &rw.Reason, &rw.Status,
			&rw.ReviewerID, &rw.ReviewNote, &rw.DecidedAt,
			&rw.CreatedAt, &rw.UpdatedAt,
			&rw.EmployeeName, &rw.EmployeeEmail, &rw.Department,
		)
		if err != nil {
			return nil, fmt.Errorf("scan leave request: %w", err)
		}
		results = append(results, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leave requests: %w", err)
	}

	return results, nil
}

func (r *LeaveRequestRepository) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Request, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM leave_requests
		WHERE employee_id = $1
		  AND status IN ('APPROVED', 'AUTO_APPROVED')
		  AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date
	`, leaveRequestColumns)

	rows, err := querier.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list approved overlapping leave: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

func (r *LeaveRequestRepository) ListApprovedBetween(ctx context.Context, from, to time.Time) ([]leave.Request, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM leave_requests
		WHERE status IN ('APPROVED', 'AUTO_APPROVED')
		  AND start_date <= $2 AND end_date >= $1
		ORDER BY start_date
	`, leaveRequestColumns)

	rows, err := querier.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list approved leave between dates: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.Request, error) {
	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave request: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leave requests: %w", err)
	}
	return requests, nil
}
