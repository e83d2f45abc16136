package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/qubix-crm/crm-backend-go/internal/domain/leave"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/database"
)

type LeaveQuotaRepository struct {
	db *database.DB
}

func NewLeaveQuotaRepository(db *database.DB) *LeaveQuotaRepository {
	return &LeaveQuotaRepository{db: db}
}

const leaveQuotaColumns = `
	id, employee_id, category, period_start, period_end, allowance, used,
	created_at, updated_at
`

func scanLeaveQuota(row pgx.Row) (*leave.Quota, error) {
	var q leave.Quota
	err := row.Scan(
		&q.ID, &q.EmployeeID, &q.Category, &q.PeriodStart, &q.PeriodEnd,
		&q.Allowance, &q.Used,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// FindOrCreate materializes the quota row for the key. The upsert leaves an
// existing row untouched so concurrent first lookups converge on one row.
func (r *LeaveQuotaRepository) FindOrCreate(ctx context.Context, employeeID string, category leave.Category, periodStart, periodEnd time.Time, allowance int) (*leave.Quota, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO leave_quotas (
			id, employee_id, category, period_start, period_end, allowance, used,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, 0, NOW(), NOW())
		ON CONFLICT (employee_id, category, period_start)
		DO UPDATE SET updated_at = leave_quotas.updated_at
		RETURNING %s
	`, leaveQuotaColumns)

	q, err := scanLeaveQuota(querier.QueryRow(ctx, query,
		uuid.New().String(), employeeID, category, periodStart, periodEnd, allowance,
	))
	if err != nil {
		return nil, fmt.Errorf("find or create leave quota: %w", err)
	}

	return q, nil
}

// ConsumeIfAvailable spends days from the period's quota in one statement:
// the row is created when absent and the increment only applies while enough
// allowance remains, so concurrent consumers cannot overspend.
func (r *LeaveQuotaRepository) ConsumeIfAvailable(ctx context.Context, employeeID string, category leave.Category, periodStart, periodEnd time.Time, allowance, days int) (*leave.Quota, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO leave_quotas (
			id, employee_id, category, period_start, period_end, allowance, used,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (employee_id, category, period_start)
		DO UPDATE SET used = leave_quotas.used + $7, updated_at = NOW()
		WHERE leave_quotas.used + $7 <= leave_quotas.allowance
		RETURNING %s
	`, leaveQuotaColumns)

	if days > allowance {
		return nil, leave.ErrQuotaExceeded
	}

	q, err := scanLeaveQuota(querier.QueryRow(ctx, query,
		uuid.New().String(), employeeID, category, periodStart, periodEnd, allowance, days,
	))
	if err != nil {
		// no row returned means the guarded update declined the increment
		if err == pgx.ErrNoRows {
			return nil, leave.ErrQuotaExceeded
		}
		return nil, fmt.Errorf("consume leave quota: %w", err)
	}

	return q, nil
}

// AddUsed spends days without checking the remaining allowance. Used for
// reviewer-discretion approvals that may exceed the cap.
func (r *LeaveQuotaRepository) AddUsed(ctx context.Context, employeeID string, category leave.Category, periodStart, periodEnd time.Time, allowance, days int) (*leave.Quota, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO leave_quotas (
			id, employee_id, category, period_start, period_end, allowance, used,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (employee_id, category, period_start)
		DO UPDATE SET used = leave_quotas.used + $7, updated_at = NOW()
		RETURNING %s
	`, leaveQuotaColumns)

	q, err := scanLeaveQuota(querier.QueryRow(ctx, query,
		uuid.New().String(), employeeID, category, periodStart, periodEnd, allowance, days,
	))
	if err != nil {
		return nil, fmt.Errorf("add used leave quota: %w", err)
	}

	return q, nil
}
