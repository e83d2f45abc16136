package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/qubix-crm/crm-backend-go/internal/domain/leave"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/calendar"
)

// QuotaService manages the per-period leave ledgers. Sick quotas renew
// every calendar month, vacation quotas every calendar quarter; rows are
// materialized lazily the first time a period is touched.
type QuotaService struct {
	quotas     leave.QuotaRepository
	allowances leave.Allowances
}

func NewQuotaService(quotas leave.QuotaRepository, allowances leave.Allowances) *QuotaService {
	if allowances == nil {
		allowances = leave.DefaultAllowances()
	}
	return &QuotaService{
		quotas:     quotas,
		allowances: allowances,
	}
}

// periodFor returns the quota period containing now for the category.
func periodFor(category leave.Category, now time.Time) calendar.Period {
	if category == leave.CategorySick {
		return calendar.MonthPeriod(now)
	}
	return calendar.QuarterPeriod(now)
}

func (q *QuotaService) Current(ctx context.Context, employeeID string, category leave.Category, now time.Time) (*leave.Quota, error) {
	if !category.IsValid() {
		return nil, leave.ErrInvalidCategory
	}

	period := periodFor(category, now)
	quota, err := q.quotas.FindOrCreate(ctx, employeeID, category, period.Start, period.End, q.allowances[category])
	if err != nil {
		return nil, fmt.Errorf("load quota: %w", err)
	}

	return quota, nil
}

func (q *QuotaService) Summary(ctx context.Context, employeeID string, now time.Time) ([]leave.QuotaSummary, error) {
	categories := []leave.Category{leave.CategorySick, leave.CategoryVacation}

	summaries := make([]leave.QuotaSummary, 0, len(categories))
	for _, category := range categories {
		quota, err := q.Current(ctx, employeeID, category, now)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, leave.QuotaSummary{
			Category:    category,
			PeriodStart: quota.PeriodStart,
			PeriodEnd:   quota.PeriodEnd,
			Allowance:   quota.Allowance,
			Used:        quota.Used,
			Remaining:   quota.Remaining(),
		})
	}

	return summaries, nil
}

func (q *QuotaService) Consume(ctx context.Context, employeeID string, category leave.Category, days int, now time.Time) (*leave.Quota, error) {
	if !category.IsValid() {
		return nil, leave.ErrInvalidCategory
	}
	if days <= 0 {
		return nil, fmt.Errorf("consume quota: days must be positive, got %d", days)
	}

	period := periodFor(category, now)
	quota, err := q.quotas.ConsumeIfAvailable(ctx, employeeID, category, period.Start, period.End, q.allowances[category], days)
	if err != nil {
		return nil, err
	}

	return quota, nil
}

// ConsumeUnchecked spends days even when the allowance is already spent.
// Used for reviewer-discretion sick approvals.
func (q *QuotaService) ConsumeUnchecked(ctx context.Context, employeeID string, category leave.Category, days int, now time.Time) (*leave.Quota, error) {
	if !category.IsValid() {
		return nil, leave.ErrInvalidCategory
	}
	if days <= 0 {
		return nil, fmt.Errorf("consume quota: days must be positive, got %d", days)
	}

	period := periodFor(category, now)
	quota, err := q.quotas.AddUsed(ctx, employeeID, category, period.Start, period.End, q.allowances[category], days)
	if err != nil {
		return nil, err
	}

	return quota, nil
}
