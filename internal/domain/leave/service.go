package leave

import (
	"context"
	"time"
)

// Allowances maps a category to the number of days granted per period.
// SICK allowances renew monthly, VACATION allowances renew quarterly.
type Allowances map[Category]int

// DefaultAllowances returns the standard company policy.
func DefaultAllowances() Allowances {
	return Allowances{
		CategorySick:     2,
		CategoryVacation: 5,
	}
}

type QuotaService interface {
	// Summary returns the quota state for every category in the period
	// containing now, materializing missing rows.
	Summary(ctx context.Context, employeeID string, now time.Time) ([]QuotaSummary, error)

	// Current returns the quota row for one category in the period
	// containing now, materializing it when absent.
	Current(ctx context.Context, employeeID string, category Category, now time.Time) (*Quota, error)

	// Consume atomically spends days from the current period's quota,
	// failing with ErrQuotaExceeded when fewer days remain.
	Consume(ctx context.Context, employeeID string, category Category, days int, now time.Time) (*Quota, error)

	// ConsumeUnchecked spends days without the remaining-days guard.
	ConsumeUnchecked(ctx context.Context, employeeID string, category Category, days int, now time.Time) (*Quota, error)
}

type RequestService interface {
	Submit(ctx context.Context, employeeID string, input *SubmitRequestInput, now time.Time) (*Request, error)
	Approve(ctx context.Context, reviewerID, requestID string, input *ReviewRequestInput, now time.Time) (*Request, error)
	Reject(ctx context.Context, reviewerID, requestID string, input *ReviewRequestInput, now time.Time) (*Request, error)
	MyRequests(ctx context.Context, employeeID string) ([]Request, error)
	AllRequests(ctx context.Context, status *Status) ([]RequestWithEmployee, error)
}
