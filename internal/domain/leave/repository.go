package leave

import (
	"context"
	"time"
)

// QuotaRepository persists per-period quota ledgers. Implementations must
// make FindOrCreate and ConsumeIfAvailable safe under concurrent callers.
type QuotaRepository interface {
	// FindOrCreate returns the quota row for the key, inserting it with the
	// given allowance and zero usage when absent.
	FindOrCreate(ctx context.Context, employeeID string, category Category, periodStart, periodEnd time.Time, allowance int) (*Quota, error)

	// ConsumeIfAvailable atomically adds days to the quota's usage, creating
	// the row first when absent. It returns ErrQuotaExceeded without
	// modifying the row when fewer than days remain.
	ConsumeIfAvailable(ctx context.Context, employeeID string, category Category, periodStart, periodEnd time.Time, allowance, days int) (*Quota, error)

	// AddUsed adds days to the quota's usage without a remaining-days guard.
	// Usage may end up above the allowance; Remaining floors at zero.
	AddUsed(ctx context.Context, employeeID string, category Category, periodStart, periodEnd time.Time, allowance, days int) (*Quota, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	Update(ctx context.Context, req *Request) error
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)

	// List returns all requests, optionally filtered by status, newest first.
	List(ctx context.Context, status *Status) ([]RequestWithEmployee, error)

	// ListApprovedOverlapping returns approved or auto-approved requests for
	// the employee whose date range intersects [from, to].
	ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]Request, error)

	// ListApprovedBetween returns all employees' approved or auto-approved
	// requests whose date range intersects [from, to].
	ListApprovedBetween(ctx context.Context, from, to time.Time) ([]Request, error)
}
