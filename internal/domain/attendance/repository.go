package attendance

import (
	"context"
	"time"
)

type Repository interface {
	// Create inserts a record. Implementations return ErrAlreadySignedIn
	// when a record for the employee and work date already exists.
	Create(ctx context.Context, rec *Record) error

	// GetByEmployeeAndDate returns the record for the employee on the given
	// work date, or ErrAttendanceNotFound.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*Record, error)

	Update(ctx context.Context, rec *Record) error

	// ListByEmployee returns the employee's records within [from, to],
	// newest first.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)

	// ListByDate returns every record for one work date.
	ListByDate(ctx context.Context, workDate time.Time) ([]Record, error)

	// ListBetween returns all employees' records within [from, to].
	ListBetween(ctx context.Context, from, to time.Time) ([]Record, error)
}
