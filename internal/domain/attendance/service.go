package attendance

import (
	"context"
	"time"
)

type Service interface {
	SignIn(ctx context.Context, employeeID string, input *SignInInput, now time.Time) (*Record, error)
	SignOut(ctx context.Context, employeeID string, input *SignOutInput, now time.Time) (*Record, error)

	// MyAttendance returns the employee's records, optionally bounded.
	MyAttendance(ctx context.Context, employeeID string, from, to *time.Time) ([]Record, error)

	// Dashboard returns every employee's status for the day containing now,
	// the leaderboard and records for the optional range, and roll-up stats.
	Dashboard(ctx context.Context, from, to *time.Time, now time.Time) (*Dashboard, error)

	// MonthlyAnalytics aggregates the whole roster's month.
	MonthlyAnalytics(ctx context.Context, year, month int) (*MonthlyReport, error)
}
