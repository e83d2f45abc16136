package attendance

import (
	"time"

	"github.com/qubix-crm/crm-backend-go/internal/domain/leave"
)

type SignInInput struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   *string  `json:"address,omitempty"`
}

type SignOutInput struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   *string  `json:"address,omitempty"`
}

// EmployeeRef is the roster slice attached to dashboard and report rows.
type EmployeeRef struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Department *string `json:"department,omitempty"`
}

// LeaveContext describes the approved leave covering the dashboard day.
type LeaveContext struct {
	Category      leave.Category `json:"category"`
	StartDate     time.Time      `json:"start_date"`
	EndDate       time.Time      `json:"end_date"`
	TotalDays     int            `json:"total_days"`
	DaysRemaining int            `json:"days_remaining"`
	Reason        string         `json:"reason"`
}

// DashboardEntry is one employee's row for the dashboard day. Status may
// be the derived ON_LEAVE, which is never stored.
type DashboardEntry struct {
	Employee       EmployeeRef   `json:"employee"`
	Status         Status        `json:"status"`
	SignInAt       *time.Time    `json:"sign_in_at,omitempty"`
	SignOutAt      *time.Time    `json:"sign_out_at,omitempty"`
	Leave          *LeaveContext `json:"leave,omitempty"`
	TotalMinutes   *int          `json:"total_minutes,omitempty"`
	LateMinutes    *int          `json:"late_minutes,omitempty"`
	CompletedHours bool          `json:"completed_hours"`
	SignedOutEarly bool          `json:"signed_out_early"`
}

type DashboardStats struct {
	TotalEmployees      int `json:"total_employees"`
	SignedInToday       int `json:"signed_in_today"`
	OnTimeToday         int `json:"on_time_today"`
	LateToday           int `json:"late_today"`
	MissedToday         int `json:"missed_today"`
	OnLeaveToday        int `json:"on_leave_today"`
	SignedOutEarlyToday int `json:"signed_out_early_today"`
	CompletedHoursToday int `json:"completed_hours_today"`
}

// LeaderboardEntry ranks an employee by punctuality within the range.
// AvgArrivalTime is the mean sign-in clock time formatted H:MM.
type LeaderboardEntry struct {
	Employee         EmployeeRef `json:"employee"`
	OnTimePercentage float64     `json:"on_time_percentage"`
	TotalDays        int         `json:"total_days"`
	OnTimeDays       int         `json:"on_time_days"`
	AvgArrivalTime   string      `json:"avg_arrival_time"`
}

type Dashboard struct {
	TodayStatus []DashboardEntry   `json:"today_status"`
	Records     []Record           `json:"records"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Stats       DashboardStats     `json:"stats"`
}

// EmployeeMonthlySummary is one employee's month. Absent days are work
// days not covered by attendance or approved leave, floored at zero.
type EmployeeMonthlySummary struct {
	Employee           EmployeeRef `json:"employee"`
	OnTimeDays         int         `json:"on_time_days"`
	LateDays           int         `json:"late_days"`
	AbsentDays         int         `json:"absent_days"`
	SickDays           int         `json:"sick_days"`
	VacationDays       int         `json:"vacation_days"`
	TotalDays          int         `json:"total_days"`
	TotalLateMinutes   int         `json:"total_late_minutes"`
	TotalWorkMinutes   int         `json:"total_work_minutes"`
	CompletedHoursDays int         `json:"completed_hours_days"`
	SignedOutEarlyDays int         `json:"signed_out_early_days"`
	Reliability        float64     `json:"reliability"`
}

type MonthlySummary struct {
	TotalOnTimeDays   int     `json:"total_on_time_days"`
	TotalLateDays     int     `json:"total_late_days"`
	TotalAbsentDays   int     `json:"total_absent_days"`
	TotalSickDays     int     `json:"total_sick_days"`
	TotalVacationDays int     `json:"total_vacation_days"`
	OnTimePercentage  float64 `json:"on_time_percentage"`
	LatePercentage    float64 `json:"late_percentage"`
	AbsentPercentage  float64 `json:"absent_percentage"`
}

type MonthlyReport struct {
	Month             int                      `json:"month"`
	Year              int                      `json:"year"`
	TotalWorkDays     int                      `json:"total_work_days"`
	Summary           MonthlySummary           `json:"summary"`
	EmployeeSummaries []EmployeeMonthlySummary `json:"employee_summaries"`
}
