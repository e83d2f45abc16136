package leave

import "time"

type Category string

const (
	CategorySick     Category = "SICK"
	CategoryVacation Category = "VACATION"
)

// IsValid reports whether the category is a known leave category.
func (c Category) IsValid() bool {
	return c == CategorySick || c == CategoryVacation
}

type Status string

const (
	StatusPending      Status = "PENDING"
	StatusApproved     Status = "APPROVED"
	StatusRejected     Status = "REJECTED"
	StatusAutoApproved Status = "AUTO_APPROVED"
)

// IsFinal reports whether the status can no longer change.
func (s Status) IsFinal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusAutoApproved
}

// CountsAsApproved reports whether the request consumed quota and blocks
// overlapping attendance.
func (s Status) CountsAsApproved() bool {
	return s == StatusApproved || s == StatusAutoApproved
}

// Quota tracks leave consumption for one employee, category and period.
// Rows are created lazily on first use within a period.
type Quota struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	Category    Category  `json:"category"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Allowance   int       `json:"allowance"`
	Used        int       `json:"used"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Remaining returns the days still available in the period, never negative.
func (q *Quota) Remaining() int {
	r := q.Allowance - q.Used
	if r < 0 {
		return 0
	}
	return r
}

type Request struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Category   Category   `json:"category"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	Days       int        `json:"days"`
	Reason     string     `json:"reason"`
	Status     Status     `json:"status"`
	ReviewerID *string    `json:"reviewer_id,omitempty"`
	ReviewNote *string    `json:"review_note,omitempty"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
