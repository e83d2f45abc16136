package attendance

import "time"

type Status string

const (
	StatusOnTime Status = "ON_TIME"
	StatusLate   Status = "LATE"
	StatusMissed Status = "MISSED"

	// StatusOnLeave is never stored; it is derived when an approved leave
	// request covers the day.
	StatusOnLeave Status = "ON_LEAVE"
)

const (
	// ShiftStartHour is the hour the working day begins.
	ShiftStartHour = 9

	// LateThresholdMinutes is the grace period after shift start. Arriving
	// at or past the threshold counts as late.
	LateThresholdMinutes = 30

	// RequiredWorkMinutes is a full working day.
	RequiredWorkMinutes = 480
)

type Record struct {
	ID                 string     `json:"id"`
	EmployeeID         string     `json:"employee_id"`
	WorkDate           time.Time  `json:"work_date"`
	SignInAt           time.Time  `json:"sign_in_at"`
	SignOutAt          *time.Time `json:"sign_out_at,omitempty"`
	Status             Status     `json:"status"`
	LateMinutes        *int       `json:"late_minutes,omitempty"`
	TotalWorkedMinutes *int       `json:"total_worked_minutes,omitempty"`
	SignInLatitude     *float64   `json:"sign_in_latitude,omitempty"`
	SignInLongitude    *float64   `json:"sign_in_longitude,omitempty"`
	SignInAddress      *string    `json:"sign_in_address,omitempty"`
	SignOutLatitude    *float64   `json:"sign_out_latitude,omitempty"`
	SignOutLongitude   *float64   `json:"sign_out_longitude,omitempty"`
	SignOutAddress     *string    `json:"sign_out_address,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Classify derives the stored status and late minutes for a sign-in time.
// Lateness is measured from shift start; the record only carries late
// minutes when the status is LATE.
func Classify(signInAt time.Time) (Status, *int) {
	shiftStart := time.Date(signInAt.Year(), signInAt.Month(), signInAt.Day(),
		ShiftStartHour, 0, 0, 0, signInAt.Location())

	minutesLate := int(signInAt.Sub(shiftStart).Minutes())
	if minutesLate >= LateThresholdMinutes {
		return StatusLate, &minutesLate
	}
	return StatusOnTime, nil
}
