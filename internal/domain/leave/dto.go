package leave

import (
	"time"

	"github.com/qubix-crm/crm-backend-go/internal/pkg/validator"
)

type SubmitRequestInput struct {
	Category  Category `json:"category"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Reason    string   `json:"reason"`
}

// Validate checks field presence and formats. Range and quota rules are
// enforced by the service.
func (r *SubmitRequestInput) Validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !r.Category.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "must be SICK or VACATION"})
	}
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "is required"})
	} else if !validator.IsValidDate(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "is required"})
	} else if !validator.IsValidDate(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	return errs
}

type ReviewRequestInput struct {
	Comment string `json:"comment"`
}

// QuotaSummary is the per-category view returned to an employee.
type QuotaSummary struct {
	Category    Category  `json:"category"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Allowance   int       `json:"allowance"`
	Used        int       `json:"used"`
	Remaining   int       `json:"remaining"`
}

// RequestWithEmployee augments a request with its owner's display fields
// for reviewer-facing listings.
type RequestWithEmployee struct {
	Request
	EmployeeName  string  `json:"employee_name"`
	EmployeeEmail string  `json:"employee_email"`
	Department    *string `json:"department,omitempty"`
}
