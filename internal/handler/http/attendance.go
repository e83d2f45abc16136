package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/qubix-crm/crm-backend-go/internal/domain/attendance"
	"github.com/qubix-crm/crm-backend-go/internal/handler/http/middleware"
	"github.com/qubix-crm/crm-backend-go/internal/handler/http/response"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	SignIn(w http.ResponseWriter, r *http.Request)
	SignOut(w http.ResponseWriter, r *http.Request)
	MyAttendance(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)
	MonthlyAnalytics(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// decodeOptionalBody tolerates an empty request body; sign-in and sign-out
// payloads only carry optional location fields.
func decodeOptionalBody(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// SignIn implements AttendanceHandler
func (h *attendanceHandlerImpl) SignIn(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	var input attendance.SignInInput
	if err := decodeOptionalBody(r, &input); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	rec, err := h.attendanceService.SignIn(r.Context(), employeeID, &input, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Signed in", rec)
}

// SignOut implements AttendanceHandler
func (h *attendanceHandlerImpl) SignOut(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	var input attendance.SignOutInput
	if err := decodeOptionalBody(r, &input); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	rec, err := h.attendanceService.SignOut(r.Context(), employeeID, &input, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Signed out", rec)
}

// parseDateParam reads an optional YYYY-MM-DD query parameter.
func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := validator.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MyAttendance implements AttendanceHandler
func (h *attendanceHandlerImpl) MyAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	from, err := parseDateParam(r, "startDate")
	if err != nil {
		response.BadRequest(w, "startDate must be a valid date (YYYY-MM-DD)", nil)
		return
	}
	to, err := parseDateParam(r, "endDate")
	if err != nil {
		response.BadRequest(w, "endDate must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	records, err := h.attendanceService.MyAttendance(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Dashboard implements AttendanceHandler
func (h *attendanceHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r, "startDate")
	if err != nil {
		response.BadRequest(w, "startDate must be a valid date (YYYY-MM-DD)", nil)
		return
	}
	to, err := parseDateParam(r, "endDate")
	if err != nil {
		response.BadRequest(w, "endDate must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	dashboard, err := h.attendanceService.Dashboard(r.Context(), from, to, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}

// MonthlyAnalytics implements AttendanceHandler
func (h *attendanceHandlerImpl) MonthlyAnalytics(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			response.BadRequest(w, "month must be a number between 1 and 12", nil)
			return
		}
		month = parsed
	}

	report, err := h.attendanceService.MonthlyAnalytics(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}
