package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/qubix-crm/crm-backend-go/internal/domain/leave"
	"github.com/qubix-crm/crm-backend-go/internal/handler/http/middleware"
	"github.com/qubix-crm/crm-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	MyQuotas(w http.ResponseWriter, r *http.Request)
	AllRequests(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	requestService leave.RequestService
	quotaService   leave.QuotaService
}

func NewLeaveHandler(requestService leave.RequestService, quotaService leave.QuotaService) LeaveHandler {
	return &leaveHandlerImpl{
		requestService: requestService,
		quotaService:   quotaService,
	}
}

// Submit implements LeaveHandler
func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	var input leave.SubmitRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	req, err := h.requestService.Submit(r.Context(), employeeID, &input, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", req)
}

// MyRequests implements LeaveHandler
func (h *leaveHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	requests, err := h.requestService.MyRequests(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// MyQuotas implements LeaveHandler
func (h *leaveHandlerImpl) MyQuotas(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	summaries, err := h.quotaService.Summary(r.Context(), employeeID, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summaries)
}

// AllRequests implements LeaveHandler
func (h *leaveHandlerImpl) AllRequests(w http.ResponseWriter, r *http.Request) {
	var status *leave.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := leave.Status(raw)
		switch s {
		case leave.StatusPending, leave.StatusApproved, leave.StatusRejected, leave.StatusAutoApproved:
			status = &s
		default:
			response.BadRequest(w, "Unknown status filter", nil)
			return
		}
	}

	requests, err := h.requestService.AllRequests(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// Approve implements LeaveHandler
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	reviewerID := middleware.EmployeeID(r)
	if reviewerID == "" {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	var input leave.ReviewRequestInput
	if err := decodeOptionalBody(r, &input); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	req, err := h.requestService.Approve(r.Context(), reviewerID, requestID, &input, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", req)
}

// Reject implements LeaveHandler
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	reviewerID := middleware.EmployeeID(r)
	if reviewerID == "" {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	var input leave.ReviewRequestInput
	if err := decodeOptionalBody(r, &input); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	req, err := h.requestService.Reject(r.Context(), reviewerID, requestID, &input, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", req)
}
