package leave

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/qubix-crm/crm-backend-go/internal/domain/employee"
	"github.com/qubix-crm/crm-backend-go/internal/domain/leave"
	"github.com/qubix-crm/crm-backend-go/internal/domain/notification"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/sse"
)

type quotaKey struct {
	employeeID  string
	category    leave.Category
	periodStart time.Time
}

type fakeQuotaRepo struct {
	quotas map[quotaKey]*leave.Quota
}

func newFakeQuotaRepo() *fakeQuotaRepo {
	return &fakeQuotaRepo{quotas: make(map[quotaKey]*leave.Quota)}
}

func (f *fakeQuotaRepo) findOrCreate(employeeID string, category leave.Category, periodStart, periodEnd time.Time, allowance int) *leave.Quota {
	key := quotaKey{employeeID, category, periodStart}
	if q, ok := f.quotas[key]; ok {
		return q
	}
	q := &leave.Quota{
		ID:          uuid.New().String(),
		EmployeeID:  employeeID,
		Category:    category,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Allowance:   allowance,
	}
	f.quotas[key] = q
	return q
}

func (f *fakeQuotaRepo) FindOrCreate(_ context.Context, employeeID string, category leave.Category, periodStart, periodEnd time.Time, allowance int) (*leave.Quota, error) {
	q := f.findOrCreate(employeeID, category, periodStart, periodEnd, allowance)
	cp := *q
	return &cp, nil
}

func (f *fakeQuotaRepo) ConsumeIfAvailable(_ context.Context, employeeID string, category leave.Category, periodStart, periodEnd time.Time, allowance, days int) (*leave.Quota, error) {
	q := f.findOrCreate(employeeID, category, periodStart, periodEnd, allowance)
	if q.Used+days > q.Allowance {
		return nil, leave.ErrQuotaExceeded
	}
	q.Used += days
	cp := *q
	return &cp, nil
}

func (f *fakeQuotaRepo) AddUsed(_ context.Context, employeeID string, category leave.Category, periodStart, periodEnd time.Time, allowance, days int) (*leave.Quota, error) {
	q := f.findOrCreate(employeeID, category, periodStart, periodEnd, allowance)
	q.Used += days
	cp := *q
	return &cp, nil
}

type fakeRequestRepo struct {
	requests map[string]*leave.Request
	order    []string
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*leave.Request)}
}

func (f *fakeRequestRepo) Create(_ context.Context, req *leave.Request) error {
	cp := *req
	f.requests[req.ID] = &cp
	f.order = append(f.order, req.ID)
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (*leave.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, leave.ErrLeaveRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (f *fakeRequestRepo) Update(_ context.Context, req *leave.Request) error {
	if _, ok := f.requests[req.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) ListByEmployee(_ context.Context, employeeID string) ([]leave.Request, error) {
	var out []leave.Request
	for i := len(f.order) - 1; i >= 0; i-- {
		req := f.requests[f.order[i]]
		if req.EmployeeID == employeeID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) List(_ context.Context, status *leave.Status) ([]leave.RequestWithEmployee, error) {
	var out []leave.RequestWithEmployee
	for i := len(f.order) - 1; i >= 0; i-- {
		req := f.requests[f.order[i]]
		if status != nil && req.Status != *status {
			continue
		}
		out = append(out, leave.RequestWithEmployee{Request: *req})
	}
	return out, nil
}

func (f *fakeRequestRepo) ListApprovedOverlapping(_ context.Context, employeeID string, from, to time.Time) ([]leave.Request, error) {
	var out []leave.Request
	for _, id := range f.order {
		req := f.requests[id]
		if req.EmployeeID != employeeID || !req.Status.CountsAsApproved() {
			continue
		}
		if !req.StartDate.After(to) && !req.EndDate.Before(from) {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListApprovedBetween(_ context.Context, from, to time.Time) ([]leave.Request, error) {
	var out []leave.Request
	for _, id := range f.order {
		req := f.requests[id]
		if !req.Status.CountsAsApproved() {
			continue
		}
		if !req.StartDate.After(to) && !req.EndDate.Before(from) {
			out = append(out, *req)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
}

func newFakeEmployeeRepo(emps ...*employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{employees: make(map[string]*employee.Employee)}
	for _, e := range emps {
		f.employees[e.ID] = e
	}
	return f
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListByRoles(_ context.Context, roles []employee.Role) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		for _, r := range roles {
			if e.Role == r {
				out = append(out, *e)
				break
			}
		}
	}
	return out, nil
}

// fakeNotifier records what was sent instead of persisting and pushing.
type fakeNotifier struct {
	sent []notification.CreateInput
}

func (f *fakeNotifier) Create(_ context.Context, input *notification.CreateInput) (*notification.Notification, error) {
	f.sent = append(f.sent, *input)
	return &notification.Notification{ID: uuid.New().String(), RecipientID: input.RecipientID}, nil
}

func (f *fakeNotifier) List(context.Context, string, bool) ([]notification.Notification, error) {
	return nil, nil
}

func (f *fakeNotifier) Unread(context.Context, string) (*notification.UnreadCount, error) {
	return &notification.UnreadCount{}, nil
}

func (f *fakeNotifier) MarkRead(context.Context, string, string) (*notification.Notification, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkAllRead(context.Context, string) (*notification.MarkAllReadResult, error) {
	return &notification.MarkAllReadResult{}, nil
}

func (f *fakeNotifier) Subscribe(string) (<-chan sse.Event, func()) {
	ch := make(chan sse.Event)
	return ch, func() { close(ch) }
}

func (f *fakeNotifier) sentTo(recipientID string) []notification.CreateInput {
	var out []notification.CreateInput
	for _, n := range f.sent {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}
