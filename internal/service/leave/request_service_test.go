package leave

import (
	"context"
	"testing"
	"time"

	"github.com/qubix-crm/crm-backend-go/internal/domain/employee"
	"github.com/qubix-crm/crm-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestFixture() (*RequestService, *fakeRequestRepo, *QuotaService, *fakeNotifier) {
	quotaRepo := newFakeQuotaRepo()
	quotas := NewQuotaService(quotaRepo, nil)
	requests := newFakeRequestRepo()
	notifier := &fakeNotifier{}
	employees := newFakeEmployeeRepo(
		&employee.Employee{ID: "admin-1", FirstName: "Ava", LastName: "Stone", Role: employee.RoleAdmin},
		&employee.Employee{ID: "emp-1", FirstName: "Finn", LastName: "Parker", Role: employee.RoleJunior},
	)
	svc := NewRequestService(nil, requests, quotas, employees, notifier)
	return svc, requests, quotas, notifier
}

func TestSubmitFirstSickAutoApproves(t *testing.T) {
	svc, _, quotas, notifier := newRequestFixture()
	now := time.Date(2024, 12, 4, 8, 30, 0, 0, time.UTC)

	req, err := svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategorySick,
		StartDate: "2024-12-04",
		EndDate:   "2024-12-05",
		Reason:    "flu",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, leave.StatusAutoApproved, req.Status)
	assert.Equal(t, 2, req.Days)
	require.NotNil(t, req.DecidedAt)

	q, err := quotas.Current(context.Background(), "emp-1", leave.CategorySick, now)
	require.NoError(t, err)
	assert.Equal(t, 2, q.Used)

	sent := notifier.sentTo("emp-1")
	require.Len(t, sent, 1)
	assert.Equal(t, "Sick Leave Auto-Approved", sent[0].Title)
}

func TestSubmitSecondSickStaysPendingAndNotifiesAdmins(t *testing.T) {
	svc, _, _, notifier := newRequestFixture()
	now := time.Date(2024, 12, 4, 8, 30, 0, 0, time.UTC)

	_, err := svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategorySick,
		StartDate: "2024-12-04",
		EndDate:   "2024-12-04",
	}, now)
	require.NoError(t, err)

	// One sick day remains, but auto-approval only covers the first request
	// of the month.
	req, err := svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategorySick,
		StartDate: "2024-12-10",
		EndDate:   "2024-12-10",
	}, now.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, req.Status)
	assert.Nil(t, req.DecidedAt)

	adminMail := notifier.sentTo("admin-1")
	require.Len(t, adminMail, 1)
	assert.Equal(t, "New Sick Leave Request", adminMail[0].Title)
	assert.Contains(t, adminMail[0].Message, "Finn Parker")
}

func TestSubmitVacationBlocksWhenQuotaShort(t *testing.T) {
	svc, _, _, _ := newRequestFixture()
	now := time.Date(2024, 12, 2, 9, 0, 0, 0, time.UTC)

	_, err := svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategoryVacation,
		StartDate: "2024-12-09",
		EndDate:   "2024-12-14", // 6 inclusive days against a 5-day quarter
	}, now)
	assert.ErrorIs(t, err, leave.ErrQuotaExceeded)
}

func TestSubmitVacationStaysPendingWithoutConsumingQuota(t *testing.T) {
	svc, _, quotas, notifier := newRequestFixture()
	now := time.Date(2024, 12, 2, 9, 0, 0, 0, time.UTC)

	req, err := svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategoryVacation,
		StartDate: "2024-12-09",
		EndDate:   "2024-12-11",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, req.Status)

	q, err := quotas.Current(context.Background(), "emp-1", leave.CategoryVacation, now)
	require.NoError(t, err)
	assert.Equal(t, 0, q.Used, "quota spends at approval, not submission")

	assert.Empty(t, notifier.sent, "vacation submission sends no notification")
}

func TestSubmitRejectsBadInput(t *testing.T) {
	svc, _, _, _ := newRequestFixture()
	now := time.Now()

	_, err := svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategorySick,
		StartDate: "2024-12-05",
		EndDate:   "2024-12-04",
	}, now)
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

	_, err = svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.Category("HOLIDAY"),
		StartDate: "2024-12-04",
		EndDate:   "2024-12-05",
	}, now)
	assert.Error(t, err)
}

func TestApproveVacationConsumesQuotaAndNotifies(t *testing.T) {
	svc, _, quotas, notifier := newRequestFixture()
	now := time.Date(2024, 12, 2, 9, 0, 0, 0, time.UTC)

	req, err := svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategoryVacation,
		StartDate: "2024-12-09",
		EndDate:   "2024-12-11",
	}, now)
	require.NoError(t, err)

	decided, err := svc.Approve(context.Background(), "admin-1", req.ID, nil, now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, decided.Status)
	require.NotNil(t, decided.ReviewerID)
	assert.Equal(t, "admin-1", *decided.ReviewerID)

	q, err := quotas.Current(context.Background(), "emp-1", leave.CategoryVacation, now)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Used)

	sent := notifier.sentTo("emp-1")
	require.Len(t, sent, 1)
	assert.Equal(t, "Leave Request Approved", sent[0].Title)
}

func TestApproveVacationRechecksQuotaAtDecisionTime(t *testing.T) {
	svc, _, quotas, _ := newRequestFixture()
	now := time.Date(2024, 12, 2, 9, 0, 0, 0, time.UTC)

	req, err := svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategoryVacation,
		StartDate: "2024-12-09",
		EndDate:   "2024-12-12", // 4 days, fits at submission
	}, now)
	require.NoError(t, err)

	// Quota drains between submission and review.
	_, err = quotas.Consume(context.Background(), "emp-1", leave.CategoryVacation, 3, now)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), "admin-1", req.ID, nil, now.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, leave.ErrQuotaExceeded)
}

func TestApproveSickAllowedPastQuota(t *testing.T) {
	svc, _, quotas, _ := newRequestFixture()
	now := time.Date(2024, 12, 2, 9, 0, 0, 0, time.UTC)

	// First sick request auto-approves and spends the whole allowance.
	_, err := svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategorySick,
		StartDate: "2024-12-02",
		EndDate:   "2024-12-03",
	}, now)
	require.NoError(t, err)

	req, err := svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategorySick,
		StartDate: "2024-12-09",
		EndDate:   "2024-12-09",
	}, now.AddDate(0, 0, 5))
	require.NoError(t, err)
	require.Equal(t, leave.StatusPending, req.Status)

	decided, err := svc.Approve(context.Background(), "admin-1", req.ID, nil, now.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, decided.Status)

	q, err := quotas.Current(context.Background(), "emp-1", leave.CategorySick, now)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Used)
	assert.Equal(t, 0, q.Remaining())
}

func TestApproveTwiceFails(t *testing.T) {
	svc, _, _, _ := newRequestFixture()
	now := time.Date(2024, 12, 2, 9, 0, 0, 0, time.UTC)

	req, err := svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategoryVacation,
		StartDate: "2024-12-09",
		EndDate:   "2024-12-09",
	}, now)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), "admin-1", req.ID, nil, now)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), "admin-1", req.ID, nil, now)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)

	_, err = svc.Reject(context.Background(), "admin-1", req.ID, &leave.ReviewRequestInput{Comment: "no"}, now)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestRejectRequiresComment(t *testing.T) {
	svc, _, _, notifier := newRequestFixture()
	now := time.Date(2024, 12, 2, 9, 0, 0, 0, time.UTC)

	req, err := svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategoryVacation,
		StartDate: "2024-12-09",
		EndDate:   "2024-12-09",
	}, now)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), "admin-1", req.ID, &leave.ReviewRequestInput{Comment: "  "}, now)
	assert.ErrorIs(t, err, leave.ErrCommentRequired)

	decided, err := svc.Reject(context.Background(), "admin-1", req.ID, &leave.ReviewRequestInput{Comment: "team is at capacity"}, now)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, decided.Status)
	require.NotNil(t, decided.ReviewNote)
	assert.Equal(t, "team is at capacity", *decided.ReviewNote)

	sent := notifier.sentTo("emp-1")
	require.Len(t, sent, 1)
	assert.Equal(t, "Leave Request Rejected", sent[0].Title)
}

func TestRejectDoesNotConsumeQuota(t *testing.T) {
	svc, _, quotas, _ := newRequestFixture()
	now := time.Date(2024, 12, 2, 9, 0, 0, 0, time.UTC)

	req, err := svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategoryVacation,
		StartDate: "2024-12-09",
		EndDate:   "2024-12-11",
	}, now)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), "admin-1", req.ID, &leave.ReviewRequestInput{Comment: "denied"}, now)
	require.NoError(t, err)

	q, err := quotas.Current(context.Background(), "emp-1", leave.CategoryVacation, now)
	require.NoError(t, err)
	assert.Equal(t, 0, q.Used)
}

func TestMyRequestsAndAllRequests(t *testing.T) {
	svc, _, _, _ := newRequestFixture()
	now := time.Date(2024, 12, 2, 9, 0, 0, 0, time.UTC)

	first, err := svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategorySick,
		StartDate: "2024-12-02",
		EndDate:   "2024-12-02",
	}, now)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "emp-1", &leave.SubmitRequestInput{
		Category:  leave.CategoryVacation,
		StartDate: "2024-12-09",
		EndDate:   "2024-12-09",
	}, now)
	require.NoError(t, err)

	mine, err := svc.MyRequests(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	pending := leave.StatusPending
	filtered, err := svc.AllRequests(context.Background(), &pending)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.NotEqual(t, first.ID, filtered[0].ID)
}
