package notification

import (
	"context"
	"testing"
	"time"

	"github.com/qubix-crm/crm-backend-go/internal/domain/notification"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	notifications []*notification.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	cp := *n
	f.notifications = append(f.notifications, &cp)
	return nil
}

func (f *fakeNotificationRepo) ListByRecipient(_ context.Context, recipientID string, unreadOnly bool, limit int) ([]notification.Notification, error) {
	var out []notification.Notification
	for i := len(f.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if f.notifications[i].RecipientID != recipientID {
			continue
		}
		if unreadOnly && f.notifications[i].ReadAt != nil {
			continue
		}
		out = append(out, *f.notifications[i])
	}
	return out, nil
}

func (f *fakeNotificationRepo) UnreadCount(_ context.Context, recipientID string) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && n.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, recipientID, notificationID string) (*notification.Notification, error) {
	for _, n := range f.notifications {
		if n.ID == notificationID && n.RecipientID == recipientID {
			if n.ReadAt == nil {
				now := time.Now()
				n.ReadAt = &now
			}
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID string) (int, error) {
	now := time.Now()
	updated := 0
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && n.ReadAt == nil {
			n.ReadAt = &now
			updated++
		}
	}
	return updated, nil
}

func newService() (*NotificationService, *fakeNotificationRepo) {
	repo := &fakeNotificationRepo{}
	return NewNotificationService(repo, sse.NewHub()), repo
}

func leaveUpdate(recipientID, title string) *notification.CreateInput {
	return &notification.CreateInput{
		RecipientID: recipientID,
		Type:        notification.TypeLeaveUpdate,
		Title:       title,
		Message:     "message",
	}
}

func TestCreatePersistsAndPushes(t *testing.T) {
	svc, repo := newService()

	ch, cancel := svc.Subscribe("emp-1")
	defer cancel()

	created, err := svc.Create(context.Background(), &notification.CreateInput{
		RecipientID: "emp-1",
		Type:        notification.TypeLeaveUpdate,
		Title:       "Leave Request Approved",
		Message:     "Your vacation leave request (3 days) has been approved",
		Payload:     map[string]interface{}{"request_id": "req-1"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, notification.ChannelInApp, created.Channel)
	assert.Nil(t, created.ReadAt)
	require.Len(t, repo.notifications, 1)

	select {
	case event := <-ch:
		assert.Equal(t, "notification", event.Event)
		pushed, ok := event.Data.(*notification.Notification)
		require.True(t, ok)
		assert.Equal(t, created.ID, pushed.ID)
	case <-time.After(time.Second):
		t.Fatal("expected a pushed event")
	}
}

func TestCreateSucceedsWithoutSubscribers(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Create(context.Background(), leaveUpdate("emp-1", "t"))
	require.NoError(t, err)
	assert.Len(t, repo.notifications, 1)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), &notification.CreateInput{
		RecipientID: "emp-1",
		Type:        notification.Type("SPAM"),
		Title:       "t",
	})
	assert.ErrorIs(t, err, notification.ErrInvalidType)
}

func TestListCapsAtFifty(t *testing.T) {
	svc, _ := newService()

	for i := 0; i < 60; i++ {
		_, err := svc.Create(context.Background(), leaveUpdate("emp-1", "t"))
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), leaveUpdate("emp-2", "other"))
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "emp-1", false)
	require.NoError(t, err)
	assert.Len(t, list, 50)
}

func TestListUnreadOnly(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), leaveUpdate("emp-1", "read me"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), leaveUpdate("emp-1", "still unread"))
	require.NoError(t, err)
	_, err = svc.MarkRead(context.Background(), "emp-1", created.ID)
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "emp-1", true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "still unread", list[0].Title)
}

func TestMarkReadOwnershipNoOp(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), leaveUpdate("emp-1", "t"))
	require.NoError(t, err)

	// Someone else's notification: silent no-op.
	n, err := svc.MarkRead(context.Background(), "emp-2", created.ID)
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = svc.MarkRead(context.Background(), "emp-1", created.ID)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.NotNil(t, n.ReadAt)

	// Marking again keeps the original timestamp.
	again, err := svc.MarkRead(context.Background(), "emp-1", created.ID)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, n.ReadAt, again.ReadAt)
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	svc, _ := newService()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), leaveUpdate("emp-1", "t"))
		require.NoError(t, err)
	}
	created, err := svc.Create(context.Background(), leaveUpdate("emp-1", "t"))
	require.NoError(t, err)
	_, err = svc.MarkRead(context.Background(), "emp-1", created.ID)
	require.NoError(t, err)

	unread, err := svc.Unread(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 3, unread.Count)

	result, err := svc.MarkAllRead(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Updated, "only unread notifications are touched")

	unread, err = svc.Unread(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 0, unread.Count)
}
