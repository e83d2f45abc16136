package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/qubix-crm/crm-backend-go/internal/domain/notification"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/sse"
)

// listLimit caps how many notifications a single listing returns.
const listLimit = 50

type NotificationService struct {
	repo notification.Repository
	hub  *sse.Hub
}

func NewNotificationService(repo notification.Repository, hub *sse.Hub) *NotificationService {
	return &NotificationService{
		repo: repo,
		hub:  hub,
	}
}

// Create persists the notification and then pushes it to the recipient's
// live sessions. The push is best-effort: a recipient with no open sessions
// simply picks the notification up from the list later.
func (s *NotificationService) Create(ctx context.Context, input *notification.CreateInput) (*notification.Notification, error) {
	switch input.Type {
	case notification.TypeTaskAssigned, notification.TypeTaskCompleted,
		notification.TypeTaskDeclined, notification.TypeTaskOverdue,
		notification.TypeLeaveUpdate:
	default:
		return nil, notification.ErrInvalidType
	}

	n := &notification.Notification{
		ID:          uuid.New().String(),
		RecipientID: input.RecipientID,
		Type:        input.Type,
		Channel:     notification.ChannelInApp,
		Title:       input.Title,
		Message:     input.Message,
		Payload:     input.Payload,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("persist notification: %w", err)
	}

	s.hub.Publish(n.RecipientID, sse.Event{
		EmployeeID: n.RecipientID,
		Event:      "notification",
		Data:       n,
	})
	slog.Debug("notification pushed",
		"notification_id", n.ID,
		"recipient_id", n.RecipientID,
		"sessions", s.hub.SessionCount(n.RecipientID),
	)

	return n, nil
}

func (s *NotificationService) List(ctx context.Context, recipientID string, unreadOnly bool) ([]notification.Notification, error) {
	return s.repo.ListByRecipient(ctx, recipientID, unreadOnly, listLimit)
}

func (s *NotificationService) Unread(ctx context.Context, recipientID string) (*notification.UnreadCount, error) {
	count, err := s.repo.UnreadCount(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return &notification.UnreadCount{Count: count}, nil
}

// MarkRead stamps one notification read. Marking a notification that does
// not exist or belongs to someone else is a silent no-op returning nil.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID string) (*notification.Notification, error) {
	return s.repo.MarkRead(ctx, recipientID, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID string) (*notification.MarkAllReadResult, error) {
	updated, err := s.repo.MarkAllRead(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return &notification.MarkAllReadResult{Updated: updated}, nil
}

func (s *NotificationService) Subscribe(recipientID string) (<-chan sse.Event, func()) {
	ch, cancel := s.hub.Subscribe(recipientID)
	return ch, cancel
}
