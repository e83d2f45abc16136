package notification

import (
	"context"

	"github.com/qubix-crm/crm-backend-go/internal/pkg/sse"
)

type Service interface {
	// Create persists the notification and pushes it to the recipient's
	// live sessions. Push failures never fail the create.
	Create(ctx context.Context, input *CreateInput) (*Notification, error)

	List(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error)
	Unread(ctx context.Context, recipientID string) (*UnreadCount, error)
	MarkRead(ctx context.Context, recipientID, notificationID string) (*Notification, error)
	MarkAllRead(ctx context.Context, recipientID string) (*MarkAllReadResult, error)

	// Subscribe registers a live session for the recipient. The returned
	// function must be called to release the session.
	Subscribe(recipientID string) (<-chan sse.Event, func())
}
