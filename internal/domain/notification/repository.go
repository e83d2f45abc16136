package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error

	// ListByRecipient returns the recipient's notifications, newest first,
	// capped at limit. unreadOnly restricts the listing to unread rows.
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]Notification, error)

	UnreadCount(ctx context.Context, recipientID string) (int, error)

	// MarkRead stamps the notification read and returns it. It returns
	// (nil, nil) when the notification does not exist or belongs to another
	// recipient; already-read notifications are returned unchanged.
	MarkRead(ctx context.Context, recipientID, notificationID string) (*Notification, error)

	// MarkAllRead stamps every unread notification for the recipient and
	// returns how many were updated.
	MarkAllRead(ctx context.Context, recipientID string) (int, error)
}
