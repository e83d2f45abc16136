package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/qubix-crm/crm-backend-go/internal/domain/notification"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/database"
)

type NotificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `
	id, recipient_id, type, channel, title, message, payload, read_at, created_at
`

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var n notification.Notification
	var payload []byte
	err := row.Scan(
		&n.ID, &n.RecipientID, &n.Type, &n.Channel, &n.Title, &n.Message,
		&payload, &n.ReadAt, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &n.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal notification payload: %w", err)
		}
	}
	return &n, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	querier := GetQuerier(ctx, r.db)

	var payload []byte
	if n.Payload != nil {
		data, err := json.Marshal(n.Payload)
		if err != nil {
			return fmt.Errorf("marshal notification payload: %w", err)
		}
		payload = data
	}

	query := `
		INSERT INTO notifications (
			id, recipient_id, type, channel, title, message, payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := querier.Exec(ctx, query,
		n.ID, n.RecipientID, n.Type, n.Channel, n.Title, n.Message, payload, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]notification.Notification, error) {
	querier := GetQuerier(ctx, r.db)

	readFilter := ""
	if unreadOnly {
		readFilter = "AND read_at IS NULL"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM notifications
		WHERE recipient_id = $1 %s
		ORDER BY created_at DESC
		LIMIT $2
	`, notificationColumns, readFilter)

	rows, err := querier.Query(ctx, query, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	return notifications, nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) FROM notifications
		WHERE recipient_id = $1 AND read_at IS NULL
	`

	var count int
	if err := querier.QueryRow(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead stamps the notification read only when it belongs to the
// recipient. Foreign or missing notifications yield (nil, nil) so callers
// can treat the operation as a silent no-op.
func (r *NotificationRepository) MarkRead(ctx context.Context, recipientID, notificationID string) (*notification.Notification, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE notifications
		SET read_at = COALESCE(read_at, NOW())
		WHERE id = $1 AND recipient_id = $2
		RETURNING %s
	`, notificationColumns)

	n, err := scanNotification(querier.QueryRow(ctx, query, notificationID, recipientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("mark notification read: %w", err)
	}

	return n, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET read_at = NOW()
		WHERE recipient_id = $1 AND read_at IS NULL
	`

	tag, err := querier.Exec(ctx, query, recipientID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
