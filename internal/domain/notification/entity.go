package notification

import "time"

type Type string

const (
	TypeTaskAssigned  Type = "TASK_ASSIGNED"
	TypeTaskCompleted Type = "TASK_COMPLETED"
	TypeTaskDeclined  Type = "TASK_DECLINED"
	TypeTaskOverdue   Type = "TASK_OVERDUE"
	TypeLeaveUpdate   Type = "LEAVE_UPDATE"
)

type Channel string

const (
	ChannelInApp Channel = "IN_APP"
	ChannelEmail Channel = "EMAIL"
)

type Notification struct {
	ID          string                 `json:"id"`
	RecipientID string                 `json:"recipient_id"`
	Type        Type                   `json:"type"`
	Channel     Channel                `json:"channel"`
	Title       string                 `json:"title"`
	Message     string                 `json:"message"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	ReadAt      *time.Time             `json:"read_at,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
