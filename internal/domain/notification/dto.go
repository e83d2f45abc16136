package notification

type CreateInput struct {
	RecipientID string                 `json:"recipient_id"`
	Type        Type                   `json:"type"`
	Title       string                 `json:"title"`
	Message     string                 `json:"message"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
}

type UnreadCount struct {
	Count int `json:"count"`
}

type MarkAllReadResult struct {
	Updated int `json:"updated"`
}
