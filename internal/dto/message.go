package dto

// SendMessageRequest posts to a booking thread.
type SendMessageRequest struct {
	Body string `json:"body" validate:"required,max=4000"`
}
