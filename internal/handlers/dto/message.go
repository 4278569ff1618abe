package dto

import (
	"github.com/google/uuid"
	"time"
)

// SendMessageRequest - payload события send-message
type SendMessageRequest struct {
	Message string `json:"message"`
}

// MessageResponse - сообщение чата в событии new-message
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryMessage - элемент события chat-history
type HistoryMessage struct {
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// UserEvent - payload событий user-joined / user-left
type UserEvent struct {
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// TypingEvent - payload событий user-typing / user-stop-typing
type TypingEvent struct {
	Username string `json:"username"`
}

// GroupClosed - payload события group-closed
type GroupClosed struct {
	Message string `json:"message"`
}
