package websocket

import (
	"encoding/json"
	"time"

	"devconnect/internal/domain/entity"
)

// Client-to-server event types
const (
	EventJoinChat        = "join_chat"
	EventLeaveChat       = "leave_chat"
	EventSendMessage     = "send_message"
	EventTypingStart     = "typing_start"
	EventTypingStop      = "typing_stop"
	EventMarkMessageRead = "mark_message_read"
	EventUserOnline      = "user_online"
)

// Server-to-client event types
const (
	EventNewMessage          = "new_message"
	EventMessageNotification = "message_notification"
	EventUserTyping          = "user_typing"
	EventMessageRead         = "message_read"
	EventUserStatus          = "user_status"
	EventError               = "error"
)

// Event is the inbound wire envelope.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// OutboundEvent is the outbound wire envelope.
type OutboundEvent struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func NewEvent(eventType string, data interface{}) OutboundEvent {
	return OutboundEvent{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

type JoinChatPayload struct {
	ChatID string `json:"chat_id"`
}

type SendMessagePayload struct {
	ChatID      string              `json:"chat_id"`
	Content     string              `json:"content"`
	MessageType string              `json:"message_type"`
	CodeSnippet *entity.CodeSnippet `json:"code_snippet,omitempty"`
	FileURL     string              `json:"file_url,omitempty"`
}

type MarkReadPayload struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
}

type TypingPayload struct {
	ChatID string `json:"chat_id"`
}

type NewMessagePayload struct {
	ChatID  string      `json:"chat_id"`
	Message interface{} `json:"message"`
}

type NotificationSender struct {
	Username string `json:"username"`
}

type NotificationMessage struct {
	Content string             `json:"content"`
	Sender  NotificationSender `json:"sender"`
}

type MessageNotificationPayload struct {
	ChatID  string              `json:"chat_id"`
	Message NotificationMessage `json:"message"`
}

type UserTypingPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	IsTyping bool   `json:"is_typing"`
}

type MessageReadPayload struct {
	MessageID string `json:"message_id"`
	ReadBy    string `json:"read_by"`
}

type UserStatusPayload struct {
	UserID string `json:"user_id"`
	Status string `json:"status"` // "online" or "offline"
}

type ErrorPayload struct {
	Message string `json:"message"`
}
