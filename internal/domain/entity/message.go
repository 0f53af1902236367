package entity

import "time"

const (
	MessageTypeText  = "text"
	MessageTypeCode  = "code"
	MessageTypeImage = "image"
	MessageTypeFile  = "file"
)

func IsValidMessageType(t string) bool {
	switch t {
	case MessageTypeText, MessageTypeCode, MessageTypeImage, MessageTypeFile:
		return true
	}
	return false
}

type CodeSnippet struct {
	Language    string `json:"language" firestore:"language"`
	Code        string `json:"code" firestore:"code"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`
}

type Message struct {
	ID          string       `json:"id" firestore:"id"`
	ChatID      string       `json:"chat_id" firestore:"chatId"`
	SenderID    string       `json:"sender_id" firestore:"senderId"`
	Content     string       `json:"content" firestore:"content"`
	Type        string       `json:"type" firestore:"type"` // "text", "code", "image", "file"
	CodeSnippet *CodeSnippet `json:"code_snippet,omitempty" firestore:"codeSnippet,omitempty"`
	FileURL     string       `json:"file_url,omitempty" firestore:"fileUrl,omitempty"`
	ReadBy      []string     `json:"read_by" firestore:"readBy"`

	// Seq is the chat-scoped insertion order, allocated atomically at append.
	Seq int64 `json:"seq" firestore:"seq"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

func (m *Message) IsReadBy(userID string) bool {
	for _, r := range m.ReadBy {
		if r == userID {
			return true
		}
	}
	return false
}
