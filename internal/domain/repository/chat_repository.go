package repository

import (
	"context"

	"devconnect/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	FindDirectChat(ctx context.Context, userID1, userID2 string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)
	Update(ctx context.Context, chat *entity.Chat) error

	// AppendMessage persists the message and advances the chat's sequence
	// counter and last-message pointer in a single atomic operation.
	AppendMessage(ctx context.Context, message *entity.Message) error
	GetMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)
	GetMessageByID(ctx context.Context, chatID, messageID string) (*entity.Message, error)

	// AddMessageReader records userID in the message's readBy set. Returns
	// false when the user had already read the message (no write performed).
	AddMessageReader(ctx context.Context, chatID, messageID, userID string) (bool, error)
}
