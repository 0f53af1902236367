package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"devconnect/internal/domain/entity"
	"devconnect/internal/domain/repository"
	"devconnect/internal/infrastructure/ratelimit"
	"devconnect/internal/infrastructure/websocket"
	"devconnect/pkg/errors"
	"devconnect/pkg/logger"
)

// notificationPreviewLimit caps the message body carried inside a
// message_notification event.
const notificationPreviewLimit = 100

type ChatUseCase struct {
	chatRepo  repository.ChatRepository
	userRepo  repository.UserRepository
	wsManager *websocket.Manager
	limiter   *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	wsManager *websocket.Manager,
	limiter *ratelimit.RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:  chatRepo,
		userRepo:  userRepo,
		wsManager: wsManager,
		limiter:   limiter,
	}
}

// ChatResponse is a chat hydrated with its participants' public profiles.
type ChatResponse struct {
	*entity.Chat
	Members []*entity.User `json:"members"`
}

// MessageResponse is a message hydrated with the sender's public profile.
type MessageResponse struct {
	*entity.Message
	Sender *entity.User `json:"sender"`
}

type CreateGroupChatInput struct {
	GroupName    string   `json:"group_name" validate:"required,min=1,max=100"`
	Participants []string `json:"participants" validate:"required,min=1"`
}

// GetOrCreateDirectChat returns the unique direct chat between the two
// users, creating it on first contact.
func (uc *ChatUseCase) GetOrCreateDirectChat(ctx context.Context, userID, otherUserID string) (*ChatResponse, error) {
	if userID == otherUserID {
		return nil, errors.BadRequest("Cannot start a chat with yourself", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, otherUserID); err != nil {
		return nil, err
	}

	chat, err := uc.chatRepo.FindDirectChat(ctx, userID, otherUserID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	if chat == nil {
		if allowed, _ := uc.limiter.Allow(userID, "create_chat"); !allowed {
			return nil, errors.TooManyRequests("Too many chats created, slow down")
		}

		now := time.Now()
		chat = &entity.Chat{
			ID:           uuid.New().String(),
			Participants: []string{userID, otherUserID},
			IsGroupChat:  false,
			PairKey:      entity.DirectPairKey(userID, otherUserID),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.chatRepo.Create(ctx, chat); err != nil {
			return nil, err
		}
		logger.Info("Direct chat %s created between %s and %s", chat.ID, userID, otherUserID)
	}

	return uc.hydrateChat(ctx, chat)
}

func (uc *ChatUseCase) CreateGroupChat(ctx context.Context, userID string, input CreateGroupChatInput) (*ChatResponse, error) {
	if allowed, _ := uc.limiter.Allow(userID, "create_chat"); !allowed {
		return nil, errors.TooManyRequests("Too many chats created, slow down")
	}

	participants := []string{userID}
	for _, p := range input.Participants {
		if p == userID || containsString(participants, p) {
			continue
		}
		if _, err := uc.userRepo.GetByID(ctx, p); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	if len(participants) < 2 {
		return nil, errors.BadRequest("Group chat needs at least one other participant", nil)
	}

	now := time.Now()
	chat := &entity.Chat{
		ID:           uuid.New().String(),
		Participants: participants,
		IsGroupChat:  true,
		GroupName:    input.GroupName,
		GroupAdmin:   userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}
	logger.Info("Group chat %s (%s) created by %s", chat.ID, chat.GroupName, userID)

	return uc.hydrateChat(ctx, chat)
}

// AddParticipants lets the group admin add users to a group chat.
func (uc *ChatUseCase) AddParticipants(ctx context.Context, userID, chatID string, newParticipants []string) (*ChatResponse, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.IsGroupChat {
		return nil, errors.BadRequest("Cannot add participants to a direct chat", nil)
	}
	if chat.GroupAdmin != userID {
		return nil, errors.Forbidden("Only the group admin can add participants", nil)
	}

	for _, p := range newParticipants {
		if chat.HasParticipant(p) {
			continue
		}
		if _, err := uc.userRepo.GetByID(ctx, p); err != nil {
			return nil, err
		}
		chat.Participants = append(chat.Participants, p)
	}

	chat.UpdatedAt = time.Now()
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		return nil, err
	}

	return uc.hydrateChat(ctx, chat)
}

func (uc *ChatUseCase) GetUserChats(ctx context.Context, userID string, limit, offset int) ([]*ChatResponse, int64, error) {
	chats, total, err := uc.chatRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*ChatResponse, 0, len(chats))
	for _, chat := range chats {
		resp, err := uc.hydrateChat(ctx, chat)
		if err != nil {
			logger.Warn("Skipping chat %s with unresolvable members: %v", chat.ID, err)
			continue
		}
		responses = append(responses, resp)
	}
	return responses, total, nil
}

// GetChatMessages returns one page of history in chronological order. Pages
// are counted from the newest message backwards.
func (uc *ChatUseCase) GetChatMessages(ctx context.Context, userID, chatID string, limit, offset int) ([]*MessageResponse, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}
	if !chat.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("You are not a participant of this chat", nil)
	}

	messages, total, err := uc.chatRepo.GetMessagesByChat(ctx, chatID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	// Storage hands back newest-first pages; flip each page so clients
	// render oldest to newest.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	senders := make(map[string]*entity.User)
	responses := make([]*MessageResponse, 0, len(messages))
	for _, msg := range messages {
		sender, ok := senders[msg.SenderID]
		if !ok {
			sender, err = uc.userRepo.GetByID(ctx, msg.SenderID)
			if err != nil {
				sender = &entity.User{ID: msg.SenderID}
			} else {
				sender = sender.PublicProfile()
			}
			senders[msg.SenderID] = sender
		}
		responses = append(responses, &MessageResponse{Message: msg, Sender: sender})
	}
	return responses, total, nil
}

// CanAccessChat reports whether userID may join the chat's room.
func (uc *ChatUseCase) CanAccessChat(ctx context.Context, userID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant of this chat", nil)
	}
	return nil
}

// HandleSendMessage persists an inbound chat message and fans it out. The
// full message goes to the chat room; every other participant additionally
// gets a truncated notification on their private room, whether or not they
// are currently in the chat room.
func (uc *ChatUseCase) HandleSendMessage(ctx context.Context, client *websocket.Client, payload websocket.SendMessagePayload) {
	if allowed, wait := uc.limiter.Allow(client.UserID, "send_message"); !allowed {
		logger.Warn("Rate limited send_message from %s, retry in %s", client.UserID, wait)
		uc.wsManager.SendError(client, "You are sending messages too fast")
		return
	}

	if payload.ChatID == "" {
		uc.wsManager.SendError(client, "Missing chat_id")
		return
	}

	messageType := payload.MessageType
	if messageType == "" {
		messageType = entity.MessageTypeText
	}
	if !entity.IsValidMessageType(messageType) {
		uc.wsManager.SendError(client, "Invalid message type")
		return
	}
	if payload.Content == "" && payload.CodeSnippet == nil && payload.FileURL == "" {
		uc.wsManager.SendError(client, "Message is empty")
		return
	}

	chat, err := uc.chatRepo.GetByID(ctx, payload.ChatID)
	if err != nil {
		uc.wsManager.SendError(client, errors.Message(err, "Chat not found"))
		return
	}
	if !chat.HasParticipant(client.UserID) {
		uc.wsManager.SendError(client, "You are not a participant of this chat")
		return
	}

	sender, err := uc.userRepo.GetByID(ctx, client.UserID)
	if err != nil {
		uc.wsManager.SendError(client, errors.Message(err, "Sender not found"))
		return
	}

	message := &entity.Message{
		ID:          uuid.New().String(),
		ChatID:      chat.ID,
		SenderID:    client.UserID,
		Content:     payload.Content,
		Type:        messageType,
		CodeSnippet: payload.CodeSnippet,
		FileURL:     payload.FileURL,
		ReadBy:      []string{client.UserID},
		CreatedAt:   time.Now(),
	}

	if err := uc.chatRepo.AppendMessage(ctx, message); err != nil {
		logger.Error("Failed to append message to chat %s: %v", chat.ID, err)
		uc.wsManager.SendError(client, errors.Message(err, "Failed to send message"))
		return
	}

	response := &MessageResponse{Message: message, Sender: sender.PublicProfile()}

	uc.wsManager.BroadcastToRoom(chat.ID, websocket.NewEvent(websocket.EventNewMessage, websocket.NewMessagePayload{
		ChatID:  chat.ID,
		Message: response,
	}))

	notification := websocket.NewEvent(websocket.EventMessageNotification, websocket.MessageNotificationPayload{
		ChatID: chat.ID,
		Message: websocket.NotificationMessage{
			Content: truncateContent(message.Content, notificationPreviewLimit),
			Sender:  websocket.NotificationSender{Username: sender.Username},
		},
	})
	for _, participant := range chat.Participants {
		if participant == client.UserID {
			continue
		}
		uc.wsManager.SendToUser(participant, notification)
	}
}

// HandleMarkMessageRead records a read receipt and notifies the room. A
// repeat receipt from the same user changes nothing and emits nothing.
func (uc *ChatUseCase) HandleMarkMessageRead(ctx context.Context, client *websocket.Client, payload websocket.MarkReadPayload) {
	chat, err := uc.chatRepo.GetByID(ctx, payload.ChatID)
	if err != nil {
		uc.wsManager.SendError(client, errors.Message(err, "Chat not found"))
		return
	}
	if !chat.HasParticipant(client.UserID) {
		uc.wsManager.SendError(client, "You are not a participant of this chat")
		return
	}

	added, err := uc.chatRepo.AddMessageReader(ctx, payload.ChatID, payload.MessageID, client.UserID)
	if err != nil {
		uc.wsManager.SendError(client, errors.Message(err, "Failed to mark message as read"))
		return
	}
	if !added {
		return
	}

	uc.wsManager.BroadcastToRoomExcept(payload.ChatID, client.UserID, websocket.NewEvent(websocket.EventMessageRead, websocket.MessageReadPayload{
		MessageID: payload.MessageID,
		ReadBy:    client.UserID,
	}))
}

// HandleTyping relays a typing indicator to everyone else in the room. It is
// fire-and-forget and touches no storage.
func (uc *ChatUseCase) HandleTyping(ctx context.Context, client *websocket.Client, chatID string, isTyping bool) {
	if allowed, _ := uc.limiter.Allow(client.UserID, "typing"); !allowed {
		return
	}

	uc.wsManager.BroadcastToRoomExcept(chatID, client.UserID, websocket.NewEvent(websocket.EventUserTyping, websocket.UserTypingPayload{
		UserID:   client.UserID,
		Username: client.Username,
		IsTyping: isTyping,
	}))
}

func (uc *ChatUseCase) hydrateChat(ctx context.Context, chat *entity.Chat) (*ChatResponse, error) {
	members := make([]*entity.User, 0, len(chat.Participants))
	for _, p := range chat.Participants {
		user, err := uc.userRepo.GetByID(ctx, p)
		if err != nil {
			members = append(members, &entity.User{ID: p})
			continue
		}
		members = append(members, user.PublicProfile())
	}
	return &ChatResponse{Chat: chat, Members: members}, nil
}

func truncateContent(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit])
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
