package handler

import (
	"github.com/labstack/echo/v4"

	"devconnect/internal/usecase"
	"devconnect/pkg/errors"
	"devconnect/pkg/response"
	"devconnect/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

func (h *ChatHandler) GetUserChats(c echo.Context) error {
	uid := getUserIDFromContext(c)
	params := utils.GetPaginationParams(c)

	chats, total, err := h.chatUseCase.GetUserChats(c.Request().Context(), uid, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, chats, total, params.Page, params.PageSize)
}

func (h *ChatHandler) CreateDirectChat(c echo.Context) error {
	var req struct {
		UserID string `json:"user_id" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := getUserIDFromContext(c)
	chat, err := h.chatUseCase.GetOrCreateDirectChat(c.Request().Context(), uid, req.UserID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) CreateGroupChat(c echo.Context) error {
	var req usecase.CreateGroupChatInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := getUserIDFromContext(c)
	chat, err := h.chatUseCase.CreateGroupChat(c.Request().Context(), uid, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, chat)
}

func (h *ChatHandler) AddParticipants(c echo.Context) error {
	chatID := c.Param("id")
	if chatID == "" {
		return response.Error(c, errors.BadRequest("Chat ID is required", nil))
	}

	var req struct {
		Participants []string `json:"participants" validate:"required,min=1"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := getUserIDFromContext(c)
	chat, err := h.chatUseCase.AddParticipants(c.Request().Context(), uid, chatID, req.Participants)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) GetChatMessages(c echo.Context) error {
	chatID := c.Param("id")
	if chatID == "" {
		return response.Error(c, errors.BadRequest("Chat ID is required", nil))
	}

	uid := getUserIDFromContext(c)
	params := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.GetChatMessages(c.Request().Context(), uid, chatID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, params.Page, params.PageSize)
}
