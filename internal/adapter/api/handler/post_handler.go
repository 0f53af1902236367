package handler

import (
	"github.com/labstack/echo/v4"

	"devconnect/internal/usecase"
	"devconnect/pkg/errors"
	"devconnect/pkg/response"
	"devconnect/pkg/utils"
)

type PostHandler struct {
	postUseCase *usecase.PostUseCase
}

func NewPostHandler(postUseCase *usecase.PostUseCase) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
	}
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	var req usecase.CreatePostInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := getUserIDFromContext(c)
	post, err := h.postUseCase.CreatePost(c.Request().Context(), uid, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, post)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	postID := c.Param("id")
	if postID == "" {
		return response.Error(c, errors.BadRequest("Post ID is required", nil))
	}

	post, err := h.postUseCase.GetPost(c.Request().Context(), postID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, post)
}

func (h *PostHandler) ListPosts(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	posts, total, err := h.postUseCase.ListPosts(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, posts, total, params.Page, params.PageSize)
}

func (h *PostHandler) UpdatePost(c echo.Context) error {
	postID := c.Param("id")
	if postID == "" {
		return response.Error(c, errors.BadRequest("Post ID is required", nil))
	}

	var req usecase.UpdatePostInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := getUserIDFromContext(c)
	post, err := h.postUseCase.UpdatePost(c.Request().Context(), uid, postID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, post)
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	postID := c.Param("id")
	if postID == "" {
		return response.Error(c, errors.BadRequest("Post ID is required", nil))
	}

	uid := getUserIDFromContext(c)
	if err := h.postUseCase.DeletePost(c.Request().Context(), uid, postID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Post deleted"})
}

func (h *PostHandler) AddComment(c echo.Context) error {
	postID := c.Param("id")
	if postID == "" {
		return response.Error(c, errors.BadRequest("Post ID is required", nil))
	}

	var req usecase.AddCommentInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := getUserIDFromContext(c)
	comment, err := h.postUseCase.AddComment(c.Request().Context(), uid, postID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, comment)
}

func (h *PostHandler) ToggleLike(c echo.Context) error {
	postID := c.Param("id")
	if postID == "" {
		return response.Error(c, errors.BadRequest("Post ID is required", nil))
	}

	uid := getUserIDFromContext(c)
	liked, err := h.postUseCase.ToggleLike(c.Request().Context(), uid, postID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"liked": liked})
}
