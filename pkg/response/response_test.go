package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	apperrors "devconnect/pkg/errors"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSuccessEnvelope(t *testing.T) {
	c, rec := newTestContext()

	err := Success(c, map[string]string{"hello": "world"})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"hello":"world"`)
}

func TestErrorMapsAppErrorStatus(t *testing.T) {
	c, rec := newTestContext()

	err := Error(c, apperrors.Forbidden("You are not a participant of this chat", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"FORBIDDEN"`)
	assert.Contains(t, rec.Body.String(), "not a participant")
}

func TestErrorHidesInternalDetails(t *testing.T) {
	c, rec := newTestContext()

	err := Error(c, assert.AnError)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "An unexpected error occurred")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestErrorTranslatesValidationErrors(t *testing.T) {
	c, rec := newTestContext()

	type input struct {
		Email string `validate:"required,email"`
	}
	verr := validator.New().Struct(input{})

	err := Error(c, verr)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"VALIDATION_ERROR"`)
	assert.Contains(t, rec.Body.String(), "email is required")
}

func TestPaginated(t *testing.T) {
	c, rec := newTestContext()

	err := Paginated(c, []string{"a", "b"}, 45, 2, 20)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":45`)
	assert.Contains(t, rec.Body.String(), `"totalPages":3`)
	assert.Contains(t, rec.Body.String(), `"page":2`)
}
