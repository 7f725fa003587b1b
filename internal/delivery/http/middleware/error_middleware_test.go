package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "jobdesk/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newErrorTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Run("wrapped application errors keep their status and code", func(t *testing.T) {
		c, rec := newErrorTestContext()

		m.HandleHTTPError(errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed"), c)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "INVALID_CREDENTIALS")
		assert.Contains(t, body, `"success":false`)
	})

	t.Run("conflicts map to 409", func(t *testing.T) {
		c, rec := newErrorTestContext()

		m.HandleHTTPError(errors.Wrap(domainerrors.ErrEmailTaken, "registration failed"), c)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "EMAIL_TAKEN")
	})

	t.Run("unexpected errors become a generic 500", func(t *testing.T) {
		c, rec := newErrorTestContext()

		m.HandleHTTPError(errors.New("database exploded: password=hunter2"), c)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "INTERNAL_ERROR")
		assert.NotContains(t, body, "hunter2")
	})

	t.Run("echo errors keep their status", func(t *testing.T) {
		c, rec := newErrorTestContext()

		m.HandleHTTPError(echo.NewHTTPError(http.StatusNotFound, "Not Found"), c)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "HTTP_ERROR")
	})
}
