package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobdesk/internal/delivery/http/validator"
	"jobdesk/internal/domain/entity"
	"jobdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockAuthUsecase is a testify mock for usecase.AuthUsecase.
type mockAuthUsecase struct{ mock.Mock }

func (m *mockAuthUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.AuthOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.AuthOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAuthUsecase) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.AuthOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAuthUsecase) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.AuthOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *mockAuthUsecase) LogoutAllDevices(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func newAuthTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns the session envelope", func(t *testing.T) {
		uc := new(mockAuthUsecase)
		h := NewAuthHandler(uc, testDiscardLogger())

		user := &entity.User{
			ID:       uuid.New(),
			Email:    "user@example.com",
			UserType: entity.UserTypeJobSeeker,
			IsActive: true,
		}
		uc.On("Login", mock.Anything, &usecase.LoginInput{Email: "user@example.com", Password: "secret123"}).
			Return(&usecase.AuthOutput{AccessToken: "access", RefreshToken: "refresh", User: user}, nil)

		c, rec := newAuthTestContext(t, `{"email":"user@example.com","password":"secret123"}`)

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `"access_token":"access"`)
		assert.Contains(t, body, `"refresh_token":"refresh"`)
		assert.Contains(t, body, `"email":"user@example.com"`)
		assert.NotContains(t, body, "password")
	})

	t.Run("missing fields report MISSING_FIELDS", func(t *testing.T) {
		h := NewAuthHandler(new(mockAuthUsecase), testDiscardLogger())

		c, rec := newAuthTestContext(t, `{"email":"user@example.com"}`)

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "MISSING_FIELDS")
	})

	t.Run("malformed email reports INVALID_FORMAT", func(t *testing.T) {
		h := NewAuthHandler(new(mockAuthUsecase), testDiscardLogger())

		c, rec := newAuthTestContext(t, `{"email":"not-an-email","password":"secret123"}`)

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_FORMAT")
	})
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("mismatched confirmation reports VALIDATION", func(t *testing.T) {
		h := NewAuthHandler(new(mockAuthUsecase), testDiscardLogger())

		c, rec := newAuthTestContext(t, `{"email":"new@example.com","password":"secret123","password_confirm":"different"}`)

		require.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION")
	})

	t.Run("creates the account and auto-logs in", func(t *testing.T) {
		uc := new(mockAuthUsecase)
		h := NewAuthHandler(uc, testDiscardLogger())

		user := &entity.User{ID: uuid.New(), Email: "new@example.com", UserType: entity.UserTypeJobSeeker}
		uc.On("Register", mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
			Return(&usecase.AuthOutput{AccessToken: "access", RefreshToken: "refresh", User: user}, nil)

		c, rec := newAuthTestContext(t, `{"email":"new@example.com","password":"secret123","password_confirm":"secret123"}`)

		require.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"access_token":"access"`)
	})
}

func TestAuthHandler_GoogleLogin(t *testing.T) {
	t.Run("adds name and picture to the envelope", func(t *testing.T) {
		uc := new(mockAuthUsecase)
		h := NewAuthHandler(uc, testDiscardLogger())

		user := &entity.User{
			ID:        uuid.New(),
			Email:     "federated@example.com",
			FirstName: "Fed",
			LastName:  "Erated",
			Picture:   "https://example.com/pic.png",
			UserType:  entity.UserTypeJobSeeker,
		}
		uc.On("GoogleLogin", mock.Anything, &usecase.GoogleLoginInput{Credential: "id-token"}).
			Return(&usecase.AuthOutput{AccessToken: "access", RefreshToken: "refresh", User: user}, nil)

		c, rec := newAuthTestContext(t, `{"credential":"id-token"}`)

		require.NoError(t, h.GoogleLogin(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `"name":"Fed Erated"`)
		assert.Contains(t, body, `"picture":"https://example.com/pic.png"`)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("acknowledges the logout", func(t *testing.T) {
		uc := new(mockAuthUsecase)
		h := NewAuthHandler(uc, testDiscardLogger())

		uc.On("Logout", mock.Anything, &usecase.LogoutInput{RefreshToken: "refresh"}).Return(nil)

		c, rec := newAuthTestContext(t, `{"refresh":"refresh"}`)

		require.NoError(t, h.Logout(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Successfully logged out")
	})

	t.Run("missing refresh reports MISSING_FIELDS", func(t *testing.T) {
		h := NewAuthHandler(new(mockAuthUsecase), testDiscardLogger())

		c, rec := newAuthTestContext(t, `{}`)

		require.NoError(t, h.Logout(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "MISSING_FIELDS")
	})
}
