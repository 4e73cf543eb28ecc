package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-gemtrack/internal/auth"
	autherrors "go-gemtrack/internal/auth/errors"
	"go-gemtrack/internal/middleware"
	"go-gemtrack/internal/shared/apperror"
	"go-gemtrack/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuthService struct {
	registerFn func(ctx context.Context, req auth.RegisterRequest) (user.ProfileResponse, error)
	loginFn    func(ctx context.Context, email, password string) (auth.Session, error)
	getMeFn    func(ctx context.Context, userID string) (user.ProfileResponse, error)
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (user.ProfileResponse, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (auth.Session, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) GetMe(ctx context.Context, userID string) (user.ProfileResponse, error) {
	return f.getMeFn(ctx, userID)
}

func init() {
	gin.SetMode(gin.TestMode)
	apperror.Init()
}

var testCookie = auth.CookieConfig{Name: "session-token", Secure: true, MaxAge: 7 * 24 * time.Hour}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestHandler_Login(t *testing.T) {
	t.Run("sets strict http only cookie", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(_ context.Context, email, password string) (auth.Session, error) {
				assert.Equal(t, "owner@gem.house", email)
				return auth.Session{Token: "signed", ExpiresAt: time.Now().Add(time.Hour), User: user.ProfileResponse{ID: "u1"}}, nil
			},
		}
		h := auth.NewHandler(svc, testCookie, zap.NewNop())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login",
			jsonBody(t, auth.LoginRequest{Email: "owner@gem.house", Password: "secret123"}))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		res := w.Result()
		cookies := res.Cookies()
		require.Len(t, cookies, 1)
		ck := cookies[0]
		assert.Equal(t, "session-token", ck.Name)
		assert.Equal(t, "signed", ck.Value)
		assert.True(t, ck.HttpOnly)
		assert.True(t, ck.Secure)
		assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
		assert.Equal(t, "/", ck.Path)
		assert.Equal(t, 7*24*60*60, ck.MaxAge)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(context.Context, string, string) (auth.Session, error) {
				return auth.Session{}, autherrors.ErrWrongPassword
			},
		}
		h := auth.NewHandler(svc, testCookie, zap.NewNop())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login",
			jsonBody(t, auth.LoginRequest{Email: "owner@gem.house", Password: "bad"}))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("invalid body", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{}, testCookie, zap.NewNop())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"x"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Login(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Register(t *testing.T) {
	svc := &fakeAuthService{
		registerFn: func(_ context.Context, req auth.RegisterRequest) (user.ProfileResponse, error) {
			return user.ProfileResponse{ID: "u1", Email: req.Email}, nil
		},
	}
	h := auth.NewHandler(svc, testCookie, zap.NewNop())

	body := map[string]any{
		"name":    "Gem House", "email": "owner@gem.house", "password": "secret123",
		"phoneNo": "9999999999", "gstInNo": "24ABCDE1234F1Z5",
		"address": map[string]any{
			"line1":   "Varachha Road", "city": "Surat", "state": "Gujarat",
			"country": "India", "postalCode": "395006",
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/register", jsonBody(t, body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_Logout(t *testing.T) {
	h := auth.NewHandler(&fakeAuthService{}, testCookie, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)

	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestHandler_Me(t *testing.T) {
	svc := &fakeAuthService{
		getMeFn: func(_ context.Context, userID string) (user.ProfileResponse, error) {
			return user.ProfileResponse{ID: userID}, nil
		},
	}
	h := auth.NewHandler(svc, testCookie, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Set(middleware.ContextUserID, "u1")

	h.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
}
