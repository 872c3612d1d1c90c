package login

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/billing-notifier/internal/config"
	"github.com/magabrotheeeer/billing-notifier/internal/http/response"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/jwt"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/password"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestHandler(t *testing.T) *Handler {
	hash, err := password.GetHash("password123")
	require.NoError(t, err)

	admin := config.Admin{AdminUser: "admin", AdminPasswordHash: hash}
	maker := jwt.NewMaker("test-secret", time.Hour)
	return New(newNoopLogger(), admin, maker)
}

func doLogin(t *testing.T, handler *Handler, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	if s, ok := body.(string); ok {
		raw = []byte(s)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestLoginHandler_Success(t *testing.T) {
	handler := newTestHandler(t)

	rr := doLogin(t, handler, Request{Username: "admin", Password: "password123"})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, response.StatusOK, resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
}

func TestLoginHandler_InvalidJSON(t *testing.T) {
	handler := newTestHandler(t)

	rr := doLogin(t, handler, "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginHandler_MissingPassword(t *testing.T) {
	handler := newTestHandler(t)

	rr := doLogin(t, handler, Request{Username: "admin"})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "field Password is a required field")
}

func TestLoginHandler_WrongUser(t *testing.T) {
	handler := newTestHandler(t)

	rr := doLogin(t, handler, Request{Username: "intruder", Password: "password123"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	handler := newTestHandler(t)

	rr := doLogin(t, handler, Request{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
