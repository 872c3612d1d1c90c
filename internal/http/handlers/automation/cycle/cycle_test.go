package cycle

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/billing-notifier/internal/http/response"
	"github.com/magabrotheeeer/billing-notifier/internal/models"
	"github.com/magabrotheeeer/billing-notifier/internal/services/automation"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) RunCycle(ctx context.Context) (models.CycleResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.CycleResult), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func doCycle(handler *Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/automation/cycle", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestCycleHandler_Success(t *testing.T) {
	service := new(ServiceMock)
	service.On("RunCycle", mock.Anything).
		Return(models.CycleResult{Processed: 3, Sent: 2, Errors: 1}, nil)

	rr := doCycle(New(newNoopLogger(), service))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, response.StatusOK, resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), data["processed"])
	assert.Equal(t, float64(2), data["sent"])
	assert.Equal(t, float64(1), data["errors"])
}

func TestCycleHandler_InProgress(t *testing.T) {
	service := new(ServiceMock)
	service.On("RunCycle", mock.Anything).
		Return(models.CycleResult{}, automation.ErrCycleInProgress)

	rr := doCycle(New(newNoopLogger(), service))
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestCycleHandler_CycleError(t *testing.T) {
	service := new(ServiceMock)
	service.On("RunCycle", mock.Anything).
		Return(models.CycleResult{}, errors.New("channel is not connected"))

	rr := doCycle(New(newNoopLogger(), service))
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
