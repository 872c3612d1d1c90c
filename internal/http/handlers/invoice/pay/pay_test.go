package pay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type StorageMock struct {
	mock.Mock
}

func (m *StorageMock) MarkInvoicePaid(ctx context.Context, id string, paidAt time.Time) (int, error) {
	args := m.Called(ctx, id, paidAt)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const validID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

func doPay(handler *Handler, id string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Post("/invoices/{id}/pay", handler.ServeHTTP)

	req := httptest.NewRequest(http.MethodPost, "/invoices/"+id+"/pay", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestPayHandler_Success(t *testing.T) {
	storage := new(StorageMock)
	storage.On("MarkInvoicePaid", mock.Anything, validID, mock.Anything).Return(1, nil)

	rr := doPay(New(newNoopLogger(), storage), validID)
	assert.Equal(t, http.StatusOK, rr.Code)
	storage.AssertExpectations(t)
}

func TestPayHandler_InvalidID(t *testing.T) {
	storage := new(StorageMock)

	rr := doPay(New(newNoopLogger(), storage), "not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	storage.AssertNotCalled(t, "MarkInvoicePaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestPayHandler_NotFound(t *testing.T) {
	storage := new(StorageMock)
	storage.On("MarkInvoicePaid", mock.Anything, validID, mock.Anything).Return(0, nil)

	rr := doPay(New(newNoopLogger(), storage), validID)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPayHandler_StorageError(t *testing.T) {
	storage := new(StorageMock)
	storage.On("MarkInvoicePaid", mock.Anything, validID, mock.Anything).
		Return(0, errors.New("db down"))

	rr := doPay(New(newNoopLogger(), storage), validID)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
