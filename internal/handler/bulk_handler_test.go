package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carbonfront/internal/domain"
	"carbonfront/internal/handler"
	"carbonfront/internal/service"
	"carbonfront/internal/session"
	"carbonfront/mocks"
)

func newBulkEnv() (*testEnv, *mocks.MockBulkService) {
	svc := new(mocks.MockBulkService)
	h := handler.NewBulkHandler(svc, testUploadConfig())
	env := newTestEnv(func(r *gin.Engine) {
		r.POST("/api/v1/bulk", h.Submit)
	})
	return env, svc
}

func TestBulkHandler_Submit_Success(t *testing.T) {
	env, svc := newBulkEnv()
	svc.On("Process", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
		return in.Filename == "batch.zip" && in.Methodology == "activity"
	})).Return(&domain.BulkResult{
		Filename:    "results 2025.csv",
		ContentType: "text/csv",
		Body:        []byte("a,b\n1,2"),
		Stats:       domain.BulkStats{Processed: 8, Failed: 2, Total: 10},
		ReceivedAt:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}, nil)

	req := uploadRequest(t, "/api/v1/bulk", "batch.zip", "application/zip", []byte("PK"), map[string]string{"methodology": "activity"})
	w := env.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a,b\n1,2", w.Body.String())
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="results_2025.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "8", w.Header().Get("X-Processed-Count"))
	assert.Equal(t, "2", w.Header().Get("X-Failed-Count"))
	assert.Equal(t, "10", w.Header().Get("X-Total-Files"))

	// the body is not retained once served
	_, err := env.sess.TakeBulkResult()
	assert.ErrorIs(t, err, domain.ErrNoData)
	_ = env.sess.WithBulk(func(st *session.BulkState) error {
		assert.True(t, st.Success)
		assert.Equal(t, 10, st.Stats.Total)
		return nil
	})
}

func TestBulkHandler_Submit_ZeroCounters(t *testing.T) {
	env, svc := newBulkEnv()
	svc.On("Process", mock.Anything, mock.Anything).Return(&domain.BulkResult{
		Filename:    "out.csv",
		ContentType: "text/csv",
		Body:        []byte("x"),
	}, nil)

	w := env.do(uploadRequest(t, "/api/v1/bulk", "batch.zip", "application/zip", []byte("PK"), nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-Processed-Count"))
	assert.Equal(t, "0", w.Header().Get("X-Failed-Count"))
	assert.Equal(t, "0", w.Header().Get("X-Total-Files"))
}

func TestBulkHandler_Submit_InvalidArchive(t *testing.T) {
	env, svc := newBulkEnv()

	w := env.do(uploadRequest(t, "/api/v1/bulk", "notes.txt", "text/plain", []byte("hi"), nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ZIP")
	svc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestBulkHandler_Submit_InvalidMethodology(t *testing.T) {
	env, svc := newBulkEnv()

	w := env.do(uploadRequest(t, "/api/v1/bulk", "batch.zip", "application/zip", []byte("PK"), map[string]string{"methodology": "hybrid"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_METHODOLOGY")
	svc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestBulkHandler_Submit_Unreachable(t *testing.T) {
	env, svc := newBulkEnv()
	svc.On("Process", mock.Anything, mock.Anything).Return(nil, domain.ErrUpstreamUnavailable)

	w := env.do(uploadRequest(t, "/api/v1/bulk", "batch.zip", "application/zip", []byte("PK"), nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "UPSTREAM_UNAVAILABLE")
	_ = env.sess.WithBulk(func(st *session.BulkState) error {
		assert.False(t, st.Loading)
		assert.NotEmpty(t, st.Error)
		return nil
	})
}
