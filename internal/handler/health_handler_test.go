package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carbonfront/internal/domain"
	"carbonfront/internal/handler"
	"carbonfront/mocks"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(new(mocks.MockProcessingClient))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/healthz", http.NoBody)

	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandler_Readiness(t *testing.T) {
	client := new(mocks.MockProcessingClient)
	client.On("Ping", mock.Anything).Return(nil).Once()
	client.On("Ping", mock.Anything).Return(domain.ErrUpstreamUnavailable).Once()
	h := handler.NewHealthHandler(client)

	for _, want := range []int{http.StatusOK, http.StatusServiceUnavailable} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)

		h.Readiness(c)

		assert.Equal(t, want, w.Code)
	}
	client.AssertExpectations(t)
}
