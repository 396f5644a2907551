package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erickmmolina/baby-shower-registry/internal/features/event/models"
	"github.com/erickmmolina/baby-shower-registry/internal/features/event/service"
	"github.com/erickmmolina/baby-shower-registry/internal/platform/blob"
)

func newRouter(t *testing.T) (*gin.Engine, blob.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := blob.NewMemoryStore()
	router := gin.New()
	NewEventHandler(service.NewEventService(store)).RegisterRoutes(router.Group(""))
	return router, store
}

func TestGetEventReturnsDefaultsWhenUnset(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/event", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var event models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &event))
	assert.Equal(t, *models.Default(), event)
}

func TestSetThenGetEvent(t *testing.T) {
	router, _ := newRouter(t)

	body := `{"date":"2025-10-26","time":"17:00","location":"Home","mapLink":"https://maps.example.com","dressCode":"Casual","theme":"Pastel"}`
	req := httptest.NewRequest(http.MethodPost, "/event", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/event", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var event models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &event))
	assert.Equal(t, "Home", event.Location)
	assert.Equal(t, "Pastel", event.Theme)
}

func TestGetEventCorruptDocument(t *testing.T) {
	router, store := newRouter(t)
	require.NoError(t, store.Put(context.Background(), service.KeyEvent, []byte(`{"date":`)))

	req := httptest.NewRequest(http.MethodGet, "/event", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}
