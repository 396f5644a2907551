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

	"github.com/erickmmolina/baby-shower-registry/internal/features/registry/models"
	"github.com/erickmmolina/baby-shower-registry/internal/features/registry/service"
	"github.com/erickmmolina/baby-shower-registry/internal/platform/blob"
)

func newRouter(t *testing.T) (*gin.Engine, service.RegistryService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewRegistryService(blob.NewMemoryStore(), service.DefaultOptions())
	router := gin.New()
	NewRegistryHandler(svc).RegisterRoutes(router.Group(""))
	return router, svc
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func seedGift(t *testing.T, svc service.RegistryService, name string) *models.Gift {
	t.Helper()
	gift, err := svc.Add(context.Background(), &models.GiftCreate{Name: name})
	require.NoError(t, err)
	return gift
}

func TestListGifts(t *testing.T) {
	router, svc := newRouter(t)
	seedGift(t, svc, "Crib")
	seedGift(t, svc, "Stroller")

	rec := doJSON(router, http.MethodGet, "/gifts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var gifts []models.Gift
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gifts))
	assert.Len(t, gifts, 2)
}

func TestGetGift(t *testing.T) {
	router, svc := newRouter(t)
	gift := seedGift(t, svc, "Crib")

	rec := doJSON(router, http.MethodGet, "/gifts/0", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Gift
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, gift.ID, got.ID)
	assert.Equal(t, "Crib", got.Name)

	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodGet, "/gifts/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodGet, "/gifts/abc", "").Code)
}

func TestAddGift(t *testing.T) {
	router, _ := newRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"success", `{"name":"Crib","description":"White"}`, http.StatusOK},
		{"blank name", `{"name":""}`, http.StatusBadRequest},
		{"whitespace name", `{"name":"   "}`, http.StatusBadRequest},
		{"missing name", `{"description":"x"}`, http.StatusBadRequest},
		{"invalid json", `{"name":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(router, http.MethodPost, "/add-gift", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var gift models.Gift
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gift))
				assert.Equal(t, models.StatusAvailable, gift.Status)
				assert.Nil(t, gift.ClaimedBy)
				assert.Empty(t, gift.Images)
			} else {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestClaimLifecycle(t *testing.T) {
	router, svc := newRouter(t)
	seedGift(t, svc, "Crib")

	body := `{"firstName":"A","lastName":"B","email":"a@b.com"}`

	rec := doJSON(router, http.MethodPost, "/gifts/0/claim", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var claimed models.Gift
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &claimed))
	assert.Equal(t, models.StatusClaimed, claimed.Status)
	require.NotNil(t, claimed.ClaimedBy)
	assert.Equal(t, "A", claimed.ClaimedBy.FirstName)

	// Second claim conflicts.
	rec = doJSON(router, http.MethodPost, "/gifts/0/claim", body)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already claimed")

	// Release through the body-based route, then claim again.
	rec = doJSON(router, http.MethodPost, "/release", `{"giftId":0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodPost, "/claim", `{"giftId":0,"firstName":"C","lastName":"D","email":"c@d.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestClaimValidationAndNotFound(t *testing.T) {
	router, svc := newRouter(t)
	seedGift(t, svc, "Crib")

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{"missing fields", "/gifts/0/claim", `{"firstName":"A"}`, http.StatusBadRequest},
		{"missing gift", "/gifts/9/claim", `{"firstName":"A","lastName":"B","email":"a@b.com"}`, http.StatusNotFound},
		{"body route missing id", "/claim", `{"firstName":"A","lastName":"B","email":"a@b.com"}`, http.StatusBadRequest},
		{"body route missing gift", "/claim", `{"giftId":9,"firstName":"A","lastName":"B","email":"a@b.com"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(router, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestReleaseRoutes(t *testing.T) {
	router, svc := newRouter(t)
	seedGift(t, svc, "Crib")

	// Releasing an available gift is fine, twice in a row too.
	for i := 0; i < 2; i++ {
		rec := doJSON(router, http.MethodPost, "/gifts/0/release", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodPost, "/gifts/9/release", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPost, "/release", `{}`).Code)
}

func TestUpdateGift(t *testing.T) {
	router, svc := newRouter(t)
	seedGift(t, svc, "Crib")

	rec := doJSON(router, http.MethodPost, "/update-gift", `{"giftId":0,"name":"White crib","price1":49990}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var gift models.Gift
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gift))
	assert.Equal(t, "White crib", gift.Name)
	require.NotNil(t, gift.Price1)
	assert.Equal(t, 49990, *gift.Price1)

	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodPost, "/update-gift", `{"giftId":9,"name":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPost, "/update-gift", `{"giftId":0}`).Code)
}

func TestUpdateImages(t *testing.T) {
	router, svc := newRouter(t)
	seedGift(t, svc, "Crib")

	rec := doJSON(router, http.MethodPost, "/update-images", `{"giftId":0,"images":["https://example.com/a.jpg"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var gift models.Gift
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gift))
	assert.Equal(t, []string{"https://example.com/a.jpg"}, gift.Images)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"images not an array", `{"giftId":5,"images":"not-an-array"}`, http.StatusBadRequest},
		{"images missing", `{"giftId":0}`, http.StatusBadRequest},
		{"missing gift", `{"giftId":9,"images":[]}`, http.StatusNotFound},
		{"empty list is valid", `{"giftId":0,"images":[]}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, doJSON(router, http.MethodPost, "/update-images", tt.body).Code)
		})
	}
}

func TestDeleteGift(t *testing.T) {
	router, svc := newRouter(t)
	seedGift(t, svc, "Crib")

	rec := doJSON(router, http.MethodPost, "/delete-gift", `{"giftId":0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodGet, "/gifts/0", "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodPost, "/delete-gift", `{"giftId":0}`).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPost, "/delete-gift", `{}`).Code)
}
