package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/langchou/fleetgazer/internal/api/booking"
	"github.com/langchou/fleetgazer/internal/api/portal"
	"github.com/langchou/fleetgazer/internal/config"
	"github.com/langchou/fleetgazer/internal/models"
	"github.com/langchou/fleetgazer/internal/service"
	"github.com/langchou/fleetgazer/pkg/ws"
)

type fakeStore struct {
	snap models.Snapshot
}

func (f *fakeStore) Load(ctx context.Context) (*models.Snapshot, error) {
	snap := f.snap
	return &snap, nil
}

func (f *fakeStore) Replace(ctx context.Context, snap models.Snapshot) error {
	f.snap = snap
	return nil
}

func (f *fakeStore) Reset(ctx context.Context) error {
	f.snap = models.Snapshot{Vehicles: []models.Vehicle{}}
	return nil
}

func newTestRouter(t *testing.T, store *fakeStore, feedURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	cfg := &config.Config{BookingConcurrency: 2, BookingBatchDelay: time.Millisecond}
	scanService := service.NewScanService(
		cfg,
		logger,
		portal.NewClient(feedURL, ""),
		booking.NewClient(feedURL),
		store,
		ws.NewHub(logger),
	)

	router := gin.New()
	NewHandler(logger, store, scanService, ws.NewHub(logger)).RegisterRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func seededStore() *fakeStore {
	lastScan := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	return &fakeStore{snap: models.Snapshot{
		Vehicles: []models.Vehicle{
			{ID: "MAB1234", Plate: "MAB1234", Brand: "BMW", ExternalID: "98765"},
			{ID: "BXY123", Plate: "BXY123", Brand: "Audi", IsNew: true},
		},
		LastScan: &lastScan,
		NewCount: 1,
	}}
}

func TestListVehicles(t *testing.T) {
	router := newTestRouter(t, seededStore(), "http://127.0.0.1:1")

	t.Run("ReturnsAll", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/vehicles")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data      []models.Vehicle `json:"data"`
			NewPlates []string         `json:"newPlates"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Data, 2)
		assert.Equal(t, []string{"BXY123"}, body.NewPlates)
		// 默认按车牌排序
		assert.Equal(t, "BXY123", body.Data[0].Plate)
	})

	t.Run("FilterQuery", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/vehicles?q=bmw")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data []models.Vehicle `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "MAB1234", body.Data[0].Plate)
	})

	t.Run("SortDescending", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/vehicles?sort=kennzeichen&dir=desc")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data []models.Vehicle `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Data, 2)
		assert.Equal(t, "MAB1234", body.Data[0].Plate)
	})
}

func TestGetStats(t *testing.T) {
	router := newTestRouter(t, seededStore(), "http://127.0.0.1:1")

	w := doRequest(router, http.MethodGet, "/api/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data models.Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.TotalVehicles)
	assert.Equal(t, 1, body.Data.NewCount)
}

func TestClearNewMarkers(t *testing.T) {
	store := seededStore()
	router := newTestRouter(t, store, "http://127.0.0.1:1")

	w := doRequest(router, http.MethodPost, "/api/markers/clear")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, store.snap.NewCount)
	for _, v := range store.snap.Vehicles {
		assert.False(t, v.IsNew)
	}
}

func TestClearData(t *testing.T) {
	store := seededStore()
	router := newTestRouter(t, store, "http://127.0.0.1:1")

	w := doRequest(router, http.MethodDelete, "/api/data")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.snap.Vehicles)
}

func TestTriggerScanPortalDown(t *testing.T) {
	router := newTestRouter(t, seededStore(), "http://127.0.0.1:1")

	w := doRequest(router, http.MethodPost, "/api/scan")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetAvailability(t *testing.T) {
	t.Run("VehicleNotFound", func(t *testing.T) {
		router := newTestRouter(t, seededStore(), "http://127.0.0.1:1")

		w := doRequest(router, http.MethodGet, "/api/vehicles/unbekannt/availability")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("MissingExternalID", func(t *testing.T) {
		router := newTestRouter(t, seededStore(), "http://127.0.0.1:1")

		w := doRequest(router, http.MethodGet, "/api/vehicles/BXY123/availability")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("FeedDownYieldsUnknown", func(t *testing.T) {
		router := newTestRouter(t, seededStore(), "http://127.0.0.1:1")

		w := doRequest(router, http.MethodGet, "/api/vehicles/MAB1234/availability")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data models.AvailabilityResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, models.AvailabilityUnknown, body.Data.Status)
		assert.Equal(t, "Unbekannt", body.Data.Label)
	})

	t.Run("FeedUp", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		router := newTestRouter(t, seededStore(), server.URL)
		w := doRequest(router, http.MethodGet, "/api/vehicles/MAB1234/availability")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data models.AvailabilityResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, models.AvailabilityFree, body.Data.Status)
	})
}

func TestGetBenefit(t *testing.T) {
	t.Run("FeedDown", func(t *testing.T) {
		router := newTestRouter(t, seededStore(), "http://127.0.0.1:1")

		w := doRequest(router, http.MethodGet, "/api/vehicles/MAB1234/benefit")
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("MissingExternalID", func(t *testing.T) {
		router := newTestRouter(t, seededStore(), "http://127.0.0.1:1")

		w := doRequest(router, http.MethodGet, "/api/vehicles/BXY123/benefit")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("FeedUp", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"bruttolistenpreis": 50000, "treibstoff": "Diesel"}`))
		}))
		defer server.Close()

		router := newTestRouter(t, seededStore(), server.URL)
		w := doRequest(router, http.MethodGet, "/api/vehicles/MAB1234/benefit")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data models.Benefit `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Verbrenner", body.Data.Label)
		require.NotNil(t, body.Data.Rate)
		assert.Equal(t, 500.0, *body.Data.Rate)
	})
}

func TestBatchAvailability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	router := newTestRouter(t, seededStore(), server.URL)
	w := doRequest(router, http.MethodPost, "/api/availability/batch")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data  map[string]models.AvailabilityResult `json:"data"`
		Total int                                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	// 只有带外部 ID 的车辆有结果
	require.Len(t, body.Data, 1)
	assert.Equal(t, models.AvailabilityFree, body.Data["MAB1234"].Status)
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t, seededStore(), "http://127.0.0.1:1")

	w := doRequest(router, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "idle", body["scan_state"])
}
