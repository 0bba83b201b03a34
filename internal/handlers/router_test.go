package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ride-compare-backend/internal/metrics"
	"ride-compare-backend/internal/services"
	"ride-compare-backend/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsRouteRegisteredWithCollector(t *testing.T) {
	store := storage.NewMemoryStorage()
	authService := services.NewAuthService(store, time.Hour)
	collector := metrics.NewCollector(prometheus.NewRegistry())

	router := NewRouter(RouterDeps{
		Auth:       NewAuthHandler(authService, testCookieName, false),
		Places:     NewPlaceHandler(services.NewPlaceService(store)),
		Rides:      NewRideHandler(services.NewRideService(store)),
		Sessions:   store.Sessions(),
		CookieName: testCookieName,
		Collector:  collector,
	})

	// generate one observation, then scrape
	doJSON(t, router, http.MethodGet, "/healthz", nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ridecompare_http_requests_total")
}

func TestProfileRouteAbsentWithoutService(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := register(t, router, "alice", "pw1")

	rec := doJSON(t, router, http.MethodPost, "/api/profile/picture", map[string]string{
		"filename": "me.jpg",
	}, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
