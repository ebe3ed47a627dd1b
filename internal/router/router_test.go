package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandertrip/travel-roulette/internal/api/amap"
	"github.com/wandertrip/travel-roulette/internal/api/city"
	"github.com/wandertrip/travel-roulette/internal/api/enrichment"
	"github.com/wandertrip/travel-roulette/internal/api/guide"
	"github.com/wandertrip/travel-roulette/internal/types"
)

type staticCompleter struct{}

func (staticCompleter) Complete(ctx context.Context, apiKey, systemPrompt, userPrompt string) (string, error) {
	return "{}", nil
}

type emptyDistricts struct{}

func (emptyDistricts) ListCities(ctx context.Context, apiKey string) ([]string, error) {
	return []string{"杭州市"}, nil
}

type staticFetcher struct{}

func (staticFetcher) CityInfo(ctx context.Context, apiKey, cityName string) types.CityInfo {
	return amap.DefaultCityInfo(cityName)
}

func (staticFetcher) Attractions(ctx context.Context, apiKey, cityName string) []types.Attraction {
	return nil
}

func newTestRouter() http.Handler {
	logger := slog.New(slog.DiscardHandler)
	store := enrichment.NewTTLStore(enrichment.DefaultTTL)
	enricher := enrichment.NewService(staticCompleter{}, store, logger)
	return SetupRouter(&Config{
		GuideHandler: guide.NewHandler(guide.NewService(staticFetcher{}, logger), enricher, store, logger),
		CityHandler:  city.NewCityHandler(emptyDistricts{}, "", logger),
	})
}

func TestSetupRouter(t *testing.T) {
	r := newTestRouter()

	t.Run("Ping", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
	})

	t.Run("CitiesRouted", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cities", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "杭州市")
	})

	t.Run("PreflightShortCircuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/guide", nil)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})
}
