package city

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wandertrip/travel-roulette/internal/api"
	"github.com/wandertrip/travel-roulette/internal/api/amap"
)

type listResponse struct {
	Success   bool     `json:"success"`
	Count     int      `json:"count"`
	Cities    []string `json:"cities"`
	Timestamp string   `json:"timestamp"`
}

type listErrorResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	DebugInfo debugInfo `json:"debugInfo"`
	Cities    []string  `json:"cities"`
}

type debugInfo struct {
	KeyConfigured bool `json:"keyConfigured"`
}

type Handler struct {
	logger    *slog.Logger
	districts amap.DistrictLister
	apiKey    string
}

func NewCityHandler(districts amap.DistrictLister, apiKey string, logger *slog.Logger) *Handler {
	return &Handler{
		logger:    logger,
		districts: districts,
		apiKey:    apiKey,
	}
}

// GetAllCities handles GET /cities: the prefecture-level city names from the
// district API, or the static fallback list when the provider call fails.
// Either way the response is HTTP 200; failure detail lives in the payload so
// callers can always proceed with the city list they got.
func (h *Handler) GetAllCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetAllCities")
	defer span.End()

	l := h.logger.With(slog.String("method", "GetAllCities"))
	l.InfoContext(ctx, "Retrieving city list")

	cities, err := h.districts.ListCities(ctx, h.apiKey)
	if err != nil {
		l.WarnContext(ctx, "District lookup failed, serving fallback city list", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "district lookup failed")
		api.WriteJSONResponse(w, r, http.StatusOK, listErrorResponse{
			Success:   false,
			Error:     err.Error(),
			DebugInfo: debugInfo{KeyConfigured: h.apiKey != ""},
			Cities:    FallbackCities(),
		})
		return
	}

	span.SetAttributes(attribute.Int("cities.count", len(cities)))
	span.SetStatus(codes.Ok, "city list returned")
	l.InfoContext(ctx, "Successfully returned cities", slog.Int("count", len(cities)))

	api.WriteJSONResponse(w, r, http.StatusOK, listResponse{
		Success:   true,
		Count:     len(cities),
		Cities:    cities,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
