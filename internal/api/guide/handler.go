package guide

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wandertrip/travel-roulette/app/observability/metrics"
	"github.com/wandertrip/travel-roulette/internal/api"
	"github.com/wandertrip/travel-roulette/internal/api/enrichment"
	"github.com/wandertrip/travel-roulette/internal/types"
)

const (
	aiStatusProcessing = "processing"
	aiStatusDisabled   = "disabled"

	noteProcessing = "AI正在后台生成详细攻略，请稍后查询..."
	noteDisabled   = "未启用AI生成"
	noteFallback   = "生成过程中出现错误，返回备用攻略"
	cacheMissMsg   = "缓存未命中"
)

type guideResponse struct {
	Success     bool             `json:"success"`
	Data        types.BasicGuide `json:"data"`
	GeneratedAt string           `json:"generatedAt,omitempty"`
	Note        string           `json:"note,omitempty"`
}

type cacheHitResponse struct {
	Success   bool                   `json:"success"`
	Data      types.EnrichmentResult `json:"data"`
	FromCache bool                   `json:"from_cache"`
}

type cacheMissResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Handler struct {
	logger   *slog.Logger
	service  Service
	enricher *enrichment.Service
	store    enrichment.Store
}

func NewHandler(service Service, enricher *enrichment.Service, store enrichment.Store, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		enricher: enricher,
		store:    store,
	}
}

// GenerateGuide handles POST /guide. The synchronous response always carries
// a complete guide; missing city or month is the only failure surfaced to the
// caller. When a model key is present the enrichment pipeline is detached to
// run after the response and its result becomes visible through check_cache.
func (h *Handler) GenerateGuide(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GuideHandler").Start(r.Context(), "GenerateGuide")
	defer span.End()

	l := h.logger.With(slog.String("method", "GenerateGuide"))

	var req types.GuideRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Duration <= 0 {
		req.Duration = 3
	}

	if req.Action == "check_cache" {
		h.checkCache(ctx, w, r, req)
		return
	}

	if req.City == "" || req.Month == 0 {
		l.WarnContext(ctx, "Missing required parameters",
			slog.String("city", req.City), slog.Int("month", req.Month))
		span.SetStatus(codes.Error, "missing required parameters")
		api.ErrorResponse(w, r, http.StatusBadRequest, "缺少必要参数：city和month")
		return
	}

	span.SetAttributes(
		attribute.String("city.name", req.City),
		attribute.Int("guide.month", req.Month),
		attribute.Int("guide.duration", req.Duration),
	)
	l.InfoContext(ctx, "Generating guide",
		slog.String("city", req.City), slog.Int("month", req.Month), slog.Int("duration", req.Duration))

	// Whatever happens past validation the client still gets a guide.
	defer func() {
		if rec := recover(); rec != nil {
			l.ErrorContext(ctx, "Guide generation panicked, returning fallback guide", slog.Any("panic", rec))
			span.SetStatus(codes.Error, "guide generation panicked")
			api.WriteJSONResponse(w, r, http.StatusOK, guideResponse{
				Success: true,
				Data:    h.service.FallbackGuide(req.City, req.Month, req.Duration),
				Note:    noteFallback,
			})
		}
	}()

	start := time.Now()
	guide := h.service.AssembleBasicGuide(ctx, req.City, req.Month, req.Duration, req.AmapKey)
	metrics.Get().GuideRequestsTotal.Add(ctx, 1)
	metrics.Get().GuideDurationSeconds.Record(ctx, time.Since(start).Seconds())

	cacheKey := enrichment.Key(req.City, req.Month, req.Duration)
	guide.CacheKey = cacheKey
	if req.DoubaoKey != "" {
		guide.AIStatus = aiStatusProcessing
		guide.Note = noteProcessing
	} else {
		guide.AIStatus = aiStatusDisabled
		guide.Note = noteDisabled
	}

	api.WriteJSONResponse(w, r, http.StatusOK, guideResponse{
		Success:     true,
		Data:        guide,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})

	if req.DoubaoKey != "" {
		h.enricher.LaunchBackground(req.City, req.Month, req.Duration, req.DoubaoKey, cacheKey)
	}

	span.SetStatus(codes.Ok, "guide generated")
}

// checkCache serves the polling path: a fresh entry comes back as a hit, a
// missing or stale one as a miss, and an in-flight enrichment is never waited
// on.
func (h *Handler) checkCache(ctx context.Context, w http.ResponseWriter, r *http.Request, req types.GuideRequest) {
	key := enrichment.Key(req.City, req.Month, req.Duration)

	if result, ok := h.store.Get(key); ok {
		metrics.Get().CacheHitsTotal.Add(ctx, 1)
		h.logger.InfoContext(ctx, "Enrichment cache hit", slog.String("cache_key", key))
		api.WriteJSONResponse(w, r, http.StatusOK, cacheHitResponse{
			Success:   true,
			Data:      result,
			FromCache: true,
		})
		return
	}

	metrics.Get().CacheMissesTotal.Add(ctx, 1)
	api.WriteJSONResponse(w, r, http.StatusOK, cacheMissResponse{
		Success: false,
		Message: cacheMissMsg,
	})
}
