// Package enrichment runs the optional AI elaboration of a basic guide:
// a time-bounded chat completion whose result lands in a TTL cache, with a
// locally synthesized fallback whenever the model cannot deliver.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	"github.com/wandertrip/travel-roulette/app/observability/metrics"
	"github.com/wandertrip/travel-roulette/internal/api/season"
	"github.com/wandertrip/travel-roulette/internal/types"
)

// enrichTimeout bounds one enrichment invocation end to end.
const enrichTimeout = 25 * time.Second

const timeoutMessage = "AI生成超时，请稍后重试或使用基础攻略"

type Service struct {
	logger    *slog.Logger
	completer Completer
	store     Store
	timeout   time.Duration

	group singleflight.Group
	wg    sync.WaitGroup
}

func NewService(completer Completer, store Store, logger *slog.Logger) *Service {
	return &Service{
		logger:    logger,
		completer: completer,
		store:     store,
		timeout:   enrichTimeout,
	}
}

// Enrich runs one enrichment invocation and always returns a terminal result
// within the timeout bound: Succeeded, TimedOut or Failed. The two failure
// variants carry a non-empty locally synthesized fallback. No retries happen
// at this layer.
func (s *Service) Enrich(ctx context.Context, city string, month, duration int, apiKey string) types.EnrichmentResult {
	ctx, span := otel.Tracer("EnrichmentService").Start(ctx, "Enrich")
	defer span.End()
	span.SetAttributes(
		attribute.String("city.name", city),
		attribute.Int("guide.month", month),
		attribute.Int("guide.duration", duration),
	)

	jobID := uuid.New().String()
	l := s.logger.With(slog.String("job_id", jobID), slog.String("city", city))
	span.SetAttributes(attribute.String("enrichment.job_id", jobID))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	l.InfoContext(ctx, "Starting AI enrichment",
		slog.Int("month", month), slog.Int("duration", duration))

	content, err := s.completer.Complete(ctx, apiKey, systemPrompt, buildPrompt(city, month, duration))
	if err != nil {
		fallback := fallbackEnrichment(city, month, duration)
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			l.WarnContext(ctx, "AI enrichment timed out")
			span.SetStatus(codes.Error, "enrichment timed out")
			metrics.Get().EnrichmentOutcomesTotal.Add(ctx, 1,
				metric.WithAttributes(attribute.String("outcome", "timed_out")))
			return types.EnrichmentResult{
				AIGenerated: false,
				Error:       timeoutMessage,
				Fallback:    fallback,
			}
		}
		l.ErrorContext(ctx, "AI enrichment failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "enrichment failed")
		metrics.Get().EnrichmentOutcomesTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("outcome", "failed")))
		return types.EnrichmentResult{
			AIGenerated: false,
			Error:       err.Error(),
			Fallback:    fallback,
		}
	}

	aiContent := extractAIContent(content)
	if !aiContent.IsParsed() {
		l.WarnContext(ctx, "AI response carried no parseable structure, keeping raw text")
	}

	l.InfoContext(ctx, "AI enrichment completed", slog.Bool("parsed", aiContent.IsParsed()))
	span.SetStatus(codes.Ok, "enrichment completed")
	metrics.Get().EnrichmentOutcomesTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", "succeeded")))

	return types.EnrichmentResult{
		AIGenerated: true,
		AIContent:   aiContent,
		GeneratedAt: time.Now().UTC(),
		ModelUsed:   ModelLabel,
	}
}

// LaunchBackground detaches an enrichment run from the request/response
// cycle: the caller's response goes out first and the eventual result is
// observable only through the store. Concurrent launches for the same key are
// collapsed onto one in-flight invocation. The returned channel closes once
// the store write has landed, so shutdown and tests can wait
// deterministically instead of polling.
func (s *Service) LaunchBackground(city string, month, duration int, apiKey, cacheKey string) <-chan struct{} {
	done := make(chan struct{})
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)

		v, _, _ := s.group.Do(cacheKey, func() (interface{}, error) {
			return s.Enrich(context.Background(), city, month, duration, apiKey), nil
		})
		result := v.(types.EnrichmentResult)
		s.store.Set(cacheKey, result)

		s.logger.Info("Background enrichment settled",
			slog.String("cache_key", cacheKey),
			slog.Bool("ai_generated", result.AIGenerated))
	}()
	return done
}

// Wait blocks until every detached enrichment has settled. Called during
// graceful shutdown.
func (s *Service) Wait() {
	s.wg.Wait()
}

// fallbackEnrichment synthesizes the local substitute from template
// conventions. Never empty, even with zero external data.
func fallbackEnrichment(city string, month, duration int) *types.EnrichmentFallback {
	monthName := season.MonthName(month)

	dayPlans := make([]types.FallbackDayPlan, 0, duration)
	for day := 1; day <= duration; day++ {
		dayPlans = append(dayPlans, types.FallbackDayPlan{
			Day:       day,
			Morning:   fmt.Sprintf("参观%s主要景点", city),
			Afternoon: "体验当地文化",
			Evening:   "品尝特色美食",
		})
	}

	return &types.EnrichmentFallback{
		AIOverview: fmt.Sprintf("基于本地数据库生成的%s%s旅行建议", city, monthName),
		MustVisit: []string{
			city + "标志性建筑",
			city + "历史文化街区",
			city + "自然风景区",
		},
		DayPlans: dayPlans,
		ProTips: []string{
			"建议提前规划行程",
			"避开旅游高峰期",
			"尝试当地公共交通",
		},
	}
}
