package guide

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wandertrip/travel-roulette/app/observability/metrics"
	"github.com/wandertrip/travel-roulette/internal/api/amap"
	"github.com/wandertrip/travel-roulette/internal/api/season"
	"github.com/wandertrip/travel-roulette/internal/types"
)

// Service assembles basic guides from the template library plus best-effort
// provider data.
type Service interface {
	AssembleBasicGuide(ctx context.Context, city string, month, duration int, amapKey string) types.BasicGuide
	FallbackGuide(city string, month, duration int) types.BasicGuide
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	logger  *slog.Logger
	fetcher amap.Fetcher
}

func NewService(fetcher amap.Fetcher, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		fetcher: fetcher,
	}
}

// AssembleBasicGuide builds the full guide and never fails: the two provider
// fetches run concurrently and fall back independently, and a panic anywhere
// in assembly degrades to the reduced template-only guide. The call takes no
// longer than the slower of the two bounded fetches.
func (s *ServiceImpl) AssembleBasicGuide(ctx context.Context, city string, month, duration int, amapKey string) (g types.BasicGuide) {
	ctx, span := otel.Tracer("GuideService").Start(ctx, "AssembleBasicGuide")
	defer span.End()
	span.SetAttributes(
		attribute.String("city.name", city),
		attribute.Int("guide.month", month),
		attribute.Int("guide.duration", duration),
	)

	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "Guide assembly panicked, returning fallback guide",
				slog.String("city", city), slog.Any("panic", r))
			span.SetStatus(codes.Error, "assembly panicked")
			g = s.FallbackGuide(city, month, duration)
		}
	}()

	monthName := season.MonthName(month)
	seasonName := season.Of(month)

	var (
		wg          sync.WaitGroup
		cityInfo    types.CityInfo
		attractions []types.Attraction
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		cityInfo = s.fetcher.CityInfo(ctx, amapKey, city)
	}()
	go func() {
		defer wg.Done()
		attractions = s.fetcher.Attractions(ctx, amapKey, city)
	}()
	wg.Wait()

	if cityInfo.Adcode == "000000" || len(attractions) == 0 {
		metrics.Get().FetcherFallbacksTotal.Add(ctx, 1)
	}

	span.SetAttributes(attribute.Int("attractions.fetched", len(attractions)))
	span.SetStatus(codes.Ok, "guide assembled")

	attractionsCount := len(attractions)
	if attractionsCount > 10 {
		attractionsCount = 10
	}

	return types.BasicGuide{
		City:                     city,
		Month:                    month,
		MonthName:                monthName,
		Season:                   seasonName,
		Duration:                 duration,
		Coordinates:              cityInfo.Coordinates,
		Overview:                 overview(city, monthName, seasonName, duration),
		WeatherInfo:              season.Weather(seasonName),
		Attractions:              processAttractions(attractions, city),
		Itinerary:                itineraryByDays(city, duration, seasonName),
		FoodRecommendations:      localFoodSuggestions(city),
		Budget:                   realisticBudget(duration, city),
		AccommodationSuggestions: accommodationSuggestions(city),
		LocalTips:                localTips(city),
		WeatherTips:              season.WeatherTips(seasonName),
		TransportationTips:       transportationTips(city),
		QuickStats: &types.QuickStats{
			AttractionsCount: attractionsCount,
			DurationDays:     duration,
			BestSeason:       seasonName,
		},
		GeneratedAt: time.Now().UTC(),
	}
}

// FallbackGuide is the reduced guide built purely from the template library
// and the default coordinate table. Used when assembly itself blows up and by
// the handler's top-level recovery path.
func (s *ServiceImpl) FallbackGuide(city string, month, duration int) types.BasicGuide {
	monthName := season.MonthName(month)
	seasonName := season.Of(month)

	return types.BasicGuide{
		City:                city,
		Month:               month,
		MonthName:           monthName,
		Season:              seasonName,
		Duration:            duration,
		Coordinates:         amap.DefaultCityInfo(city).Coordinates,
		Overview:            fallbackOverview(city, monthName, duration),
		WeatherInfo:         season.Weather(seasonName),
		Attractions:         processAttractions(nil, city),
		Itinerary:           itineraryByDays(city, duration, seasonName),
		FoodRecommendations: localFoodSuggestions(city),
		Budget:              realisticBudget(duration, city),
		Note:                "这是基础版攻略，AI增强版正在生成中...",
		GeneratedAt:         time.Now().UTC(),
	}
}
