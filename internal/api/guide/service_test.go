package guide

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wandertrip/travel-roulette/internal/api/season"
	"github.com/wandertrip/travel-roulette/internal/types"
)

// MockFetcher is a mock implementation of the amap.Fetcher interface.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) CityInfo(ctx context.Context, apiKey, city string) types.CityInfo {
	args := m.Called(ctx, apiKey, city)
	return args.Get(0).(types.CityInfo)
}

func (m *MockFetcher) Attractions(ctx context.Context, apiKey, city string) []types.Attraction {
	args := m.Called(ctx, apiKey, city)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]types.Attraction)
}

func TestAssembleBasicGuide(t *testing.T) {
	t.Run("FullyPopulatedWithoutProviderData", func(t *testing.T) {
		// Provider unavailable: both fetches already degraded to defaults.
		mockFetcher := new(MockFetcher)
		mockFetcher.On("CityInfo", mock.Anything, "", "兰州").
			Return(types.CityInfo{Name: "兰州", Coordinates: "116.4074,39.9042", Adcode: "000000", Level: "city"})
		mockFetcher.On("Attractions", mock.Anything, "", "兰州").Return(nil)

		service := NewService(mockFetcher, slog.Default())
		g := service.AssembleBasicGuide(context.Background(), "兰州", 7, 3, "")

		assert.Equal(t, "兰州", g.City)
		assert.Equal(t, season.Summer, g.Season)
		assert.Equal(t, "七月", g.MonthName)
		assert.Equal(t, 3, g.Duration)
		assert.NotEmpty(t, g.Coordinates)
		assert.NotEmpty(t, g.Overview)
		assert.NotEmpty(t, g.WeatherInfo.Temperature)
		assert.Len(t, g.Attractions, 3)
		assert.Len(t, g.Itinerary, 3)
		assert.NotEmpty(t, g.FoodRecommendations)
		assert.NotZero(t, g.Budget.Total)
		assert.Len(t, g.AccommodationSuggestions, 4)
		assert.Len(t, g.LocalTips, 5)
		assert.Len(t, g.WeatherTips, 3)
		assert.Len(t, g.TransportationTips, 5)
		assert.NotNil(t, g.QuickStats)
		assert.Equal(t, 0, g.QuickStats.AttractionsCount)
		assert.False(t, g.GeneratedAt.IsZero())
		mockFetcher.AssertExpectations(t)
	})

	t.Run("FetchedDataFlowsIntoGuide", func(t *testing.T) {
		mockFetcher := new(MockFetcher)
		mockFetcher.On("CityInfo", mock.Anything, "key", "杭州").
			Return(types.CityInfo{Name: "浙江省杭州市", Coordinates: "120.1551,30.2741", Adcode: "330100", Level: "市"})
		mockFetcher.On("Attractions", mock.Anything, "key", "杭州").
			Return([]types.Attraction{
				{Name: "西湖", Type: "风景名胜", Address: "西湖区"},
				{Name: "灵隐寺", Type: "寺庙道观"},
			})

		service := NewService(mockFetcher, slog.Default())
		g := service.AssembleBasicGuide(context.Background(), "杭州", 4, 2, "key")

		assert.Equal(t, "120.1551,30.2741", g.Coordinates)
		assert.Len(t, g.Attractions, 2)
		assert.Equal(t, "西湖", g.Attractions[0].Name)
		assert.Equal(t, 2, g.QuickStats.AttractionsCount)
		assert.Equal(t, season.Spring, g.Season)
	})

}

func TestFallbackGuide(t *testing.T) {
	service := NewService(new(MockFetcher), slog.Default())

	t.Run("KnownCity", func(t *testing.T) {
		g := service.FallbackGuide("成都", 1, 3)
		assert.Equal(t, "成都", g.City)
		assert.Equal(t, season.Winter, g.Season)
		assert.Equal(t, "104.0668,30.5728", g.Coordinates)
		assert.Len(t, g.Attractions, 3)
		assert.Len(t, g.Itinerary, 3)
		assert.NotEmpty(t, g.FoodRecommendations)
		assert.NotEmpty(t, g.Note)
	})

	t.Run("UnknownCityBorrowsDefaultCoordinates", func(t *testing.T) {
		g := service.FallbackGuide("未知小城", 12, 2)
		assert.Equal(t, season.Winter, g.Season)
		assert.Equal(t, "十二月", g.MonthName)
		assert.Equal(t, "116.4074,39.9042", g.Coordinates)
		assert.Equal(t, 500, g.Budget.PerDay)
		assert.Len(t, g.Itinerary, 2)
	})
}
