// Package types holds the request and response shapes shared across the API
// handlers and services.
package types

import "time"

// GuideRequest is the body of POST /guide. The provider keys travel with the
// request rather than living in server config so each caller can bring its
// own quota. Action "check_cache" switches the request onto the polling path.
type GuideRequest struct {
	City      string `json:"city"`
	Month     int    `json:"month"`
	Duration  int    `json:"duration"`
	AmapKey   string `json:"amapKey"`
	DoubaoKey string `json:"doubaoKey"`
	Action    string `json:"action"`
}

// CityInfo is a geocoded city: comma-separated "lon,lat" coordinates plus the
// administrative code. The static default entries carry adcode "000000".
type CityInfo struct {
	Name        string `json:"name"`
	Coordinates string `json:"coordinates"`
	Adcode      string `json:"adcode"`
	Level       string `json:"level"`
}

// Attraction is a raw POI as returned by place search.
type Attraction struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Coordinates string `json:"coordinates"`
	Address     string `json:"address"`
}

// ProcessedAttraction is an attraction normalized for guide display.
type ProcessedAttraction struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	Description     string `json:"description"`
	RecommendedTime string `json:"recommended_time"`
	BestTime        string `json:"best_time"`
	TicketPrice     string `json:"ticket_price"`
}

type WeatherInfo struct {
	Temperature   string `json:"temperature"`
	Precipitation string `json:"precipitation"`
	Wind          string `json:"wind"`
	DressingTips  string `json:"dressing_tips"`
}

type ItineraryActivity struct {
	Time        string `json:"time"`
	Activity    string `json:"activity"`
	Description string `json:"description"`
}

type DayPlan struct {
	Day        int                 `json:"day"`
	Title      string              `json:"title"`
	Theme      string              `json:"theme"`
	Activities []ItineraryActivity `json:"activities"`
	Tips       []string            `json:"tips"`
}

type FoodRecommendation struct {
	Name                   string `json:"name"`
	Description            string `json:"description"`
	RecommendedRestaurants string `json:"recommended_restaurants"`
	PriceRange             string `json:"price_range"`
}

type BudgetBreakdown struct {
	Accommodation  int `json:"accommodation"`
	Transportation int `json:"transportation"`
	Food           int `json:"food"`
	Activities     int `json:"activities"`
	Shopping       int `json:"shopping"`
}

type Budget struct {
	Total     int             `json:"total"`
	PerDay    int             `json:"per_day"`
	Breakdown BudgetBreakdown `json:"breakdown"`
	Tips      []string        `json:"tips"`
}

type QuickStats struct {
	AttractionsCount int    `json:"attractions_count"`
	DurationDays     int    `json:"duration_days"`
	BestSeason       string `json:"best_season"`
}

// BasicGuide is the synchronous guide payload. The sections from
// AccommodationSuggestions onward are omitted by the reduced fallback guide;
// AIStatus and CacheKey are stamped by the handler, not assembly.
type BasicGuide struct {
	City                     string                `json:"city"`
	Month                    int                   `json:"month"`
	MonthName                string                `json:"month_name"`
	Season                   string                `json:"season"`
	Duration                 int                   `json:"duration"`
	Coordinates              string                `json:"coordinates"`
	Overview                 string                `json:"overview"`
	WeatherInfo              WeatherInfo           `json:"weather_info"`
	Attractions              []ProcessedAttraction `json:"attractions"`
	Itinerary                []DayPlan             `json:"itinerary"`
	FoodRecommendations      []FoodRecommendation  `json:"food_recommendations"`
	Budget                   Budget                `json:"budget"`
	AccommodationSuggestions []string              `json:"accommodation_suggestions,omitempty"`
	LocalTips                []string              `json:"local_tips,omitempty"`
	WeatherTips              []string              `json:"weather_tips,omitempty"`
	TransportationTips       []string              `json:"transportation_tips,omitempty"`
	QuickStats               *QuickStats           `json:"quick_stats,omitempty"`
	AIStatus                 string                `json:"ai_status,omitempty"`
	CacheKey                 string                `json:"cache_key,omitempty"`
	Note                     string                `json:"note,omitempty"`
	GeneratedAt              time.Time             `json:"generated_at"`
}
