package amap

import "github.com/wandertrip/travel-roulette/internal/types"

// Static coordinates for major cities, used whenever geocoding is skipped or
// fails. Unknown cities borrow Beijing's coordinates so the map always has
// something to center on.
var defaultCoordinates = map[string]string{
	"北京": "116.4074,39.9042",
	"上海": "121.4737,31.2304",
	"广州": "113.2644,23.1291",
	"深圳": "114.0579,22.5431",
	"成都": "104.0668,30.5728",
	"杭州": "120.1551,30.2741",
	"南京": "118.7969,32.0603",
	"武汉": "114.2986,30.5844",
	"西安": "108.9480,34.2632",
	"重庆": "106.5516,29.5630",
}

const fallbackCoordinates = "116.4074,39.9042"

// DefaultCityInfo synthesizes a CityInfo from the static coordinate table.
func DefaultCityInfo(city string) types.CityInfo {
	coords, ok := defaultCoordinates[city]
	if !ok {
		coords = fallbackCoordinates
	}
	return types.CityInfo{
		Name:        city,
		Coordinates: coords,
		Adcode:      "000000",
		Level:       "city",
	}
}
