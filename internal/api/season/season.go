// Package season maps calendar months to travel seasons and the fixed
// per-season weather descriptors used by the guide templates.
package season

import "github.com/wandertrip/travel-roulette/internal/types"

const (
	Spring = "春季"
	Summer = "夏季"
	Autumn = "秋季"
	Winter = "冬季"
)

var monthNames = []string{
	"一月", "二月", "三月", "四月", "五月", "六月",
	"七月", "八月", "九月", "十月", "十一月", "十二月",
}

// Of returns the season for a month. Months 3-5 are spring, 6-8 summer,
// 9-11 autumn and everything else winter, so the twelve months form a total,
// non-overlapping partition.
func Of(month int) string {
	switch {
	case month >= 3 && month <= 5:
		return Spring
	case month >= 6 && month <= 8:
		return Summer
	case month >= 9 && month <= 11:
		return Autumn
	default:
		return Winter
	}
}

// MonthName returns the Chinese month name. Out-of-range input falls back to
// January's name; callers rely on this never failing.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return monthNames[0]
	}
	return monthNames[month-1]
}

var weatherBySeason = map[string]types.WeatherInfo{
	Spring: {
		Temperature:   "15-25°C",
		Precipitation: "较少",
		Wind:          "微风，偶尔有阵风",
		DressingTips:  "轻薄外套、长袖衬衫、舒适鞋",
	},
	Summer: {
		Temperature:   "25-35°C",
		Precipitation: "较多",
		Wind:          "东南风，风力较小",
		DressingTips:  "短袖、防晒衣、太阳镜、遮阳帽",
	},
	Autumn: {
		Temperature:   "10-20°C",
		Precipitation: "适中",
		Wind:          "北风，风力适中",
		DressingTips:  "外套、长裤、围巾、舒适鞋",
	},
	Winter: {
		Temperature:   "-5-10°C",
		Precipitation: "较少",
		Wind:          "西北风，风力较大",
		DressingTips:  "羽绒服、毛衣、帽子、手套、保暖鞋",
	},
}

// defaultWeather is returned for unrecognized season values.
var defaultWeather = types.WeatherInfo{
	Temperature:   "15-25°C",
	Precipitation: "适中",
	Wind:          "微风",
	DressingTips:  "舒适休闲装",
}

// Weather returns the fixed weather record for a season.
func Weather(s string) types.WeatherInfo {
	if w, ok := weatherBySeason[s]; ok {
		return w
	}
	return defaultWeather
}

var weatherTipsBySeason = map[string][]string{
	Spring: {
		"春季温差大，建议洋葱式穿衣法",
		"注意花粉过敏，可备过敏药",
		"春雨偶至，记得带伞",
	},
	Summer: {
		"注意防晒防暑，多补充水分",
		"避免中午长时间户外活动",
		"准备防蚊虫用品",
	},
	Autumn: {
		"秋季干燥，注意保湿",
		"早晚温差大，注意增减衣物",
		"秋季天高气爽，适合户外活动",
	},
	Winter: {
		"注意防寒保暖，特别是头部和手脚",
		"雪天注意防滑，穿防滑鞋",
		"室内外温差大，注意适应",
	},
}

// WeatherTips returns the per-season travel tips, with a single generic tip
// for unrecognized seasons.
func WeatherTips(s string) []string {
	if tips, ok := weatherTipsBySeason[s]; ok {
		return tips
	}
	return []string{"注意天气变化，合理安排行程"}
}
