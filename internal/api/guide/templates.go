package guide

import (
	"fmt"

	"github.com/wandertrip/travel-roulette/internal/api/season"
	"github.com/wandertrip/travel-roulette/internal/types"
)

// Deterministic content generators. Everything in this file is pure: the same
// city/season/duration always produces the same guide sections.

func overview(city, monthName, seasonName string, duration int) string {
	return fmt.Sprintf("%s在%s（%s）是个理想的旅行目的地，适合进行%d天的深度游玩。%s拥有丰富的旅游资源，包括历史古迹、自然风光和地道美食。",
		city, monthName, seasonName, duration, city)
}

func fallbackOverview(city, monthName string, duration int) string {
	return fmt.Sprintf("%s在%s是个不错的旅行选择。这里四季分明，旅游资源丰富，适合进行%d天的深度游玩。",
		city, monthName, duration)
}

// Curated dishes for the handful of cities everyone asks about; every other
// city gets four generically worded entries.
var cityFoods = map[string][]string{
	"北京": {"北京烤鸭", "炸酱面", "豆汁焦圈", "卤煮火烧"},
	"上海": {"小笼包", "生煎包", "本帮菜", "蟹粉汤包"},
	"广州": {"早茶点心", "烧腊", "煲仔饭", "双皮奶"},
	"成都": {"火锅", "串串香", "担担面", "龙抄手"},
	"西安": {"肉夹馍", "凉皮", "羊肉泡馍", "biangbiang面"},
}

func localFoodSuggestions(city string) []types.FoodRecommendation {
	foods, ok := cityFoods[city]
	if !ok {
		foods = []string{
			city + "特色菜",
			city + "地道小吃",
			city + "传统美食",
			city + "时令食材",
		}
	}

	recommendations := make([]types.FoodRecommendation, 0, len(foods))
	for _, food := range foods {
		recommendations = append(recommendations, types.FoodRecommendation{
			Name:                   food,
			Description:            fmt.Sprintf("%s代表性美食，不可错过", city),
			RecommendedRestaurants: "当地老字号或热门餐厅",
			PriceRange:             "30-100元/人",
		})
	}
	return recommendations
}

var dayThemes = []string{
	"历史文化探索",
	"自然风光游览",
	"美食体验之旅",
	"当地生活体验",
	"休闲放松日",
}

// itineraryByDays produces exactly one plan per day. Themes rotate through
// the fixed five-entry cycle; only the evening block varies by season.
func itineraryByDays(city string, duration int, seasonName string) []types.DayPlan {
	eveningDescription := "室内活动或休息"
	if seasonName == season.Summer {
		eveningDescription = "夜游或户外活动"
	}

	plans := make([]types.DayPlan, 0, duration)
	for day := 1; day <= duration; day++ {
		theme := dayThemes[(day-1)%len(dayThemes)]
		plans = append(plans, types.DayPlan{
			Day:   day,
			Title: fmt.Sprintf("第%d天：%s%s", day, city, theme),
			Theme: theme,
			Activities: []types.ItineraryActivity{
				{
					Time:        "09:00-12:00",
					Activity:    "主要景点游览",
					Description: fmt.Sprintf("参观%s的标志性景点或参加%s相关活动", city, theme),
				},
				{
					Time:        "12:00-14:00",
					Activity:    "午餐",
					Description: "品尝当地特色美食",
				},
				{
					Time:        "14:00-17:00",
					Activity:    "深度体验",
					Description: "探索当地文化或自然景观",
				},
				{
					Time:        "18:00-20:00",
					Activity:    "晚餐",
					Description: "享受当地美食，体验餐饮文化",
				},
				{
					Time:        "20:00-21:00",
					Activity:    "夜游或休息",
					Description: eveningDescription,
				},
			},
			Tips: []string{
				"穿着舒适的鞋子",
				"携带足够的水和零食",
				"提前查看天气预报",
			},
		})
	}
	return plans
}

var (
	tier1Cities = map[string]struct{}{"北京": {}, "上海": {}, "广州": {}, "深圳": {}}
	tier2Cities = map[string]struct{}{"成都": {}, "杭州": {}, "南京": {}, "武汉": {}, "西安": {}}
)

const (
	tier1DailyBudget = 1000
	tier2DailyBudget = 700
	otherDailyBudget = 500
)

func dailyBudgetFor(city string) int {
	if _, ok := tier1Cities[city]; ok {
		return tier1DailyBudget
	}
	if _, ok := tier2Cities[city]; ok {
		return tier2DailyBudget
	}
	return otherDailyBudget
}

// realisticBudget splits total as 35/25/25/10/5 percent, each share floored.
// The shares may sum to slightly less than the total; the drift is accepted
// rather than reconciled.
func realisticBudget(duration int, city string) types.Budget {
	perDay := dailyBudgetFor(city)
	total := perDay * duration

	return types.Budget{
		Total:  total,
		PerDay: perDay,
		Breakdown: types.BudgetBreakdown{
			Accommodation:  total * 35 / 100,
			Transportation: total * 25 / 100,
			Food:           total * 25 / 100,
			Activities:     total * 10 / 100,
			Shopping:       total * 5 / 100,
		},
		Tips: []string{
			fmt.Sprintf("在%s旅行，预算可以根据个人需求调整", city),
			"提前预订住宿和交通可以节省费用",
			"尝试当地小吃比高档餐厅更经济实惠",
		},
	}
}

// processAttractions normalizes fetched POIs for the guide, capping at eight.
// An empty input is replaced by three generic entries so the attractions and
// itinerary sections are never empty.
func processAttractions(attractions []types.Attraction, city string) []types.ProcessedAttraction {
	if len(attractions) == 0 {
		return []types.ProcessedAttraction{
			{
				Name:            city + "标志性景点",
				Type:            "地标",
				Description:     fmt.Sprintf("%s最著名的旅游景点，是游客必去之地", city),
				RecommendedTime: "2-3小时",
				BestTime:        "全天",
				TicketPrice:     "50-100元",
			},
			{
				Name:            city + "文化遗址",
				Type:            "历史文化",
				Description:     fmt.Sprintf("了解%s历史文化的重要场所", city),
				RecommendedTime: "3-4小时",
				BestTime:        "白天",
				TicketPrice:     "免费或30-80元",
			},
			{
				Name:            city + "自然公园",
				Type:            "自然风光",
				Description:     fmt.Sprintf("欣赏%s自然风光的好去处", city),
				RecommendedTime: "2-3小时",
				BestTime:        "早晨或傍晚",
				TicketPrice:     "免费",
			},
		}
	}

	if len(attractions) > 8 {
		attractions = attractions[:8]
	}
	processed := make([]types.ProcessedAttraction, 0, len(attractions))
	for _, att := range attractions {
		description := fmt.Sprintf("%s热门景点", city)
		if att.Address != "" {
			description = fmt.Sprintf("%s位于%s", att.Name, att.Address)
		}
		attractionType := att.Type
		if attractionType == "" {
			attractionType = "景点"
		}
		processed = append(processed, types.ProcessedAttraction{
			Name:            att.Name,
			Type:            attractionType,
			Description:     description,
			RecommendedTime: "2-3小时",
			BestTime:        "全天",
			TicketPrice:     "免费或30-100元",
		})
	}
	return processed
}

func accommodationSuggestions(city string) []string {
	return []string{
		city + "市中心酒店 - 交通便利，购物餐饮方便",
		city + "特色民宿 - 体验当地生活，价格实惠",
		city + "景区附近住宿 - 游玩方便，节省交通时间",
		city + "商务酒店 - 设施齐全，服务规范",
	}
}

func localTips(city string) []string {
	return []string{
		fmt.Sprintf("在%s旅行，建议下载当地交通APP", city),
		fmt.Sprintf("尝试与%s当地人交流，了解更多地道玩法", city),
		"注意保管好个人财物，特别是在人多的地方",
		fmt.Sprintf("尊重%s当地的风俗习惯", city),
		"保持环保意识，不乱扔垃圾",
	}
}

func transportationTips(city string) []string {
	return []string{
		fmt.Sprintf("%s公共交通发达，建议使用地铁和公交", city),
		"下载当地交通APP，方便查询线路和班次",
		"避开早晚高峰时段出行",
		"使用网约车时注意选择正规平台",
		fmt.Sprintf("了解%s的交通卡政策，可以节省费用", city),
	}
}
