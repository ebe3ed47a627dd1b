package enrichment

import (
	"fmt"

	"github.com/wandertrip/travel-roulette/internal/api/season"
)

const systemPrompt = "你是一个经验丰富的旅游规划师，请用简洁实用的语言提供旅游建议。"

func buildPrompt(city string, month, duration int) string {
	monthName := season.MonthName(month)
	seasonName := season.Of(month)

	return fmt.Sprintf(`作为专业旅游规划师，请为%s的%s（%s）%d天旅行生成一份实用攻略。

要求：
1. 重点推荐3-5个必去景点
2. 提供%d天的行程安排
3. 推荐当地特色美食和餐厅
4. 给出实用贴士和注意事项
5. 预算建议

请用简洁的JSON格式返回，结构如下：
{
  "ai_overview": "100字内概况",
  "must_visit": ["景点1", "景点2", "景点3"],
  "day_plans": [
    {"day": 1, "morning": "活动", "afternoon": "活动", "evening": "活动"}
  ],
  "food_highlights": [
    {"name": "美食", "description": "特色", "where": "推荐地点"}
  ],
  "pro_tips": ["贴士1", "贴士2", "贴士3"],
  "estimated_budget": "人均预算"
}`, city, monthName, seasonName, duration, duration)
}
