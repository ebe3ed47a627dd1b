package types

import (
	"encoding/json"
	"time"
)

// AIContent is the model's answer in one of two variants: a parsed JSON
// object, or the raw text when no parseable structure could be extracted.
// Exactly one of Parsed and Raw is set.
type AIContent struct {
	Parsed map[string]any
	Raw    string
}

func NewParsedContent(obj map[string]any) *AIContent {
	return &AIContent{Parsed: obj}
}

func NewRawContent(text string) *AIContent {
	return &AIContent{Raw: text}
}

func (c *AIContent) IsParsed() bool {
	return c.Parsed != nil
}

// MarshalJSON renders the parsed object as-is; the raw variant is wrapped in
// a raw_content envelope so the client can tell the two apart.
func (c AIContent) MarshalJSON() ([]byte, error) {
	if c.Parsed != nil {
		return json.Marshal(c.Parsed)
	}
	return json.Marshal(map[string]string{"raw_content": c.Raw})
}

func (c *AIContent) UnmarshalJSON(data []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if len(obj) == 1 {
		if raw, ok := obj["raw_content"].(string); ok {
			c.Raw = raw
			c.Parsed = nil
			return nil
		}
	}
	c.Parsed = obj
	c.Raw = ""
	return nil
}

type FallbackDayPlan struct {
	Day       int    `json:"day"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

// EnrichmentFallback is the locally synthesized substitute returned when the
// model fails or times out. All four sections are always populated.
type EnrichmentFallback struct {
	AIOverview string            `json:"ai_overview"`
	MustVisit  []string          `json:"must_visit"`
	DayPlans   []FallbackDayPlan `json:"day_plans"`
	ProTips    []string          `json:"pro_tips"`
}

// EnrichmentResult is the terminal outcome of one enrichment run. On success
// AIContent is set; on failure or timeout Error and Fallback are.
type EnrichmentResult struct {
	AIGenerated bool                `json:"ai_generated"`
	AIContent   *AIContent          `json:"ai_content,omitempty"`
	Error       string              `json:"error,omitempty"`
	Fallback    *EnrichmentFallback `json:"fallback,omitempty"`
	GeneratedAt time.Time           `json:"generated_at,omitzero"`
	ModelUsed   string              `json:"model_used,omitempty"`
}
