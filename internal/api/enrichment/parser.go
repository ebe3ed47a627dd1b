package enrichment

import (
	"encoding/json"
	"regexp"

	"github.com/wandertrip/travel-roulette/internal/types"
)

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\n(.*?)\n```")
	braceObjRe   = regexp.MustCompile(`(?s)\{.*\}`)
)

// extractAIContent turns raw model output into the tagged content variant.
// A fenced ```json block is preferred; failing that, the first brace-delimited
// object in the text. If the chosen candidate does not parse, the full raw
// text is carried verbatim instead.
func extractAIContent(content string) *types.AIContent {
	candidate := ""
	if m := fencedJSONRe.FindStringSubmatch(content); m != nil {
		candidate = m[1]
	} else if m := braceObjRe.FindString(content); m != "" {
		candidate = m
	}

	if candidate != "" {
		var obj map[string]any
		if err := json.Unmarshal([]byte(candidate), &obj); err == nil {
			return types.NewParsedContent(obj)
		}
	}
	return types.NewRawContent(content)
}
