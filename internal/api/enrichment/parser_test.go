package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAIContent(t *testing.T) {
	t.Run("FencedJSONBlock", func(t *testing.T) {
		raw := "攻略如下：\n```json\n{\"ai_overview\": \"杭州三日游\"}\n```\n祝旅途愉快"

		got := extractAIContent(raw)
		require.NotNil(t, got.Parsed)
		assert.Equal(t, "杭州三日游", got.Parsed["ai_overview"])
		assert.Empty(t, got.Raw)
	})

	t.Run("FencePreferredOverBareObject", func(t *testing.T) {
		raw := "{\"from\": \"prefix\"}\n```json\n{\"from\": \"fence\"}\n```"

		got := extractAIContent(raw)
		require.NotNil(t, got.Parsed)
		assert.Equal(t, "fence", got.Parsed["from"])
	})

	t.Run("BareObjectWithoutFence", func(t *testing.T) {
		raw := "以下是结果 {\"must_visit\": []} 以上"

		got := extractAIContent(raw)
		require.NotNil(t, got.Parsed)
		assert.Contains(t, got.Parsed, "must_visit")
	})

	t.Run("UnparseableCandidateFallsBackToRaw", func(t *testing.T) {
		raw := "```json\n{not valid json}\n```"

		got := extractAIContent(raw)
		assert.Nil(t, got.Parsed)
		assert.Equal(t, raw, got.Raw, "raw carries the full original text, not the candidate")
	})

	t.Run("NoJSONAtAll", func(t *testing.T) {
		raw := "纯文本回复，没有任何结构化内容"

		got := extractAIContent(raw)
		assert.Nil(t, got.Parsed)
		assert.Equal(t, raw, got.Raw)
	})
}
