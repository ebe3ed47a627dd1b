package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIContentJSON(t *testing.T) {
	t.Run("ParsedVariant", func(t *testing.T) {
		content := NewParsedContent(map[string]any{"ai_overview": "概况", "must_visit": []any{"景点1"}})

		data, err := json.Marshal(content)
		require.NoError(t, err)
		assert.JSONEq(t, `{"ai_overview": "概况", "must_visit": ["景点1"]}`, string(data))

		var back AIContent
		require.NoError(t, json.Unmarshal(data, &back))
		assert.True(t, back.IsParsed())
		assert.Equal(t, "概况", back.Parsed["ai_overview"])
	})

	t.Run("RawVariant", func(t *testing.T) {
		content := NewRawContent("模型返回的纯文本")

		data, err := json.Marshal(content)
		require.NoError(t, err)
		assert.JSONEq(t, `{"raw_content": "模型返回的纯文本"}`, string(data))

		var back AIContent
		require.NoError(t, json.Unmarshal(data, &back))
		assert.False(t, back.IsParsed())
		assert.Equal(t, "模型返回的纯文本", back.Raw)
	})
}
