package enrichment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoubaoClientComplete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotReq chatCompletionRequest
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]string{"role": "assistant", "content": "生成的攻略内容"}},
				},
			})
		}))
		defer server.Close()

		client := NewDoubaoClient(server.URL, "")
		content, err := client.Complete(context.Background(), "test-key", "系统提示", "用户提示")
		require.NoError(t, err)
		assert.Equal(t, "生成的攻略内容", content)

		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t, defaultModel, gotReq.Model)
		assert.InDelta(t, 0.7, gotReq.Temperature, 0.001)
		assert.Equal(t, 1500, gotReq.MaxTokens)
		require.Len(t, gotReq.Messages, 2)
		assert.Equal(t, "system", gotReq.Messages[0].Role)
		assert.Equal(t, "user", gotReq.Messages[1].Role)
	})

	t.Run("NonOKStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewDoubaoClient(server.URL, "")
		_, err := client.Complete(context.Background(), "k", "s", "u")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 429")
	})

	t.Run("EmptyChoices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
		}))
		defer server.Close()

		client := NewDoubaoClient(server.URL, "")
		_, err := client.Complete(context.Background(), "k", "s", "u")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "返回格式错误")
	})
}
