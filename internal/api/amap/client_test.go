package amap

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, slog.Default())
}

func TestGeocode(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v3/geocode/geo", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			assert.Equal(t, "杭州", r.URL.Query().Get("address"))
			w.Write([]byte(`{"status":"1","geocodes":[{"formatted_address":"浙江省杭州市","location":"120.1551,30.2741","adcode":"330100","level":"市"}]}`))
		})

		info, err := client.Geocode(context.Background(), "test-key", "杭州")
		require.NoError(t, err)
		assert.Equal(t, "浙江省杭州市", info.Name)
		assert.Equal(t, "120.1551,30.2741", info.Coordinates)
		assert.Equal(t, "330100", info.Adcode)
	})

	t.Run("RejectedStatus", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"0","info":"INVALID_USER_KEY"}`))
		})

		_, err := client.Geocode(context.Background(), "bad-key", "杭州")
		assert.ErrorContains(t, err, "INVALID_USER_KEY")
	})

	t.Run("HTTPError", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.Geocode(context.Background(), "k", "杭州")
		assert.ErrorContains(t, err, "HTTP 502")
	})
}

func TestSearchAttractions(t *testing.T) {
	t.Run("CapsAtTenAndFillsType", func(t *testing.T) {
		body := `{"status":"1","pois":[`
		for i := 0; i < 12; i++ {
			if i > 0 {
				body += ","
			}
			body += `{"name":"景点","type":"","location":"1,2","address":"某路"}`
		}
		body += `]}`
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v3/place/text", r.URL.Path)
			w.Write([]byte(body))
		})

		attractions, err := client.SearchAttractions(context.Background(), "k", "苏州")
		require.NoError(t, err)
		assert.Len(t, attractions, 10)
		assert.Equal(t, "景点", attractions[0].Type)
		assert.Equal(t, "某路", attractions[0].Address)
	})

	t.Run("EmptyResult", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"1","pois":[]}`))
		})

		attractions, err := client.SearchAttractions(context.Background(), "k", "苏州")
		require.NoError(t, err)
		assert.Empty(t, attractions)
	})
}

func TestListCities(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/config/district", r.URL.Path)
		w.Write([]byte(`{"status":"1","districts":[
			{"name":"中国","level":"country","districts":[
				{"name":"浙江省","level":"province","districts":[
					{"name":"杭州市","level":"city","districts":[]},
					{"name":"宁波市","level":"city","districts":[]}
				]},
				{"name":"江苏省","level":"province","districts":[
					{"name":"南京市","level":"city","districts":[]},
					{"name":"杭州市","level":"city","districts":[]}
				]}
			]}
		]}`))
	})

	cities, err := client.ListCities(context.Background(), "k")
	require.NoError(t, err)
	// Deduplicated and sorted.
	assert.Equal(t, []string{"南京市", "宁波市", "杭州市"}, cities)
}

func TestFetcherFallbacks(t *testing.T) {
	t.Run("MissingKeySkipsCall", func(t *testing.T) {
		called := false
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		info := client.CityInfo(context.Background(), "", "兰州")
		assert.False(t, called)
		assert.Equal(t, "兰州", info.Name)
		assert.Equal(t, "000000", info.Adcode)
		assert.Nil(t, client.Attractions(context.Background(), "", "兰州"))
		assert.False(t, called)
	})

	t.Run("ProviderFailureFallsBack", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		info := client.CityInfo(context.Background(), "k", "成都")
		assert.Equal(t, "104.0668,30.5728", info.Coordinates)
		assert.Nil(t, client.Attractions(context.Background(), "k", "成都"))
	})

	t.Run("UnknownCityGetsBeijingCoordinates", func(t *testing.T) {
		info := DefaultCityInfo("不存在市")
		assert.Equal(t, "116.4074,39.9042", info.Coordinates)
		assert.Equal(t, "city", info.Level)
	})
}
