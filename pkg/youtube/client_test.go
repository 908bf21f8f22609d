package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learn-mate-go/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.YouTubeConfig{APIKey: "test-key", BaseURL: srv.URL})
}

func TestSearchVideos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "viewCount", q.Get("order"))
		assert.Equal(t, "medium", q.Get("videoDuration"))
		assert.Equal(t, "test-key", q.Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"id": {"videoId": "v1"}, "snippet": {"title": "Go Intro", "description": "Learn Go", "channelTitle": "GoDev"}},
				{"id": {}, "snippet": {"title": "missing id"}}
			]
		}`))
	})

	items, err := client.SearchVideos(context.Background(), "go tutorial", 3)

	require.NoError(t, err)
	// 没有 videoId 的条目被跳过。
	require.Len(t, items, 1)
	assert.Equal(t, "v1", items[0].ID)
	assert.Equal(t, "Go Intro", items[0].Title)
	assert.Equal(t, "GoDev", items[0].ChannelTitle)
}

func TestSearchPlaylists(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "playlist", r.URL.Query().Get("type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"id": {"playlistId": "p1"}, "snippet": {"title": "Go Course", "channelTitle": "GoDev"}}
			]
		}`))
	})

	items, err := client.SearchPlaylists(context.Background(), "go course", 3)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
}

func TestSearchNon200(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.SearchVideos(context.Background(), "go", 3)
	assert.Error(t, err)
}

func TestVideoViewCounts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "v1,v2", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"id": "v1", "statistics": {"viewCount": "1234567"}},
				{"id": "v2", "statistics": {"viewCount": "not-a-number"}}
			]
		}`))
	})

	counts, err := client.VideoViewCounts(context.Background(), []string{"v1", "v2"})

	require.NoError(t, err)
	assert.Equal(t, int64(1234567), counts["v1"])
	// 解析失败的条目缺席，由调用方降级展示。
	_, ok := counts["v2"]
	assert.False(t, ok)
}

func TestVideoViewCountsEmptyInput(t *testing.T) {
	client := NewClient(config.YouTubeConfig{APIKey: "test-key", BaseURL: "http://127.0.0.1:0"})

	counts, err := client.VideoViewCounts(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, counts)
}
