package books

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
	return NewClient(config.BooksConfig{APIKey: "test-key", BaseURL: srv.URL})
}

func TestSearchVolumes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "go programming tutorial", q.Get("q"))
		assert.Equal(t, "relevance", q.Get("orderBy"))
		assert.Equal(t, "3", q.Get("maxResults"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"volumeInfo": {"title": "The Go Programming Language", "description": "Classic", "authors": ["Donovan", "Kernighan"], "infoLink": "https://books.example/1", "averageRating": 4.5}},
				{"volumeInfo": {}}
			]
		}`))
	})

	volumes, err := client.SearchVolumes(context.Background(), "go programming tutorial", 3)

	require.NoError(t, err)
	require.Len(t, volumes, 2)
	assert.Equal(t, "The Go Programming Language", volumes[0].Title)
	assert.Equal(t, []string{"Donovan", "Kernighan"}, volumes[0].Authors)
	assert.Equal(t, 4.5, volumes[0].AverageRating)
	// 缺字段的条目原样保留，兜底展示由调用方负责。
	assert.Empty(t, volumes[1].Title)
}

func TestSearchVolumesEmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	volumes, err := client.SearchVolumes(context.Background(), "nothing", 3)

	require.NoError(t, err)
	assert.Empty(t, volumes)
}

func TestSearchVolumesNon200(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.SearchVolumes(context.Background(), "go", 3)
	assert.Error(t, err)
}
