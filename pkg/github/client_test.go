package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learn-mate-go/internal/config"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.GitHubConfig{Token: token, BaseURL: srv.URL})
}

func TestSearchRepositories(t *testing.T) {
	client := newTestClient(t, "gh-token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "stars", q.Get("sort"))
		assert.Equal(t, "desc", q.Get("order"))
		assert.Equal(t, "3", q.Get("per_page"))
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"id": 1, "name": "awesome-go", "description": "Curated list", "html_url": "https://github.com/avelino/awesome-go", "stargazers_count": 100000, "owner": {"login": "avelino"}}
			]
		}`))
	})

	repos, err := client.SearchRepositories(context.Background(), "awesome-go in:name", 3)

	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, int64(1), repos[0].ID)
	assert.Equal(t, "awesome-go", repos[0].Name)
	assert.Equal(t, "avelino", repos[0].Owner)
	assert.Equal(t, 100000, repos[0].Stars)
}

func TestSearchRepositoriesNoTokenHeader(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": []}`))
	})

	repos, err := client.SearchRepositories(context.Background(), "go", 3)

	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestSearchRepositoriesRateLimited(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.SearchRepositories(context.Background(), "go", 3)
	assert.Error(t, err)
}
