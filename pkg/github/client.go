// Package github 提供了一个与 GitHub 仓库搜索 API 交互的客户端。
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"learn-mate-go/internal/config"
)

const defaultBaseURL = "https://api.github.com"

// Repo 是一条仓库搜索结果。
type Repo struct {
	ID          int64
	Name        string
	Description string
	Owner       string
	HTMLURL     string
	Stars       int
}

// Client 是 GitHub 搜索 API 的客户端。
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient 创建一个新的 GitHub 客户端实例。
func NewClient(cfg config.GitHubConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   cfg.Token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// searchResponse 对应 search/repositories 接口的响应结构。
type searchResponse struct {
	Items []struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		HTMLURL     string `json:"html_url"`
		Stars       int    `json:"stargazers_count"`
		Owner       struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"items"`
}

// SearchRepositories 按 star 数倒序搜索仓库。
func (c *Client) SearchRepositories(ctx context.Context, query string, perPage int) ([]Repo, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(perPage))

	reqURL := c.baseURL + "/search/repositories?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建 GitHub 请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "learn-mate-go")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("调用 GitHub API 失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API 返回非 200 状态码: %s", resp.Status)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("解析 GitHub 响应失败: %w", err)
	}

	repos := make([]Repo, 0, len(searchResp.Items))
	for _, it := range searchResp.Items {
		repos = append(repos, Repo{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Owner:       it.Owner.Login,
			HTMLURL:     it.HTMLURL,
			Stars:       it.Stars,
		})
	}
	return repos, nil
}
