// Package books 提供了一个与 Google Books volumes API 交互的客户端。
package books

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

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// Volume 是一条图书检索结果。
type Volume struct {
	Title         string
	Description   string
	Authors       []string
	InfoLink      string
	AverageRating float64
}

// Client 是 Google Books API 的客户端。
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 Google Books 客户端实例。
func NewClient(cfg config.BooksConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// volumesResponse 对应 volumes 接口的响应结构。
type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Description   string   `json:"description"`
			Authors       []string `json:"authors"`
			InfoLink      string   `json:"infoLink"`
			AverageRating float64  `json:"averageRating"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// SearchVolumes 按相关度搜索图书。
func (c *Client) SearchVolumes(ctx context.Context, query string, maxResults int) ([]Volume, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("orderBy", "relevance")
	params.Set("key", c.apiKey)

	reqURL := c.baseURL + "/volumes?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建 Google Books 请求失败: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("调用 Google Books API 失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google Books API 返回非 200 状态码: %s", resp.Status)
	}

	var volumesResp volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&volumesResp); err != nil {
		return nil, fmt.Errorf("解析 Google Books 响应失败: %w", err)
	}

	volumes := make([]Volume, 0, len(volumesResp.Items))
	for _, it := range volumesResp.Items {
		volumes = append(volumes, Volume{
			Title:         it.VolumeInfo.Title,
			Description:   it.VolumeInfo.Description,
			Authors:       it.VolumeInfo.Authors,
			InfoLink:      it.VolumeInfo.InfoLink,
			AverageRating: it.VolumeInfo.AverageRating,
		})
	}
	return volumes, nil
}
