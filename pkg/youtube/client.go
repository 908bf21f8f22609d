// Package youtube 提供了一个与 YouTube Data API v3 交互的客户端。
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"learn-mate-go/internal/config"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// SearchItem 是一条搜索结果，ID 依请求类型为 videoId 或 playlistId。
type SearchItem struct {
	ID           string
	Title        string
	Description  string
	ChannelTitle string
}

// Client 是 YouTube Data API 的客户端。
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 YouTube 客户端实例。
func NewClient(cfg config.YouTubeConfig) *Client {
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

// searchID 对应 search.list 结果中的多态 id 字段。
type searchID struct {
	VideoID    string `json:"videoId"`
	PlaylistID string `json:"playlistId"`
}

// searchResponse 对应 search.list 接口的响应结构。
type searchResponse struct {
	Items []struct {
		ID      searchID `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

// videosResponse 对应 videos.list 接口的响应结构。
type videosResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// SearchVideos 按播放量倒序搜索视频。
func (c *Client) SearchVideos(ctx context.Context, query string, maxResults int) ([]SearchItem, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("order", "viewCount")
	params.Set("videoDuration", "medium")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("key", c.apiKey)
	return c.search(ctx, params, "video")
}

// SearchPlaylists 搜索播放列表。
func (c *Client) SearchPlaylists(ctx context.Context, query string, maxResults int) ([]SearchItem, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "playlist")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("key", c.apiKey)
	return c.search(ctx, params, "playlist")
}

func (c *Client) search(ctx context.Context, params url.Values, kind string) ([]SearchItem, error) {
	reqURL := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建 YouTube 请求失败: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("调用 YouTube API 失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("YouTube API 返回非 200 状态码: %s", resp.Status)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("解析 YouTube 响应失败: %w", err)
	}

	items := make([]SearchItem, 0, len(searchResp.Items))
	for _, it := range searchResp.Items {
		id := it.ID.VideoID
		if kind == "playlist" {
			id = it.ID.PlaylistID
		}
		if id == "" {
			continue
		}
		items = append(items, SearchItem{
			ID:           id,
			Title:        it.Snippet.Title,
			Description:  it.Snippet.Description,
			ChannelTitle: it.Snippet.ChannelTitle,
		})
	}
	return items, nil
}

// VideoViewCounts 批量获取视频的播放量，键为视频 ID。
func (c *Client) VideoViewCounts(ctx context.Context, videoIDs []string) (map[string]int64, error) {
	if len(videoIDs) == 0 {
		return map[string]int64{}, nil
	}

	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", strings.Join(videoIDs, ","))
	params.Set("key", c.apiKey)

	reqURL := c.baseURL + "/videos?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建 YouTube 请求失败: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("调用 YouTube API 失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("YouTube API 返回非 200 状态码: %s", resp.Status)
	}

	var videosResp videosResponse
	if err := json.NewDecoder(resp.Body).Decode(&videosResp); err != nil {
		return nil, fmt.Errorf("解析 YouTube 响应失败: %w", err)
	}

	counts := make(map[string]int64, len(videosResp.Items))
	for _, it := range videosResp.Items {
		if n, err := strconv.ParseInt(it.Statistics.ViewCount, 10, 64); err == nil {
			counts[it.ID] = n
		}
	}
	return counts, nil
}
