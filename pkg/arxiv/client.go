// Package arxiv 提供了一个与 arXiv 查询 API 交互的客户端。
// arXiv 返回 Atom XML，这里解析为精简的条目结构。
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"learn-mate-go/internal/config"
)

const defaultBaseURL = "http://export.arxiv.org/api"

// Entry 是一条论文检索结果，ID 即论文摘要页链接。
type Entry struct {
	ID      string
	Title   string
	Summary string
	Authors []string
}

// Client 是 arXiv 查询 API 的客户端。
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 arXiv 客户端实例。
func NewClient(cfg config.ArxivConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// feed 对应 Atom 响应的结构。
type feed struct {
	Entries []struct {
		ID      string `xml:"id"`
		Title   string `xml:"title"`
		Summary string `xml:"summary"`
		Authors []struct {
			Name string `xml:"name"`
		} `xml:"author"`
	} `xml:"entry"`
}

// Search 按相关度检索论文。
func (c *Client) Search(ctx context.Context, topic string, maxResults int) ([]Entry, error) {
	params := url.Values{}
	params.Set("search_query", fmt.Sprintf("all:%q", topic))
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "relevance")

	reqURL := c.baseURL + "/query?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建 arXiv 请求失败: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("调用 arXiv API 失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API 返回非 200 状态码: %s", resp.Status)
	}

	var f feed
	if err := xml.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("解析 arXiv Atom 响应失败: %w", err)
	}

	entries := make([]Entry, 0, len(f.Entries))
	for _, e := range f.Entries {
		authors := make([]string, 0, len(e.Authors))
		for _, a := range e.Authors {
			authors = append(authors, strings.TrimSpace(a.Name))
		}
		entries = append(entries, Entry{
			ID:      strings.TrimSpace(e.ID),
			Title:   collapseWhitespace(e.Title),
			Summary: collapseWhitespace(e.Summary),
			Authors: authors,
		})
	}
	return entries, nil
}

// collapseWhitespace 将 Atom 字段中的换行与连续空白折叠为单个空格。
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
