// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"learn-mate-go/internal/model"
	"learn-mate-go/pkg/arxiv"
	"learn-mate-go/pkg/books"
	"learn-mate-go/pkg/github"
	"learn-mate-go/pkg/llm"
	"learn-mate-go/pkg/log"
	"learn-mate-go/pkg/youtube"
)

// 各提供方的结果数量上限。
const (
	videoLimit    = 3
	playlistLimit = 3
	bookLimit     = 3
	repoLimit     = 3
	paperLimit    = 3
	questionLimit = 3
	docLimit      = 2
)

// 展示用的分组名，输出顺序固定。
const (
	SectionVideos    = "Top Videos"
	SectionPlaylists = "Best Playlists"
	SectionBooks     = "Top Books"
	SectionRepos     = "GitHub Learning Repos"
	SectionPapers    = "Research Papers"
	SectionDocs      = "Official Documentation"
	SectionQuestions = "Common Questions"
)

// VideoSearcher 抽象了 YouTube 客户端，便于测试替换。
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query string, maxResults int) ([]youtube.SearchItem, error)
	SearchPlaylists(ctx context.Context, query string, maxResults int) ([]youtube.SearchItem, error)
	VideoViewCounts(ctx context.Context, videoIDs []string) (map[string]int64, error)
}

// BookSearcher 抽象了 Google Books 客户端。
type BookSearcher interface {
	SearchVolumes(ctx context.Context, query string, maxResults int) ([]books.Volume, error)
}

// RepoSearcher 抽象了 GitHub 客户端。
type RepoSearcher interface {
	SearchRepositories(ctx context.Context, query string, perPage int) ([]github.Repo, error)
}

// PaperSearcher 抽象了 arXiv 客户端。
type PaperSearcher interface {
	Search(ctx context.Context, topic string, maxResults int) ([]arxiv.Entry, error)
}

// ResourceService 定义了学习资源聚合的接口。
type ResourceService interface {
	// Aggregate 并发调用全部提供方适配器，等待所有调用结束后按固定
	// 优先级组装分组列表。单个提供方失败只会导致对应分组缺失。
	Aggregate(ctx context.Context, topic, lang string) []model.ResourceSection
}

type resourceService struct {
	youtube VideoSearcher
	books   BookSearcher
	github  RepoSearcher
	arxiv   PaperSearcher
	llm     llm.Client
}

// NewResourceService 创建一个新的 ResourceService 实例。
func NewResourceService(yt VideoSearcher, bk BookSearcher, gh RepoSearcher, ax PaperSearcher, llmClient llm.Client) ResourceService {
	return &resourceService{
		youtube: yt,
		books:   bk,
		github:  gh,
		arxiv:   ax,
		llm:     llmClient,
	}
}

// Aggregate 实现 ResourceService 接口。
func (s *resourceService) Aggregate(ctx context.Context, topic, lang string) []model.ResourceSection {
	var videos, playlists, bookItems, repos, papers, questions, docs []model.ResourceItem

	// 七路独立调用，互相之间没有依赖；适配器内部吞掉一切错误，
	// 因此 errgroup 不会提前取消。
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { videos = s.fetchVideos(gctx, topic, lang); return nil })
	g.Go(func() error { playlists = s.fetchPlaylists(gctx, topic, lang); return nil })
	g.Go(func() error { bookItems = s.fetchBooks(gctx, topic, lang); return nil })
	g.Go(func() error { repos = s.fetchRepos(gctx, topic, lang); return nil })
	g.Go(func() error { papers = s.fetchPapers(gctx, topic); return nil })
	g.Go(func() error { questions = s.fetchQuestions(gctx, topic, lang); return nil })
	g.Go(func() error { docs = s.fetchDocs(gctx, topic, lang); return nil })
	_ = g.Wait()

	sections := make([]model.ResourceSection, 0, 7)
	appendSection := func(typ string, items []model.ResourceItem) {
		if len(items) > 0 {
			sections = append(sections, model.ResourceSection{Type: typ, Items: items})
		}
	}
	appendSection(SectionVideos, videos)
	appendSection(SectionPlaylists, playlists)
	appendSection(SectionBooks, bookItems)
	appendSection(SectionRepos, repos)
	appendSection(SectionPapers, papers)
	appendSection(SectionDocs, docs)
	appendSection(SectionQuestions, questions)
	return sections
}

// fetchVideos 搜索入门教学视频，并补充播放量信息。
func (s *resourceService) fetchVideos(ctx context.Context, topic, lang string) []model.ResourceItem {
	query := topic + " " + langPrefix(lang) + "tutorial beginner -shorts" + excludeOtherLanguages(lang)
	results, err := s.youtube.SearchVideos(ctx, query, videoLimit)
	if err != nil {
		log.Warnf("[Resource] YouTube 视频搜索失败: %v", err)
		return nil
	}

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	// 播放量获取失败不影响分组本身，降级为 "N/A"。
	counts, err := s.youtube.VideoViewCounts(ctx, ids)
	if err != nil {
		log.Warnf("[Resource] YouTube 播放量获取失败: %v", err)
		counts = nil
	}

	items := make([]model.ResourceItem, 0, len(results))
	for _, r := range results {
		views := "N/A"
		if n, ok := counts[r.ID]; ok {
			views = formatThousands(n)
		}
		items = append(items, model.ResourceItem{
			Title:       r.Title,
			Description: fmt.Sprintf("%s • %s views", truncate(r.Description, 100), views),
			Channel:     r.ChannelTitle,
			Link:        "https://www.youtube.com/watch?v=" + r.ID,
		})
	}
	return items
}

// fetchPlaylists 搜索完整课程播放列表。
func (s *resourceService) fetchPlaylists(ctx context.Context, topic, lang string) []model.ResourceItem {
	query := topic + " " + langPrefix(lang) + "course complete" + excludeOtherLanguages(lang)
	results, err := s.youtube.SearchPlaylists(ctx, query, playlistLimit)
	if err != nil {
		log.Warnf("[Resource] YouTube 播放列表搜索失败: %v", err)
		return nil
	}

	items := make([]model.ResourceItem, 0, len(results))
	for _, r := range results {
		items = append(items, model.ResourceItem{
			Title:       r.Title,
			Description: truncate(r.Description, 150),
			Channel:     r.ChannelTitle,
			Link:        "https://www.youtube.com/playlist?list=" + r.ID,
		})
	}
	return items
}

// fetchBooks 搜索入门图书。
func (s *resourceService) fetchBooks(ctx context.Context, topic, lang string) []model.ResourceItem {
	query := topic + " " + langPrefix(lang) + "programming tutorial" + excludeOtherLanguages(lang)
	volumes, err := s.books.SearchVolumes(ctx, query, bookLimit)
	if err != nil {
		log.Warnf("[Resource] Google Books 搜索失败: %v", err)
		return nil
	}

	items := make([]model.ResourceItem, 0, len(volumes))
	for _, v := range volumes {
		title := v.Title
		if title == "" {
			title = "Unknown Title"
		}
		desc := "Learning guide"
		if v.Description != "" {
			desc = truncate(v.Description, 150)
		}
		authors := "Unknown Author"
		if len(v.Authors) > 0 {
			authors = strings.Join(v.Authors, ", ")
		}
		link := v.InfoLink
		if link == "" {
			link = "#"
		}
		rating := ""
		if v.AverageRating > 0 {
			rating = fmt.Sprintf(" • ⭐ %g", v.AverageRating)
		}
		items = append(items, model.ResourceItem{
			Title:       title,
			Description: fmt.Sprintf("%s • By %s%s", desc, authors, rating),
			Channel:     authors,
			Link:        link,
		})
	}
	return items
}

// fetchRepos 依次尝试多个搜索词检索学习型仓库，按仓库 ID 去重后截断。
func (s *resourceService) fetchRepos(ctx context.Context, topic, lang string) []model.ResourceItem {
	langQualifier := ""
	if lang != "" {
		langQualifier = " language:" + lang
	}
	queries := []string{
		fmt.Sprintf("awesome-%s%s in:name", topic, langQualifier),
		fmt.Sprintf("%s%s tutorial in:name", topic, langQualifier),
		fmt.Sprintf("learn %s%s in:name", topic, langQualifier),
	}

	var all []github.Repo
	for _, q := range queries {
		repos, err := s.github.SearchRepositories(ctx, q, repoLimit)
		if err != nil {
			// 单个搜索词失败跳过，继续尝试下一个。
			log.Warnf("[Resource] GitHub 搜索失败, query=%q: %v", q, err)
			continue
		}
		all = append(all, repos...)
		if len(all) >= repoLimit {
			break
		}
	}

	seen := make(map[int64]bool, len(all))
	items := make([]model.ResourceItem, 0, repoLimit)
	for _, r := range all {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		desc := r.Description
		if desc == "" {
			desc = "Learning repository"
		}
		owner := r.Owner
		if owner == "" {
			owner = "Unknown"
		}
		link := r.HTMLURL
		if link == "" {
			link = "#"
		}
		items = append(items, model.ResourceItem{
			Title:       r.Name,
			Description: fmt.Sprintf("%s • ⭐ %s", desc, formatThousands(int64(r.Stars))),
			Channel:     owner,
			Link:        link,
			Stars:       r.Stars,
		})
		if len(items) >= repoLimit {
			break
		}
	}
	return items
}

// fetchPapers 检索相关论文。
func (s *resourceService) fetchPapers(ctx context.Context, topic string) []model.ResourceItem {
	entries, err := s.arxiv.Search(ctx, topic, paperLimit)
	if err != nil {
		log.Warnf("[Resource] arXiv 搜索失败: %v", err)
		return nil
	}

	items := make([]model.ResourceItem, 0, len(entries))
	for _, e := range entries {
		channel := ""
		if len(e.Authors) > 0 {
			channel = e.Authors[0]
		}
		items = append(items, model.ResourceItem{
			Title:       e.Title,
			Description: truncate(e.Summary, 150),
			Channel:     channel,
			Link:        e.ID,
		})
	}
	return items
}

// questionsPayload 约束 LLM 输出的问答 JSON 结构。
type questionsPayload struct {
	Questions []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Link        string `json:"link"`
	} `json:"questions"`
}

// fetchQuestions 让 LLM 归纳初学者在 StackOverflow 上的常见问题。
func (s *resourceService) fetchQuestions(ctx context.Context, topic, lang string) []model.ResourceItem {
	langNote := ""
	focus := topic
	if lang != "" {
		langNote = fmt.Sprintf(" (focus only on %s; exclude other languages)", lang)
		focus = lang
	}
	prompt := fmt.Sprintf(`For "%s"%s, suggest %d popular StackOverflow questions beginners ask specifically about %s. Return only questions relevant to that language. Format as JSON: {"questions": [{"title": "...", "description": "...", "link": "https://stackoverflow.com/..."}]}`,
		topic, langNote, questionLimit, focus)

	raw, err := s.llm.Chat(ctx, "Return only JSON.", prompt, llm.GenerationParams{Temperature: 0.3, MaxTokens: 800})
	if err != nil {
		log.Warnf("[Resource] 问答生成失败: %v", err)
		return nil
	}

	var payload questionsPayload
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &payload); err != nil {
		log.Warnf("[Resource] 问答 JSON 解析失败: %v", err)
		return nil
	}

	items := make([]model.ResourceItem, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		items = append(items, model.ResourceItem{
			Title:       q.Title,
			Description: q.Description,
			Link:        q.Link,
		})
	}
	return items
}

// docsPayload 约束 LLM 输出的文档 JSON 结构。
type docsPayload struct {
	Docs []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Link        string `json:"link"`
	} `json:"docs"`
}

// fetchDocs 让 LLM 给出官方文档入口。
func (s *resourceService) fetchDocs(ctx context.Context, topic, lang string) []model.ResourceItem {
	langNote := ""
	focus := topic
	if lang != "" {
		langNote = fmt.Sprintf(" (prefer %s docs and exclude unrelated languages)", lang)
		focus = lang
	}
	prompt := fmt.Sprintf(`For "%s"%s, provide %d official documentation sites specific to %s. Return JSON only: {"docs": [{"title": "...", "description": "...", "link": "https://..."}]}`,
		topic, langNote, docLimit, focus)

	raw, err := s.llm.Chat(ctx, "Return only JSON.", prompt, llm.GenerationParams{Temperature: 0.2, MaxTokens: 500})
	if err != nil {
		log.Warnf("[Resource] 文档生成失败: %v", err)
		return nil
	}

	var payload docsPayload
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &payload); err != nil {
		log.Warnf("[Resource] 文档 JSON 解析失败: %v", err)
		return nil
	}

	items := make([]model.ResourceItem, 0, len(payload.Docs))
	for _, d := range payload.Docs {
		items = append(items, model.ResourceItem{
			Title:       d.Title,
			Description: d.Description,
			Link:        d.Link,
		})
	}
	return items
}

// langPrefix 生成查询前缀，如 "python "；无语言提示时为空。
func langPrefix(lang string) string {
	if lang == "" {
		return ""
	}
	return lang + " "
}

// truncate 将描述截断到 n 字节并追加省略标记，用于列表展示。
func truncate(s string, n int) string {
	if len(s) > n {
		s = s[:n]
	}
	return s + "..."
}

// stripCodeFences 去掉模型输出中可选的 Markdown 代码栅栏。
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// formatThousands 按千位插入逗号格式化整数。
func formatThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
