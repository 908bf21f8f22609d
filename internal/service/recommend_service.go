// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"fmt"

	"learn-mate-go/internal/model"
	"learn-mate-go/pkg/llm"
	"learn-mate-go/pkg/log"
)

// 对话模式的固定生成参数。
const (
	chatSystemPrompt   = "Helpful AI assistant."
	chatTemperature    = 0.7
	chatMaxTokens      = 1500
	chatEmptyFallback  = "No response"
	resourcePrefixText = "Resources for "
)

// RecommendService 是 /recommend 请求的顶层入口：
// 根据模式走对话或资源聚合路径，并在用户已认证时落库。
type RecommendService interface {
	// Recommend 处理一次请求。user 为 nil 表示匿名调用，此时跳过持久化，
	// 结果照常返回。持久化失败只记录日志，不影响响应。
	Recommend(ctx context.Context, user *model.User, req model.RecommendRequest) (*model.RecommendResponse, error)
}

type recommendService struct {
	llmClient   llm.Client
	resourceSvc ResourceService
	convSvc     ConversationService
	historySvc  ResourceHistoryService
}

// NewRecommendService 创建一个新的 RecommendService 实例。
func NewRecommendService(llmClient llm.Client, resourceSvc ResourceService, convSvc ConversationService, historySvc ResourceHistoryService) RecommendService {
	return &recommendService{
		llmClient:   llmClient,
		resourceSvc: resourceSvc,
		convSvc:     convSvc,
		historySvc:  historySvc,
	}
}

// Recommend 实现 RecommendService 接口。
func (s *recommendService) Recommend(ctx context.Context, user *model.User, req model.RecommendRequest) (*model.RecommendResponse, error) {
	if req.ResourceMode {
		return s.recommendResources(ctx, user, req)
	}
	return s.recommendChat(ctx, user, req)
}

// recommendResources 聚合各提供方的学习资源并按需落库。
func (s *recommendService) recommendResources(ctx context.Context, user *model.User, req model.RecommendRequest) (*model.RecommendResponse, error) {
	lang := DetectLanguage(req.Topic)
	if lang != "" {
		log.Infof("[Recommend] 主题 %q 检测到语言提示: %s", req.Topic, lang)
	}

	sections := s.resourceSvc.Aggregate(ctx, req.Topic, lang)

	if user != nil {
		if _, err := s.historySvc.Save(ctx, user.ID, req.Topic, sections, req.HistoryID); err != nil {
			// 落库失败不影响响应，结果仍然返回给调用方。
			log.Errorf("[Recommend] 保存资源历史失败: %v", err)
		}
	}

	return &model.RecommendResponse{
		Success:        true,
		Topic:          req.Topic,
		IsResourceMode: true,
		AIResponse:     resourcePrefixText + req.Topic,
		Resources:      sections,
	}, nil
}

// recommendChat 以主题为提问调用 LLM，响应文本原样返回。
func (s *recommendService) recommendChat(ctx context.Context, user *model.User, req model.RecommendRequest) (*model.RecommendResponse, error) {
	answer, err := s.llmClient.Chat(ctx, chatSystemPrompt, req.Topic, llm.GenerationParams{
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("对话调用失败: %w", err)
	}
	if answer == "" {
		answer = chatEmptyFallback
	}

	if user != nil {
		if _, err := s.convSvc.Record(ctx, user.ID, req.Topic, answer, req.HistoryID); err != nil {
			// 落库失败不影响响应。
			log.Errorf("[Recommend] 保存对话失败: %v", err)
		}
	}

	return &model.RecommendResponse{
		Success:        true,
		Topic:          req.Topic,
		IsResourceMode: false,
		AIResponse:     answer,
	}, nil
}
