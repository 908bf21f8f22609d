// Package llm 提供了与大语言模型交互的客户端。
// 通过 OpenAI 兼容接口访问 Groq 托管的模型。
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"learn-mate-go/internal/config"
)

// GenerationParams 控制单次调用的生成行为。
type GenerationParams struct {
	Temperature float32
	MaxTokens   int
}

// Client 定义了 LLM 客户端的接口。
type Client interface {
	// Chat 以 system + user 两条消息发起一次非流式对话调用，返回首个候选的文本。
	Chat(ctx context.Context, system, user string, gen GenerationParams) (string, error)
}

type groqClient struct {
	client *openai.Client
	model  string
}

// NewClient 根据配置创建一个新的 LLM 客户端。
func NewClient(cfg config.LLMConfig) Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &groqClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// Chat 调用 chat/completions 接口并返回首个候选的文本内容。
func (c *groqClient) Chat(ctx context.Context, system, user string, gen GenerationParams) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: gen.Temperature,
		MaxTokens:   gen.MaxTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("调用 chat api 失败: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
