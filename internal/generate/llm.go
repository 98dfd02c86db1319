package generate

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/quizcraft/backend/internal/models"
)

const (
	defaultAnthropicModel = "claude-sonnet-4-5-20250929"
	defaultOpenAIModel    = openai.GPT4oMini
)

// LLMClient is the transport both LLM backends satisfy.
type LLMClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// LLM adapts an LLMClient into the Generator capability: prompt,
// complete, parse, shape into a pending candidate.
type LLM struct {
	llm LLMClient
}

func NewLLM(client LLMClient) *LLM {
	return &LLM{llm: client}
}

func (g *LLM) Generate(ctx context.Context, req Request) (*models.QuestionCandidate, error) {
	raw, err := g.llm.Complete(ctx, SystemPrompt(), BuildUserPrompt(req))
	if err != nil {
		return nil, err
	}

	payload, err := ParseCandidate(raw)
	if err != nil {
		return nil, err
	}

	difficulty := models.Difficulty(payload.Difficulty)
	if !models.ValidDifficulties[difficulty] {
		difficulty = req.Difficulty
	}
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}

	return &models.QuestionCandidate{
		ID:          uuid.NewString(),
		UnitID:      req.Unit.ID,
		Question:    payload.Question,
		Answer:      payload.Answer,
		Distractors: payload.Distractors,
		Type:        req.TypeHint,
		Difficulty:  difficulty,
		Status:      models.StatusPending,
		Attempt:     req.Attempt,
		CreatedAt:   time.Now(),
	}, nil
}

// ── AnthropicClient ────────────────────────────────────────

type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicClient(model string) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &AnthropicClient{client: &client, model: model}
}

func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   2048,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return "", err
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in API response")
}

func (c *AnthropicClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			select {
			case <-time.After(sleepDuration):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── OpenAIClient ───────────────────────────────────────────

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}
}

func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Temperature: 0.7,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}
	return resp.Choices[0].Message.Content, nil
}
