package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/prismatek/prismatek-ai-backend/internal/observability/metrics"
	"github.com/prismatek/prismatek-ai-backend/pkg/logging"
)

// ErrMessageRequired is returned when the chat message is empty
var ErrMessageRequired = errors.New("message required")

// Greeting shortcut: answered locally, no provider calls are made.
const (
	shortcutMessage = "hi"
	shortcutReply   = "gpt-40"
)

const searchSnippetCount = 3

type completionClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Searcher returns content snippets matching a free-text query.
type Searcher interface {
	Search(ctx context.Context, query string, top int) ([]string, error)
}

// Options tunes the completion call. A nil Temperature means the default;
// an explicit zero is honored for deterministic sampling.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature *float32
}

// Relay answers a single chat message: optional search augmentation, system
// prompt construction, one completion call. It keeps no state between
// requests.
type Relay struct {
	client      completionClient
	search      Searcher
	model       string
	maxTokens   int
	temperature float32
	metrics     *metrics.ChatMetrics
	logger      *logging.Logger
}

// NewRelay returns a relay backed by the given completion client. search and
// m may be nil; with a nil Searcher replies are generated unaugmented.
func NewRelay(client completionClient, search Searcher, opts Options, m *metrics.ChatMetrics, logger *logging.Logger) *Relay {
	if client == nil {
		panic("chat: completion client cannot be nil")
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o"
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 300
	}
	temperature := float32(0.7)
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Relay{
		client:      client,
		search:      search,
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: temperature,
		metrics:     m,
		logger:      logger,
	}
}

// Reply generates the assistant response for one user message.
func (r *Relay) Reply(ctx context.Context, message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "", ErrMessageRequired
	}
	if strings.ToLower(trimmed) == shortcutMessage {
		return shortcutReply, nil
	}

	prompt := buildSystemPrompt(r.retrieveContext(ctx, message))

	req := openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:   r.maxTokens,
		Temperature: r.temperature,
	}

	callCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	start := time.Now()
	resp, err := r.client.CreateChatCompletion(callCtx, req)
	r.metrics.ObserveCompletionLatency(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("chat: completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat: completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// retrieveContext queries the search index for snippets related to the
// message. Search failures are logged and swallowed: the chat proceeds
// without augmentation.
func (r *Relay) retrieveContext(ctx context.Context, query string) string {
	if r.search == nil {
		return ""
	}
	snippets, err := r.search.Search(ctx, query, searchSnippetCount)
	if err != nil {
		r.logger.Error("search lookup failed, continuing without context", "error", err)
		r.metrics.ObserveSearchFailure()
		return ""
	}
	return strings.Join(snippets, "\n\n")
}
