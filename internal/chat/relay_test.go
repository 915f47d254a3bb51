package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/prismatek/prismatek-ai-backend/pkg/logging"
)

type stubChatClient struct {
	response openai.ChatCompletionResponse
	err      error
	calls    int
	lastReq  openai.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.calls++
	s.lastReq = req
	return s.response, s.err
}

type stubSearcher struct {
	snippets []string
	err      error
	calls    int
}

func (s *stubSearcher) Search(ctx context.Context, query string, top int) ([]string, error) {
	s.calls++
	return s.snippets, s.err
}

func temp(v float32) *float32 { return &v }

func reply(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestReplyGreetingShortcutSkipsProviders(t *testing.T) {
	for _, message := range []string{"hi", " Hi ", "HI"} {
		client := &stubChatClient{response: reply("should not be used")}
		searcher := &stubSearcher{snippets: []string{"unused"}}
		relay := NewRelay(client, searcher, Options{}, nil, logging.Default())

		got, err := relay.Reply(context.Background(), message)
		if err != nil {
			t.Fatalf("message %q: unexpected error %v", message, err)
		}
		if got != "gpt-40" {
			t.Errorf("message %q: expected shortcut reply, got %q", message, got)
		}
		if client.calls != 0 || searcher.calls != 0 {
			t.Errorf("message %q: expected no outbound calls, got completion=%d search=%d",
				message, client.calls, searcher.calls)
		}
	}
}

func TestReplyEmptyMessage(t *testing.T) {
	relay := NewRelay(&stubChatClient{}, nil, Options{}, nil, logging.Default())

	for _, message := range []string{"", "   ", "\n\t"} {
		if _, err := relay.Reply(context.Background(), message); !errors.Is(err, ErrMessageRequired) {
			t.Errorf("message %q: expected ErrMessageRequired, got %v", message, err)
		}
	}
}

func TestReplyWithSearchContext(t *testing.T) {
	client := &stubChatClient{response: reply("We can help with that.")}
	searcher := &stubSearcher{snippets: []string{"Cloud migration playbook", "AWS landing zones"}}
	relay := NewRelay(client, searcher, Options{Model: "gpt-4o", MaxTokens: 300, Temperature: temp(0.7)}, nil, logging.Default())

	got, err := relay.Reply(context.Background(), "Can you migrate us to AWS?")
	if err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}
	if got != "We can help with that." {
		t.Errorf("unexpected reply %q", got)
	}

	req := client.lastReq
	if len(req.Messages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(req.Messages))
	}
	system := req.Messages[0]
	if system.Role != openai.ChatMessageRoleSystem {
		t.Errorf("expected first message to be system, got %s", system.Role)
	}
	if !strings.Contains(system.Content, "Additional Context:") {
		t.Error("expected Additional Context section in system prompt")
	}
	if !strings.Contains(system.Content, "Cloud migration playbook\n\nAWS landing zones") {
		t.Errorf("expected snippets joined by a blank line, got %q", system.Content)
	}
	user := req.Messages[1]
	if user.Role != openai.ChatMessageRoleUser || user.Content != "Can you migrate us to AWS?" {
		t.Errorf("expected raw user message, got %+v", user)
	}
	if req.MaxTokens != 300 {
		t.Errorf("expected max tokens 300, got %d", req.MaxTokens)
	}
	if req.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %f", req.Temperature)
	}
}

func TestReplyTemperatureDefaultsAndExplicitZero(t *testing.T) {
	client := &stubChatClient{response: reply("ok")}
	relay := NewRelay(client, nil, Options{}, nil, logging.Default())
	if _, err := relay.Reply(context.Background(), "hello there"); err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}
	if client.lastReq.Temperature != 0.7 {
		t.Errorf("expected default temperature 0.7, got %f", client.lastReq.Temperature)
	}

	client = &stubChatClient{response: reply("ok")}
	relay = NewRelay(client, nil, Options{Temperature: temp(0)}, nil, logging.Default())
	if _, err := relay.Reply(context.Background(), "hello there"); err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}
	if client.lastReq.Temperature != 0 {
		t.Errorf("expected explicit zero temperature, got %f", client.lastReq.Temperature)
	}
}

func TestReplyWithoutSearcherOmitsContext(t *testing.T) {
	client := &stubChatClient{response: reply("Sure.")}
	relay := NewRelay(client, nil, Options{}, nil, logging.Default())

	if _, err := relay.Reply(context.Background(), "Tell me about your services"); err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}
	if strings.Contains(client.lastReq.Messages[0].Content, "Additional Context:") {
		t.Error("expected no Additional Context section without a searcher")
	}
}

func TestReplySearchEmptyResultsOmitsContext(t *testing.T) {
	client := &stubChatClient{response: reply("Sure.")}
	searcher := &stubSearcher{snippets: nil}
	relay := NewRelay(client, searcher, Options{}, nil, logging.Default())

	if _, err := relay.Reply(context.Background(), "Anything about security?"); err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}
	if strings.Contains(client.lastReq.Messages[0].Content, "Additional Context:") {
		t.Error("expected no Additional Context section for zero results")
	}
}

func TestReplySearchFailureDegradesGracefully(t *testing.T) {
	client := &stubChatClient{response: reply("Still here.")}
	searcher := &stubSearcher{err: errors.New("index offline")}
	relay := NewRelay(client, searcher, Options{}, nil, logging.Default())

	got, err := relay.Reply(context.Background(), "What do you offer?")
	if err != nil {
		t.Fatalf("search failure must not fail the chat, got %v", err)
	}
	if got != "Still here." {
		t.Errorf("unexpected reply %q", got)
	}
	if strings.Contains(client.lastReq.Messages[0].Content, "Additional Context:") {
		t.Error("expected no Additional Context section after search failure")
	}
}

func TestReplyUpstreamFailure(t *testing.T) {
	client := &stubChatClient{err: errors.New("429 too many requests")}
	relay := NewRelay(client, nil, Options{}, nil, logging.Default())

	if _, err := relay.Reply(context.Background(), "hello there"); err == nil {
		t.Fatal("expected error on completion failure")
	}
}

func TestReplyNoChoices(t *testing.T) {
	client := &stubChatClient{response: openai.ChatCompletionResponse{}}
	relay := NewRelay(client, nil, Options{}, nil, logging.Default())

	if _, err := relay.Reply(context.Background(), "hello there"); err == nil {
		t.Fatal("expected error when provider returns no choices")
	}
}
