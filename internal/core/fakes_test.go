package core

import (
	"context"
	"errors"
	"sync"

	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/flightai/internal/models"
)

// scriptedClient answers chat completions from a fixed list of responses
type scriptedClient struct {
	mu        sync.Mutex
	responses []openai.ChatCompletionResponse
	err       error
	requests  []openai.ChatCompletionRequest
}

func (c *scriptedClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	if len(c.responses) == 0 {
		return openai.ChatCompletionResponse{}, errors.New("no scripted response left")
	}
	resp := c.responses[0]
	c.responses = c.responses[1:]
	return resp, nil
}

func (c *scriptedClient) calls() []openai.ChatCompletionRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]openai.ChatCompletionRequest(nil), c.requests...)
}

func textReply(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
		FinishReason: openai.FinishReasonStop,
		Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
	}}}
}

func toolReply(calls ...openai.ToolCall) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
		FinishReason: openai.FinishReasonToolCalls,
		Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, ToolCalls: calls},
	}}}
}

func toolCall(id, name, args string) openai.ToolCall {
	return openai.ToolCall{
		ID:       id,
		Type:     openai.ToolTypeFunction,
		Function: openai.FunctionCall{Name: name, Arguments: args},
	}
}

type fakeImages struct {
	mu     sync.Mutex
	cities []string
	err    error
}

func (f *fakeImages) Generate(_ context.Context, city string) (*models.ImageAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cities = append(f.cities, city)
	if f.err != nil {
		return nil, f.err
	}
	return &models.ImageAsset{City: city, Width: 1, Height: 1}, nil
}

func (f *fakeImages) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cities)
}

type fakeSpeech struct {
	mu    sync.Mutex
	texts []string
	done  chan struct{}
}

func newFakeSpeech() *fakeSpeech {
	return &fakeSpeech{done: make(chan struct{}, 8)}
}

func (f *fakeSpeech) Speak(_ context.Context, text string) error {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func (f *fakeSpeech) spoken() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

// fakeTurns returns a canned reply, optionally blocking until released
type fakeTurns struct {
	reply   string
	err     error
	release chan struct{}
}

func (f *fakeTurns) Run(ctx context.Context, history models.History) (*models.TurnResult, error) {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.TurnResult{History: history.Append(models.AssistantMessage(f.reply))}, nil
}

type fakeTranslator struct {
	text string
}

func (f *fakeTranslator) TranslateLatest(_ context.Context, history models.History) string {
	if last, ok := history.Last(); ok && last.Content != "" {
		return f.text
	}
	return ""
}
