package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/flightai/internal/logger"
	"github.com/Rorical/flightai/internal/models"
)

type fakeClient struct {
	reply    string
	err      error
	requests []openai.ChatCompletionRequest
}

func (f *fakeClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
		Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.reply},
	}}}, nil
}

func TestTranslateLatest(t *testing.T) {
	client := &fakeClient{reply: "  Un billete a Londres cuesta $799.  "}
	tr := New(client, "llama3.2", "Spanish", logger.Discard())

	history := models.History{
		models.UserMessage("London?"),
		models.AssistantMessage("A ticket to London is $799."),
	}
	assert.Equal(t, "Un billete a Londres cuesta $799.", tr.TranslateLatest(context.Background(), history))

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, "llama3.2", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Contains(t, req.Messages[1].Content, "Spanish")
	assert.Contains(t, req.Messages[1].Content, "A ticket to London is $799.")
}

func TestTranslateLatestEmptyInputSkipsModel(t *testing.T) {
	client := &fakeClient{reply: "unused"}
	tr := New(client, "llama3.2", "Spanish", logger.Discard())

	assert.Empty(t, tr.TranslateLatest(context.Background(), nil))
	assert.Empty(t, tr.TranslateLatest(context.Background(), models.History{models.AssistantMessage("")}))
	assert.Empty(t, client.requests)
}

func TestTranslateLatestFailureIsDiagnostic(t *testing.T) {
	tr := New(&fakeClient{err: errors.New("connection refused")}, "llama3.2", "Spanish", logger.Discard())

	out := tr.TranslateLatest(context.Background(), models.History{models.AssistantMessage("Hello")})
	assert.Contains(t, out, "Translation failed:")
	assert.Contains(t, out, "connection refused")
}

func TestTranslateNoChoices(t *testing.T) {
	tr := New(noChoices{}, "llama3.2", "French", logger.Discard())

	_, err := tr.Translate(context.Background(), "Hello")
	require.Error(t, err)
	assert.Equal(t, "French", tr.Language())
}

type noChoices struct{}

func (noChoices) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{}, nil
}
