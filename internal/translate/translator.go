package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/Rorical/flightai/internal/models"
)

// ChatCompleter is the slice of an OpenAI-compatible client used for translation
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

const systemPrompt = "You are a translator. Translate the text you are given into the requested language. Reply with the translation only, without notes or quotation marks."

// Translator translates assistant replies with a local model
type Translator struct {
	client   ChatCompleter
	model    string
	language string
	log      logrus.FieldLogger
}

func New(client ChatCompleter, model, language string, log logrus.FieldLogger) *Translator {
	return &Translator{
		client:   client,
		model:    model,
		language: language,
		log:      log.WithField("component", "translator"),
	}
}

// NewLocalClient builds a client for an OpenAI-compatible runtime such as Ollama
func NewLocalClient(baseURL, apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return openai.NewClientWithConfig(cfg)
}

func (t *Translator) Language() string {
	return t.language
}

// Translate returns text in the configured language. Empty text is returned as is.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt(text, t.language)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("translation returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// TranslateLatest translates the last entry of history. It never fails:
// errors are logged and returned as a diagnostic string for display.
func (t *Translator) TranslateLatest(ctx context.Context, history models.History) string {
	last, ok := history.Last()
	if !ok || strings.TrimSpace(last.Content) == "" {
		return ""
	}

	translated, err := t.Translate(ctx, last.Content)
	if err != nil {
		t.log.WithError(err).Warn("translation failed")
		return fmt.Sprintf("Translation failed: %v", err)
	}
	return translated
}

func prompt(text, language string) string {
	return fmt.Sprintf("Translate the following text into %s:\n\n%s", language, text)
}
