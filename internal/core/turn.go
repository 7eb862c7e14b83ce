package core

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/Rorical/flightai/internal/models"
	"github.com/Rorical/flightai/internal/tools"
)

// SystemMessage is prepended to every prompt
const SystemMessage = "You are a helpful assistant for an Airline called FlightAI. " +
	"Give short, courteous answers, no more than 1 sentence. " +
	"Always be accurate. If you don't know the answer, say so."

// ChatCompleter is the slice of the provider client used for chat completions
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ImageGenerator turns a destination city into an image
type ImageGenerator interface {
	Generate(ctx context.Context, city string) (*models.ImageAsset, error)
}

// SpeechGenerator speaks a reply
type SpeechGenerator interface {
	Speak(ctx context.Context, text string) error
}

type TurnOptions struct {
	Model  string
	Images ImageGenerator  // Nil disables image generation on price lookups
	Speech SpeechGenerator // Nil disables speech
	// Effects runs speech in the background. Nil runs it inline before Run returns.
	Effects *Effects
}

// TurnController produces the assistant's reply for one user turn
type TurnController struct {
	client   ChatCompleter
	model    string
	registry *tools.Registry
	images   ImageGenerator
	speech   SpeechGenerator
	effects  *Effects
	log      logrus.FieldLogger
}

func NewTurnController(client ChatCompleter, registry *tools.Registry, opts TurnOptions, log logrus.FieldLogger) *TurnController {
	return &TurnController{
		client:   client,
		model:    opts.Model,
		registry: registry,
		images:   opts.Images,
		speech:   opts.Speech,
		effects:  opts.Effects,
		log:      log.WithField("component", "turn"),
	}
}

// Run answers the last user message in history. The input history is never modified;
// on error no part of the turn is visible to the caller.
func (tc *TurnController) Run(ctx context.Context, history models.History) (*models.TurnResult, error) {
	if tc.client == nil {
		return nil, ErrProviderUnavailable
	}

	messages := buildPrompt(history)

	choice, err := tc.complete(ctx, messages, tc.registry.OpenAITools())
	if err != nil {
		return nil, err
	}

	var image *models.ImageAsset
	if choice.FinishReason == openai.FinishReasonToolCalls {
		if len(choice.Message.ToolCalls) == 0 {
			return nil, ErrNoToolCall
		}

		toolMessages, result, err := tc.handleToolCall(ctx, choice.Message)
		if err != nil {
			return nil, err
		}
		messages = append(messages, toolMessages...)

		// Only price lookups get a picture; bookings never do
		if price, ok := result.Result.(tools.PriceResult); ok && tc.images != nil {
			image, err = tc.images.Generate(ctx, price.DestinationCity)
			if err != nil {
				tc.log.WithError(err).WithField("city", price.DestinationCity).Warn("image generation failed")
				image = nil
			}
		}

		choice, err = tc.complete(ctx, messages, nil)
		if err != nil {
			return nil, err
		}
	}

	reply := choice.Message.Content
	updated := history.Append(models.AssistantMessage(reply))

	tc.speak(ctx, reply)

	return &models.TurnResult{History: updated, Image: image}, nil
}

// handleToolCall honours the first requested tool call and returns the announcement and
// result messages to show the model on the follow-up completion.
func (tc *TurnController) handleToolCall(ctx context.Context, message openai.ChatCompletionMessage) ([]openai.ChatCompletionMessage, tools.ToolResult, error) {
	call := message.ToolCalls[0]
	if extra := len(message.ToolCalls) - 1; extra > 0 {
		tc.log.WithField("dropped", extra).Warn("model requested several tools, only the first is honoured")
	}

	log := tc.log.WithFields(logrus.Fields{
		"tool":    call.Function.Name,
		"call_id": call.ID,
	})
	log.WithField("arguments", call.Function.Arguments).Info("handling tool call")

	invocation, err := tools.ParseToolCall(models.ToolCallRequest{
		ID:        call.ID,
		Name:      call.Function.Name,
		Arguments: call.Function.Arguments,
	})
	if err != nil {
		return nil, tools.ToolResult{}, err
	}

	result, err := tc.registry.Dispatch(ctx, invocation)
	if err != nil {
		log.WithError(err).Error("tool call failed")
		return nil, tools.ToolResult{}, err
	}

	content, err := tools.EncodeResult(result.Result)
	if err != nil {
		return nil, tools.ToolResult{}, err
	}

	// The announcement must only carry the call we answer
	announcement := message
	announcement.ToolCalls = message.ToolCalls[:1]

	return []openai.ChatCompletionMessage{
		announcement,
		{
			Role:       openai.ChatMessageRoleTool,
			Content:    content,
			ToolCallID: call.ID,
		},
	}, result, nil
}

func (tc *TurnController) complete(ctx context.Context, messages []openai.ChatCompletionMessage, offered []openai.Tool) (openai.ChatCompletionChoice, error) {
	req := openai.ChatCompletionRequest{
		Model:    tc.model,
		Messages: messages,
	}
	if len(offered) > 0 {
		req.Tools = offered
	}

	resp, err := tc.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return openai.ChatCompletionChoice{}, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return openai.ChatCompletionChoice{}, ErrNoChoices
	}
	return resp.Choices[0], nil
}

func (tc *TurnController) speak(ctx context.Context, reply string) {
	if tc.speech == nil {
		return
	}
	if tc.effects != nil {
		tc.effects.Go("speech", func(ctx context.Context) error {
			return tc.speech.Speak(ctx, reply)
		})
		return
	}
	if err := tc.speech.Speak(ctx, reply); err != nil {
		tc.log.WithError(err).Warn("speech generation failed")
	}
}

// buildPrompt prepends the system message to the conversation
func buildPrompt(history models.History) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: SystemMessage,
	})
	for _, msg := range history {
		messages = append(messages, toOpenAIMessage(msg))
	}
	return messages
}

func toOpenAIMessage(msg models.Message) openai.ChatCompletionMessage {
	out := openai.ChatCompletionMessage{
		Role:       string(msg.Role),
		Content:    msg.Content,
		ToolCallID: msg.ToolCallID,
	}
	if msg.ToolCall != nil {
		out.ToolCalls = []openai.ToolCall{{
			ID:   msg.ToolCall.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      msg.ToolCall.Name,
				Arguments: msg.ToolCall.Arguments,
			},
		}}
	}
	return out
}
