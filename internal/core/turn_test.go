package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/flightai/internal/logger"
	"github.com/Rorical/flightai/internal/models"
	"github.com/Rorical/flightai/internal/store/inmemory"
	"github.com/Rorical/flightai/internal/tools"
)

func newTestRegistry() *tools.Registry {
	registry := tools.NewRegistry()
	tools.RegisterBuiltinTools(registry, inmemory.NewBookingStore())
	return registry
}

func newController(client ChatCompleter, opts TurnOptions) *TurnController {
	opts.Model = "gpt-4o-mini"
	return NewTurnController(client, newTestRegistry(), opts, logger.Discard())
}

func TestRunPlainReply(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{textReply("Hello, how can I help?")}}
	images := &fakeImages{}
	tc := newController(client, TurnOptions{Images: images})

	history := models.History{models.UserMessage("Hi")}
	result, err := tc.Run(context.Background(), history)
	require.NoError(t, err)

	require.Len(t, result.History, 2)
	assert.Equal(t, models.AssistantMessage("Hello, how can I help?"), result.History[1])
	assert.Nil(t, result.Image)
	assert.Zero(t, images.count())

	calls := client.calls()
	require.Len(t, calls, 1)
	assert.Len(t, calls[0].Tools, 2)
	require.Len(t, calls[0].Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, calls[0].Messages[0].Role)
	assert.Equal(t, SystemMessage, calls[0].Messages[0].Content)

	// The caller's history is never modified
	assert.Len(t, history, 1)
}

func TestRunPriceLookupGeneratesImage(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolReply(toolCall("call_1", tools.PriceToolName, `{"destination_city":"London"}`)),
		textReply("A return ticket to London is $799."),
	}}
	images := &fakeImages{}
	tc := newController(client, TurnOptions{Images: images})

	result, err := tc.Run(context.Background(), models.History{models.UserMessage("How much is a ticket to London?")})
	require.NoError(t, err)

	require.NotNil(t, result.Image)
	assert.Equal(t, "London", result.Image.City)
	assert.Equal(t, []string{"London"}, images.cities)

	// Only the user message and the final reply enter the history
	require.Len(t, result.History, 2)
	assert.Equal(t, "A return ticket to London is $799.", result.History[1].Content)

	calls := client.calls()
	require.Len(t, calls, 2)
	assert.Empty(t, calls[1].Tools)

	followUp := calls[1].Messages
	require.Len(t, followUp, 4)
	announcement, toolMsg := followUp[2], followUp[3]
	require.Len(t, announcement.ToolCalls, 1)
	assert.Equal(t, "call_1", announcement.ToolCalls[0].ID)
	assert.Equal(t, openai.ChatMessageRoleTool, toolMsg.Role)
	assert.Equal(t, "call_1", toolMsg.ToolCallID)
	assert.JSONEq(t, `{"destination_city":"London","price":"$799"}`, toolMsg.Content)
}

func TestRunPriceLookupWithoutImages(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolReply(toolCall("call_1", tools.PriceToolName, `{"destination_city":"Atlantis"}`)),
		textReply("Sorry, I don't know the price for Atlantis."),
	}}
	tc := newController(client, TurnOptions{})

	result, err := tc.Run(context.Background(), models.History{models.UserMessage("Atlantis?")})
	require.NoError(t, err)
	assert.Nil(t, result.Image)

	calls := client.calls()
	require.Len(t, calls, 2)
	assert.JSONEq(t, `{"destination_city":"Atlantis","price":"Unknown"}`, calls[1].Messages[3].Content)
}

func TestRunImageFailureKeepsReply(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolReply(toolCall("call_1", tools.PriceToolName, `{"destination_city":"Paris"}`)),
		textReply("Paris is $899."),
	}}
	tc := newController(client, TurnOptions{Images: &fakeImages{err: errors.New("quota")}})

	result, err := tc.Run(context.Background(), models.History{models.UserMessage("Paris?")})
	require.NoError(t, err)
	assert.Nil(t, result.Image)
	assert.Equal(t, "Paris is $899.", result.History[1].Content)
}

func TestRunBookingHasNoImage(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolReply(toolCall("call_9", tools.BookingToolName,
			`{"destination_city":"Berlin","customer_name":"Ana","customer_id":"C-1"}`)),
		textReply("You're booked to Berlin."),
	}}
	images := &fakeImages{}
	tc := newController(client, TurnOptions{Images: images})

	result, err := tc.Run(context.Background(), models.History{models.UserMessage("Book Berlin")})
	require.NoError(t, err)
	assert.Nil(t, result.Image)
	assert.Zero(t, images.count())
}

func TestRunHonoursOnlyFirstToolCall(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolReply(
			toolCall("call_1", tools.PriceToolName, `{"destination_city":"Tokyo"}`),
			toolCall("call_2", tools.PriceToolName, `{"destination_city":"Paris"}`),
		),
		textReply("Tokyo is $1400."),
	}}
	images := &fakeImages{}
	tc := newController(client, TurnOptions{Images: images})

	_, err := tc.Run(context.Background(), models.History{models.UserMessage("Tokyo and Paris?")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tokyo"}, images.cities)

	followUp := client.calls()[1].Messages
	require.Len(t, followUp[2].ToolCalls, 1)
}

func TestRunUnknownToolFailsTurn(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolReply(toolCall("call_1", "cancel_flight", `{}`)),
	}}
	speech := newFakeSpeech()
	tc := newController(client, TurnOptions{Speech: speech})

	history := models.History{models.UserMessage("Cancel my flight")}
	result, err := tc.Run(context.Background(), history)
	require.ErrorIs(t, err, tools.ErrUnknownTool)
	assert.Nil(t, result)
	assert.Len(t, history, 1)
	assert.Len(t, client.calls(), 1)
	assert.Empty(t, speech.spoken())
}

func TestRunMalformedArgumentsFailsTurn(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolReply(toolCall("call_1", tools.PriceToolName, `{"destination_city":`)),
	}}
	tc := newController(client, TurnOptions{})

	_, err := tc.Run(context.Background(), models.History{models.UserMessage("?")})
	require.ErrorIs(t, err, tools.ErrMalformedArguments)
}

func TestRunToolCallsWithoutCallsFailsTurn(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{toolReply()}}
	speech := newFakeSpeech()
	tc := newController(client, TurnOptions{Speech: speech})

	history := models.History{models.UserMessage("How much is a ticket to Paris?")}
	result, err := tc.Run(context.Background(), history)
	require.ErrorIs(t, err, ErrNoToolCall)
	assert.Nil(t, result)
	assert.Len(t, history, 1)
	assert.Len(t, client.calls(), 1)
	assert.Empty(t, speech.spoken())
}

func TestRunProviderErrors(t *testing.T) {
	tc := NewTurnController(nil, newTestRegistry(), TurnOptions{}, logger.Discard())
	_, err := tc.Run(context.Background(), models.History{models.UserMessage("Hi")})
	require.ErrorIs(t, err, ErrProviderUnavailable)

	failing := newController(&scriptedClient{err: errors.New("rate limited")}, TurnOptions{})
	_, err = failing.Run(context.Background(), models.History{models.UserMessage("Hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")

	empty := newController(&scriptedClient{responses: []openai.ChatCompletionResponse{{}}}, TurnOptions{})
	_, err = empty.Run(context.Background(), models.History{models.UserMessage("Hi")})
	require.ErrorIs(t, err, ErrNoChoices)
}

func TestRunSpeaksInline(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{textReply("Have a nice flight.")}}
	speech := newFakeSpeech()
	tc := newController(client, TurnOptions{Speech: speech})

	_, err := tc.Run(context.Background(), models.History{models.UserMessage("Bye")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Have a nice flight."}, speech.spoken())
}

func TestRunSpeaksInBackground(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{textReply("Goodbye.")}}
	speech := newFakeSpeech()
	effects := NewEffects(logger.Discard())
	defer effects.Close()
	tc := newController(client, TurnOptions{Speech: speech, Effects: effects})

	result, err := tc.Run(context.Background(), models.History{models.UserMessage("Bye")})
	require.NoError(t, err)
	assert.Equal(t, "Goodbye.", result.History[1].Content)

	select {
	case <-speech.done:
	case <-time.After(time.Second):
		t.Fatal("speech was not started")
	}
	assert.Equal(t, []string{"Goodbye."}, speech.spoken())
}

func TestBuildPromptCarriesToolMessages(t *testing.T) {
	history := models.History{
		models.UserMessage("London?"),
		{Role: models.RoleAssistant, ToolCall: &models.ToolCallRequest{ID: "c1", Name: tools.PriceToolName, Arguments: `{}`}},
		{Role: models.RoleTool, Content: `{"price":"$799"}`, ToolCallID: "c1"},
	}

	messages := buildPrompt(history)
	require.Len(t, messages, 4)
	require.Len(t, messages[2].ToolCalls, 1)
	assert.Equal(t, tools.PriceToolName, messages[2].ToolCalls[0].Function.Name)
	assert.Equal(t, "c1", messages[3].ToolCallID)
}
