package core

import "errors"

var (
	// ErrProviderUnavailable is returned when no language model client is configured
	ErrProviderUnavailable = errors.New("OpenAI integration not available")
	// ErrNoChoices is returned when a completion carries no choices
	ErrNoChoices = errors.New("completion returned no choices")
	// ErrNoToolCall is returned when the model asks for a tool call but names none
	ErrNoToolCall = errors.New("completion requested tool calls but sent none")
)
