package server

import (
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/Rorical/flightai/internal/models"
)

// ChatRequest carries the client's transcript and the new user message
type ChatRequest struct {
	History models.History `json:"history"`
	Message string         `json:"message"`
}

type ChatResponse struct {
	History     models.History     `json:"history"`
	Image       *models.ImageAsset `json:"image,omitempty"`
	Translation string             `json:"translation,omitempty"`
}

type TranslateRequest struct {
	Text string `json:"text"`
}

type TranslateResponse struct {
	Language    string `json:"language"`
	Translation string `json:"translation"`
}

type ToolResponse struct {
	Name        string                           `json:"name"`
	Description string                           `json:"description"`
	Parameters  map[string]jsonschema.Definition `json:"parameters"`
	Required    []string                         `json:"required"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
