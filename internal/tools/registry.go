package tools

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/Rorical/flightai/internal/models"
)

var (
	// ErrUnknownTool is returned when the model names a tool that was never registered
	ErrUnknownTool = errors.New("unknown tool")
	// ErrMalformedArguments is returned when the serialized arguments cannot be decoded
	ErrMalformedArguments = errors.New("malformed tool arguments")
	// ErrInvalidArguments is returned when decoded arguments do not fit the tool's shape
	ErrInvalidArguments = errors.New("invalid tool arguments")
)

// Tool represents a function that can be called by the AI
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]jsonschema.Definition // JSON schema for each parameter
	RequiredParameters() []string                 // List of required parameter names
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// ToolCall is a single parsed invocation requested by the model
type ToolCall struct {
	ID   string                 `json:"id"`
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"arguments"`
}

// ToolResult represents the result of a tool execution
type ToolResult struct {
	CallID string      `json:"call_id"`
	Name   string      `json:"name"`
	Result interface{} `json:"result"`
}

// Registry manages available tools
type Registry struct {
	tools map[string]Tool
	order []string
	mu    sync.RWMutex
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry. Registering the same name twice replaces the tool.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

// GetTool retrieves a tool by name
func (r *Registry) GetTool(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, exists := r.tools[name]
	return tool, exists
}

// ListTools returns all registered tools in registration order
func (r *Registry) ListTools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// OpenAITools returns the tool declarations offered to the language model
func (r *Registry) OpenAITools() []openai.Tool {
	tools := r.ListTools()
	specs := make([]openai.Tool, len(tools))

	for i, tool := range tools {
		specs[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters: jsonschema.Definition{
					Type:                 jsonschema.Object,
					Properties:           tool.Parameters(),
					Required:             tool.RequiredParameters(),
					AdditionalProperties: false,
				},
			},
		}
	}

	return specs
}

// argsAPI keeps JSON numbers as json.Number so long identifiers survive decoding
var argsAPI = sonic.Config{UseNumber: true}.Froze()

// ParseToolCall decodes the model's serialized arguments into a ToolCall
func ParseToolCall(req models.ToolCallRequest) (ToolCall, error) {
	var args map[string]interface{}
	if err := argsAPI.UnmarshalFromString(req.Arguments, &args); err != nil {
		return ToolCall{}, fmt.Errorf("%w for %s: %v", ErrMalformedArguments, req.Name, err)
	}
	if args == nil {
		args = make(map[string]interface{})
	}
	return ToolCall{ID: req.ID, Name: req.Name, Args: args}, nil
}

// Dispatch runs the named tool synchronously. An unregistered name is an error, never a no-op.
func (r *Registry) Dispatch(ctx context.Context, call ToolCall) (ToolResult, error) {
	tool, exists := r.GetTool(call.Name)
	if !exists {
		return ToolResult{}, fmt.Errorf("%w: %q", ErrUnknownTool, call.Name)
	}

	result, err := tool.Execute(ctx, call.Args)
	if err != nil {
		return ToolResult{}, fmt.Errorf("tool %s: %w", call.Name, err)
	}

	return ToolResult{
		CallID: call.ID,
		Name:   call.Name,
		Result: result,
	}, nil
}
