package models

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCallRequest is the structured tool request carried by an assistant message
type ToolCallRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // Serialized JSON as produced by the model
}

type Message struct {
	Role     Role             `json:"role"`
	Content  string           `json:"content"`
	ToolCall *ToolCallRequest `json:"tool_call,omitempty"` // Set when role=assistant and the model chose a tool
	// ToolCallID correlates a role=tool message with the request it answers
	ToolCallID string `json:"tool_call_id,omitempty"`
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// History is the ordered transcript sent to the model. It is append-only during a turn.
type History []Message

// Append returns a new History with msgs added, leaving h untouched.
func (h History) Append(msgs ...Message) History {
	out := make(History, len(h), len(h)+len(msgs))
	copy(out, h)
	return append(out, msgs...)
}

// Last returns the final entry, or false when the history is empty.
func (h History) Last() (Message, bool) {
	if len(h) == 0 {
		return Message{}, false
	}
	return h[len(h)-1], true
}

// ImageAsset is a generated destination image, decoded and saved locally.
type ImageAsset struct {
	City          string `json:"city"`
	Path          string `json:"path,omitempty"`
	Data          []byte `json:"data,omitempty"` // PNG bytes; base64 in JSON
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// TurnResult is what one conversation turn hands back to the presentation layer.
type TurnResult struct {
	History History     `json:"history"`
	Image   *ImageAsset `json:"image,omitempty"`
}
