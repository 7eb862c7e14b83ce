package tools

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// EncodeResult serializes a tool result into the content of a role=tool message
func EncodeResult(result interface{}) (string, error) {
	content, err := sonic.MarshalString(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode tool result: %w", err)
	}
	return content, nil
}

// DecodeResult parses the content of a role=tool message back into the typed result
// of the named tool. Unknown tools decode into a generic map.
func DecodeResult(toolName, content string) (interface{}, error) {
	switch toolName {
	case PriceToolName:
		var out PriceResult
		if err := sonic.UnmarshalString(content, &out); err != nil {
			return nil, fmt.Errorf("failed to decode %s result: %w", toolName, err)
		}
		return out, nil
	case BookingToolName:
		var out BookingResult
		if err := sonic.UnmarshalString(content, &out); err != nil {
			return nil, fmt.Errorf("failed to decode %s result: %w", toolName, err)
		}
		return out, nil
	default:
		var out map[string]interface{}
		if err := sonic.UnmarshalString(content, &out); err != nil {
			return nil, fmt.Errorf("failed to decode %s result: %w", toolName, err)
		}
		return out, nil
	}
}
