package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/Rorical/flightai/internal/models"
	"github.com/Rorical/flightai/ui/styles"
)

var (
	rendererMu sync.Mutex
	renderers  = map[int]*glamour.TermRenderer{}
)

// RenderMessages renders program notices followed by the user/assistant transcript.
// Tool traffic never reaches the History, so only those two roles are shown.
func RenderMessages(notices []string, messages models.History, width int) string {
	var b strings.Builder

	userStyle := styles.UserStyle()
	assistantStyle := styles.AssistantStyle()
	programStyle := styles.ProgramStyle()

	for _, notice := range notices {
		b.WriteString(programStyle.Render(notice) + "\n")
	}
	if len(notices) > 0 {
		b.WriteString("\n")
	}

	for _, msg := range messages {
		switch msg.Role {
		case models.RoleUser:
			b.WriteString(userStyle.Render("You: "+msg.Content) + "\n\n")
		case models.RoleAssistant:
			if msg.Content == "" {
				continue
			}
			b.WriteString(assistantStyle.Render("FlightAI: "+renderMarkdown(msg.Content, width-6)) + "\n\n")
		}
	}

	return b.String()
}

// renderMarkdown renders assistant markdown, falling back to the raw text
func renderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}

	rendererMu.Lock()
	defer rendererMu.Unlock()

	r, ok := renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		renderers[width] = r
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}

// Tail keeps the last n lines of s
func Tail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
