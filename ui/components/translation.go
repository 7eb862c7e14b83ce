package components

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/Rorical/flightai/ui/styles"
)

// RenderTranslation renders the translated reply box
func RenderTranslation(text, language string, width int) string {
	title := "Translation"
	if language != "" {
		title += " (" + language + ")"
	}

	body := strings.TrimSpace(text)
	if body == "" {
		body = styles.CaptionStyle().Render("Replies will be translated here.")
	} else {
		body = wordwrap.WrapString(body, uint(max(width-6, 10)))
	}

	return styles.PanelStyle(width).Render(styles.PanelTitleStyle().Render(title) + "\n" + body)
}
