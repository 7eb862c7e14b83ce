package components

import (
	"strings"

	"github.com/Rorical/flightai/ui/styles"
)

func RenderStatus(status string, loading bool, loadingDots int, width int) string {
	statusStyle := styles.StatusStyle(width)
	if strings.HasPrefix(status, "Error") {
		statusStyle = styles.ErrorStatusStyle(width)
	}

	statusContent := status
	if loading {
		statusContent += strings.Repeat(".", loadingDots)
	}

	return statusStyle.Render(statusContent + "   enter send · ctrl+l clear · esc quit")
}
