package components

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/flightai/internal/models"
	"github.com/Rorical/flightai/ui/styles"
)

const maxPreviewColumns = 48

// ImagePanelWidth is the width of the right-hand column for a terminal of the given width
func ImagePanelWidth(width int) int {
	if width < 80 {
		return width
	}
	return min(width*2/5, maxPreviewColumns+4)
}

// RenderImagePreview draws the image with upper half blocks, two pixels per cell.
// It is expensive, so callers cache the result per image and width.
func RenderImagePreview(asset *models.ImageAsset, panelWidth int) string {
	if asset == nil || len(asset.Data) == 0 {
		return ""
	}
	img, _, err := image.Decode(bytes.NewReader(asset.Data))
	if err != nil {
		return styles.CaptionStyle().Render("(image could not be decoded)")
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return ""
	}
	cols := min(panelWidth-4, maxPreviewColumns)
	if cols < 4 {
		return ""
	}
	rows := max(cols*bounds.Dy()/bounds.Dx()/2, 1)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := bounds.Min.X + col*bounds.Dx()/cols
			top := bounds.Min.Y + (2*row)*bounds.Dy()/(2*rows)
			bottom := bounds.Min.Y + (2*row+1)*bounds.Dy()/(2*rows)
			b.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(img, x, top)).
				Background(hexColor(img, x, bottom)).
				Render("▀"))
		}
		if row < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func hexColor(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// RenderImagePanel frames a cached preview with the destination and file name
func RenderImagePanel(asset *models.ImageAsset, preview string, width int) string {
	var b strings.Builder
	b.WriteString(styles.PanelTitleStyle().Render("Destination"))
	b.WriteString("\n")

	if asset == nil {
		b.WriteString(styles.CaptionStyle().Render("Ask for a ticket price to see your destination."))
		return styles.PanelStyle(width).Render(b.String())
	}

	if preview != "" {
		b.WriteString(preview)
		b.WriteString("\n")
	}
	caption := fmt.Sprintf("%s · %dx%d", asset.City, asset.Width, asset.Height)
	if asset.Path != "" {
		caption += " · " + filepath.Base(asset.Path)
	}
	b.WriteString(styles.CaptionStyle().Render(caption))
	return styles.PanelStyle(width).Render(b.String())
}
