package styles

import "github.com/charmbracelet/lipgloss"

// FlightAI palette (ANSI 256)
var (
	colorSky     = lipgloss.Color("39")
	colorSunset  = lipgloss.Color("214")
	colorCabin   = lipgloss.Color("141")
	colorRunway  = lipgloss.Color("62")
	colorMuted   = lipgloss.Color("245")
	colorFrame   = lipgloss.Color("240")
	colorBar     = lipgloss.Color("235")
	colorBarText = lipgloss.Color("250")
	colorAlert   = lipgloss.Color("196")
)

func InputStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorRunway).
		Padding(0, 1).
		Width(max(width-4, 10))
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorBarText).
		Background(colorBar).
		Padding(0, 1).
		Width(width)
}

func ErrorStatusStyle(width int) lipgloss.Style {
	return StatusStyle(width).Foreground(colorAlert)
}

// speaker marks one side of the conversation with a coloured left rule
func speaker(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(c).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(c).
		PaddingLeft(1).
		MarginLeft(1)
}

func UserStyle() lipgloss.Style {
	return speaker(colorSky)
}

func AssistantStyle() lipgloss.Style {
	return speaker(colorSunset)
}

// ProgramStyle renders welcome lines and hints
func ProgramStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorCabin).Bold(true).PaddingLeft(1)
}

// PanelStyle frames the image and translation panels
func PanelStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorFrame).
		Padding(0, 1).
		Width(max(width-2, 10))
}

func PanelTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorCabin).Bold(true)
}

func CaptionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
}
