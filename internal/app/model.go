package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/flightai/internal/dispatcher"
	"github.com/Rorical/flightai/internal/models"
	"github.com/Rorical/flightai/internal/update"
	"github.com/Rorical/flightai/ui/components"
)

type AppModel struct {
	appModel   models.AppModel
	input      textinput.Model
	language   string // Translation target, empty when translation is off
	dispatcher *dispatcher.EventDispatcher
}

func newAppModel(chatReady bool, language string, disp *dispatcher.EventDispatcher) *AppModel {
	input := textinput.New()
	input.Placeholder = "Chat with our AI Assistant"
	input.Prompt = "> "
	input.CharLimit = 1000
	input.Focus()

	return &AppModel{
		appModel:   initialAppModel(chatReady),
		input:      input,
		language:   language,
		dispatcher: disp,
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		update.TickCmd(),
		m.dispatcher.ListenForUIEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForUIEvents())
	}

	// Handle other events through the event bus
	eventBus := m.dispatcher.GetEventBus()
	chatReady := m.appModel.ChatServiceReady
	cmd := update.HandleUpdateWithEventBus(&m.appModel, &m.input, msg, eventBus, chatReady)

	return m, cmd
}

func (m *AppModel) View() string {
	width := m.appModel.Width
	if width == 0 {
		width = 80
	}

	sideWidth := components.ImagePanelWidth(width)
	var side []string
	side = append(side, components.RenderImagePanel(m.appModel.Image, m.appModel.ImagePreview, sideWidth))
	if m.language != "" {
		side = append(side, components.RenderTranslation(m.appModel.Translation, m.language, sideWidth))
	}
	sidePanel := lipgloss.JoinVertical(lipgloss.Left, side...)

	input := components.RenderInput(m.input.View(), width)
	status := components.RenderStatus(m.appModel.Status, m.appModel.Loading, m.appModel.LoadingDots, width)

	var body string
	if sideWidth >= width {
		// Narrow terminal: stack the panels under the transcript
		transcriptHeight := m.transcriptHeight(input, status, sidePanel)
		transcript := components.Tail(components.RenderMessages(m.appModel.Notices, m.appModel.Messages, width), transcriptHeight)
		body = lipgloss.JoinVertical(lipgloss.Left, transcript, sidePanel)
	} else {
		chatWidth := width - sideWidth - 1
		transcriptHeight := m.transcriptHeight(input, status, "")
		transcript := components.Tail(components.RenderMessages(m.appModel.Notices, m.appModel.Messages, chatWidth), transcriptHeight)
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(chatWidth).Render(transcript),
			" ",
			sidePanel,
		)
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(input)
	b.WriteString("\n")
	b.WriteString(status)

	return b.String()
}

// transcriptHeight is the number of transcript lines that fit above the fixed rows
func (m *AppModel) transcriptHeight(fixed ...string) int {
	if m.appModel.Height == 0 {
		return 1 << 16
	}
	used := 0
	for _, part := range fixed {
		if part != "" {
			used += lipgloss.Height(part) + 1
		}
	}
	return max(m.appModel.Height-used, 3)
}
