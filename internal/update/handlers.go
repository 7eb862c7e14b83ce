package update

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/flightai/internal/eventbus"
	"github.com/Rorical/flightai/internal/models"
	"github.com/Rorical/flightai/ui/components"
)

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, input *textinput.Model, keyMsg tea.KeyMsg, eb *eventbus.EventBus, chatReady bool) tea.Cmd {
	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return tea.Quit
	case tea.KeyCtrlL:
		if err := eb.SendToCore(eventbus.ClearHistoryEvent{}); err != nil {
			appModel.Status = "Error clearing chat: " + err.Error()
		}
		return nil
	case tea.KeyEnter:
		message := strings.TrimSpace(input.Value())
		if message == "" || appModel.Loading {
			return nil
		}
		if !chatReady {
			// Fallback when chat service is not ready
			input.Reset()
			appModel.Status = "Chat service not available"
			return nil
		}

		// Send event to core via event bus with error handling
		if err := eb.SendToCore(eventbus.SendMessageEvent{Message: message}); err != nil {
			appModel.Status = "Error sending message: " + err.Error()
			return nil
		}

		// Only manage local UI state - clear input
		input.Reset()
		return nil
	}

	var cmd tea.Cmd
	*input, cmd = input.Update(keyMsg)
	return cmd
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		// Update UI state from core state
		appModel.Messages = event.Messages
		appModel.Notices = event.Notices
		appModel.Translation = event.Translation
		appModel.Loading = event.IsProcessing
		if event.Image != appModel.Image {
			appModel.Image = event.Image
			appModel.ImagePreview = components.RenderImagePreview(event.Image, components.ImagePanelWidth(appModel.Width))
		}

		// Update status based on core state
		if event.Error != nil {
			appModel.Status = "Error: " + event.Error.Error()
		} else if event.IsProcessing {
			appModel.Status = "Processing"
		} else {
			appModel.Status = "Ready"
		}
	}

	return nil
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, input *textinput.Model, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
	input.Width = sizeMsg.Width - 8
	appModel.ImagePreview = components.RenderImagePreview(appModel.Image, components.ImagePanelWidth(appModel.Width))
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Loading {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}
