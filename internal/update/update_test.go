package update

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/flightai/internal/eventbus"
	"github.com/Rorical/flightai/internal/models"
)

func newInput(value string) textinput.Model {
	input := textinput.New()
	input.Focus()
	input.SetValue(value)
	return input
}

func TestEnterSendsTrimmedMessage(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	app := &models.AppModel{}
	input := newInput("  How much to Paris?  ")

	HandleUpdateWithEventBus(app, &input, tea.KeyMsg{Type: tea.KeyEnter}, eb, true)

	assert.Equal(t, eventbus.SendMessageEvent{Message: "How much to Paris?"}, <-eb.UIToCore())
	assert.Empty(t, input.Value())
}

func TestEnterIgnoredWhileLoadingOrEmpty(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()

	loading := &models.AppModel{Loading: true}
	input := newInput("Hi")
	HandleUpdateWithEventBus(loading, &input, tea.KeyMsg{Type: tea.KeyEnter}, eb, true)
	assert.Equal(t, "Hi", input.Value())

	blank := newInput("   ")
	HandleUpdateWithEventBus(&models.AppModel{}, &blank, tea.KeyMsg{Type: tea.KeyEnter}, eb, true)

	select {
	case event := <-eb.UIToCore():
		t.Fatalf("unexpected event %#v", event)
	default:
	}
}

func TestEnterWithoutChatService(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	app := &models.AppModel{}
	input := newInput("Hi")

	HandleUpdateWithEventBus(app, &input, tea.KeyMsg{Type: tea.KeyEnter}, eb, false)
	assert.Equal(t, "Chat service not available", app.Status)
	assert.Empty(t, input.Value())
}

func TestCtrlLClearsHistory(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	input := newInput("")

	HandleUpdateWithEventBus(&models.AppModel{}, &input, tea.KeyMsg{Type: tea.KeyCtrlL}, eb, true)
	assert.Equal(t, eventbus.ClearHistoryEvent{}, <-eb.UIToCore())
}

func TestQuitKeys(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	input := newInput("")

	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		cmd := HandleUpdateWithEventBus(&models.AppModel{}, &input, tea.KeyMsg{Type: key}, eb, true)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestCoreEventUpdatesModel(t *testing.T) {
	app := &models.AppModel{Width: 100}
	image := &models.ImageAsset{City: "London"}

	HandleCoreEvent(app, CoreEventMsg{Event: eventbus.StateUpdateEvent{
		Messages:     models.History{models.UserMessage("Hi")},
		Notices:      []string{"welcome"},
		Image:        image,
		IsProcessing: true,
	}})
	assert.True(t, app.Loading)
	assert.Equal(t, "Processing", app.Status)
	assert.Same(t, image, app.Image)
	assert.Len(t, app.Messages, 1)

	HandleCoreEvent(app, CoreEventMsg{Event: eventbus.StateUpdateEvent{
		Translation: "Hola",
		Error:       errors.New("boom"),
	}})
	assert.False(t, app.Loading)
	assert.Equal(t, "Error: boom", app.Status)
	assert.Equal(t, "Hola", app.Translation)
	assert.Nil(t, app.Image)
}

func TestTickAnimatesOnlyWhileLoading(t *testing.T) {
	app := &models.AppModel{}
	HandleTickMsg(app)
	assert.Zero(t, app.LoadingDots)

	app.Loading = true
	HandleTickMsg(app)
	assert.Equal(t, 1, app.LoadingDots)
}
