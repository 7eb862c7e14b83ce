package app

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/Rorical/flightai/internal/config"
	"github.com/Rorical/flightai/internal/core"
	"github.com/Rorical/flightai/internal/dispatcher"
	"github.com/Rorical/flightai/internal/eventbus"
	"github.com/Rorical/flightai/internal/logger"
	"github.com/Rorical/flightai/internal/models"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	components *Components
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.ChatService
	model      *AppModel
	logCloser  io.Closer
}

func NewApplication(cfg *config.Config) (*Application, error) {
	// The terminal belongs to Bubble Tea, so logs go to a file
	log, logCloser, err := logger.NewFileLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	components, err := BuildComponents(cfg, log)
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	// Create event bus
	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		log.WithError(e.Err).WithField("operation", e.Operation).Warn("event bus error")
	})

	// Create dispatcher
	disp := dispatcher.NewEventDispatcher(eb)

	opts := core.ServiceOptions{Welcome: welcomeMessages(cfg)}
	if components.Turns != nil {
		opts.Turns = components.Turns
	}
	if components.Translator != nil {
		opts.Translator = components.Translator
	}
	chatService := core.NewChatService(opts, eb, log)

	language := ""
	if cfg.Translation.Enabled {
		language = cfg.Translation.Language
	}

	log.WithFields(logrus.Fields{
		"profile": cfg.ActiveProfile,
		"model":   cfg.GetModel(),
		"ready":   chatService.IsReady(),
	}).Info("starting FlightAI")

	return &Application{
		config:     cfg,
		components: components,
		eventBus:   eb,
		dispatcher: disp,
		service:    chatService,
		model:      newAppModel(chatService.IsReady(), language, disp),
		logCloser:  logCloser,
	}, nil
}

func (app *Application) Start() error {
	// Start background services
	app.service.Start()

	// Run UI
	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
	if err := app.components.Close(); err != nil {
		fmt.Printf("Failed to close components: %v\n", err)
	}
	app.logCloser.Close()
}

func welcomeMessages(cfg *config.Config) []string {
	// Welcome header
	lines := []string{"-- FLIGHTAI --"}

	// Profile information with status
	if cfg.IsValid() {
		lines = append(lines,
			fmt.Sprintf("Active Profile: %s [OK]", cfg.ActiveProfile),
			"Ask about ticket prices or book a flight.",
		)
	} else {
		lines = append(lines,
			fmt.Sprintf("Active Profile: %s [NOT CONFIGURED]", cfg.ActiveProfile),
			"Configure your profile to start chatting:",
			"• Set OPENAI_API_KEY or run: flightai profile add <name>",
			"• Or edit: "+cfg.Dir()+"/config.json",
		)
	}
	return lines
}

func initialAppModel(chatReady bool) models.AppModel {
	// No initial messages in UI - they come from core as single source of truth
	return models.AppModel{
		Messages:         make(models.History, 0),
		Status:           "Ready",
		ChatServiceReady: chatReady,
	}
}
