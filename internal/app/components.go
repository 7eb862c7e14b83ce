package app

import (
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/Rorical/flightai/internal/config"
	"github.com/Rorical/flightai/internal/core"
	"github.com/Rorical/flightai/internal/media"
	"github.com/Rorical/flightai/internal/store/boltdb"
	"github.com/Rorical/flightai/internal/tools"
	"github.com/Rorical/flightai/internal/translate"
)

// Components are the collaborators shared by the terminal shell and the HTTP server
type Components struct {
	Registry   *tools.Registry
	Bookings   *boltdb.BookingStore
	Turns      *core.TurnController // Nil when no API key is configured
	Translator *translate.Translator // Nil when translation is disabled
	Effects    *core.Effects
	db         *boltdb.DB
}

// NewOpenAIClient constructs the provider client once from the active profile
func NewOpenAIClient(cfg *config.Config) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.GetAPIKey())
	if cfg.GetBaseURL() != "" {
		clientConfig.BaseURL = cfg.GetBaseURL()
	}
	return openai.NewClientWithConfig(clientConfig)
}

func BuildComponents(cfg *config.Config, log logrus.FieldLogger) (*Components, error) {
	db, err := boltdb.Open(cfg.Bookings.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bookings store: %w", err)
	}
	bookings := boltdb.NewBookingStore(db)

	registry := tools.NewRegistry()
	tools.RegisterBuiltinTools(registry, bookings)

	c := &Components{
		Registry: registry,
		Bookings: bookings,
		Effects:  core.NewEffects(log),
		db:       db,
	}

	// Only create OpenAI client if config is valid
	if cfg.IsValid() {
		client := NewOpenAIClient(cfg)
		opts := core.TurnOptions{
			Model:   cfg.GetModel(),
			Effects: c.Effects,
		}
		if cfg.Images.Enabled {
			opts.Images = media.NewImageGenerator(client, media.ImageOptions{
				Model:     cfg.GetImageModel(),
				Size:      cfg.Images.Size,
				OutputDir: cfg.Images.OutputDir,
			}, log)
		}
		if cfg.Speech.Enabled {
			var player media.Player
			if p, err := media.DetectPlayer(cfg.Speech.Player); err != nil {
				log.WithError(err).Warn("audio will be saved but not played")
			} else {
				player = p
			}
			opts.Speech = media.NewSpeechGenerator(client, media.SpeechOptions{
				Model:     cfg.GetSpeechModel(),
				Voice:     cfg.GetVoice(),
				OutputDir: cfg.Speech.OutputDir,
				Player:    player,
			}, log)
		}
		c.Turns = core.NewTurnController(client, registry, opts, log)
	}

	if cfg.Translation.Enabled {
		c.Translator = translate.New(
			translate.NewLocalClient(cfg.Translation.BaseURL, cfg.Translation.APIKey),
			cfg.Translation.Model,
			cfg.Translation.Language,
			log,
		)
	}

	return c, nil
}

// Close cancels background speech and closes the bookings database
func (c *Components) Close() error {
	c.Effects.Close()
	return c.db.Close()
}
