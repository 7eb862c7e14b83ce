package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// SpeechCreator is the slice of the provider client used for text-to-speech
type SpeechCreator interface {
	CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error)
}

// SpeechGenerator synthesizes a reply, saves it to a timestamped file and plays it
type SpeechGenerator struct {
	client    SpeechCreator
	model     string
	voice     string
	outputDir string
	player    Player
	log       logrus.FieldLogger
	now       func() time.Time
}

type SpeechOptions struct {
	Model     string
	Voice     string
	OutputDir string
	Player    Player // Nil saves the audio without playing it
}

func NewSpeechGenerator(client SpeechCreator, opts SpeechOptions, log logrus.FieldLogger) *SpeechGenerator {
	if opts.Model == "" {
		opts.Model = string(openai.TTSModel1)
	}
	if opts.Voice == "" {
		opts.Voice = string(openai.VoiceOnyx)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	return &SpeechGenerator{
		client:    client,
		model:     opts.Model,
		voice:     opts.Voice,
		outputDir: opts.OutputDir,
		player:    opts.Player,
		log:       log.WithField("component", "speech"),
		now:       time.Now,
	}
}

// Speak blocks until the audio is saved and, when a player is configured, played to the end.
func (g *SpeechGenerator) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	path, err := g.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	if g.player == nil {
		return nil
	}
	if err := g.player.Play(ctx, path); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}

// Synthesize writes the speech for text to output_audio_<ts>.mp3 and returns its path
func (g *SpeechGenerator) Synthesize(ctx context.Context, text string) (string, error) {
	resp, err := g.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(g.model),
		Voice:          openai.SpeechVoice(g.voice),
		Input:          text,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return "", fmt.Errorf("speech generation failed: %w", err)
	}
	defer resp.Close()

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}
	path := filepath.Join(g.outputDir, fmt.Sprintf("output_audio_%d.mp3", g.now().UnixNano()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}

	_, err = io.Copy(f, resp)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	g.log.WithField("path", path).Info("created audio file")
	return path, nil
}
