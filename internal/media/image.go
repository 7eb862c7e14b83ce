package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/Rorical/flightai/internal/models"
)

// ImageCreator is the slice of the provider client used for image generation
type ImageCreator interface {
	CreateImage(ctx context.Context, request openai.ImageRequest) (openai.ImageResponse, error)
}

// ImageGenerator turns a destination into a decoded image asset
type ImageGenerator struct {
	client    ImageCreator
	model     string
	size      string
	outputDir string
	log       logrus.FieldLogger
	now       func() time.Time
}

type ImageOptions struct {
	Model     string
	Size      string
	OutputDir string // Empty keeps the image in memory only
}

func NewImageGenerator(client ImageCreator, opts ImageOptions, log logrus.FieldLogger) *ImageGenerator {
	if opts.Model == "" {
		opts.Model = openai.CreateImageModelDallE3
	}
	if opts.Size == "" {
		opts.Size = openai.CreateImageSize1024x1024
	}
	return &ImageGenerator{
		client:    client,
		model:     opts.Model,
		size:      opts.Size,
		outputDir: opts.OutputDir,
		log:       log.WithField("component", "image"),
		now:       time.Now,
	}
}

// ImagePrompt is the pop-art vacation prompt for a destination
func ImagePrompt(city string) string {
	return fmt.Sprintf("An image representing a vacation in %s, showing tourist spots and everything unique about %s, in a vibrant pop-art style", city, city)
}

func (g *ImageGenerator) Generate(ctx context.Context, city string) (*models.ImageAsset, error) {
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         ImagePrompt(city),
		Model:          g.model,
		Size:           g.size,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, errors.New("image generation returned no image data")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	asset := &models.ImageAsset{
		City:          city,
		Data:          data,
		Width:         cfg.Width,
		Height:        cfg.Height,
		RevisedPrompt: resp.Data[0].RevisedPrompt,
	}

	if g.outputDir != "" {
		if err := os.MkdirAll(g.outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create image directory: %w", err)
		}
		name := fmt.Sprintf("%s_%d.%s", fileSafe(city), g.now().UnixNano(), format)
		asset.Path = filepath.Join(g.outputDir, name)
		if err := os.WriteFile(asset.Path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to save image: %w", err)
		}
	}

	g.log.WithFields(logrus.Fields{
		"city":   city,
		"path":   asset.Path,
		"width":  asset.Width,
		"height": asset.Height,
	}).Info("generated destination image")
	return asset, nil
}

func fileSafe(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, s)
}
