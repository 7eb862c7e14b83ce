package media

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoPlayer is returned when no audio player command can be found
var ErrNoPlayer = errors.New("no audio player found")

// Player plays an audio file, blocking until playback finishes or ctx is cancelled
type Player interface {
	Play(ctx context.Context, path string) error
}

// CommandPlayer plays audio through an external command, e.g. afplay or mpg123
type CommandPlayer struct {
	Command string
	Args    []string // Inserted before the file path
}

func (p *CommandPlayer) Play(ctx context.Context, path string) error {
	args := append(append([]string{}, p.Args...), path)
	cmd := exec.CommandContext(ctx, p.Command, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w: %s", p.Command, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// knownPlayers in preference order
var knownPlayers = []CommandPlayer{
	{Command: "afplay"},
	{Command: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	{Command: "mpg123", Args: []string{"-q"}},
	{Command: "mpv", Args: []string{"--no-video", "--really-quiet"}},
}

// DetectPlayer resolves the configured player command line, or the first known player on PATH.
func DetectPlayer(configured string) (Player, error) {
	if fields := strings.Fields(configured); len(fields) > 0 {
		if _, err := exec.LookPath(fields[0]); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNoPlayer, fields[0])
		}
		return &CommandPlayer{Command: fields[0], Args: fields[1:]}, nil
	}

	for _, candidate := range knownPlayers {
		if _, err := exec.LookPath(candidate.Command); err == nil {
			p := candidate
			return &p, nil
		}
	}
	return nil, ErrNoPlayer
}
