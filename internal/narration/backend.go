package narration

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os/exec"
	"strconv"
	"sync"
)

// Backend speaks text and returns when playback ends or ctx is cancelled.
type Backend interface {
	Name() string
	Speak(ctx context.Context, text string, rate Rate) error
}

// DefaultCommands are the TTS programs tried in order.
var DefaultCommands = []string{"espeak-ng", "espeak", "spd-say", "say"}

// DefaultVoice is the voice passed to engines that take one.
const DefaultVoice = "en-us"

var lookPath = exec.LookPath

// CommandBackend speaks through an external TTS program.
type CommandBackend struct {
	name  string
	path  string
	voice string
}

// NewCommandBackend resolves name on PATH.
func NewCommandBackend(name, voice string) (*CommandBackend, error) {
	path, err := lookPath(name)
	if err != nil {
		return nil, fmt.Errorf("tts command %s: %w", name, err)
	}
	if voice == "" {
		voice = DefaultVoice
	}
	return &CommandBackend{name: name, path: path, voice: voice}, nil
}

// Detect returns a backend for command, or for the first of
// DefaultCommands found when command is empty. It falls back to a
// NopBackend.
func Detect(command, voice string, logger *slog.Logger) Backend {
	if logger == nil {
		logger = slog.Default()
	}

	candidates := DefaultCommands
	if command != "" {
		candidates = []string{command}
	}
	for _, name := range candidates {
		b, err := NewCommandBackend(name, voice)
		if err == nil {
			logger.Debug("tts backend selected", "command", name, "path", b.path)
			return b
		}
	}
	return NewNopBackend(logger)
}

func (b *CommandBackend) Name() string { return b.name }

func (b *CommandBackend) Speak(ctx context.Context, text string, rate Rate) error {
	cmd := exec.CommandContext(ctx, b.path, b.args(text, rate)...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", b.name, err)
	}
	return nil
}

func (b *CommandBackend) args(text string, rate Rate) []string {
	wpm := strconv.Itoa(rate.WPM())
	switch b.name {
	case "spd-say":
		// spd-say rates run -100..100 around the default.
		r := int(math.Round((float64(rate) - 1) * 100))
		return []string{"-w", "-l", "en", "-r", strconv.Itoa(r), text}
	case "say":
		return []string{"-r", wpm, text}
	default:
		return []string{"-v", b.voice, "-s", wpm, text}
	}
}

// NopBackend is used when no TTS program is installed.
type NopBackend struct {
	logger *slog.Logger
	once   sync.Once
}

func NewNopBackend(logger *slog.Logger) *NopBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &NopBackend{logger: logger}
}

func (b *NopBackend) Name() string { return "none" }

func (b *NopBackend) Speak(ctx context.Context, text string, rate Rate) error {
	b.once.Do(func() {
		b.logger.Warn("no text-to-speech program found; listening questions will be silent",
			"tried", DefaultCommands)
	})
	return nil
}
