// internal/speech/speaker.go
package speech

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

var ErrUnsupported = errors.New("text-to-speech not supported")

// Speaker reads text aloud. Speak is fire-and-forget: it returns once the
// utterance has started, without waiting for it to finish.
type Speaker interface {
	Speak(text string) error
}

// CommandSpeaker pipes text to an external synthesizer such as espeak or say.
type CommandSpeaker struct {
	path   string
	args   []string
	logger *slog.Logger
}

// NewCommandSpeaker parses a command line like "espeak -s 150". The text is
// appended as the final argument.
func NewCommandSpeaker(command string, logger *slog.Logger) (*CommandSpeaker, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, ErrUnsupported
	}
	path, err := exec.LookPath(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandSpeaker{path: path, args: fields[1:], logger: logger.With("component", "speech")}, nil
}

func (s *CommandSpeaker) Speak(text string) error {
	args := append(append([]string{}, s.args...), text)
	cmd := exec.Command(s.path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start speech command: %w", err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			s.logger.Warn("speech command exited with error", "error", err)
		}
	}()
	return nil
}

// Unsupported is the speaker used when no synthesizer is configured.
type Unsupported struct{}

func (Unsupported) Speak(string) error {
	return ErrUnsupported
}
