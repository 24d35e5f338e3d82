// Package sanitize checks untrusted command input before it reaches the engine.
package sanitize

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/pushdown/pkg/domain"
)

var (
	// DefaultMaxCommands bounds the length of one input sequence.
	DefaultMaxCommands = 4096
	// DefaultMaxCommandSize bounds a single command, in bytes.
	DefaultMaxCommandSize = 256
	// EnvMaxCommands is the environment variable to override DefaultMaxCommands.
	EnvMaxCommands = "PUSHDOWN_MAX_COMMANDS"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrTooManyCommands = fmt.Errorf("%w: too many commands", ErrInvalidInput)
	ErrCommandTooLarge = fmt.Errorf("%w: command exceeds maximum allowed size", ErrInvalidInput)
	ErrInvalidUTF8     = fmt.Errorf("%w: command contains invalid UTF-8 sequences", ErrInvalidInput)
	ErrEmptyCommand    = fmt.Errorf("%w: empty command", ErrInvalidInput)
)

// Command cleans one command: it enforces the size limit, validates UTF-8,
// strips control characters and surrounding whitespace, and lowercases it.
// Table commands are matched exactly, so tables should declare them in lower case.
// Oversized input is rejected rather than truncated so runs stay deterministic.
func Command(raw string) (domain.Command, error) {
	if len(raw) > DefaultMaxCommandSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrCommandTooLarge, len(raw), DefaultMaxCommandSize)
	}
	if !utf8.ValidString(raw) {
		return "", ErrInvalidUTF8
	}

	clean := raw
	if strings.IndexFunc(raw, unicode.IsControl) >= 0 {
		var b strings.Builder
		b.Grow(len(raw))
		for _, r := range raw {
			if !unicode.IsControl(r) {
				b.WriteRune(r)
			}
		}
		clean = b.String()
	}

	clean = strings.TrimSpace(clean)
	if clean == "" {
		return "", ErrEmptyCommand
	}
	return domain.Command(strings.ToLower(clean)), nil
}

// Commands cleans a whole input sequence. Errors name the offending position (1-based).
func Commands(raw []string) ([]domain.Command, error) {
	if limit := maxCommands(); len(raw) > limit {
		return nil, fmt.Errorf("%w: count=%d limit=%d", ErrTooManyCommands, len(raw), limit)
	}
	out := make([]domain.Command, 0, len(raw))
	for i, r := range raw {
		cmd, err := Command(r)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i+1, err)
		}
		out = append(out, cmd)
	}
	return out, nil
}

func maxCommands() int {
	if val := os.Getenv(EnvMaxCommands); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return DefaultMaxCommands
}
