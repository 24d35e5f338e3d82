package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/aretw0/pushdown/internal/sanitize"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/presets"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// PrintSystemMessage prints a standardized system message.
func PrintSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// ParseCommands turns CLI arguments into lower-case commands. Each argument may
// itself hold several commands separated by commas or spaces.
func ParseCommands(args []string) []domain.Command {
	fields := splitFields(args)
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return domain.Commands(fields...)
}

func splitFields(args []string) []string {
	var out []string
	for _, arg := range args {
		out = append(out, strings.FieldsFunc(arg, isSeparator)...)
	}
	return out
}

// ReadCommands reads whitespace or comma separated commands from r until EOF.
// Lines starting with # are ignored.
func ReadCommands(r io.Reader) ([]domain.Command, error) {
	var fields []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields = append(fields, splitFields([]string{line})...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read commands: %w", err)
	}
	return sanitize.Commands(fields)
}

// ResolveCommands picks the input for a run: a named example, stdin ("-"), or args.
func ResolveCommands(args []string, example string, stdin io.Reader) ([]domain.Command, error) {
	switch {
	case example != "" && len(args) > 0:
		return nil, fmt.Errorf("--example cannot be combined with explicit commands")
	case example != "":
		ex, err := presets.LookupExample(example)
		if err != nil {
			return nil, err
		}
		return ex.Commands, nil
	case len(args) == 1 && args[0] == "-":
		return ReadCommands(stdin)
	default:
		return sanitize.Commands(splitFields(args))
	}
}

func isSeparator(r rune) bool {
	return r == ',' || r == ' ' || r == '\t'
}
