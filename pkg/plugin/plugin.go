// Package plugin provides ReactiveLogger, a lifecycle hook implementation that
// writes one human-readable line per created, updated or named reactive value.
package plugin

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/heyjunin/reactlog/pkg/logger"
	"github.com/heyjunin/reactlog/pkg/reactive"
	"github.com/rs/zerolog"
)

// Config contains settings for a ReactiveLogger.
type Config struct {
	// Logger is the sink log lines are written to. It is borrowed, never closed.
	// When nil a bare info level logger on DefaultOutput is used.
	Logger *zerolog.Logger
}

// ReactiveLogger logs reactive value lifecycle events.
type ReactiveLogger struct {
	logger *zerolog.Logger
}

var _ reactive.Hooks = (*ReactiveLogger)(nil)

// DefaultOutput is the stream behind the default sink. It is looked up on
// every write, so replacing it redirects loggers that were already built.
var DefaultOutput io.Writer = os.Stderr

type defaultOutput struct{}

func (defaultOutput) Write(p []byte) (int, error) {
	return DefaultOutput.Write(p)
}

// New creates a ReactiveLogger writing to cfg.Logger, or to DefaultOutput when unset.
func New(cfg Config) *ReactiveLogger {
	l := cfg.Logger
	if l == nil {
		bare := logger.NewBare(defaultOutput{})
		l = &bare
	}
	return &ReactiveLogger{logger: l}
}

var (
	defaultOnce   sync.Once
	defaultPlugin *ReactiveLogger
)

// Default returns the process-wide ReactiveLogger using the default sink.
func Default() *ReactiveLogger {
	defaultOnce.Do(func() {
		defaultPlugin = New(Config{})
	})
	return defaultPlugin
}

// Register registers the default ReactiveLogger with r and returns it.
// Call it once from the host's startup path.
func Register(r reactive.Registrar) *ReactiveLogger {
	p := Default()
	r.Register(p)
	return p
}

// Created logs that v was created.
func (p *ReactiveLogger) Created(v reactive.Value) {
	p.logger.Info().Msgf("Created %s with value: %v", DisplayName(v), v.Value())
}

// Updated logs that v changed value.
func (p *ReactiveLogger) Updated(v reactive.Value) {
	p.logger.Info().Msgf("Updated %s to value: %v", DisplayName(v), v.Value())
}

// Named logs that v was given a name. The raw type/identity form is always
// logged next to the new name, even if the value was already named before.
func (p *ReactiveLogger) Named(v reactive.Value) {
	p.logger.Info().Msgf("Named %s as %s", rawName(v), DisplayName(v))
}

// DisplayName returns the name of v, or its type and identity when unnamed.
func DisplayName(v reactive.Value) string {
	if name := v.Name(); name != "" {
		return name
	}
	return rawName(v)
}

func rawName(v reactive.Value) string {
	return fmt.Sprintf("%s(id=%d)", reactive.TypeTag(v), reactive.Identity(v))
}
