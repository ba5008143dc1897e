package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/heyjunin/reactlog/pkg/logger"
	"github.com/schollz/progressbar/v3"
)

// ProgressEvent represents a single progress update event, often serialized to JSON.
type ProgressEvent struct {
	// Status indicates the current overall status ("initialized", "started", "processing", "completed").
	Status string `json:"status"`
	// Percentage represents the progress completion from 0.0 to 100.0.
	Percentage float64 `json:"percentage"`
	// Step is the operation of the event just handled (e.g., "create", "update").
	Step string `json:"step"`
	// Stage is the reference the event applied to.
	Stage string `json:"stage"`
	// Timestamp marks when the event occurred in RFC3339 format.
	Timestamp string `json:"timestamp"`
}

// Reporter defines the interface for reporting progress while a replay script
// is being applied.
type Reporter interface {
	// Start initializes the progress reporting with the total number of events.
	Start(total int64)
	// Increment advances the progress by one event.
	Increment(step, stage string)
	// Complete marks the operation as finished.
	Complete()
	// Event returns a snapshot of the latest ProgressEvent.
	Event() ProgressEvent
}

// reporterOptions holds configuration for the DefaultReporter.
type reporterOptions struct {
	writer             io.Writer
	progressFilePath   string
	progressFileFormat string // "text" or "json" (default: "text")
	description        string
}

// ReporterOption is a function type used to configure a DefaultReporter.
type ReporterOption func(*reporterOptions)

// WithWriter sets where the console progress bar is rendered. Defaults to os.Stderr.
func WithWriter(w io.Writer) ReporterOption {
	return func(opts *reporterOptions) {
		opts.writer = w
	}
}

// WithProgressFile sets the file path where the current progress should be written.
// The format is controlled by WithProgressFileFormat (defaults to "text").
// If the path is empty (default), no file will be written.
func WithProgressFile(path string) ReporterOption {
	return func(opts *reporterOptions) {
		opts.progressFilePath = path
	}
}

// WithProgressFileFormat sets the format for the progress file ("text" or "json").
func WithProgressFileFormat(format string) ReporterOption {
	return func(opts *reporterOptions) {
		if format == "json" || format == "text" {
			opts.progressFileFormat = format
		} else {
			logger.Warn("Invalid progress file format specified, defaulting to 'text'", "progress", map[string]interface{}{
				"format": format,
			})
			opts.progressFileFormat = "text"
		}
	}
}

// WithDescription sets the description text for the console progress bar.
func WithDescription(desc string) ReporterOption {
	return func(opts *reporterOptions) {
		opts.description = desc
	}
}

// DefaultReporter is the default implementation of the Reporter interface.
// It uses the github.com/schollz/progressbar/v3 library to display a progress
// bar and optionally mirrors the latest event to a file.
type DefaultReporter struct {
	Total   int64
	Current int64
	Started time.Time
	Bar     *progressbar.ProgressBar
	opts    reporterOptions
	event   ProgressEvent
	mu      sync.Mutex // Protects access to shared fields
}

// NewReporter creates a new DefaultReporter.
func NewReporter(opts ...ReporterOption) *DefaultReporter {
	options := reporterOptions{
		writer:             os.Stderr,
		description:        "Replaying...",
		progressFileFormat: "text",
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &DefaultReporter{
		opts: options,
		event: ProgressEvent{
			Status:    "initialized",
			Timestamp: time.Now().Format(time.RFC3339),
		},
	}
}

// Start sets the total number of events and starts the progress bar.
func (r *DefaultReporter) Start(total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Total = total
	r.Current = 0
	r.Started = time.Now()
	r.event.Status = "started"
	r.event.Percentage = 0
	r.event.Timestamp = time.Now().Format(time.RFC3339)

	r.Bar = progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(r.opts.description),
		progressbar.OptionSetWriter(r.opts.writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	r.writeProgressFileInternal()
}

// Increment advances the progress by one event and reports it.
func (r *DefaultReporter) Increment(step, stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Bar == nil {
		return
	} // Not started
	if r.Current < r.Total {
		r.Current++
	}

	percentage := 0.0
	if r.Total > 0 {
		percentage = float64(r.Current) / float64(r.Total) * 100
	}
	r.event.Percentage = percentage
	r.event.Step = step
	r.event.Stage = stage
	r.event.Status = "processing"
	r.event.Timestamp = time.Now().Format(time.RFC3339)

	_ = r.Bar.Set64(r.Current)
	r.writeProgressFileInternal()
}

// Complete finishes the progress bar and writes the final state.
func (r *DefaultReporter) Complete() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Bar == nil {
		return
	} // Not started or already completed

	_ = r.Bar.Finish()
	r.Current = r.Total
	r.event.Percentage = 100
	r.event.Status = "completed"
	r.event.Timestamp = time.Now().Format(time.RFC3339)

	r.writeProgressFileInternal()
	r.Bar = nil
}

// Event returns the latest progress event.
func (r *DefaultReporter) Event() ProgressEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.event
}

// JSON returns the current progress event as a JSON string.
func (r *DefaultReporter) JSON() (string, error) {
	data, err := json.Marshal(r.Event())
	if err != nil {
		return "", fmt.Errorf("failed to marshal progress event: %w", err)
	}
	return string(data), nil
}

// writeProgressFileInternal writes the current progress to the configured file.
// Requires lock to be held by caller.
func (r *DefaultReporter) writeProgressFileInternal() {
	if r.opts.progressFilePath == "" {
		return
	}

	var content []byte
	switch r.opts.progressFileFormat {
	case "json":
		var err error
		content, err = json.MarshalIndent(r.event, "", "  ")
		if err != nil {
			logger.Warn("Failed to marshal progress event to JSON", "progress", map[string]interface{}{
				"path":  r.opts.progressFilePath,
				"error": err.Error(),
			})
			return
		}
	default:
		content = []byte(fmt.Sprintf("%.2f", r.event.Percentage))
	}

	if err := os.WriteFile(r.opts.progressFilePath, content, 0644); err != nil {
		// Log the error but don't stop the replay
		logger.Warn("Failed to write progress file", "progress", map[string]interface{}{
			"path":   r.opts.progressFilePath,
			"format": r.opts.progressFileFormat,
			"error":  err.Error(),
		})
	}
}

// NoopReporter discards all progress.
type NoopReporter struct{}

// Start does nothing.
func (NoopReporter) Start(int64) {}

// Increment does nothing.
func (NoopReporter) Increment(string, string) {}

// Complete does nothing.
func (NoopReporter) Complete() {}

// Event returns the zero event.
func (NoopReporter) Event() ProgressEvent { return ProgressEvent{} }
