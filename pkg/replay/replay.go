// Package replay applies recorded lifecycle scripts to reactive values and
// dispatches the matching hooks to every registered plugin. It is the host
// the reactlog command uses to drive plugins outside of a live application.
package replay

import (
	"context"

	"github.com/google/uuid"
	"github.com/heyjunin/reactlog/pkg/errors"
	"github.com/heyjunin/reactlog/pkg/logger"
	"github.com/heyjunin/reactlog/pkg/progress"
	"github.com/heyjunin/reactlog/pkg/reactive"
)

// Options configures a Player.
type Options struct {
	// Reporter receives one increment per applied event. Defaults to progress.NoopReporter.
	Reporter progress.Reporter
	// Logger receives diagnostics. Defaults to logger.NewLogger().
	Logger logger.Logger
}

// Summary describes a finished run.
type Summary struct {
	RunID   string
	Created int
	Updated int
	Named   int
}

// Player replays scripts. Hooks are dispatched synchronously, in registration
// order, once per event.
type Player struct {
	hooks    []reactive.Hooks
	reporter progress.Reporter
	logger   logger.Logger
	values   map[string]*reactive.Variable
}

var _ reactive.Registrar = (*Player)(nil)

// NewPlayer creates a Player with no registered hooks.
func NewPlayer(opts Options) *Player {
	if opts.Reporter == nil {
		opts.Reporter = progress.NoopReporter{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewLogger()
	}
	return &Player{
		reporter: opts.Reporter,
		logger:   opts.Logger,
		values:   map[string]*reactive.Variable{},
	}
}

// Register adds h to the hooks dispatched on every event.
func (p *Player) Register(h reactive.Hooks) {
	p.hooks = append(p.hooks, h)
}

// Lookup returns the value created under ref by the last run.
func (p *Player) Lookup(ref string) (*reactive.Variable, bool) {
	v, ok := p.values[ref]
	return v, ok
}

// Run applies events in order. Every run starts with no values. The context
// is checked before each event; a cancelled run returns the summary so far.
func (p *Player) Run(ctx context.Context, events []Event) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	p.values = map[string]*reactive.Variable{}

	p.logger.Info("Replay started", "replay", map[string]interface{}{
		"run_id": summary.RunID,
		"events": len(events),
		"hooks":  len(p.hooks),
	})
	p.reporter.Start(int64(len(events)))

	for i, ev := range events {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("Replay cancelled", "replay", map[string]interface{}{
				"run_id": summary.RunID,
				"event":  i + 1,
			})
			return summary, errors.Wrap(err, errors.ReplayError, errors.GetErrorMessage(errors.ErrReplayCancelled), errors.ErrReplayCancelled)
		}

		if err := p.apply(ev, i+1, &summary); err != nil {
			return summary, err
		}
		p.reporter.Increment(string(ev.Op), ev.Ref)
	}

	p.reporter.Complete()
	p.logger.Info("Replay finished", "replay", map[string]interface{}{
		"run_id":  summary.RunID,
		"created": summary.Created,
		"updated": summary.Updated,
		"named":   summary.Named,
	})
	return summary, nil
}

func (p *Player) apply(ev Event, index int, summary *Summary) error {
	p.logger.Debug("Applying event", "replay", map[string]interface{}{
		"run_id": summary.RunID,
		"event":  index,
		"op":     string(ev.Op),
		"ref":    ev.Ref,
	})

	switch ev.Op {
	case OpCreate:
		if _, exists := p.values[ev.Ref]; exists {
			return errors.Newf(errors.ReplayError, errors.ErrReplayDuplicateRef, "event %d: ref %q", index, ev.Ref)
		}
		v := reactive.NewVariable(ev.Value)
		v.SetName(ev.Name)
		p.values[ev.Ref] = v
		for _, h := range p.hooks {
			h.Created(v)
		}
		summary.Created++

	case OpUpdate:
		v, err := p.lookup(ev, index)
		if err != nil {
			return err
		}
		v.SetValue(ev.Value)
		for _, h := range p.hooks {
			h.Updated(v)
		}
		summary.Updated++

	case OpName:
		v, err := p.lookup(ev, index)
		if err != nil {
			return err
		}
		v.SetName(ev.Name)
		for _, h := range p.hooks {
			h.Named(v)
		}
		summary.Named++

	default:
		return errors.Newf(errors.ScriptError, errors.ErrScriptUnknownOp, "event %d: op %q", index, ev.Op)
	}
	return nil
}

func (p *Player) lookup(ev Event, index int) (*reactive.Variable, error) {
	v, ok := p.values[ev.Ref]
	if !ok {
		return nil, errors.Newf(errors.ReplayError, errors.ErrReplayUnknownRef, "event %d: ref %q", index, ev.Ref)
	}
	return v, nil
}
