package pushdown

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/pushdown/internal/logging"
	"github.com/aretw0/pushdown/internal/runtime"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/ports"
	"github.com/aretw0/pushdown/pkg/presets"
	"github.com/google/uuid"
)

// Simulate runs commands against table and returns the trace and verdict.
// It is pure: no logging, no hooks, no persistence. The error is non-nil only
// for internal faults (wrapping domain.ErrInternalFault); rejections are verdicts.
func Simulate(table *domain.TransitionTable, commands []domain.Command) (*domain.Result, error) {
	return runtime.NewEngine().Simulate(context.Background(), table, commands)
}

// Engine is the high-level entry point for the pushdown library.
// It binds one TransitionTable to the runtime and optionally records runs.
type Engine struct {
	runtime *runtime.Engine
	table   *domain.TransitionTable
	loader  ports.TableLoader
	store   ports.RunStore
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithTable sets the transition table directly.
func WithTable(table *domain.TransitionTable) Option {
	return func(e *Engine) {
		e.table = table
	}
}

// WithLoader obtains the table from a TableLoader when the engine is created.
func WithLoader(l ports.TableLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithRunStore records every run made through Engine.Run.
func WithRunStore(store ports.RunStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock overrides the time source used to stamp run records.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New initializes an Engine.
// The table comes from WithTable, else from WithLoader, else the built-in pizza-bot table.
// Configuration errors surface here, never during a run.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	eng := &Engine{
		logger: logging.NewNop(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	if eng.table == nil && eng.loader != nil {
		table, err := eng.loader.LoadTable(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load table: %w", err)
		}
		eng.table = table
	}
	if eng.table == nil {
		eng.table = presets.PizzaBot()
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	)

	eng.logger.Debug("engine ready",
		"table", eng.table.Name(),
		"rules", eng.table.Len(),
		"initial", eng.table.Initial(),
	)
	return eng, nil
}

// Table returns the bound transition table.
func (e *Engine) Table() *domain.TransitionTable {
	return e.table
}

// Store returns the run store, or nil when runs are not recorded.
func (e *Engine) Store() ports.RunStore {
	return e.store
}

// Simulate runs commands against the bound table without recording it.
func (e *Engine) Simulate(ctx context.Context, commands []domain.Command) (*domain.Result, error) {
	res, err := e.runtime.Simulate(ctx, e.table, commands)
	if err != nil {
		e.logger.Error("simulation fault", "table", e.table.Name(), "error", err)
		return nil, err
	}
	return res, nil
}

// Run simulates commands and, when a RunStore is configured, records the run.
// A store failure is returned together with the record, which is still valid.
func (e *Engine) Run(ctx context.Context, commands []domain.Command) (*domain.RunRecord, error) {
	res, err := e.Simulate(ctx, commands)
	if err != nil {
		return nil, err
	}

	record := &domain.RunRecord{
		ID:        e.newID(),
		CreatedAt: e.now().UTC(),
		Commands:  append([]domain.Command(nil), commands...),
		Result:    *res,
	}
	if e.store == nil {
		return record, nil
	}
	if err := e.store.Save(ctx, record); err != nil {
		e.logger.Warn("failed to record run", "run_id", record.ID, "error", err)
		return record, fmt.Errorf("failed to record run %s: %w", record.ID, err)
	}
	e.logger.Debug("run recorded", "run_id", record.ID, "outcome", res.Verdict.Outcome)
	return record, nil
}

// Runs lists recorded run IDs, most recent first.
func (e *Engine) Runs(ctx context.Context) ([]string, error) {
	if e.store == nil {
		return []string{}, nil
	}
	return e.store.List(ctx)
}

// LoadRun returns a recorded run.
func (e *Engine) LoadRun(ctx context.Context, id string) (*domain.RunRecord, error) {
	if e.store == nil {
		return nil, domain.ErrRunNotFound
	}
	return e.store.Load(ctx, id)
}
