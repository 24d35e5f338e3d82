package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/logging"
	"github.com/aretw0/pushdown/pkg/adapters/file"
	"github.com/aretw0/pushdown/pkg/adapters/memory"
	redisstore "github.com/aretw0/pushdown/pkg/adapters/redis"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/observability"
	"github.com/aretw0/pushdown/pkg/ports"
	"github.com/aretw0/pushdown/pkg/presets"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// Store backends selectable with --store.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Options is the process configuration shared by every command.
type Options struct {
	TablePath string
	LogLevel  string
	LogFile   string
	Store     string
	StoreDir  string
	RedisAddr string
	RedisTTL  time.Duration
	Debug     bool
}

// Env is everything a command needs, built from Options.
type Env struct {
	Logger   *slog.Logger
	Engine   *pushdown.Engine
	Registry *prometheus.Registry
	closers  []io.Closer
}

// Close releases the log file and store connections.
func (e *Env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	return errors.Join(errs...)
}

// NewEnv initializes logging, the table, the run store, metrics and the engine.
func NewEnv(ctx context.Context, opts Options) (*Env, error) {
	env := &Env{Registry: prometheus.NewRegistry()}

	logger, closer, err := NewLogger(opts)
	if err != nil {
		return nil, err
	}
	env.Logger = logger
	if closer != nil {
		env.closers = append(env.closers, closer)
	}

	store, closer, err := OpenStore(ctx, opts)
	if err != nil {
		_ = env.Close()
		return nil, err
	}
	if closer != nil {
		env.closers = append(env.closers, closer)
	}

	metrics, err := observability.NewMetrics(env.Registry)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	hooks := []domain.LifecycleHooks{metrics.Hooks()}
	if opts.Debug {
		hooks = append(hooks, observability.DebugHooks(logger))
	}

	engineOpts := []pushdown.Option{
		pushdown.WithLogger(logger),
		pushdown.WithLifecycleHooks(domain.ComposeHooks(hooks...)),
		pushdown.WithLoader(TableLoader(opts.TablePath)),
	}
	if store != nil {
		engineOpts = append(engineOpts, pushdown.WithRunStore(store))
	}

	engine, err := pushdown.New(ctx, engineOpts...)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	env.Engine = engine
	return env, nil
}

// NewLogger builds the process logger. Text goes to stderr; with LogFile set,
// JSON records are also appended to that file.
func NewLogger(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if opts.Debug {
		level = slog.LevelDebug
	}
	if opts.LogFile == "" {
		return logging.New(level), nil, nil
	}

	f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logging.New(level, logging.NewJSONHandler(f, level)), f, nil
}

// TableLoader returns the loader for path, or the built-in pizza-bot table when path is empty.
func TableLoader(path string) ports.TableLoader {
	if path == "" {
		return memory.NewFromTable(presets.PizzaBot())
	}
	return file.NewLoader(path)
}

// OpenStore creates the run store named by opts.Store. StoreNone yields a nil store.
func OpenStore(ctx context.Context, opts Options) (ports.RunStore, io.Closer, error) {
	switch strings.ToLower(opts.Store) {
	case "", StoreNone:
		return nil, nil, nil
	case StoreMemory:
		return memory.NewStore(), nil, nil
	case StoreFile:
		return file.NewStore(opts.StoreDir), nil, nil
	case StoreRedis:
		client, err := newRedisClient(opts.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		store := redisstore.NewFromClient(client, redisstore.WithTTL(opts.RedisTTL))
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", opts.RedisAddr, err)
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (want none, memory, file or redis)", opts.Store)
	}
}

// newRedisClient accepts either host:port or a redis:// URL.
func newRedisClient(addr string) (*redis.Client, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	if strings.Contains(addr, "://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: addr}), nil
}
