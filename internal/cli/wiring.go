package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/reddisetgo/internal/config"
	"github.com/aretw0/reddisetgo/internal/logging"
	"github.com/aretw0/reddisetgo/pkg/adapters/file"
	"github.com/aretw0/reddisetgo/pkg/adapters/memory"
	"github.com/aretw0/reddisetgo/pkg/adapters/process"
	"github.com/aretw0/reddisetgo/pkg/adapters/redis"
	"github.com/aretw0/reddisetgo/pkg/demo"
	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/aretw0/reddisetgo/pkg/flow"
	"github.com/aretw0/reddisetgo/pkg/persistence/middleware"
	"github.com/aretw0/reddisetgo/pkg/ports"
	"github.com/aretw0/reddisetgo/pkg/session"
)

// loadConfig reads the configuration and applies command line overrides.
func loadConfig(opts RunOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.Lookup)
	if err != nil {
		return config.Config{}, err
	}
	if opts.Store != "" {
		cfg.Store.Kind = opts.Store
	}
	if opts.Session != "" {
		cfg.Store.Session = opts.Session
	}
	if opts.MetricsAddr != "" {
		cfg.Server.Addr = opts.MetricsAddr
	}
	if opts.Debug {
		cfg.Log.Level = "debug"
	}
	if opts.NoBanner {
		cfg.UI.Banner = false
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// createLogger is silent unless a level is configured so the menu UI stays clean.
func createLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	if cfg.Level == "" {
		return logging.NewNop(), nil
	}
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(w, level, cfg.JSON), nil
}

// storage bundles the snapshot store with its optional locker.
type storage struct {
	store  ports.SnapshotStore
	locker ports.DistributedLocker
	close  func() error
}

func openStore(ctx context.Context, cfg config.StoreConfig) (storage, error) {
	st, err := openBackend(ctx, cfg)
	if err != nil || cfg.EncryptionKey == "" {
		return st, err
	}

	mw, err := encryptionMiddleware(cfg)
	if err != nil {
		_ = st.close()
		return storage{}, err
	}
	st.store = middleware.Chain(st.store, mw)
	return st, nil
}

func encryptionMiddleware(cfg config.StoreConfig) (middleware.Middleware, error) {
	active, err := middleware.DecodeKey(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("store.encryption_key: %w", err)
	}
	enc := middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range cfg.FallbackKeys {
		key, err := middleware.DecodeKey(k)
		if err != nil {
			return nil, fmt.Errorf("store.fallback_keys[%d]: %w", i, err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, key)
	}
	return middleware.NewEncryptionMiddleware(enc)
}

func openBackend(ctx context.Context, cfg config.StoreConfig) (storage, error) {
	noop := func() error { return nil }
	switch cfg.Kind {
	case config.StoreMemory:
		return storage{store: memory.NewStore(), close: noop}, nil
	case config.StoreFile:
		return storage{store: file.New(cfg.Dir), close: noop}, nil
	case config.StoreRedis:
		opts := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := rs.Client().Ping(ctx).Err(); err != nil {
			_ = rs.Close()
			return storage{}, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return storage{
			store:  rs,
			locker: redis.NewLocker(rs.Client(), rs.Prefix()),
			close:  rs.Close,
		}, nil
	default:
		return storage{}, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}

func newSessionManager(st storage, cfg config.StoreConfig, logger *slog.Logger) *session.Manager {
	opts := []session.Option{session.WithLogger(logger), session.WithLockTTL(cfg.LockTTL)}
	if st.locker != nil {
		opts = append(opts, session.WithLocker(st.locker))
	}
	return session.NewManager(st.store, cfg.Session, opts...)
}

func newProcessRunner(cfg config.ProcessConfig, stdin io.Reader, hooks domain.LifecycleHooks, logger *slog.Logger) *process.Runner {
	return process.NewRunner(
		process.WithShell(process.ParseShell(cfg.Shell)),
		process.WithBaseDir(cfg.WorkDir),
		process.WithStdin(stdin),
		process.WithTimeout(cfg.Timeout),
		process.WithHooks(hooks),
		process.WithLogger(logger),
	)
}

// nearFlows builds the flows behind the Near demos on top of runner and env.
func nearFlows(cfg config.Config, runner flow.Runner, env flow.Environment, state *session.State, logger *slog.Logger) demo.NearFlows {
	cmds := flow.Commands{
		Version: cfg.Commands.Version,
		Install: cfg.Commands.Install,
		Login:   cfg.Commands.Login,
		Keys:    cfg.Commands.Keys,
	}
	network := flow.Network{Variable: cfg.Network.Variable, Required: cfg.Network.Required}

	login := flow.NewLogin(runner, env, state, network, cmds.Login,
		flow.WithLoginTimeout(cfg.Login.Timeout),
		flow.WithLoginLogger(logger),
	)
	return demo.NearFlows{
		Probe: flow.NewProbe(runner, cmds.Version, logger),
		Installer: flow.NewInstaller(runner, cmds.Install,
			flow.WithFatalMarkers(cfg.Install.FatalMarkers...),
			flow.WithInstallTimeout(cfg.Install.Timeout),
			flow.WithInstallLogger(logger),
		),
		Login: login,
		Keys:  flow.NewKeys(runner, state, login, network, cmds, logger),
	}
}

// alignNetwork writes the session's starting network to the environment so child
// processes run on the network the session reports. When the variable does not take
// the value, the session adopts what the environment holds.
func alignNetwork(env flow.Environment, variable string, state *session.State, logger *slog.Logger) error {
	want := state.Network()
	if want == "" {
		return nil
	}
	if got, ok := env.Lookup(variable); ok && got == want {
		return nil
	}
	if err := env.Set(variable, want); err != nil {
		return fmt.Errorf("%w: setting %s: %w", domain.ErrEnvironment, variable, err)
	}
	got, _ := env.Lookup(variable)
	if got != want {
		logger.Warn("Network variable overridden", "variable", variable, "want", want, "got", got)
		state.SetNetwork(got)
		return nil
	}
	logger.Debug("Network aligned", "variable", variable, "network", want)
	return nil
}
