package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/tao/internal/config"
	"github.com/five82/tao/internal/content"
	"github.com/five82/tao/internal/favorites"
	"github.com/five82/tao/internal/kv"
	"github.com/five82/tao/internal/library"
	"github.com/five82/tao/internal/logging"
	"github.com/five82/tao/internal/prefs"
	"github.com/five82/tao/internal/session"
	"github.com/five82/tao/internal/ui"
)

// Options configure the reader.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tao/prefs.toml
	Verbose    bool
}

// Env is everything a command needs for one session.
type Env struct {
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *zap.Logger
	KV        kv.Store
	Source    library.Source
	Session   *session.Session
}

// Open loads configuration and durable state and builds the session. The
// chapters are not loaded yet; use StartLoader or LoadNow.
func Open(ctx context.Context, opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Path:    cfg.LogFile,
		Level:   cfg.LogLevel,
		Verbose: opts.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	env, err := openWith(ctx, cfg, opts.PrefsPath, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return env, nil
}

func openWith(ctx context.Context, cfg config.Config, prefsPath string, logger *zap.Logger) (*Env, error) {
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	src, err := content.New(cfg.Content, cfg.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("init content source: %w", err)
	}

	store, err := kv.Open(cfg.StoreBackend, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	if fs, ok := store.(*kv.FileStore); ok && fs.LoadErr != nil {
		logger.Warn("durable store unreadable, starting empty",
			zap.String("path", cfg.StorePath), zap.Error(fs.LoadErr))
	}

	ledger := favorites.Load(ctx, store, logger)
	sess := session.New(&library.Store{}, ledger, logger,
		session.WithShowOriginal(userPrefs.ShowOriginal))

	sess.Logger().Info("session opened",
		zap.String("content", src.String()),
		zap.String("store", cfg.StoreBackend),
		zap.Int("favorites", ledger.Len()))

	return &Env{
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		Logger:    sess.Logger(),
		KV:        store,
		Source:    src,
		Session:   sess,
	}, nil
}

// LoadNow loads the chapters on the calling goroutine.
func (e *Env) LoadNow(ctx context.Context) error {
	return load(ctx, e.Session.Store(), e.Source, e.Logger)
}

// Close releases the durable store and flushes the logger.
func (e *Env) Close() error {
	err := e.KV.Close()
	_ = e.Logger.Sync()
	return err
}

// Run boots the reader TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer env.Close()

	// Load in the background; the UI shows a loading state until it lands.
	StartLoader(ctx, env.Session.Store(), env.Source, env.Logger)

	uiOpts := ui.Options{
		Context:   ctx,
		Session:   env.Session,
		ThemeName: env.Prefs.Theme,
		PrefsPath: env.PrefsPath,
	}
	return ui.Run(uiOpts)
}
