package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/tao/internal/library"
)

// StartLoader fetches the chapters once in a background goroutine. It returns
// immediately; the returned channel receives the load result and is then
// closed. A failed load is logged and not retried.
func StartLoader(ctx context.Context, store *library.Store, src library.Source, logger *zap.Logger) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- load(ctx, store, src, logger)
	}()
	return done
}

func load(ctx context.Context, store *library.Store, src library.Source, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()
	if err := store.Load(ctx, src); err != nil {
		logger.Error("chapter load failed", zap.Error(err))
		return err
	}
	logger.Info("chapters loaded",
		zap.Int("chapters", store.Snapshot().Chapters),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
