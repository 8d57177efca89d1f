package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mossvale/mossvale/internal/model"
	"github.com/mossvale/mossvale/internal/storage"
)

const defaultFlushTimeout = 5 * time.Second

// Flusher writes transient session state to durable player storage when a
// connection goes away. Flushes are fire-and-forget: the disconnect path
// never waits on storage, and a failed write is only logged since the
// client is already gone.
type Flusher struct {
	storage storage.Storage
	logger  *slog.Logger
	timeout time.Duration

	wg sync.WaitGroup
}

// NewFlusher creates a new flusher
func NewFlusher(storage storage.Storage, logger *slog.Logger) *Flusher {
	return &Flusher{
		storage: storage,
		logger:  logger.With(slog.String("component", "flusher")),
		timeout: defaultFlushTimeout,
	}
}

// Flush persists the session's money, exp, level and position as a partial
// update in a detached goroutine. Sessions that never bound a durable
// player id have nothing to flush.
func (f *Flusher) Flush(session model.PlayerSession) {
	if session.PlayerID == "" {
		return
	}

	update := model.PlayerUpdate{
		Money:     &session.Money,
		Exp:       &session.Exp,
		Level:     &session.Level,
		PositionX: &session.X,
		PositionY: &session.Y,
	}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
		defer cancel()

		if err := f.storage.UpdatePlayer(ctx, session.PlayerID, update); err != nil {
			f.logger.Error("failed to flush player state",
				slog.String("player_id", string(session.PlayerID)),
				slog.String("error", err.Error()))
		}
	}()
}

// Wait blocks until all in-flight flushes finish. Used on shutdown and in
// tests; the dispatch path never calls it.
func (f *Flusher) Wait() {
	f.wg.Wait()
}
