package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"thewall/internal/cache"
	"thewall/internal/model"
	"thewall/internal/queue"
)

// WallSource loads the full wall from the database.
type WallSource interface {
	ListWithThreads(ctx context.Context) ([]model.Post, error)
}

// Handler processes wall events from the queue.
type Handler struct {
	wallCache cache.WallCache
	source    WallSource
	log       zerolog.Logger
}

// NewHandler creates a new event handler.
func NewHandler(wallCache cache.WallCache, source WallSource, log zerolog.Logger) *Handler {
	return &Handler{
		wallCache: wallCache,
		source:    source,
		log:       log.With().Str("component", "worker").Logger(),
	}
}

// HandleEvent rebuilds the cached wall snapshot after any committed change.
// Every known event type touches the wall, so they all take the same path.
func (h *Handler) HandleEvent(ctx context.Context, event queue.WallEvent) error {
	switch event.Type {
	case queue.EventPostCreated, queue.EventPostUpdated, queue.EventPostDeleted,
		queue.EventCommentCreated, queue.EventCommentUpdated, queue.EventCommentDeleted,
		queue.EventReplyCreated:
	default:
		h.log.Warn().Str("type", event.Type).Msg("unknown event type")
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	start := time.Now()
	log := h.log.With().
		Str("type", event.Type).
		Int64("post_id", event.PostID).
		Int64("actor_id", event.ActorID).
		Logger()

	if err := h.rewarm(ctx); err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("handle event failed")
		return err
	}

	log.Debug().Dur("duration", time.Since(start)).Msg("wall snapshot rebuilt")
	return nil
}

// rewarm skips the store when another write landed during the load. That
// write's own event triggers the next rebuild.
func (h *Handler) rewarm(ctx context.Context) error {
	gen, err := h.wallCache.Generation(ctx)
	if err != nil {
		return err
	}
	posts, err := h.source.ListWithThreads(ctx)
	if err != nil {
		return fmt.Errorf("load wall: %w", err)
	}
	err = h.wallCache.Set(ctx, gen, posts)
	if errors.Is(err, cache.ErrStaleSnapshot) {
		h.log.Debug().Msg("wall changed during rebuild, snapshot skipped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("store wall snapshot: %w", err)
	}
	return nil
}
