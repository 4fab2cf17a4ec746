package worker

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"thewall/internal/queue"
)

const (
	// DefaultWorkerCount is the default number of worker goroutines
	DefaultWorkerCount = 2

	// DefaultBatchSize is the number of messages to read per batch
	DefaultBatchSize = 10

	// DefaultBlockTimeout is how long to block waiting for new messages
	DefaultBlockTimeout = 5 * time.Second

	errorBackoff = time.Second
)

// EventHandler processes a single wall event.
type EventHandler interface {
	HandleEvent(ctx context.Context, event queue.WallEvent) error
}

// Manager orchestrates worker goroutines that consume from Redis Streams.
type Manager struct {
	consumer    queue.Consumer
	handler     EventHandler
	workerCount int
	batchSize   int64
	blockTime   time.Duration
	log         zerolog.Logger

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// ManagerConfig holds configuration for the worker manager.
type ManagerConfig struct {
	WorkerCount  int           // Number of worker goroutines
	BatchSize    int64         // Messages per read
	BlockTimeout time.Duration // Block time for XREADGROUP
}

// DefaultManagerConfig returns sensible defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		WorkerCount:  DefaultWorkerCount,
		BatchSize:    DefaultBatchSize,
		BlockTimeout: DefaultBlockTimeout,
	}
}

// NewManager creates a new worker manager.
func NewManager(consumer queue.Consumer, handler EventHandler, cfg ManagerConfig, log zerolog.Logger) *Manager {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = DefaultWorkerCount
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = DefaultBlockTimeout
	}

	return &Manager{
		consumer:    consumer,
		handler:     handler,
		workerCount: cfg.WorkerCount,
		batchSize:   cfg.BatchSize,
		blockTime:   cfg.BlockTimeout,
		log:         log.With().Str("component", "worker_manager").Logger(),
	}
}

// Start begins the worker goroutines.
// Call Stop() to gracefully shut down.
func (m *Manager) Start(ctx context.Context) error {
	m.ctx, m.cancel = context.WithCancel(ctx)

	if err := m.consumer.EnsureGroup(m.ctx, queue.StreamWall, queue.ConsumerGroupWall); err != nil {
		m.cancel()
		return err
	}

	backlog, err := m.consumer.Pending(m.ctx, queue.StreamWall, queue.ConsumerGroupWall)
	if err != nil {
		m.log.Warn().Err(err).Msg("could not read stream backlog")
	}

	// Consumer names must be stable for one process and unique across processes.
	instance := uuid.NewString()[:8]
	for i := 0; i < m.workerCount; i++ {
		workerID := i + 1
		m.wg.Add(1)
		go m.runWorker(workerID, consumerName(instance, workerID))
	}

	m.log.Info().
		Int("workers", m.workerCount).
		Int64("backlog", backlog).
		Str("stream", queue.StreamWall).
		Str("group", queue.ConsumerGroupWall).
		Msg("workers started")
	return nil
}

// Stop gracefully shuts down all workers.
// Blocks until all workers have finished.
func (m *Manager) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.wg.Wait()
	m.log.Info().Msg("workers stopped")
}

// runWorker is the main loop for a single worker goroutine.
func (m *Manager) runWorker(workerID int, name string) {
	defer m.wg.Done()

	log := m.log.With().Int("worker", workerID).Str("consumer", name).Logger()
	log.Debug().Msg("worker started")

	// Messages delivered before a crash come first.
	m.processPending(log, name)

	for {
		select {
		case <-m.ctx.Done():
			log.Debug().Msg("worker shutting down")
			return
		default:
			m.processMessages(log, name)
		}
	}
}

// processPending handles messages that were delivered but not acknowledged.
func (m *Manager) processPending(log zerolog.Logger, name string) {
	for {
		messages, err := m.consumer.ReadPending(m.ctx, queue.StreamWall, queue.ConsumerGroupWall, name, m.batchSize)
		if err != nil {
			if m.ctx.Err() == nil {
				log.Error().Err(err).Msg("read pending failed")
			}
			return
		}
		if len(messages) == 0 {
			return
		}

		log.Info().Int("count", len(messages)).Msg("processing pending messages")
		m.handleMessages(log, messages)
	}
}

// processMessages reads and handles a batch of messages.
func (m *Manager) processMessages(log zerolog.Logger, name string) {
	messages, err := m.consumer.Read(
		m.ctx,
		queue.StreamWall,
		queue.ConsumerGroupWall,
		name,
		m.batchSize,
		m.blockTime,
	)
	if err != nil {
		if m.ctx.Err() != nil {
			return
		}
		log.Error().Err(err).Msg("read failed")
		select {
		case <-m.ctx.Done():
		case <-time.After(errorBackoff):
		}
		return
	}

	if len(messages) == 0 {
		return
	}

	m.handleMessages(log, messages)
}

// handleMessages processes a batch of messages and acknowledges them.
// Failed events are acked too; the snapshot TTL bounds any staleness.
func (m *Manager) handleMessages(log zerolog.Logger, messages []queue.Message) {
	for _, msg := range messages {
		if err := m.handler.HandleEvent(m.ctx, msg.Event); err != nil {
			log.Warn().Err(err).Str("msg_id", msg.ID).Str("type", msg.Event.Type).Msg("event handling failed")
		}

		if err := m.consumer.Ack(m.ctx, queue.StreamWall, queue.ConsumerGroupWall, msg.ID); err != nil {
			log.Error().Err(err).Str("msg_id", msg.ID).Msg("ack failed")
		}
	}
}

func consumerName(instance string, workerID int) string {
	return "worker-" + instance + "-" + strconv.Itoa(workerID)
}
