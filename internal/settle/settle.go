package settle

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"holdem-arena/internal/game"
)

// Sender delivers one settlement to its destination.
type Sender interface {
	Send(ctx context.Context, s game.Settlement) error
}

// Config tunes the delivery worker.
type Config struct {
	QueueSize   int
	RetryMax    int
	RetryBase   time.Duration
	SendTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.QueueSize <= 0 {
		c.QueueSize = 256
	}
	if c.RetryMax <= 0 {
		c.RetryMax = 3
	}
	if c.RetryBase <= 0 {
		c.RetryBase = time.Second
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = 10 * time.Second
	}
	return c
}

type job struct {
	settlement game.Settlement
	attempt    int
}

// Manager implements game.Notifier: Notify enqueues without blocking and a
// worker goroutine delivers with bounded retries. Settlements are advisory;
// when the queue is full the oldest-first policy is simply to drop the new
// one and log it.
type Manager struct {
	cfg    Config
	sender Sender
	logger zerolog.Logger

	ch   chan job
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func NewManager(sender Sender, cfg Config, logger zerolog.Logger) *Manager {
	cfg = cfg.withDefaults()
	return &Manager{
		cfg:    cfg,
		sender: sender,
		logger: logger,
		ch:     make(chan job, cfg.QueueSize),
		done:   make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (m *Manager) Start(ctx context.Context) {
	m.wg.Add(1)
	go m.worker(ctx)
}

// Stop shuts the worker down without waiting for queued jobs.
func (m *Manager) Stop() {
	m.once.Do(func() { close(m.done) })
	m.wg.Wait()
}

// Notify implements game.Notifier. Never blocks the game loop.
func (m *Manager) Notify(s game.Settlement) {
	select {
	case m.ch <- job{settlement: s}:
	default:
		m.logger.Warn().Str("round_id", s.RoundID).Msg("settlement queue full, dropping")
	}
}

func (m *Manager) worker(ctx context.Context) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.done:
			return
		case j := <-m.ch:
			m.process(ctx, j)
		}
	}
}

func (m *Manager) process(ctx context.Context, j job) {
	for {
		sendCtx, cancel := context.WithTimeout(ctx, m.cfg.SendTimeout)
		err := m.sender.Send(sendCtx, j.settlement)
		cancel()
		if err == nil {
			return
		}
		if j.attempt >= m.cfg.RetryMax {
			m.logger.Warn().Err(err).Str("round_id", j.settlement.RoundID).
				Int("attempts", j.attempt+1).Msg("settlement delivery dropped")
			return
		}
		j.attempt++
		delay := m.cfg.RetryBase * time.Duration(1<<(j.attempt-1))
		select {
		case <-ctx.Done():
			return
		case <-m.done:
			return
		case <-time.After(delay):
		}
	}
}
