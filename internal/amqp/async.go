package amqp

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// DefaultBuffer is the number of change events AsyncPublisher queues before
// it starts dropping.
const DefaultBuffer = 256

var (
	ErrBufferFull      = errors.New("change event buffer is full")
	ErrPublisherClosed = errors.New("change publisher is closed")
)

// Publisher sends one change event and waits for the outcome.
type Publisher interface {
	Publish(ctx context.Context, ev core.ChangeEvent) error
}

// AsyncPublisher queues change events and sends them from a single
// goroutine, so callers never wait on the broker. Events arriving while the
// queue is full are dropped and counted.
type AsyncPublisher struct {
	next   Publisher
	logger *log.Logger

	mu     sync.RWMutex
	closed bool
	events chan core.ChangeEvent
	done   chan struct{}
	once   sync.Once

	dropped atomic.Int64
}

func NewAsyncPublisher(next Publisher, buffer int, logger *log.Logger) *AsyncPublisher {
	if logger == nil {
		logger = log.Discard()
	}
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	p := &AsyncPublisher{
		next:   next,
		logger: logger.WithComponent(log.ComponentAMQP),
		events: make(chan core.ChangeEvent, buffer),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish queues ev without blocking.
func (p *AsyncPublisher) Publish(_ context.Context, ev core.ChangeEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.events <- ev:
		return nil
	default:
		p.dropped.Add(1)
		return ErrBufferFull
	}
}

// Dropped reports how many events were refused because the queue was full.
func (p *AsyncPublisher) Dropped() int64 {
	return p.dropped.Load()
}

func (p *AsyncPublisher) run() {
	defer close(p.done)
	for ev := range p.events {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := p.next.Publish(ctx, ev); err != nil {
			p.logger.Warn("Change event not delivered",
				log.FieldEntity, ev.Entity,
				log.FieldOperation, ev.Op,
				log.FieldID, ev.ID,
				log.FieldRevision, ev.Revision,
				log.FieldError, err)
		}
		cancel()
	}
}

// Close stops accepting events and waits until the queued ones have been
// handed to the underlying publisher or ctx is done.
func (p *AsyncPublisher) Close(ctx context.Context) error {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.events)
		p.mu.Unlock()
	})
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
