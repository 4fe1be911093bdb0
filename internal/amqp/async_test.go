package amqp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fintrack/internal/core"
)

// gatedPublisher blocks every Publish until the gate is opened.
type gatedPublisher struct {
	gate    chan struct{}
	started chan struct{}

	mu   sync.Mutex
	sent []core.ChangeEvent
	err  error
}

func newGatedPublisher() *gatedPublisher {
	return &gatedPublisher{gate: make(chan struct{}), started: make(chan struct{}, 16)}
}

func (g *gatedPublisher) Publish(_ context.Context, ev core.ChangeEvent) error {
	g.started <- struct{}{}
	<-g.gate
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, ev)
	return g.err
}

func (g *gatedPublisher) events() []core.ChangeEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]core.ChangeEvent(nil), g.sent...)
}

func TestAsyncPublisher_DoesNotWaitForBroker(t *testing.T) {
	next := newGatedPublisher()
	p := NewAsyncPublisher(next, 1, nil)

	done := make(chan error, 1)
	go func() {
		done <- p.Publish(context.Background(), core.ChangeEvent{Entity: core.EntityExpense, Op: core.OpCreated, ID: "exp_1"})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Publish() blocked on a stalled broker")
	}

	close(next.gate)
	if err := p.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got := next.events(); len(got) != 1 || got[0].ID != "exp_1" {
		t.Fatalf("delivered events = %+v", got)
	}
}

func TestAsyncPublisher_DropsWhenFull(t *testing.T) {
	next := newGatedPublisher()
	p := NewAsyncPublisher(next, 1, nil)
	ctx := context.Background()

	if err := p.Publish(ctx, core.ChangeEvent{ID: "1"}); err != nil {
		t.Fatalf("first Publish() error = %v", err)
	}
	<-next.started // the worker holds event 1, the queue is empty again

	if err := p.Publish(ctx, core.ChangeEvent{ID: "2"}); err != nil {
		t.Fatalf("second Publish() error = %v", err)
	}
	if err := p.Publish(ctx, core.ChangeEvent{ID: "3"}); !errors.Is(err, ErrBufferFull) {
		t.Fatalf("third Publish() error = %v, want ErrBufferFull", err)
	}
	if p.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", p.Dropped())
	}

	close(next.gate)
	if err := p.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	got := next.events()
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("delivered events = %+v", got)
	}
}

func TestAsyncPublisher_Close(t *testing.T) {
	t.Run("refuses events after close", func(t *testing.T) {
		next := newGatedPublisher()
		close(next.gate)
		p := NewAsyncPublisher(next, 0, nil)

		if err := p.Close(context.Background()); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if err := p.Publish(context.Background(), core.ChangeEvent{ID: "late"}); !errors.Is(err, ErrPublisherClosed) {
			t.Fatalf("Publish() after Close error = %v, want ErrPublisherClosed", err)
		}
		if err := p.Close(context.Background()); err != nil {
			t.Fatalf("second Close() error = %v", err)
		}
	})

	t.Run("gives up draining when ctx is done", func(t *testing.T) {
		next := newGatedPublisher()
		p := NewAsyncPublisher(next, 1, nil)
		if err := p.Publish(context.Background(), core.ChangeEvent{ID: "stuck"}); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		<-next.started

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if err := p.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("Close() error = %v, want deadline exceeded", err)
		}
		close(next.gate)
	})

	t.Run("delivery errors are only logged", func(t *testing.T) {
		next := newGatedPublisher()
		next.err = errors.New("broker down")
		close(next.gate)
		p := NewAsyncPublisher(next, 4, nil)

		if err := p.Publish(context.Background(), core.ChangeEvent{ID: "1"}); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		if err := p.Close(context.Background()); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if len(next.events()) != 1 {
			t.Fatal("event should have reached the publisher")
		}
	})
}
