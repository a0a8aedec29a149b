// Package scan implements the scan pipeline: a bounded, non-blocking
// queue from the (interrupt-context-shaped) matrix callback to a
// cooperative worker goroutine, and the worker that turns drained events
// into PositionStateChanged notifications via a matrix transform.
package scan

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/clavis/keymapd/internal/logger"
	"github.com/clavis/keymapd/pkg/layout"
)

// RawEvent is what the scan callback enqueues: a matrix coordinate and
// the resulting key state, not yet resolved to a position.
type RawEvent struct {
	Row, Col uint32
	Pressed  bool
}

// PositionStateChanged is what the worker emits once a raw event has been
// resolved to a dense position by the active matrix transform.
type PositionStateChanged struct {
	Source    int // local events use -1; split peripherals use their index
	Position  int
	Pressed   bool
	Timestamp int64
}

// Pipeline is a bounded single-producer/single-consumer queue plus the
// worker goroutine that drains it. The producer side (Enqueue) must never
// block or allocate on the hot path: it is the Go stand-in for code that
// would otherwise run in interrupt context.
type Pipeline struct {
	queue   chan RawEvent
	wake    chan struct{}
	dropped atomic.Int64

	transformFn func() *layout.MatrixTransform
	emit        func(PositionStateChanged)

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// New returns a Pipeline with the given queue capacity. transformFn is
// consulted on every drained event so the worker always uses whichever
// layout is currently active; emit is called once per resolved position
// change.
func New(capacity int, transformFn func() *layout.MatrixTransform, emit func(PositionStateChanged)) *Pipeline {
	if capacity <= 0 {
		capacity = 1
	}
	return &Pipeline{
		queue:       make(chan RawEvent, capacity),
		wake:        make(chan struct{}, 1),
		transformFn: transformFn,
		emit:        emit,
	}
}

// Enqueue is the callback-side entry point. It never blocks: on a full
// queue the event is dropped (the oldest queued events are preserved) and
// the drop is counted and logged.
func (p *Pipeline) Enqueue(ev RawEvent) {
	select {
	case p.queue <- ev:
	default:
		p.dropped.Add(1)
		logger.Warn("scan queue full, dropping event",
			logger.Row(ev.Row), logger.Col(ev.Col), logger.QueueDepth(len(p.queue)))
	}
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Dropped returns the total number of events dropped since the pipeline
// was created.
func (p *Pipeline) Dropped() int64 { return p.dropped.Load() }

// QueueDepth returns the number of events currently queued.
func (p *Pipeline) QueueDepth() int { return len(p.queue) }

// Start launches the worker goroutine. now is called once per dequeued
// event to stamp its timestamp, kept injectable so tests are
// deterministic.
func (p *Pipeline) Start(ctx context.Context, now func() int64) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.run(ctx, now)
	}()
}

// Stop signals the worker to exit and waits for it to drain and return.
func (p *Pipeline) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

func (p *Pipeline) run(ctx context.Context, now func() int64) {
	for {
		select {
		case <-ctx.Done():
			p.drainOnce(now)
			return
		case <-p.wake:
			p.drainOnce(now)
		}
	}
}

// drainOnce empties the queue fully, as the worker does on each wake.
func (p *Pipeline) drainOnce(now func() int64) {
	for {
		select {
		case ev := <-p.queue:
			p.handle(ev, now())
		default:
			return
		}
	}
}

func (p *Pipeline) handle(ev RawEvent, timestamp int64) {
	transform := p.transformFn()
	pos := transform.Position(ev.Row, ev.Col)
	if pos == layout.NoKey {
		logger.Warn("scan event resolved to no key, discarding", logger.Row(ev.Row), logger.Col(ev.Col))
		return
	}

	p.emit(PositionStateChanged{
		Source:    -1,
		Position:  pos,
		Pressed:   ev.Pressed,
		Timestamp: timestamp,
	})
}
