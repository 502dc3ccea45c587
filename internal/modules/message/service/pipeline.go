package service

import (
	"context"
	"sync"

	"github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
	apperrors "github.com/reshetovitsme/wa-capture-agent/internal/shared/errors"
	"golang.org/x/sync/errgroup"
)

// Pipeline runs the handler for several events at once while keeping the
// chat log in submission order: lines are committed by a single goroutine
// that waits on events in the order they were submitted.
type Pipeline struct {
	handler *Handler
	workers errgroup.Group
	queue   chan *job

	mu      sync.Mutex
	closed  bool
	started bool
	ctx     context.Context
	done    chan struct{}
}

type job struct {
	evt  domain.InboundEvent
	line chan domain.LogLine
}

// NewPipeline creates a pipeline with at most workers concurrent events and
// queueSize events waiting to be committed.
func NewPipeline(h *Handler, workers, queueSize int) *Pipeline {
	p := &Pipeline{
		handler: h,
		queue:   make(chan *job, max(queueSize, 1)),
		done:    make(chan struct{}),
		ctx:     context.Background(),
	}
	p.workers.SetLimit(max(workers, 1))
	return p
}

// Start begins committing lines. ctx bounds event processing; commits
// already produced are still written after ctx ends.
func (p *Pipeline) Start(ctx context.Context) {
	p.mu.Lock()
	p.ctx = ctx
	p.started = true
	p.mu.Unlock()

	go func() {
		defer close(p.done)
		commitCtx := context.WithoutCancel(ctx)
		for j := range p.queue {
			p.handler.Commit(commitCtx, j.evt, <-j.line)
		}
	}()
}

// Submit queues evt. It blocks while the queue or the worker pool is full.
func (p *Pipeline) Submit(evt domain.InboundEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return apperrors.ErrSessionClosed
	}

	j := &job{evt: evt, line: make(chan domain.LogLine, 1)}
	p.queue <- j
	ctx := p.ctx
	p.workers.Go(func() error {
		j.line <- p.handler.Process(ctx, j.evt)
		return nil
	})
	return nil
}

// Close stops accepting events and waits until every submitted event has
// been committed.
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	started := p.started
	close(p.queue)
	p.mu.Unlock()

	p.workers.Wait()
	if started {
		<-p.done
	}
}
