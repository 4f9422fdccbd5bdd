package application

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/stax/internal/log"
	"github.com/zjrosen/stax/internal/stacks/domain"
)

// ErrDispatcherClosed is returned when a mutation is submitted after
// Close.
var ErrDispatcherClosed = errors.New("dispatcher is closed")

// ErrQueueFull is returned when the dispatch queue cannot take another
// mutation without blocking the caller.
var ErrQueueFull = errors.New("dispatch queue is full")

const (
	defaultQueueSize      = 64
	defaultBackendTimeout = 2 * time.Minute
)

type queuedMutation struct {
	rec MutationRecord
	run func(ctx context.Context) error
}

// Dispatcher implements MutationController by queueing requests and
// executing them on a single background worker against the real
// backend. Submission never blocks on backend execution, which keeps
// drop handling synchronous on the UI thread while the actual history
// rewrite happens asynchronously. Requests are executed strictly in
// submission order.
//
// Every request is journaled before execution and its journal entry is
// resolved to applied or failed afterwards.
type Dispatcher struct {
	backend MutationController
	journal JournalRecorder
	tracer  trace.Tracer
	timeout time.Duration

	mu     sync.Mutex
	queue  chan queuedMutation
	closed bool
	wg     sync.WaitGroup
}

var _ MutationController = (*Dispatcher)(nil)

// DispatcherOption customizes a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithBackendTimeout bounds the execution time of a single backend
// call.
func WithBackendTimeout(d time.Duration) DispatcherOption {
	return func(disp *Dispatcher) { disp.timeout = d }
}

// NewDispatcher creates a Dispatcher over the given backend and starts
// its worker. The journal may be nil, in which case requests are not
// persisted.
func NewDispatcher(backend MutationController, journal JournalRecorder, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		backend: backend,
		journal: journal,
		tracer:  otel.Tracer("stax/dispatcher"),
		timeout: defaultBackendTimeout,
		queue:   make(chan queuedMutation, defaultQueueSize),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.wg.Add(1)
	go d.work()
	return d
}

// Amend queues an amend request. The returned error covers submission
// only; execution outcome is reported through the journal.
func (d *Dispatcher) Amend(_ context.Context, req domain.AmendRequest) error {
	rec := d.newRecord(KindAmend, req.StackID, "", req.CommitID, req)
	return d.submit(rec, func(ctx context.Context) error {
		return d.backend.Amend(ctx, req)
	})
}

// MoveOwnership queues a move-ownership request.
func (d *Dispatcher) MoveOwnership(_ context.Context, req domain.MoveOwnershipRequest) error {
	rec := d.newRecord(KindMoveOwnership, req.StackID, req.Source, req.Dest, req)
	return d.submit(rec, func(ctx context.Context) error {
		return d.backend.MoveOwnership(ctx, req)
	})
}

// Squash queues a squash request.
func (d *Dispatcher) Squash(_ context.Context, req domain.SquashRequest) error {
	rec := d.newRecord(KindSquash, req.StackID, req.Source, req.Dest, req)
	return d.submit(rec, func(ctx context.Context) error {
		return d.backend.Squash(ctx, req)
	})
}

// Close stops accepting new mutations, drains the queue, and waits for
// the worker to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) newRecord(kind MutationKind, stackID string, source, dest domain.CommitID, req any) MutationRecord {
	detail, err := json.Marshal(req)
	if err != nil {
		// Requests are plain structs; marshaling them cannot fail in
		// practice, but the journal entry is still worth keeping.
		detail = []byte(`{}`)
	}
	return MutationRecord{
		ID:        uuid.NewString(),
		Kind:      kind,
		StackID:   stackID,
		Source:    source,
		Dest:      dest,
		Detail:    string(detail),
		Status:    StatusQueued,
		CreatedAt: time.Now(),
	}
}

func (d *Dispatcher) submit(rec MutationRecord, run func(ctx context.Context) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	if d.journal != nil {
		if err := d.journal.Record(rec); err != nil {
			log.ErrorErr(log.CatDrop, "Failed to journal mutation", err, "id", rec.ID, "kind", rec.Kind)
		}
	}

	select {
	case d.queue <- queuedMutation{rec: rec, run: run}:
		log.Debug(log.CatDrop, "Mutation queued", "id", rec.ID, "kind", rec.Kind, "stack", rec.StackID)
		return nil
	default:
		if d.journal != nil {
			if err := d.journal.MarkFailed(rec.ID, ErrQueueFull); err != nil {
				log.ErrorErr(log.CatDrop, "Failed to journal queue-full rejection", err, "id", rec.ID)
			}
		}
		return ErrQueueFull
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for item := range d.queue {
		d.execute(item)
	}
}

func (d *Dispatcher) execute(item queuedMutation) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	ctx, span := d.tracer.Start(ctx, "mutation."+string(item.rec.Kind),
		trace.WithAttributes(
			attribute.String("mutation.id", item.rec.ID),
			attribute.String("mutation.stack", item.rec.StackID),
			attribute.String("mutation.source", string(item.rec.Source)),
			attribute.String("mutation.dest", string(item.rec.Dest)),
		))
	defer span.End()

	err := item.run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatDrop, "Mutation failed", err, "id", item.rec.ID, "kind", item.rec.Kind)
		if d.journal != nil {
			if jerr := d.journal.MarkFailed(item.rec.ID, err); jerr != nil {
				log.ErrorErr(log.CatDrop, "Failed to journal mutation failure", jerr, "id", item.rec.ID)
			}
		}
		return
	}

	log.Info(log.CatDrop, "Mutation applied", "id", item.rec.ID, "kind", item.rec.Kind, "stack", item.rec.StackID)
	if d.journal != nil {
		if jerr := d.journal.MarkApplied(item.rec.ID); jerr != nil {
			log.ErrorErr(log.CatDrop, "Failed to journal mutation result", jerr, "id", item.rec.ID)
		}
	}
}
