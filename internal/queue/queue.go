package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/notCienki/geoportal-app/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// RunQueue is an in-memory queue of run-log batches. Pushing never blocks
// a request: when the buffer is full the batch is rejected.
type RunQueue struct {
	items    chan []*models.ParseRun
	stopped  chan struct{}
	maxSize  int
	started  bool
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]*models.ParseRun) error
}

// NewRunQueue creates a new run queue with the specified buffer size
func NewRunQueue(bufferSize int, logger *logrus.Logger) *RunQueue {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &RunQueue{
		items:    make(chan []*models.ParseRun, bufferSize),
		stopped:  make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func([]*models.ParseRun) error, 0),
	}
}

// Push adds a batch of runs to the queue
func (q *RunQueue) Push(runs []*models.ParseRun) error {
	// the read lock is held across the send so Close cannot close the
	// channel underneath it
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- runs:
		q.logger.WithField("batch_size", len(runs)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each batch
func (q *RunQueue) Subscribe(handler func([]*models.ParseRun) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue. Calling it twice is a no-op.
func (q *RunQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	go q.process()
}

// process handles the queue processing loop until the queue is closed and
// drained
func (q *RunQueue) process() {
	defer close(q.stopped)
	for batch := range q.items {
		q.processBatch(batch)
	}
}

// processBatch sends the batch to all subscribed handlers
func (q *RunQueue) processBatch(batch []*models.ParseRun) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Close stops accepting batches, then waits until the ones already queued
// have been handled
func (q *RunQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.items)
	started := q.started
	q.mu.Unlock()

	if started {
		<-q.stopped
	}
	return nil
}

// Len returns the current number of batches in the queue
func (q *RunQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *RunQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
