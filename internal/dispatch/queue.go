// Package dispatch runs jobs in FIFO order per key while different keys run concurrently.
package dispatch

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

// ErrQueueClosed is returned when a job is submitted after Close
var ErrQueueClosed = errors.New("dispatch: queue closed")

// Job is a unit of work for one key
type Job func()

// Queue keeps one worker goroutine per key with pending jobs.
// Workers exit as soon as their backlog drains.
type Queue struct {
	mu      sync.Mutex
	pending map[int64][]Job
	closed  bool
	wg      sync.WaitGroup
	logger  *zap.Logger
}

// NewQueue creates a dispatch queue
func NewQueue(logger *zap.Logger) *Queue {
	return &Queue{
		pending: make(map[int64][]Job),
		logger:  logger,
	}
}

// Submit appends a job to the key's backlog, starting a worker if none is running
func (q *Queue) Submit(key int64, job Job) error {
	if job == nil {
		return errors.New("dispatch: nil job")
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	backlog, running := q.pending[key]
	q.pending[key] = append(backlog, job)
	if !running {
		q.wg.Add(1)
		go q.work(key)
	}
	return nil
}

// Close rejects new jobs and waits for queued ones to finish
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *Queue) work(key int64) {
	defer q.wg.Done()

	for {
		q.mu.Lock()
		backlog := q.pending[key]
		if len(backlog) == 0 {
			delete(q.pending, key)
			q.mu.Unlock()
			return
		}
		job := backlog[0]
		backlog[0] = nil
		q.pending[key] = backlog[1:]
		q.mu.Unlock()

		q.run(key, job)
	}
}

func (q *Queue) run(key int64, job Job) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("Dispatch job panicked",
				zap.Int64("key", key),
				zap.String("panic", fmt.Sprint(r)),
				zap.ByteString("stack", debug.Stack()),
			)
		}
	}()
	job()
}
