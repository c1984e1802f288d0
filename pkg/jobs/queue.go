package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNotRunning is returned when a task is pushed to a queue that is not
// accepting work.
var ErrNotRunning = errors.New("queue not running")

// Task is a unit of background work carrying a typed payload.
type Task[T any] struct {
	ID       string
	Payload  T
	Attempt  int
	Enqueued time.Time
}

// Handler processes a single task. A non-nil error schedules a retry.
type Handler[T any] func(context.Context, Task[T]) error

// Config tunes the worker pool.
type Config struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Queue dispatches tasks to a fixed set of goroutines.
type Queue[T any] struct {
	name    string
	handler Handler[T]
	cfg     Config

	tasks   chan Task[T]
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	pending sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// New builds a queue. Call Start before Enqueue.
func New[T any](name string, handler Handler[T], cfg Config) *Queue[T] {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Queue[T]{
		name:    name,
		handler: handler,
		cfg:     cfg,
		tasks:   make(chan Task[T], cfg.BufferSize),
	}
}

// Start launches the workers. Later calls are no-ops.
func (q *Queue[T]) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
	q.running = true
	q.cfg.Logger.Info("queue started", zap.String("queue", q.name), zap.Int("workers", q.cfg.Workers))
}

// Drain blocks until every accepted task has finished, including retries.
func (q *Queue[T]) Drain() {
	q.pending.Wait()
}

// Stop cancels the workers and waits for them to exit. Tasks still buffered
// are dropped and no longer count towards Drain.
func (q *Queue[T]) Stop() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	q.running = false
	q.cancel()
	q.mu.Unlock()
	q.wg.Wait()

	dropped := 0
flush:
	for {
		select {
		case <-q.tasks:
			q.pending.Done()
			dropped++
		default:
			break flush
		}
	}
	q.cfg.Logger.Info("queue stopped", zap.String("queue", q.name), zap.Int("dropped", dropped))
}

// Enqueue accepts a task without blocking on the workers; it fails when the
// buffer is full or the queue is stopped.
func (q *Queue[T]) Enqueue(task Task[T]) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.running {
		return fmt.Errorf("%s: %w", q.name, ErrNotRunning)
	}
	if task.Enqueued.IsZero() {
		task.Enqueued = time.Now().UTC()
	}
	q.pending.Add(1)
	select {
	case q.tasks <- task:
		return nil
	default:
		q.pending.Done()
		return fmt.Errorf("queue %s is full", q.name)
	}
}

func (q *Queue[T]) work() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case task := <-q.tasks:
			q.run(task)
		}
	}
}

func (q *Queue[T]) run(task Task[T]) {
	err := q.handler(q.ctx, task)
	if err == nil {
		q.pending.Done()
		return
	}

	task.Attempt++
	log := q.cfg.Logger.With(zap.String("queue", q.name), zap.String("task_id", task.ID), zap.Int("attempt", task.Attempt), zap.Error(err))
	if task.Attempt > q.cfg.MaxRetries {
		log.Error("task exceeded retries")
		q.pending.Done()
		return
	}
	log.Warn("task failed, retrying")

	go func() {
		defer q.pending.Done()
		timer := time.NewTimer(q.cfg.RetryDelay)
		defer timer.Stop()
		select {
		case <-q.ctx.Done():
		case <-timer.C:
			if err := q.Enqueue(task); err != nil {
				q.cfg.Logger.Error("requeue task", zap.String("queue", q.name), zap.String("task_id", task.ID), zap.Error(err))
			}
		}
	}()
}
