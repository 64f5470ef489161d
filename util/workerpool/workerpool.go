package workerpool

import (
	"context"
	"sync"
)

// Task represents a unit of work to be executed by the worker pool
type Task func(ctx context.Context) error

// WorkerPool is a fixed-size pool of goroutines. The scheduler keeps one for
// the process lifetime and hands it one task per plant every tick.
type WorkerPool struct {
	numWorkers int
	tasks      chan job
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	stopOnce   sync.Once
}

type job struct {
	task   Task
	result chan<- error
}

// New creates a new worker pool with the specified number of workers.
// The provided context is the base context handed to every task.
func New(ctx context.Context, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		numWorkers: numWorkers,
		tasks:      make(chan job, numWorkers*2),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Size returns the number of workers
func (wp *WorkerPool) Size() int {
	return wp.numWorkers
}

// Start launches the worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case j := <-wp.tasks:
			j.result <- j.task(wp.ctx)
		}
	}
}

// Submit queues a task and returns a channel that receives its result.
// If the pool has been stopped the channel receives the pool's context error.
func (wp *WorkerPool) Submit(task Task) <-chan error {
	result := make(chan error, 1)

	if err := wp.ctx.Err(); err != nil {
		result <- err
		return result
	}

	select {
	case <-wp.ctx.Done():
		result <- wp.ctx.Err()
	case wp.tasks <- job{task: task, result: result}:
	}
	return result
}

// RunAll submits every task and waits until all of them have finished or ctx
// is done. Errors are returned in submission order; nil entries mean success.
func (wp *WorkerPool) RunAll(ctx context.Context, tasks []Task) []error {
	if len(tasks) == 0 {
		return nil
	}

	pending := make([]<-chan error, len(tasks))
	for i, task := range tasks {
		pending[i] = wp.Submit(task)
	}

	errs := make([]error, len(tasks))
	for i, ch := range pending {
		select {
		case err := <-ch:
			errs[i] = err
		case <-ctx.Done():
			errs[i] = ctx.Err()
		case <-wp.ctx.Done():
			errs[i] = wp.ctx.Err()
		}
	}
	return errs
}

// Stop cancels the pool and waits for running tasks to return.
// Safe to call more than once.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		wp.cancel()
		wp.wg.Wait()
	})
}
