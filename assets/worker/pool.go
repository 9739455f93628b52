package worker

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrShutdown is returned by Submit once the pool has been shut down.
var ErrShutdown = errors.New("worker pool shut down")

// DefaultTimeout bounds a single task.
const DefaultTimeout = 10 * time.Second

type Pool struct {
	workers chan struct{}
	tasks   chan Task
	quit    chan struct{}
	once    sync.Once
	running sync.WaitGroup

	Timeout time.Duration
}

// Task is one unit of work. For every task Submit accepted, Done (when set)
// receives the result of Work exactly once, or ErrShutdown if it never ran.
type Task struct {
	Ctx  context.Context
	Work func(ctx context.Context) error
	Done func(error)
}

func NewPool(maxWorkers int) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	p := &Pool{
		workers: make(chan struct{}, maxWorkers),
		tasks:   make(chan Task, 100),
		quit:    make(chan struct{}),
		Timeout: DefaultTimeout,
	}

	p.running.Add(1)
	go p.dispatcher()
	return p
}

func (p *Pool) dispatcher() {
	defer p.running.Done()
	for {
		select {
		case <-p.quit:
			p.drain()
			return
		case task := <-p.tasks:
			select {
			case p.workers <- struct{}{}:
			case <-p.quit:
				finish(task, ErrShutdown)
				p.drain()
				return
			}
			p.running.Add(1)
			go func() {
				defer p.running.Done()
				defer func() { <-p.workers }()
				finish(task, p.run(task))
			}()
		}
	}
}

func (p *Pool) run(task Task) error {
	ctx := task.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	return task.Work(ctx)
}

// drain fails whatever is still queued after shutdown.
func (p *Pool) drain() {
	for {
		select {
		case task := <-p.tasks:
			finish(task, ErrShutdown)
		default:
			return
		}
	}
}

func finish(task Task, err error) {
	if task.Done != nil {
		task.Done(err)
	}
}

// Submit queues a task, blocking while the queue is full.
func (p *Pool) Submit(task Task) error {
	ctx := task.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-p.quit:
		return ErrShutdown
	default:
	}
	select {
	case p.tasks <- task:
		return nil
	case <-p.quit:
		return ErrShutdown
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting work and waits for running tasks to return.
func (p *Pool) Shutdown() {
	p.once.Do(func() { close(p.quit) })
	p.running.Wait()
	p.drain()
}
