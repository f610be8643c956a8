package worker

import (
	"errors"
	"sync"

	"github.com/possxc/ledger/pkg/logger"
)

type Handler = func(workerIndex int, job interface{})

// Pool fans jobs out over a fixed set of goroutines. Jobs arrive on a
// shared channel; the channel is never closed by the pool because it
// may be owned by the caller.
type Pool struct {
	bufferSize      int
	jobChannel      chan interface{}
	numberOfWorkers int
	quit            chan struct{}
	do              Handler
	waiter          *sync.WaitGroup
}

func NewPool(bufferSize, numberOfWorkers int, jobChannel chan interface{}) *Pool {
	if jobChannel == nil {
		jobChannel = make(chan interface{}, bufferSize)
	}
	return &Pool{
		bufferSize:      bufferSize,
		numberOfWorkers: numberOfWorkers,
		jobChannel:      jobChannel,
		quit:            make(chan struct{}),
		waiter:          &sync.WaitGroup{},
	}
}

func (p *Pool) SetWorker(handler Handler) {
	p.do = handler
}

func (p *Pool) Enqueue(job interface{}) {
	p.jobChannel <- job
}

func (p *Pool) PendingCount() int64 {
	if p.jobChannel == nil {
		return 0
	}
	return int64(len(p.jobChannel))
}

func (p *Pool) JobEvents() chan interface{} {
	return p.jobChannel
}

// Start launches the workers and blocks until Exit is called.
func (p *Pool) Start() error {
	if p.do == nil {
		return errors.New("worker handler is not set")
	}

	p.waiter.Add(p.numberOfWorkers)
	for i := 0; i < p.numberOfWorkers; i++ {
		go func(index int) {
			defer p.waiter.Done()
			for {
				select {
				case job := <-p.jobChannel:
					p.do(index, job)
				case <-p.quit:
					return
				}
			}
		}(i)
	}
	p.waiter.Wait()

	return errors.New("workers terminated")
}

// Exit stops all workers. Jobs still buffered on the channel stay
// there for whoever owns the channel.
func (p *Pool) Exit() {
	logger.Info("worker pool shutting down")
	close(p.quit)
}
