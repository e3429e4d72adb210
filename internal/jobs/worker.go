package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/senselive/vms-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker drains explicitly enqueued jobs (audit trail writes) on a small
// pool of goroutines. There is no scheduler and no retry: a failed job is
// logged and dropped.
type Worker struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	queue   chan Job
	stats   WorkerStats
	statsMu sync.RWMutex
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs    int   `json:"active_jobs"`
	CompletedJobs int64 `json:"completed_jobs"`
	FailedJobs    int64 `json:"failed_jobs"`
	QueueLength   int   `json:"queue_length"`
}

// NewWorker creates a worker with N concurrent processors
func NewWorker(numWorkers int) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		ctx:    ctx,
		cancel: cancel,
		queue:  make(chan Job, 100),
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to be processed by the worker pool. When the queue is
// full the job runs synchronously rather than being dropped.
func (w *Worker) Enqueue(job Job) {
	select {
	case w.queue <- job:
	default:
		logger.Warn("[Worker] Queue full, running job synchronously")
		if err := job(w.ctx); err != nil {
			logger.Error(fmt.Sprintf("[Worker] Job error: %v", err))
		}
	}
}

// process handles jobs from the queue
func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.trackJobStart()
			start := time.Now()
			if err := job(w.ctx); err != nil {
				logger.Error(fmt.Sprintf("[Worker %d] Job error: %v", workerID, err))
				w.trackJobFailure()
			} else {
				logger.Debug(fmt.Sprintf("[Worker %d] Job completed in %v", workerID, time.Since(start)))
			}
			w.trackJobEnd()
		}
	}
}

// Shutdown stops the workers and waits for in-flight jobs to finish
func (w *Worker) Shutdown() {
	w.cancel()
	w.wg.Wait()
}

// Stats returns a snapshot of worker statistics
func (w *Worker) Stats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	w.stats.ActiveJobs++
	w.statsMu.Unlock()
}

func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
	w.statsMu.Unlock()
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	w.stats.FailedJobs++
	w.statsMu.Unlock()
}
