package analysis

import (
	"context"
	"fmt"
)

// File is one batch input: a name and the full text content. Reading is
// the caller's concern; the worker performs no I/O.
type File struct {
	Name    string
	Content string
}

// request and response form the worker's message-passing boundary: one
// request in, one response out, matched by id.
type request struct {
	id      int
	file    File
	options Options
}

type response struct {
	id     int
	result *Result
}

// Worker runs analyses on a single background goroutine, one file at a
// time, so peak memory stays at roughly one file's text plus its derived
// structures.
type Worker struct {
	requests  chan request
	responses chan response
}

// NewWorker starts the background goroutine. Callers must Close the
// worker when done.
func NewWorker() *Worker {
	w := &Worker{
		requests:  make(chan request),
		responses: make(chan response),
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	for req := range w.requests {
		w.responses <- response{
			id:     req.id,
			result: Analyze(req.file.Name, req.file.Content, req.options),
		}
	}
	close(w.responses)
}

// Close stops the background goroutine once in-flight work drains.
func (w *Worker) Close() {
	close(w.requests)
}

// BatchResult collects per-file outcomes. One file's failure never
// aborts the batch; skipped files are reported as errors alongside the
// successes.
type BatchResult struct {
	Analyses []*Result
	Errors   []error
}

// RunBatch analyzes files strictly sequentially on a Worker. There is no
// mid-file cancellation: cancelling ctx only prevents the next file in
// the batch from starting, and every file not started is recorded as an
// error.
func RunBatch(ctx context.Context, files []File, options Options) *BatchResult {
	w := NewWorker()
	defer w.Close()

	batch := &BatchResult{}
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			batch.Errors = append(batch.Errors, fmt.Errorf("analyzing %s: %w", f.Name, err))
			continue
		}
		w.requests <- request{id: i, file: f, options: options}
		resp := <-w.responses
		batch.Analyses = append(batch.Analyses, resp.result)
	}
	return batch
}
