package main

import (
	"context"

	"github.com/joseph-ayodele/bloodwork-analyzer/internal/async"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/pipeline"
)

// syncQueue satisfies the queue interface by processing inline, so the CLI
// finishes each report before returning.
type syncQueue struct {
	proc *pipeline.Processor
}

func (q syncQueue) Enqueue(ctx context.Context, job async.Job) error {
	return q.proc.ProcessReport(ctx, job.ReportID)
}

func (q syncQueue) Shutdown(context.Context) {}
