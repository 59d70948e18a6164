package sched

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// ProgressPrinter refreshes a single live terminal line with the state
// of the batch while the completion loop runs
type ProgressPrinter struct {
	printerCtx    context.Context
	printerCancel context.CancelFunc
	frequency     time.Duration

	writer *uilive.Writer

	mu        sync.Mutex
	total     int
	completed int
	lastTask  string
}

func NewProgressPrinter(ctx context.Context, total int, frequency time.Duration) *ProgressPrinter {
	printerCtx, cancel := context.WithCancel(ctx)
	return &ProgressPrinter{
		printerCtx:    printerCtx,
		printerCancel: cancel,
		frequency:     frequency,
		writer:        uilive.New(),
		total:         total,
	}
}

func (p *ProgressPrinter) Start() {
	go func() {
		for {
			select {
			case <-p.printerCtx.Done():
				p.print()
				p.writer.Stop()
				return
			case <-time.After(p.frequency):
				p.print()
			}
		}
	}()
}

func (p *ProgressPrinter) Stop() {
	p.printerCancel()
}

// Update records one completed task (blocking)
func (p *ProgressPrinter) Update(taskID string, remaining int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed = p.total - remaining
	p.lastTask = taskID
}

func (p *ProgressPrinter) print() {
	p.mu.Lock()
	s := fmt.Sprintf("Tasks:%d/%d, Last:%s", p.completed, p.total, p.lastTask)
	p.mu.Unlock()
	fmt.Fprint(p.writer, s+"\n")
	p.writer.Flush()
}
