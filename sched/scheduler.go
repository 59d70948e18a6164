package sched

import (
	"fmt"

	"github.com/dsv-rl/daaf/expconfig"
)

// TaskPanicError wraps a panic raised inside a unit of work
type TaskPanicError struct {
	Value interface{}
}

func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// UnknownHandleError reports a Result call for a handle with no result
type UnknownHandleError struct {
	Handle Handle
}

func (e *UnknownHandleError) Error() string {
	return fmt.Sprintf("no result for handle %d", e.Handle)
}

// Completion is one finished unit with the running remaining count
type Completion struct {
	Handle    Handle
	Value     string
	Err       error
	Remaining int
}

// Scheduler drives a pool of workers over a batch of tasks
type Scheduler struct {
	pool Pool
}

func NewScheduler(pool Pool) *Scheduler {
	return &Scheduler{pool: pool}
}

// SubmitAll submits one unit per task, in the given (already balanced)
// order, and maps each returned handle back to its task. Worker
// assignment under that order is the pool's business.
func (s *Scheduler) SubmitAll(tasks []expconfig.ExperimentTask, runFn func(expconfig.ExperimentTask) (string, error)) ([]Handle, map[Handle]expconfig.ExperimentTask) {
	handles := make([]Handle, 0, len(tasks))
	byHandle := make(map[Handle]expconfig.ExperimentTask, len(tasks))
	for _, task := range tasks {
		task := task
		handle := s.pool.Submit(func() (string, error) {
			return runFn(task)
		})
		handles = append(handles, handle)
		byHandle[handle] = task
	}
	return handles, byHandle
}

// RunToCompletion repeatedly waits for any outstanding handle to finish
// and emits one Completion per handle, with a strictly decreasing
// remaining count, until none are left. The channel closes after
// exactly len(handles) completions. Not restartable.
func (s *Scheduler) RunToCompletion(handles []Handle) <-chan Completion {
	// buffered so a consumer that aborts early does not strand the loop
	completions := make(chan Completion, len(handles))
	go func() {
		defer close(completions)
		outstanding := handles
		for len(outstanding) > 0 {
			finished, rest := s.pool.WaitAny(outstanding)
			outstanding = rest
			for i, handle := range finished {
				value, err := s.pool.Result(handle)
				completions <- Completion{
					Handle:    handle,
					Value:     value,
					Err:       err,
					Remaining: len(rest) + len(finished) - i - 1,
				}
			}
		}
	}()
	return completions
}
