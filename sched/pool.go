package sched

import "sync"

// Handle is an opaque reference to a submitted unit of work
type Handle int

// Unit is one submitted piece of work. It returns an identifier string
// used for progress reporting.
type Unit func() (string, error)

// Pool executes submitted units, possibly in parallel. It must
// eventually report completion for every submitted unit; a unit that
// never finishes blocks WaitAny forever.
type Pool interface {
	// Submit schedules a unit and returns its handle
	Submit(unit Unit) Handle
	// WaitAny blocks until at least one of the handles has a result,
	// then partitions them into finished and still outstanding
	WaitAny(handles []Handle) ([]Handle, []Handle)
	// Result returns the unit's value, or the error it failed with
	Result(handle Handle) (string, error)
}

type unitResult struct {
	value string
	err   error
}

// LocalPool runs units on a fixed number of worker goroutines
type LocalPool struct {
	mu       sync.Mutex
	cond     *sync.Cond
	sem      chan struct{}
	next     Handle
	finished map[Handle]unitResult
}

var _ Pool = &LocalPool{}

func NewLocalPool(workers int) *LocalPool {
	if workers < 1 {
		workers = 1
	}
	p := &LocalPool{
		sem:      make(chan struct{}, workers),
		finished: make(map[Handle]unitResult),
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

func (p *LocalPool) Submit(unit Unit) Handle {
	p.mu.Lock()
	handle := p.next
	p.next++
	p.mu.Unlock()

	go func() {
		p.sem <- struct{}{}
		defer func() { <-p.sem }()

		value, err := runUnit(unit)

		p.mu.Lock()
		p.finished[handle] = unitResult{value: value, err: err}
		p.mu.Unlock()
		p.cond.Broadcast()
	}()
	return handle
}

// a panicking unit surfaces as a failed result, not a crashed worker
func runUnit(unit Unit) (value string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TaskPanicError{Value: r}
		}
	}()
	return unit()
}

func (p *LocalPool) WaitAny(handles []Handle) ([]Handle, []Handle) {
	if len(handles) == 0 {
		return nil, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		finished := make([]Handle, 0)
		outstanding := make([]Handle, 0)
		for _, h := range handles {
			if _, ok := p.finished[h]; ok {
				finished = append(finished, h)
			} else {
				outstanding = append(outstanding, h)
			}
		}
		if len(finished) > 0 {
			return finished, outstanding
		}
		p.cond.Wait()
	}
}

func (p *LocalPool) Result(handle Handle) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	result, ok := p.finished[handle]
	if !ok {
		return "", &UnknownHandleError{Handle: handle}
	}
	return result.value, result.err
}
