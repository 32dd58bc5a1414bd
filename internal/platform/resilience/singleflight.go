package resilience

import (
	"errors"
	"fmt"
	"sync"
)

// ErrCallPanicked is returned to callers that were waiting on a call whose fn panicked.
var ErrCallPanicked = errors.New("singleflight call panicked")

// SingleFlight deduplicates concurrent calls for the same key. The zero value is ready to use.
type SingleFlight[T any] struct {
	mu    sync.Mutex
	calls map[string]*call[T]
}

type call[T any] struct {
	wg  sync.WaitGroup
	val T
	err error
}

// Do runs fn once per key among concurrent callers. shared reports whether the
// result came from another caller's in-flight call. If fn panics, the panic
// continues in the calling goroutine and waiting callers get ErrCallPanicked.
func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (val T, err error, shared bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call[T])
	}

	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}

	c := &call[T]{}
	c.wg.Add(1)
	g.calls[key] = c
	g.mu.Unlock()

	defer func() {
		c.wg.Done()
		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
	}()

	var recovered any
	func() {
		defer func() {
			if r := recover(); r != nil {
				recovered = r
				c.err = fmt.Errorf("%w: %v", ErrCallPanicked, r)
			}
		}()
		c.val, c.err = fn()
	}()
	if recovered != nil {
		panic(recovered)
	}
	return c.val, c.err, false
}

// InFlight reports how many keys currently have a call running.
func (g *SingleFlight[T]) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}
