package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight[string]
	var counter int32
	var sharedCount int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, shared := g.Do("GET status", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if v != "ok" {
				t.Errorf("unexpected value %q", v)
			}
			if shared {
				atomic.AddInt32(&sharedCount, 1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
	if got := atomic.LoadInt32(&sharedCount); got != workers-1 {
		t.Fatalf("expected %d shared results, got %d", workers-1, got)
	}
	if g.InFlight() != 0 {
		t.Fatalf("expected no calls in flight after completion")
	}
}

func TestSingleFlight_ErrorIsNotRemembered(t *testing.T) {
	var g SingleFlight[int]
	boom := errors.New("boom")

	if _, err, _ := g.Do("k", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	v, err, _ := g.Do("k", func() (int, error) { return 7, nil })
	if err != nil || v != 7 {
		t.Fatalf("expected second call to run, got v=%d err=%v", v, err)
	}
}

func TestSingleFlight_PanicReachesWaiters(t *testing.T) {
	var g SingleFlight[*int]
	proceed := make(chan struct{})
	leaderPanic := make(chan any, 1)

	go func() {
		defer func() { leaderPanic <- recover() }()
		_, _, _ = g.Do("GET match/2023casj_qm1/simple", func() (*int, error) {
			<-proceed
			panic("decoder blew up")
		})
	}()

	for g.InFlight() == 0 {
		time.Sleep(time.Millisecond)
	}

	followerErr := make(chan error, 1)
	go func() {
		v, err, shared := g.Do("GET match/2023casj_qm1/simple", func() (*int, error) {
			n := 1
			return &n, nil
		})
		if !shared || v != nil {
			t.Errorf("expected shared nil result, got v=%v shared=%v", v, shared)
		}
		followerErr <- err
	}()

	time.Sleep(50 * time.Millisecond)
	close(proceed)

	if got := <-leaderPanic; got != "decoder blew up" {
		t.Fatalf("expected panic to continue in the leader, got %v", got)
	}
	if err := <-followerErr; !errors.Is(err, ErrCallPanicked) {
		t.Fatalf("expected ErrCallPanicked, got %v", err)
	}
	if g.InFlight() != 0 {
		t.Fatalf("expected no calls in flight after panic")
	}
}
