package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cardinalbotics/scouting-backend/internal/platform/metrics"
	"github.com/cardinalbotics/scouting-backend/internal/platform/resilience"
)

// FetchFunc loads a response for a signature that has no fresh entry. stale is
// the expired entry kept for revalidation, or nil.
type FetchFunc func(ctx context.Context, stale *Entry) (Response, error)

type Option func(*Store)

func WithMetrics(recorder *metrics.Recorder) Option {
	return func(s *Store) {
		s.metrics = recorder
	}
}

// Store caches upstream responses keyed by request signature.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	policy  Policy
	flight  resilience.SingleFlight[*Entry]
	metrics *metrics.Recorder
	now     func() time.Time
}

func NewStore(policy Policy, opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]*Entry),
		policy:  NormalizePolicy(policy),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the fresh entry for signature, if any.
func (s *Store) Get(signature string) (*Entry, bool) {
	e, ok := s.lookup(signature, s.now())
	if !ok || !e.Fresh(s.now()) {
		return nil, false
	}
	return e, true
}

func (s *Store) Delete(signature string) {
	s.mu.Lock()
	delete(s.entries, signature)
	size := len(s.entries)
	s.mu.Unlock()
	s.metrics.CacheSize(size)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrFetch returns the fresh entry for signature or runs fetch exactly once for
// all concurrent callers that missed. Non-2xx responses are returned as entries,
// not errors; an error from fetch is returned as-is and nothing is stored.
func (s *Store) GetOrFetch(ctx context.Context, signature string, fetch FetchFunc) (*Entry, error) {
	if fetch == nil {
		return nil, fmt.Errorf("fetch func is required")
	}
	if signature == "" {
		return nil, fmt.Errorf("cache signature is required")
	}

	if e, ok := s.lookup(signature, s.now()); ok && e.Fresh(s.now()) {
		s.metrics.CacheEvent(metrics.CacheHit)
		return e, nil
	}

	entry, err, shared := s.flight.Do(signature, func() (*Entry, error) {
		now := s.now()
		stale, ok := s.lookup(signature, now)
		if ok && stale.Fresh(now) {
			return stale, nil
		}
		if !stale.HasValidator() {
			stale = nil
		}

		s.metrics.CacheEvent(metrics.CacheMiss)
		// Followers share this result, so the leader's cancellation must not abort it.
		resp, err := fetch(context.WithoutCancel(ctx), stale)
		if err != nil {
			return nil, err
		}

		now = s.now()
		if resp.NotModified {
			if stale == nil {
				return nil, fmt.Errorf("not modified response for %s without a stored entry", signature)
			}
			s.metrics.CacheEvent(metrics.CacheRevalidated)
			return s.save(signature, Response{
				StatusCode: stale.StatusCode,
				Header:     mergeRevalidation(stale.Header, resp.Header),
				Body:       stale.Body,
			}, now), nil
		}

		return s.save(signature, resp, now), nil
	})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("fetch for %s produced no entry", signature)
	}
	if shared {
		s.metrics.CacheEvent(metrics.CacheCoalesced)
	}

	return entry, nil
}

func (s *Store) save(signature string, resp Response, now time.Time) *Entry {
	ttl, storable := s.policy.lifetime(resp.StatusCode, resp.Header, now)
	entry := newEntry(signature, resp, ttl, now)

	s.mu.Lock()
	if !storable {
		delete(s.entries, signature)
	} else {
		if _, exists := s.entries[signature]; !exists {
			s.makeRoomLocked(now)
		}
		s.entries[signature] = entry
	}
	size := len(s.entries)
	s.mu.Unlock()

	if storable {
		s.metrics.CacheEvent(metrics.CacheStored)
	}
	s.metrics.CacheSize(size)
	return entry
}

// lookup returns the stored entry unless it is past its retention window.
func (s *Store) lookup(signature string, now time.Time) (*Entry, bool) {
	s.mu.RLock()
	e, ok := s.entries[signature]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.retained(e, now) {
		return e, true
	}

	s.mu.Lock()
	if current, ok := s.entries[signature]; ok && current == e {
		delete(s.entries, signature)
	}
	s.mu.Unlock()
	return nil, false
}

func (s *Store) retained(e *Entry, now time.Time) bool {
	if e.Fresh(now) {
		return true
	}
	return e.HasValidator() && now.Before(e.ExpiresAt.Add(s.policy.MaxStale))
}

func (s *Store) makeRoomLocked(now time.Time) {
	if s.policy.MaxEntries <= 0 || len(s.entries) < s.policy.MaxEntries {
		return
	}

	for key, e := range s.entries {
		if !s.retained(e, now) {
			delete(s.entries, key)
			s.metrics.CacheEvent(metrics.CacheEvicted)
		}
	}

	for len(s.entries) >= s.policy.MaxEntries {
		var oldestKey string
		var oldest *Entry
		for key, e := range s.entries {
			if oldest == nil || e.ExpiresAt.Before(oldest.ExpiresAt) {
				oldestKey, oldest = key, e
			}
		}
		delete(s.entries, oldestKey)
		s.metrics.CacheEvent(metrics.CacheEvicted)
	}
}
