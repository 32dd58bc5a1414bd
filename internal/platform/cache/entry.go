package cache

import (
	"net/http"
	"time"
)

// Entry is a stored upstream response. Entries are never modified after they
// are stored; a refresh replaces the entry, so readers must treat Header and
// Body as read-only.
type Entry struct {
	Signature    string
	StatusCode   int
	Header       http.Header
	Body         []byte
	StoredAt     time.Time
	ExpiresAt    time.Time
	ETag         string
	LastModified string
}

// Response is what a FetchFunc hands back to the store.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// NotModified marks a 304 answer to a conditional request for the stale entry.
	NotModified bool
}

func (e *Entry) Fresh(now time.Time) bool {
	return e != nil && now.Before(e.ExpiresAt)
}

func (e *Entry) OK() bool {
	return e != nil && e.StatusCode >= 200 && e.StatusCode <= 299
}

// HasValidator reports whether the entry can be revalidated with a conditional request.
func (e *Entry) HasValidator() bool {
	return e != nil && (e.ETag != "" || e.LastModified != "")
}

func newEntry(signature string, resp Response, ttl time.Duration, now time.Time) *Entry {
	header := resp.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	return &Entry{
		Signature:    signature,
		StatusCode:   resp.StatusCode,
		Header:       header,
		Body:         resp.Body,
		StoredAt:     now,
		ExpiresAt:    now.Add(ttl),
		ETag:         header.Get("ETag"),
		LastModified: header.Get("Last-Modified"),
	}
}

var revalidationHeaders = []string{"Cache-Control", "Expires", "Date", "Age", "ETag", "Last-Modified"}

// mergeRevalidation returns the stale entry's headers updated with the freshness
// headers carried by a 304 response.
func mergeRevalidation(stale http.Header, notModified http.Header) http.Header {
	merged := stale.Clone()
	if merged == nil {
		merged = http.Header{}
	}
	merged.Del("Age")
	for _, key := range revalidationHeaders {
		if values := notModified.Values(key); len(values) > 0 {
			merged[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
		}
	}
	return merged
}
