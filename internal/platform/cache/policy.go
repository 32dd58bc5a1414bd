package cache

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Policy decides how long upstream responses stay fresh.
type Policy struct {
	// DefaultTTL applies to 2xx responses without explicit lifetime headers.
	DefaultTTL time.Duration
	// ErrorTTL applies to non-2xx responses below UncacheableStatus.
	ErrorTTL time.Duration
	// UncacheableStatus is the lowest status never stored. Zero disables the cutoff.
	UncacheableStatus int
	// MaxStale is how long an expired entry with a validator is kept for revalidation.
	MaxStale time.Duration
	// MaxEntries caps the store size. Zero means unbounded.
	MaxEntries int
}

func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL:        60 * time.Second,
		ErrorTTL:          5 * time.Second,
		UncacheableStatus: http.StatusInternalServerError,
		MaxStale:          time.Hour,
		MaxEntries:        2048,
	}
}

func NormalizePolicy(p Policy) Policy {
	defaults := DefaultPolicy()
	if p.DefaultTTL <= 0 {
		p.DefaultTTL = defaults.DefaultTTL
	}
	if p.ErrorTTL < 0 {
		p.ErrorTTL = 0
	}
	if p.UncacheableStatus < 0 {
		p.UncacheableStatus = 0
	}
	if p.MaxStale < 0 {
		p.MaxStale = 0
	}
	if p.MaxEntries < 0 {
		p.MaxEntries = 0
	}
	return p
}

// lifetime returns how long a response stays fresh and whether it may be stored at all.
func (p Policy) lifetime(status int, header http.Header, now time.Time) (time.Duration, bool) {
	if status < 200 || status > 299 {
		if p.UncacheableStatus > 0 && status >= p.UncacheableStatus {
			return 0, false
		}
		return p.ErrorTTL, p.ErrorTTL > 0
	}

	cc := parseCacheControl(header.Get("Cache-Control"))
	if cc.noStore {
		return 0, false
	}
	if cc.noCache {
		return 0, true
	}

	maxAge := cc.sMaxAge
	if maxAge < 0 {
		maxAge = cc.maxAge
	}
	if maxAge >= 0 {
		ttl := time.Duration(maxAge)*time.Second - ageOf(header)
		return max(ttl, 0), true
	}

	if raw := header.Get("Expires"); raw != "" {
		expires, err := http.ParseTime(raw)
		if err != nil {
			return 0, true
		}
		base := now
		if date, err := http.ParseTime(header.Get("Date")); err == nil {
			base = date
		}
		return max(expires.Sub(base), 0), true
	}

	return p.DefaultTTL, true
}

type cacheControl struct {
	noStore bool
	noCache bool
	maxAge  int
	sMaxAge int
}

func parseCacheControl(raw string) cacheControl {
	out := cacheControl{maxAge: -1, sMaxAge: -1}
	for _, part := range strings.Split(raw, ",") {
		directive := strings.ToLower(strings.TrimSpace(part))
		if directive == "" {
			continue
		}
		name, value, _ := strings.Cut(directive, "=")
		value = strings.Trim(strings.TrimSpace(value), `"`)
		switch strings.TrimSpace(name) {
		case "no-store":
			out.noStore = true
		case "no-cache":
			out.noCache = true
		case "max-age":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				out.maxAge = n
			}
		case "s-maxage":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				out.sMaxAge = n
			}
		}
	}
	return out
}

func ageOf(header http.Header) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(header.Get("Age")))
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
