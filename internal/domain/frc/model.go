package frc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TeamKeyPrefix is the program prefix upstream puts in front of team numbers.
const TeamKeyPrefix = "frc"

// DateLayout is the calendar date format used by upstream event records.
const DateLayout = "2006-01-02"

var (
	ErrMalformedTeamKey  = errors.New("malformed team key")
	ErrMalformedMatchKey = errors.New("malformed match key")
	ErrMalformedDate     = errors.New("malformed event date")
)

// TeamKey is an upstream team identifier such as "frc254".
type TeamKey string

func NewTeamKey(number int) TeamKey {
	return TeamKey(TeamKeyPrefix + strconv.Itoa(number))
}

// Code returns the key with its 3-character prefix stripped.
func (k TeamKey) Code() (string, error) {
	if len(k) <= len(TeamKeyPrefix) {
		return "", fmt.Errorf("%w: %q", ErrMalformedTeamKey, string(k))
	}
	return string(k[len(TeamKeyPrefix):]), nil
}

// Number returns the bare team number.
func (k TeamKey) Number() (int, error) {
	code, err := k.Code()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTeamKey, string(k))
	}
	return n, nil
}

// MatchKey is an upstream match identifier such as "2023casj_qm12".
type MatchKey string

// Suffix returns the part after the last underscore ("qm12").
func (k MatchKey) Suffix() (string, error) {
	idx := strings.LastIndex(string(k), "_")
	if idx < 0 {
		return "", fmt.Errorf("%w: %q has no separator", ErrMalformedMatchKey, string(k))
	}
	return string(k[idx+1:]), nil
}

// Event is one competition inside a season.
type Event struct {
	Code      string
	Name      string
	StartDate string
	EndDate   string
	StateProv string
}

// IsValid reports whether the event belongs to the configured region and, unless
// ignoreDate is set, is running on today's calendar date. Dates are parsed even
// when ignoreDate is set so malformed records always surface.
func (e Event) IsValid(today time.Time, ignoreDate bool, region string) (bool, error) {
	start, err := parseDate(e.StartDate)
	if err != nil {
		return false, fmt.Errorf("event %s start_date: %w", e.Code, err)
	}
	end, err := parseDate(e.EndDate)
	if err != nil {
		return false, fmt.Errorf("event %s end_date: %w", e.Code, err)
	}

	if region != "" && e.StateProv != region {
		return false, nil
	}
	if ignoreDate {
		return true, nil
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(start) && !day.After(end), nil
}

func parseDate(v string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, v)
	}
	return parsed, nil
}

// Match is a single match with its alliances. Alliance team keys keep upstream order.
type Match struct {
	Key       MatchKey
	Alliances map[string][]TeamKey
}

// TeamAlliances flattens alliances into bare team code -> alliance name.
func (m Match) TeamAlliances() (map[string]string, error) {
	out := make(map[string]string, 6)
	for alliance, keys := range m.Alliances {
		for _, key := range keys {
			code, err := key.Code()
			if err != nil {
				return nil, fmt.Errorf("match %s alliance %s: %w", m.Key, alliance, err)
			}
			out[code] = alliance
		}
	}
	return out, nil
}
