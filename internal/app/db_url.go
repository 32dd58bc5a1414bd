package app

import (
	"net/url"
	"strings"
)

const (
	binaryResultParam = "disable_prepared_binary_result"
	fallbackDBName    = "scouting"
)

type postgresTarget struct {
	DSN    string
	DBName string
}

// resolvePostgresTarget accepts both URL (postgres://...) and keyword (host=... dbname=...)
// forms. With disableBinary set, binary prepared results are turned off unless the
// DSN already says otherwise.
func resolvePostgresTarget(raw string, disableBinary bool) postgresTarget {
	raw = strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		return urlTarget(parsed, disableBinary)
	}
	return keywordTarget(raw, disableBinary)
}

func urlTarget(parsed *url.URL, disableBinary bool) postgresTarget {
	if disableBinary {
		query := parsed.Query()
		if !query.Has(binaryResultParam) {
			query.Set(binaryResultParam, "yes")
			parsed.RawQuery = query.Encode()
		}
	}
	name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	if name == "" {
		name = fallbackDBName
	}
	return postgresTarget{DSN: parsed.String(), DBName: name}
}

func keywordTarget(raw string, disableBinary bool) postgresTarget {
	target := postgresTarget{DSN: raw, DBName: fallbackDBName}
	hasBinary := false
	for _, token := range strings.Fields(raw) {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			continue
		}
		switch key {
		case "dbname":
			if name := strings.Trim(value, `"'`); name != "" {
				target.DBName = name
			}
		case binaryResultParam:
			hasBinary = true
		}
	}
	if disableBinary && !hasBinary && raw != "" {
		target.DSN = raw + " " + binaryResultParam + "=yes"
	}
	return target
}
