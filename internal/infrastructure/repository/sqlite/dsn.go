package sqlite

import (
	"net/url"
	"path/filepath"
	"strings"
)

const driverName = "sqlite3"

var defaultDSNParams = map[string]string{
	"_foreign_keys": "on",
	"_busy_timeout": "5000",
}

// uriPathEscaper escapes the characters SQLite reads as URI delimiters.
var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// buildDSN appends the connection parameters every store connection needs to
// path. Explicit values already present in path are kept.
func buildDSN(path string) string {
	return composeDSN(path, nil)
}

// buildReadOnlyDSN turns path into a SQLite URI opened with mode=ro. The
// driver only forwards URI parameters when the DSN starts with "file:".
func buildReadOnlyDSN(path string) string {
	base, rawQuery, _ := strings.Cut(strings.TrimSpace(path), "?")
	if !strings.HasPrefix(base, "file:") {
		base = "file:" + uriPathEscaper.Replace(base)
	}
	return composeDSN(base+"?"+rawQuery, map[string]string{"mode": "ro"})
}

func composeDSN(path string, forced map[string]string) string {
	base, rawQuery, _ := strings.Cut(strings.TrimSpace(path), "?")

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	for key, value := range defaultDSNParams {
		if query.Get(key) == "" {
			query.Set(key, value)
		}
	}
	for key, value := range forced {
		query.Set(key, value)
	}

	return base + "?" + query.Encode()
}

func dbNameFromPath(path string) string {
	base, _, _ := strings.Cut(strings.TrimSpace(path), "?")
	base = strings.TrimPrefix(base, "file:")
	if base == "" {
		return ""
	}
	return filepath.Base(base)
}
