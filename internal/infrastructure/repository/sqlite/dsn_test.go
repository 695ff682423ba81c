package sqlite

import (
	"strings"
	"testing"
)

func TestBuildDSN(t *testing.T) {
	t.Run("appends defaults", func(t *testing.T) {
		got := buildDSN("volleyball_data.db")
		if !strings.HasPrefix(got, "volleyball_data.db?") {
			t.Fatalf("unexpected dsn prefix: %q", got)
		}
		for _, want := range []string{"_foreign_keys=on", "_busy_timeout=5000"} {
			if !strings.Contains(got, want) {
				t.Fatalf("expected %q in dsn, got %q", want, got)
			}
		}
	})

	t.Run("keeps explicit value", func(t *testing.T) {
		got := buildDSN("data/stats.db?_busy_timeout=100")
		if !strings.Contains(got, "_busy_timeout=100") || strings.Contains(got, "_busy_timeout=5000") {
			t.Fatalf("expected explicit busy timeout to win, got %q", got)
		}
		if !strings.Contains(got, "_foreign_keys=on") {
			t.Fatalf("expected foreign keys default, got %q", got)
		}
	})
}

func TestBuildReadOnlyDSN(t *testing.T) {
	t.Run("plain path becomes a read-only uri", func(t *testing.T) {
		got := buildReadOnlyDSN("/tmp/run/volleyball_data.db")
		if !strings.HasPrefix(got, "file:/tmp/run/volleyball_data.db?") {
			t.Fatalf("unexpected dsn prefix: %q", got)
		}
		for _, want := range []string{"mode=ro", "_foreign_keys=on", "_busy_timeout=5000"} {
			if !strings.Contains(got, want) {
				t.Fatalf("expected %q in dsn, got %q", want, got)
			}
		}
	})

	t.Run("mode is forced", func(t *testing.T) {
		got := buildReadOnlyDSN("file:stats.db?mode=rwc")
		if !strings.HasPrefix(got, "file:stats.db?") || !strings.Contains(got, "mode=ro") || strings.Contains(got, "rwc") {
			t.Fatalf("expected mode=ro to win, got %q", got)
		}
	})

	t.Run("uri delimiters in the path are escaped", func(t *testing.T) {
		got := buildReadOnlyDSN("data#1/stats%.db")
		if !strings.HasPrefix(got, "file:data%231/stats%25.db?") {
			t.Fatalf("unexpected dsn: %q", got)
		}
	})
}

func TestDBNameFromPath(t *testing.T) {
	cases := map[string]string{
		"/tmp/run/volleyball_data.db":    "volleyball_data.db",
		"file:stats.db?_foreign_keys=on": "stats.db",
		"":                               "",
	}
	for in, want := range cases {
		if got := dbNameFromPath(in); got != want {
			t.Fatalf("dbNameFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatQueryForTrace(t *testing.T) {
	got := formatQueryForTrace(" SELECT   *\nFROM matches \t WHERE tournament_no = ?1 ")
	want := "SELECT * FROM matches WHERE tournament_no = ?1"
	if got != want {
		t.Fatalf("unexpected formatted query: %q", got)
	}

	long := formatQueryForTrace("SELECT " + strings.Repeat("x, ", 400) + "1")
	if len(long) != maxTracedQueryLength+3 || !strings.HasSuffix(long, "...") {
		t.Fatalf("expected truncated query, got length %d", len(long))
	}
}
