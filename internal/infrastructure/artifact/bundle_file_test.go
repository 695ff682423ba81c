package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riskibarqy/volleyball-stats/internal/domain/feed"
)

func TestWriteBundle_ThenRead(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "matches.json")
	bundle := feed.Bundle{
		Matches: []feed.Match{{
			No:           feed.IntOf(500),
			TournamentNo: feed.IntOf(1520),
			TeamANo:      feed.IntOf(10),
			TeamBNo:      feed.IntOf(20),
			Pool:         &feed.Pool{No: feed.IntOf(7), Name: feed.StringOf("Pool A")},
			Sets:         []feed.Set{{No: feed.IntOf(1), PointsTeamA: feed.IntOf(25), PointsTeamB: feed.IntOf(20)}},
		}},
		Teams:       []feed.Team{{No: feed.IntOf(10), Name: feed.StringOf("Türkiye"), IsClub: feed.BoolOf(false)}},
		Tournaments: []feed.Tournament{},
	}

	if err := WriteBundle(path, bundle); err != nil {
		t.Fatalf("write bundle: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read raw artifact: %v", err)
	}
	text := string(raw)
	if !strings.Contains(text, "Türkiye") {
		t.Fatalf("expected non-ascii name to be written verbatim: %s", text)
	}
	if !strings.Contains(text, `"allTeams"`) || !strings.Contains(text, "\n  ") {
		t.Fatalf("expected indented api-shaped json: %s", text)
	}

	got, err := ReadBundle(path)
	if err != nil {
		t.Fatalf("read bundle: %v", err)
	}
	if len(got.Matches) != 1 || got.Matches[0].Pool.No.OrZero() != 7 || got.Matches[0].Sets[0].PointsTeamA.OrZero() != 25 {
		t.Fatalf("unexpected bundle: %+v", got)
	}
	if got.Matches[0].WinnerTeamNo.Valid {
		t.Fatalf("expected absent winner to stay absent")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp file to be cleaned up, got %d entries", len(entries))
	}
}

func TestReadBundle_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := ReadBundle(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"matches": [`), 0o644); err != nil {
		t.Fatalf("write broken file: %v", err)
	}
	if _, err := ReadBundle(broken); err == nil {
		t.Fatalf("expected decode error")
	}
}
