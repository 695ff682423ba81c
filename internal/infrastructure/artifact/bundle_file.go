package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/volleyball-stats/internal/domain/feed"
)

// DefaultPath is where fetched bundles are written when no path is given.
const DefaultPath = "matches.json"

// Non-ASCII names are written as UTF-8, not \u escapes.
var fileAPI = sonic.Config{
	CopyString:     true,
	ValidateString: true,
}.Froze()

// WriteBundle stores bundle as indented JSON at path. The file is replaced
// atomically so a failed write never leaves a truncated artifact behind.
func WriteBundle(path string, bundle feed.Bundle) error {
	raw, err := fileAPI.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace artifact %s: %w", path, err)
	}
	return nil
}

// ReadBundle loads a bundle previously written by WriteBundle or saved
// directly from the match-range endpoint.
func ReadBundle(path string) (feed.Bundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return feed.Bundle{}, fmt.Errorf("read artifact %s: %w", path, err)
	}

	var bundle feed.Bundle
	if err := fileAPI.Unmarshal(raw, &bundle); err != nil {
		return feed.Bundle{}, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	return bundle, nil
}
