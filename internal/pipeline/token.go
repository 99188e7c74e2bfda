package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"time"

	"git.home.luguber.info/inful/docpolish/internal/config"
)

// NewToken derives the run-wide cache-busting token. The token is chosen
// once per run so every asset reference in a single build shares one
// cache-busting epoch. Timestamp tokens vary across runs; content tokens are
// stable as long as build inputs are pinned.
func NewToken(cfg config.CacheBustConfig, files []string) (string, error) {
	switch cfg.Source {
	case config.TokenSourceContent:
		return contentToken(cfg.Param, files)
	default:
		return time.Now().UTC().Format("20060102150405"), nil
	}
}

// contentToken hashes the selected documents in order. Callers pass the
// sorted selection, so the hash is independent of traversal order. Tokens
// injected by an earlier run are masked out of the input, so re-polishing
// already-tokenized output derives the same token it carries.
func contentToken(param string, files []string) (string, error) {
	// Rendered HTML escapes the & separator as &amp;.
	mask := regexp.MustCompile(`(\?|&(?:amp;)?)` + regexp.QuoteMeta(param) + `=[^"'&\s]*`)
	h := sha256.New()
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("hashing %s: %w", path, err)
		}
		h.Write(mask.ReplaceAll(data, nil))
	}
	return hex.EncodeToString(h.Sum(nil))[:12], nil
}
