// Package selection resolves the configurable file-selection policy against
// the generated site directory: explicit files, doublestar globs, and
// exclude patterns.
package selection

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/docpolish/internal/config"
)

// Select resolves the policy to a sorted, de-duplicated list of absolute
// paths under root. Explicit files must exist; glob matches are whatever the
// generator produced.
func Select(root string, policy config.SelectConfig) ([]string, error) {
	seen := make(map[string]bool)
	var rels []string

	for _, f := range policy.Files {
		abs := filepath.Join(root, f)
		if _, err := os.Stat(abs); err != nil {
			return nil, fmt.Errorf("selected file %s: %w", f, err)
		}
		rel := filepath.ToSlash(f)
		if !seen[rel] {
			seen[rel] = true
			rels = append(rels, rel)
		}
	}

	fsys := os.DirFS(root)
	for _, pattern := range policy.Globs {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				rels = append(rels, m)
			}
		}
	}

	var out []string
	for _, rel := range rels {
		excluded, err := matchesAny(policy.Exclude, rel)
		if err != nil {
			return nil, err
		}
		if excluded {
			continue
		}
		out = append(out, filepath.Join(root, filepath.FromSlash(rel)))
	}
	sort.Strings(out)
	return out, nil
}

func matchesAny(exclude []string, rel string) (bool, error) {
	for _, pattern := range exclude {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
