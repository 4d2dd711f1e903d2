package buildsys

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

func shellReadDir(path string) ([]os.FileInfo, error) {
	if path == "" {
		path = "."
	}

	return ioutil.ReadDir(path)
}

// ResolveSources expands each glob pattern and filters the matches down to
// existing regular files. Matches are returned in pattern order; duplicates
// are kept. Unmatched patterns and non-file matches only produce warnings.
func ResolveSources(ctx context.Context, patterns []string) ([]string, error) {
	result := []string{}
	cfg := expand.Config{
		ReadDir:  shellReadDir,
		GlobStar: true,
	}

	parser := syntax.NewParser()
	for _, pattern := range patterns {
		words := make([]*syntax.Word, 0)
		err := parser.Words(strings.NewReader(filepath.ToSlash(pattern)), func(w *syntax.Word) bool {
			words = append(words, w)
			return true
		})
		if err != nil {
			return nil, eris.Wrapf(err, "Failed to parse pattern %s", pattern)
		}

		matches, err := expand.Fields(&cfg, words...)
		if err != nil {
			return nil, eris.Wrapf(err, "Failed to resolve pattern %s", pattern)
		}

		found := 0
		for _, match := range matches {
			// If a pattern didn't match anything, it's returned as a result. Skip those results.
			if strings.Contains(match, "*") {
				continue
			}

			info, err := os.Stat(match)
			if err != nil || !info.Mode().IsRegular() {
				log(ctx).Warn().
					Str("path", match).
					Msgf("%s is not a source file, skipped", match)
				continue
			}

			result = append(result, match)
			found++
		}

		if found == 0 {
			log(ctx).Warn().
				Str("pattern", pattern).
				Msgf("Pattern %s matched no source files", pattern)
		}
	}

	return result, nil
}
