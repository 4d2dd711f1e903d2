package buildsys

import (
	"path/filepath"
	"regexp"
	"strings"
)

// sourceRoot is the fixed directory module names are computed relative to.
const sourceRoot = "src"

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Extension pairs a dotted module name with the single source file it is
// built from. It is the input unit for the compile step.
type Extension struct {
	Name   string
	Source string
}

// InvalidModule records a source file whose derived module name contains
// segments that aren't valid identifiers.
type InvalidModule struct {
	Source    string
	Name      string
	BadTokens []string
}

// ModuleName derives the dotted import name for a source file: the path
// relative to the source root with the extension stripped and separators
// replaced by dots.
func ModuleName(source string) string {
	rel, err := filepath.Rel(sourceRoot, source)
	if err != nil {
		// not reachable with relative paths but a file outside the source
		// root will fail validation either way
		rel = source
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")
}

func invalidTokens(name string) []string {
	var bad []string
	for _, part := range strings.Split(name, ".") {
		if !identPattern.MatchString(part) {
			bad = append(bad, part)
		}
	}

	return bad
}

// CollectExtensions derives one descriptor per source file. Files whose
// module name isn't importable are returned separately and take no part in
// the compile step.
func CollectExtensions(sources []string) ([]Extension, []InvalidModule) {
	extensions := make([]Extension, 0, len(sources))
	invalid := make([]InvalidModule, 0)

	for _, src := range sources {
		name := ModuleName(src)
		if bad := invalidTokens(name); len(bad) > 0 {
			invalid = append(invalid, InvalidModule{
				Source:    src,
				Name:      name,
				BadTokens: bad,
			})
			continue
		}

		extensions = append(extensions, Extension{
			Name:   name,
			Source: src,
		})
	}

	return extensions, invalid
}
