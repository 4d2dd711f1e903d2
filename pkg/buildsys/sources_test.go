package buildsys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSourcesRecursive(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, filepath.Join("src", "top.pyx"), "")
	writeFile(t, filepath.Join("src", "pkg", "mod.pyx"), "")
	writeFile(t, filepath.Join("src", "pkg", "notes.txt"), "")

	ctx, _ := testContext(t)
	result, err := ResolveSources(ctx, []string{"src/*.pyx", "src/**/*.pyx"})
	require.NoError(t, err)

	assert.Contains(t, result, "src/top.pyx")
	assert.Contains(t, result, "src/pkg/mod.pyx")
	assert.NotContains(t, result, "src/pkg/notes.txt")
}

func TestResolveSourcesPatternOrder(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, filepath.Join("src", "a.pyx"), "")
	writeFile(t, filepath.Join("lib", "b.pyx"), "")

	ctx, _ := testContext(t)
	result, err := ResolveSources(ctx, []string{"lib/*.pyx", "src/*.pyx"})
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, "lib/b.pyx", result[0])
	assert.Equal(t, "src/a.pyx", result[1])
}

func TestResolveSourcesUnmatchedPattern(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	ctx, buf := testContext(t)
	result, err := ResolveSources(ctx, []string{"*.pyx"})
	require.NoError(t, err)

	assert.Empty(t, result)
	assert.Contains(t, buf.String(), "*.pyx")
	assert.Contains(t, buf.String(), "matched no source files")
}

func TestResolveSourcesSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.MkdirAll(filepath.Join("src", "dir.pyx"), 0770))

	ctx, buf := testContext(t)
	result, err := ResolveSources(ctx, []string{"src/*.pyx"})
	require.NoError(t, err)

	assert.Empty(t, result)
	assert.Contains(t, buf.String(), "src/dir.pyx")
	assert.Contains(t, buf.String(), "not a source file")
}

func TestResolveSourcesMissingLiteralPath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	ctx, buf := testContext(t)
	result, err := ResolveSources(ctx, []string{"src/missing.pyx"})
	require.NoError(t, err)

	assert.Empty(t, result)
	assert.Contains(t, buf.String(), "src/missing.pyx")
}

func TestResolveSourcesContinuesAfterUnmatched(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, filepath.Join("src", "mod.pyx"), "")

	ctx, buf := testContext(t)
	result, err := ResolveSources(ctx, []string{"*.nope", "src/*.pyx"})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/mod.pyx"}, result)
	assert.Contains(t, buf.String(), "*.nope")
}
