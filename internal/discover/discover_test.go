package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func collected(t *testing.T, root string, globs []string) []string {
	t.Helper()
	files, err := Collect(root, globs)
	require.NoError(t, err)
	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	return paths
}

func TestCollect_SourceExtensionsOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.ts", "export {};")
	writeFile(t, root, "src/page.tsx", "export {};")
	writeFile(t, root, "src/util.js", "module.exports = {};")
	writeFile(t, root, "README.md", "# readme")
	writeFile(t, root, "styles.css", "body {}")

	paths := collected(t, root, nil)
	assert.ElementsMatch(t, []string{"src/app.ts", "src/page.tsx", "src/util.js"}, paths)
}

func TestCollect_SkipsExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.ts", "export {};")
	writeFile(t, root, "node_modules/pkg/index.js", "x")
	writeFile(t, root, ".next/chunk.js", "x")
	writeFile(t, root, "dist/bundle.js", "x")

	paths := collected(t, root, nil)
	assert.Equal(t, []string{"src/app.ts"}, paths)
}

func TestCollect_IgnoreGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.ts", "export {};")
	writeFile(t, root, "src/app.stories.tsx", "export {};")
	writeFile(t, root, "generated/api/client.ts", "export {};")

	paths := collected(t, root, []string{"*.stories.tsx", "generated/**"})
	assert.Equal(t, []string{"src/app.ts"}, paths)
}

func TestCollect_ReadsContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.ts", "const x: any = 1;")

	files, err := Collect(root, nil)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "const x: any = 1;", files[0].Content)
}

func TestCollect_MissingRootFails(t *testing.T) {
	_, err := Collect(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestIgnored(t *testing.T) {
	tests := []struct {
		rel   string
		globs []string
		want  bool
	}{
		{"src/app.ts", nil, false},
		{"src/app.stories.tsx", []string{"*.stories.tsx"}, true},
		{"generated/api/client.ts", []string{"generated/**"}, true},
		{"generated.ts", []string{"generated/**"}, false},
		{"src/legacy.js", []string{"src/legacy.js"}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ignored(tt.rel, tt.globs), "%s vs %v", tt.rel, tt.globs)
	}
}
