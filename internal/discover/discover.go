// Package discover walks source roots and hands (path, content) pairs to
// the engine. The engine itself never reads the filesystem.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

var sourceExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".jsx": true,
}

// Directories conventionally full of build output, dependencies, or
// generated code.
var excludedDirs = map[string]bool{
	"node_modules": true,
	".next":        true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"coverage":     true,
	".git":         true,
	"vendor":       true,
}

// Collect walks root and returns every source file's path and content.
// ignoreGlobs come from the detection config and match against the
// slash-normalized relative path or its base name. Any read failure aborts
// the whole collection; a partially-read file set is not analyzed.
func Collect(root string, ignoreGlobs []string) ([]ir.SourceFile, error) {
	var files []ir.SourceFile
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", p, err)
		}
		if d.IsDir() {
			if excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !sourceExtensions[strings.ToLower(filepath.Ext(p))] {
			return nil
		}
		rel := relSlash(root, p)
		if ignored(rel, ignoreGlobs) {
			return nil
		}
		b, rerr := os.ReadFile(p)
		if rerr != nil {
			return fmt.Errorf("read %s: %w", p, rerr)
		}
		files = append(files, ir.SourceFile{Path: rel, Content: string(b)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func relSlash(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		rel = p
	}
	return filepath.ToSlash(rel)
}

func ignored(rel string, globs []string) bool {
	base := path.Base(rel)
	for _, g := range globs {
		if ok, _ := path.Match(g, rel); ok {
			return true
		}
		if ok, _ := path.Match(g, base); ok {
			return true
		}
		// "dir/**" style prefix ignore
		if strings.HasSuffix(g, "/**") && strings.HasPrefix(rel, strings.TrimSuffix(g, "/**")+"/") {
			return true
		}
	}
	return false
}
