package devloop

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/heynickdev/pbdev/internal/config"
)

// Clean removes build artifacts under root: the supervisor's tmp directory,
// the release output directory, the compiled stylesheet, and every generated
// *_templ.go file. Nothing else is touched. It returns the removed paths,
// relative to root.
func Clean(cfg *config.Config, root string) ([]string, error) {
	var removed []string

	for _, dir := range []string{cfg.Build.TmpDir, cfg.Build.OutDir} {
		path := filepath.Join(root, dir)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", dir, err)
		}
		removed = append(removed, dir)
	}

	cssOut := filepath.Join(root, cfg.CSS.Output)
	if _, err := os.Stat(cssOut); err == nil {
		if err := os.Remove(cssOut); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", cfg.CSS.Output, err)
		}
		removed = append(removed, cfg.CSS.Output)
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip trees that cannot hold generated template output.
			switch d.Name() {
			case ".git", "node_modules":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), "_templ.go") {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		removed = append(removed, rel)
		return nil
	})
	if err != nil {
		return removed, err
	}

	return removed, nil
}
