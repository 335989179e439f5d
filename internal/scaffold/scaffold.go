// Package scaffold creates the project directory skeleton and placeholder
// source files. Every operation is idempotent: directories are created with
// MkdirAll and files are only written when absent, so re-running init never
// destroys user edits.
package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/heynickdev/pbdev/internal/config"
)

// Scaffolder materializes the fixed project layout under a root directory.
type Scaffolder struct {
	cfg  *config.Config
	root string
}

// New returns a scaffolder for the project rooted at root.
func New(cfg *config.Config, root string) *Scaffolder {
	return &Scaffolder{cfg: cfg, root: root}
}

// CreateDirs creates the fixed directory set. Existing directories are left
// alone.
func (s *Scaffolder) CreateDirs() error {
	for _, dir := range s.cfg.ScaffoldDirs() {
		path := filepath.Join(s.root, dir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// CreateEntryPoint writes cmd/<project>/main.go unless it already exists.
// The placeholder blocks on an HTTP listener and honors the
// serve --http=ADDR argument shape the reload supervisor launches it with.
// Returns true if the file was written.
func (s *Scaffolder) CreateEntryPoint() (bool, error) {
	return s.createOnce(s.cfg.EntryPointFile(), entryPointTemplate, map[string]any{
		"Project": s.cfg.Project.Name,
		"AppPort": s.cfg.Server.AppPort,
	})
}

// CreateCSSInput seeds the tailwind input stylesheet unless present.
func (s *Scaffolder) CreateCSSInput() (bool, error) {
	return s.createOnce(s.cfg.CSS.Input, cssInputTemplate, nil)
}

// CreateBaseLayout seeds views/layouts/base.templ unless present. The page
// title is the project name title-cased for display.
func (s *Scaffolder) CreateBaseLayout() (bool, error) {
	return s.createOnce(filepath.Join("views", "layouts", "base.templ"), baseLayoutTemplate, map[string]any{
		"Title": DisplayName(s.cfg.Project.Name),
	})
}

// DisplayName turns a hyphenated project name into a human-facing title,
// e.g. "my-demo-app" becomes "My Demo App".
func DisplayName(project string) string {
	words := strings.ReplaceAll(project, "-", " ")
	return cases.Title(language.English).String(words)
}

func (s *Scaffolder) createOnce(rel, tmpl string, data map[string]any) (bool, error) {
	path := filepath.Join(s.root, rel)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	content := []byte(tmpl)
	if data != nil {
		t, err := template.New(filepath.Base(rel)).Parse(tmpl)
		if err != nil {
			return false, fmt.Errorf("failed to parse template for %s: %w", rel, err)
		}
		var buf bytes.Buffer
		if err := t.Execute(&buf, data); err != nil {
			return false, fmt.Errorf("failed to render %s: %w", rel, err)
		}
		content = buf.Bytes()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return true, nil
}
