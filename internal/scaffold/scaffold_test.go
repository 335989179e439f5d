package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heynickdev/pbdev/internal/config"
)

func demoConfig() *config.Config {
	return &config.Config{
		Project: config.ProjectConfig{Name: "demo"},
		Server:  config.ServerConfig{AppPort: config.DefaultAppPort, ProxyPort: config.DefaultProxyPort},
		Build:   config.BuildConfig{TmpDir: "tmp", OutDir: "bin"},
		CSS:     config.CSSConfig{Input: "static/css/input.css", Output: "static/css/style.css"},
	}
}

func TestCreateDirs(t *testing.T) {
	dir := t.TempDir()
	sc := New(demoConfig(), dir)

	require.NoError(t, sc.CreateDirs())

	for _, sub := range []string{
		"static/js",
		"static/css",
		"views/components",
		"views/layouts",
		"views/pages",
		"cmd/demo",
	} {
		info, err := os.Stat(filepath.Join(dir, sub))
		require.NoError(t, err, "expected directory %s", sub)
		assert.True(t, info.IsDir())
	}

	// Idempotent on re-run.
	require.NoError(t, sc.CreateDirs())
}

func TestCreateEntryPoint(t *testing.T) {
	dir := t.TempDir()
	cfg := demoConfig()
	sc := New(cfg, dir)

	wrote, err := sc.CreateEntryPoint()
	require.NoError(t, err)
	assert.True(t, wrote)

	data, err := os.ReadFile(filepath.Join(dir, "cmd", "demo", "main.go"))
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "package main")
	assert.Contains(t, content, "0.0.0.0:42069")
	assert.Contains(t, content, "--http=")
	assert.Contains(t, content, "http.ListenAndServe")
}

func TestCreateEntryPointNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	sc := New(demoConfig(), dir)

	custom := []byte("package main\n\n// my custom app\nfunc main() {}\n")
	path := filepath.Join(dir, "cmd", "demo", "main.go")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, custom, 0644))

	wrote, err := sc.CreateEntryPoint()
	require.NoError(t, err)
	assert.False(t, wrote)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, data, "existing entry point must be preserved byte for byte")
}

func TestCreateCSSInput(t *testing.T) {
	dir := t.TempDir()
	sc := New(demoConfig(), dir)

	wrote, err := sc.CreateCSSInput()
	require.NoError(t, err)
	assert.True(t, wrote)

	data, err := os.ReadFile(filepath.Join(dir, "static", "css", "input.css"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "@tailwind base;")

	wrote, err = sc.CreateCSSInput()
	require.NoError(t, err)
	assert.False(t, wrote)
}

func TestCreateBaseLayout(t *testing.T) {
	dir := t.TempDir()
	cfg := demoConfig()
	cfg.Project.Name = "my-demo-app"
	sc := New(cfg, dir)

	wrote, err := sc.CreateBaseLayout()
	require.NoError(t, err)
	assert.True(t, wrote)

	data, err := os.ReadFile(filepath.Join(dir, "views", "layouts", "base.templ"))
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "package layouts")
	assert.Contains(t, content, "<title>My Demo App</title>")
	assert.Contains(t, content, "/static/css/style.css")
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		project  string
		expected string
	}{
		{"demo", "Demo"},
		{"my-demo-app", "My Demo App"},
		{"a", "A"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DisplayName(tt.project))
	}
}
