package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	viper.Set("project.root", filepath.Join(t.TempDir(), "demo"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Project.Name)
	assert.Equal(t, DefaultAppPort, cfg.Server.AppPort)
	assert.Equal(t, DefaultProxyPort, cfg.Server.ProxyPort)
	assert.Equal(t, "tmp", cfg.Build.TmpDir)
	assert.Equal(t, "bin", cfg.Build.OutDir)
	assert.Equal(t, "static/css/input.css", cfg.CSS.Input)
	assert.Equal(t, "static/css/style.css", cfg.CSS.Output)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	viper.Set("project.root", "/some/where/myapp")
	viper.Set("server.app_port", 9000)
	viper.Set("server.proxy_port", 9100)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "myapp", cfg.Project.Name)
	assert.Equal(t, 9000, cfg.Server.AppPort)
	assert.Equal(t, 9100, cfg.Server.ProxyPort)
}

func TestLoadReadsEverySnakeCaseKeyFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `# edited by hand
project:
  name: customname
server:
  app_port: 9000
  proxy_port: 9100
build:
  tmp_dir: scratch
  out_dir: dist
css:
  input: assets/in.css
  output: assets/out.css
`
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	viper.Reset()
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())
	viper.Set("project.root", filepath.Join(dir, "demo"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "customname", cfg.Project.Name)
	assert.Equal(t, 9000, cfg.Server.AppPort)
	assert.Equal(t, 9100, cfg.Server.ProxyPort)
	assert.Equal(t, "scratch", cfg.Build.TmpDir)
	assert.Equal(t, "dist", cfg.Build.OutDir)
	assert.Equal(t, "assets/in.css", cfg.CSS.Input)
	assert.Equal(t, "assets/out.css", cfg.CSS.Output)
}

func TestLoadRejectsSamePorts(t *testing.T) {
	viper.Reset()
	viper.Set("project.root", "/some/where/myapp")
	viper.Set("server.app_port", 9000)
	viper.Set("server.proxy_port", 9000)

	_, err := Load()
	assert.Error(t, err)
}

func TestProjectNameFromDir(t *testing.T) {
	tests := []struct {
		dir      string
		expected string
	}{
		{"/home/dev/demo", "demo"},
		{"/home/dev/My App", "my-app"},
		{"/home/dev/snake_case_app", "snake-case-app"},
		{"demo", "demo"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ProjectNameFromDir(tt.dir), "dir %q", tt.dir)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Project: ProjectConfig{Name: "demo", Root: "/tmp/demo"},
			Server:  ServerConfig{AppPort: DefaultAppPort, ProxyPort: DefaultProxyPort},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		expectErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty name", func(c *Config) { c.Project.Name = "" }, true},
		{"dot name", func(c *Config) { c.Project.Name = "." }, true},
		{"zero app port", func(c *Config) { c.Server.AppPort = 0 }, true},
		{"huge proxy port", func(c *Config) { c.Server.ProxyPort = 70000 }, true},
		{"colliding ports", func(c *Config) { c.Server.ProxyPort = c.Server.AppPort }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPathHelpers(t *testing.T) {
	cfg := &Config{
		Project: ProjectConfig{Name: "demo"},
		Build:   BuildConfig{TmpDir: "tmp", OutDir: "bin"},
	}

	assert.Equal(t, filepath.Join("cmd", "demo"), cfg.EntryPointDir())
	assert.Equal(t, filepath.Join("cmd", "demo", "main.go"), cfg.EntryPointFile())
	assert.Equal(t, filepath.Join("bin", "demo"), cfg.ReleaseBinary())
	assert.Contains(t, cfg.ScaffoldDirs(), "views/components")
	assert.Contains(t, cfg.ScaffoldDirs(), filepath.Join("cmd", "demo"))
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Project: ProjectConfig{Name: "demo", Root: dir},
		Server:  ServerConfig{AppPort: DefaultAppPort, ProxyPort: DefaultProxyPort},
		Build:   BuildConfig{TmpDir: "tmp", OutDir: "bin"},
		CSS:     CSSConfig{Input: "static/css/input.css", Output: "static/css/style.css"},
	}

	wrote, err := WriteDefault(cfg, dir)
	require.NoError(t, err)
	assert.True(t, wrote)

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "demo", decoded.Project.Name)
	assert.Equal(t, DefaultAppPort, decoded.Server.AppPort)
	// The runtime root never leaks into the file.
	assert.Empty(t, decoded.Project.Root)

	// Second call must not overwrite.
	wrote, err = WriteDefault(cfg, dir)
	require.NoError(t, err)
	assert.False(t, wrote)
}
