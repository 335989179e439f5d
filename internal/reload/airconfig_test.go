package reload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
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

func TestMarker(t *testing.T) {
	assert.Equal(t,
		`full_bin = "./tmp/main serve --http=0.0.0.0:42069"`,
		Marker(demoConfig()))
}

func TestRenderIsValidTOML(t *testing.T) {
	content, err := Render(demoConfig())
	require.NoError(t, err)

	var decoded struct {
		Root   string `toml:"root"`
		TmpDir string `toml:"tmp_dir"`
		Build  struct {
			Cmd          string   `toml:"cmd"`
			Bin          string   `toml:"bin"`
			FullBin      string   `toml:"full_bin"`
			IncludeExt   []string `toml:"include_ext"`
			ExcludeDir   []string `toml:"exclude_dir"`
			ExcludeRegex []string `toml:"exclude_regex"`
		} `toml:"build"`
		Misc struct {
			CleanOnExit bool `toml:"clean_on_exit"`
		} `toml:"misc"`
		Proxy struct {
			Enabled   bool `toml:"enabled"`
			AppPort   int  `toml:"app_port"`
			ProxyPort int  `toml:"proxy_port"`
		} `toml:"proxy"`
	}
	require.NoError(t, toml.Unmarshal(content, &decoded))

	assert.Equal(t, ".", decoded.Root)
	assert.Equal(t, "tmp", decoded.TmpDir)
	assert.Equal(t, "./tmp/main serve --http=0.0.0.0:42069", decoded.Build.FullBin)
	assert.Contains(t, decoded.Build.Cmd, "templ generate")
	assert.Contains(t, decoded.Build.Cmd, "./cmd/demo")
	assert.Contains(t, decoded.Build.IncludeExt, "templ")
	assert.Contains(t, decoded.Build.ExcludeDir, "tmp")
	assert.Contains(t, decoded.Build.ExcludeRegex, `_templ\.go`)
	assert.True(t, decoded.Misc.CleanOnExit)
	assert.True(t, decoded.Proxy.Enabled)
	assert.Equal(t, 42069, decoded.Proxy.AppPort)
	assert.Equal(t, 8090, decoded.Proxy.ProxyPort)
}

func TestSynthesizeCreatesFile(t *testing.T) {
	dir := t.TempDir()
	cfg := demoConfig()

	wrote, err := Synthesize(cfg, dir)
	require.NoError(t, err)
	assert.True(t, wrote)

	data, err := os.ReadFile(filepath.Join(dir, AirConfigFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), Marker(cfg))
}

func TestSynthesizeIdempotentWhenCurrent(t *testing.T) {
	dir := t.TempDir()
	cfg := demoConfig()

	wrote, err := Synthesize(cfg, dir)
	require.NoError(t, err)
	require.True(t, wrote)

	first, err := os.ReadFile(filepath.Join(dir, AirConfigFile))
	require.NoError(t, err)

	wrote, err = Synthesize(cfg, dir)
	require.NoError(t, err)
	assert.False(t, wrote)

	second, err := os.ReadFile(filepath.Join(dir, AirConfigFile))
	require.NoError(t, err)
	assert.Equal(t, first, second, "second run must leave the file byte-identical")
}

func TestSynthesizeKeepsEditsWhileMarkerPresent(t *testing.T) {
	dir := t.TempDir()
	cfg := demoConfig()

	_, err := Synthesize(cfg, dir)
	require.NoError(t, err)

	// A user edit that keeps the marker line intact survives.
	path := filepath.Join(dir, AirConfigFile)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	edited := append(data, []byte("\n# custom note\n")...)
	require.NoError(t, os.WriteFile(path, edited, 0644))

	wrote, err := Synthesize(cfg, dir)
	require.NoError(t, err)
	assert.False(t, wrote)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, edited, after)
}

func TestSynthesizeOverwritesWhenMarkerLost(t *testing.T) {
	dir := t.TempDir()
	cfg := demoConfig()

	path := filepath.Join(dir, AirConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("root = \".\"\n# no marker here\n"), 0644))

	wrote, err := Synthesize(cfg, dir)
	require.NoError(t, err)
	assert.True(t, wrote)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), Marker(cfg))
	assert.NotContains(t, string(data), "no marker here", "regeneration is a full overwrite")
}

func TestSynthesizeOverwritesWhenPortChanges(t *testing.T) {
	dir := t.TempDir()
	cfg := demoConfig()

	_, err := Synthesize(cfg, dir)
	require.NoError(t, err)

	cfg.Server.AppPort = 9000
	wrote, err := Synthesize(cfg, dir)
	require.NoError(t, err)
	assert.True(t, wrote, "a changed launch command invalidates the marker")

	data, err := os.ReadFile(filepath.Join(dir, AirConfigFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "--http=0.0.0.0:9000")
}

func TestIsCurrentMissingFile(t *testing.T) {
	assert.False(t, IsCurrent(demoConfig(), t.TempDir()))
}
