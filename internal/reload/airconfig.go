// Package reload synthesizes and guards the air reload-supervisor
// configuration.
//
// The generated .air.toml is treated as a build artifact, not user
// configuration: staleness is detected by the presence of a single marker
// substring (the full launch command line) and regeneration is an
// unconditional overwrite. Any manual edits are lost once the marker check
// fails; that coarse policy is deliberate and keeps re-runs byte-stable.
package reload

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/heynickdev/pbdev/internal/config"
)

// AirConfigFile is the reload supervisor's config file name.
const AirConfigFile = ".air.toml"

var airConfigTemplate = template.Must(template.New("air").Parse(`root = "."
tmp_dir = "{{.TmpDir}}"

[build]
  cmd = "templ generate && go build -o ./{{.TmpDir}}/main ./cmd/{{.Project}}"
  bin = "./{{.TmpDir}}/main"
  full_bin = "./{{.TmpDir}}/main serve --http=0.0.0.0:{{.AppPort}}"
  include_ext = ["go", "templ", "html", "css", "js"]
  exclude_dir = ["{{.TmpDir}}", "{{.OutDir}}", "static", "node_modules", ".git"]
  exclude_regex = ["_test\\.go", "_templ\\.go"]
  delay = 200
  stop_on_error = true

[log]
  main_only = true
  time = false

[color]
  main = "magenta"
  watcher = "cyan"
  build = "yellow"
  runner = "green"

[misc]
  clean_on_exit = true

[screen]
  clear_on_rebuild = false

[proxy]
  enabled = true
  app_port = {{.AppPort}}
  proxy_port = {{.ProxyPort}}
`))

type airConfigData struct {
	Project   string
	TmpDir    string
	OutDir    string
	AppPort   int
	ProxyPort int
}

// Marker returns the fixed substring whose presence marks the config file as
// current: the full launch command line.
func Marker(cfg *config.Config) string {
	return fmt.Sprintf("full_bin = \"./%s/main serve --http=0.0.0.0:%d\"",
		cfg.Build.TmpDir, cfg.Server.AppPort)
}

// Render produces the full .air.toml content for a project.
func Render(cfg *config.Config) ([]byte, error) {
	var buf bytes.Buffer
	err := airConfigTemplate.Execute(&buf, airConfigData{
		Project:   cfg.Project.Name,
		TmpDir:    cfg.Build.TmpDir,
		OutDir:    cfg.Build.OutDir,
		AppPort:   cfg.Server.AppPort,
		ProxyPort: cfg.Server.ProxyPort,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render air config: %w", err)
	}
	return buf.Bytes(), nil
}

// IsCurrent reports whether dir's config file exists and carries the marker.
func IsCurrent(cfg *config.Config, dir string) bool {
	data, err := os.ReadFile(filepath.Join(dir, AirConfigFile))
	if err != nil {
		return false
	}
	return strings.Contains(string(data), Marker(cfg))
}

// Synthesize ensures dir holds a current .air.toml. A file carrying the
// marker is left untouched byte for byte; otherwise the file is regenerated
// by full overwrite and the result is decoded once to catch a malformed
// template early. Returns true if the file was (re)written.
func Synthesize(cfg *config.Config, dir string) (bool, error) {
	if IsCurrent(cfg, dir) {
		return false, nil
	}

	content, err := Render(cfg)
	if err != nil {
		return false, err
	}

	var decoded map[string]any
	if err := toml.Unmarshal(content, &decoded); err != nil {
		return false, fmt.Errorf("generated air config is not valid TOML: %w", err)
	}

	path := filepath.Join(dir, AirConfigFile)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", AirConfigFile, err)
	}
	return true, nil
}
