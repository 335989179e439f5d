// Package tools resolves and installs the external programs pbdev
// orchestrates: the Go toolchain, the bun package runner, the templ
// generator, the air reload supervisor, and the inotify-tools file watcher.
//
// Resolution is a pure lookup with fixed precedence; installation is the only
// part of pbdev that mutates the host outside the project directory and is
// always gated behind an interactive prompt.
package tools

import (
	"os"
	"os/exec"
	"path/filepath"
)

// Tool names used as keys in a Toolset.
const (
	Go          = "go"
	Bun         = "bun"
	Templ       = "templ"
	Air         = "air"
	InotifyWait = "inotifywait"
)

// Tool describes one required external program.
type Tool struct {
	// Name is the executable looked up on PATH.
	Name string
	// Description is shown in prompts and diagnostics.
	Description string
	// FallbackPath locates the tool when its installer puts it in a
	// predictable user-local directory that may not be on PATH yet.
	// Empty when no such location exists. "~" expands to the home dir.
	FallbackPath string
	// Install describes how a missing copy gets installed. Nil when pbdev
	// cannot install the tool and missing is immediately fatal.
	Install *InstallSpec
}

// InstallMethod selects the installation mechanism for a tool.
type InstallMethod int

const (
	// InstallScript pipes a remote install script through a shell.
	InstallScript InstallMethod = iota
	// InstallGoModule runs go install <module>@latest.
	InstallGoModule
	// InstallSystemPackage dispatches to the host package manager.
	InstallSystemPackage
)

// InstallSpec describes the installation command for a tool.
type InstallSpec struct {
	Method InstallMethod
	// ScriptURL for InstallScript.
	ScriptURL string
	// Module for InstallGoModule.
	Module string
	// Package for InstallSystemPackage.
	Package string
}

// Required returns the fixed tool roster in the order they are resolved,
// checked and installed.
func Required() []Tool {
	return []Tool{
		{
			Name:        Go,
			Description: "Go compiler toolchain",
			// No installer: pbdev itself runs on Go, so a missing
			// toolchain is reported, not installed.
		},
		{
			Name:         Bun,
			Description:  "JavaScript package runner (tailwindcss host)",
			FallbackPath: "~/.bun/bin/bun",
			Install: &InstallSpec{
				Method:    InstallScript,
				ScriptURL: "https://bun.sh/install",
			},
		},
		{
			Name:         Templ,
			Description:  "templ template generator",
			FallbackPath: "~/go/bin/templ",
			Install: &InstallSpec{
				Method: InstallGoModule,
				Module: "github.com/a-h/templ/cmd/templ",
			},
		},
		{
			Name:         Air,
			Description:  "air live-reload supervisor",
			FallbackPath: "~/go/bin/air",
			Install: &InstallSpec{
				Method: InstallGoModule,
				Module: "github.com/air-verse/air",
			},
		},
		{
			Name:        InotifyWait,
			Description: "file-change watcher (inotify-tools)",
			Install: &InstallSpec{
				Method:  InstallSystemPackage,
				Package: "inotify-tools",
			},
		},
	}
}

// Toolset maps logical tool names to the invocation string every later step
// uses. Resolved once per run, never cached across runs.
type Toolset map[string]string

// Path returns the invocation string for a tool, falling back to the bare
// name so that failure surfaces at invocation time.
func (ts Toolset) Path(name string) string {
	if p, ok := ts[name]; ok && p != "" {
		return p
	}
	return name
}

// Resolver resolves tools against the host. The zero value uses the real
// PATH and home directory; tests swap the lookup functions.
type Resolver struct {
	LookPath func(name string) (string, error)
	HomeDir  func() (string, error)
}

// NewResolver returns a resolver backed by the real host environment.
func NewResolver() *Resolver {
	return &Resolver{
		LookPath: exec.LookPath,
		HomeDir:  os.UserHomeDir,
	}
}

// Resolve determines the invocation string for one tool. Precedence: a PATH
// hit, then an existing fallback path, then the bare name. It never errors
// and has no side effects; a bare name defers failure to invocation time.
func (r *Resolver) Resolve(tool Tool) (path string, found bool) {
	if p, err := r.lookPath(tool.Name); err == nil {
		return p, true
	}
	if tool.FallbackPath != "" {
		p := r.expandHome(tool.FallbackPath)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return tool.Name, false
}

// ResolveAll resolves the whole roster into a Toolset plus the list of tools
// that could not be found.
func (r *Resolver) ResolveAll(roster []Tool) (Toolset, []Tool) {
	ts := make(Toolset, len(roster))
	var missing []Tool
	for _, tool := range roster {
		path, found := r.Resolve(tool)
		ts[tool.Name] = path
		if !found {
			missing = append(missing, tool)
		}
	}
	return ts, missing
}

func (r *Resolver) lookPath(name string) (string, error) {
	if r.LookPath != nil {
		return r.LookPath(name)
	}
	return exec.LookPath(name)
}

func (r *Resolver) expandHome(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := r.homeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func (r *Resolver) homeDir() (string, error) {
	if r.HomeDir != nil {
		return r.HomeDir()
	}
	return os.UserHomeDir()
}
