// Package config provides configuration management for pbdev using Viper for
// flexible loading from files, environment variables, and command-line flags.
//
// Configuration is read from .pbdev.yml in the working directory, overridable
// with PBDEV_-prefixed environment variables (PBDEV_SERVER_APP_PORT and so
// on). Almost everything has a fixed default: the project name is the working
// directory basename and the port pair is the one baked into the generated
// reload configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Fixed port pair embedded in the generated reload configuration: the app
// listens on AppPort, the reload supervisor proxies browsers on ProxyPort.
const (
	DefaultAppPort   = 42069
	DefaultProxyPort = 8090
)

// ConfigFileName is the pbdev config file looked up in the project root.
const ConfigFileName = ".pbdev.yml"

type Config struct {
	Project ProjectConfig `yaml:"project" mapstructure:"project"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Build   BuildConfig   `yaml:"build" mapstructure:"build"`
	CSS     CSSConfig     `yaml:"css" mapstructure:"css"`
}

type ProjectConfig struct {
	// Name defaults to the working directory basename. It names the
	// entry-point package directory (cmd/<name>) and the release binary.
	Name string `yaml:"name" mapstructure:"name"`
	// Root is resolved at load time, never persisted.
	Root string `yaml:"-" mapstructure:"root"`
}

type ServerConfig struct {
	AppPort   int `yaml:"app_port" mapstructure:"app_port"`
	ProxyPort int `yaml:"proxy_port" mapstructure:"proxy_port"`
}

type BuildConfig struct {
	// TmpDir is the reload supervisor's scratch directory.
	TmpDir string `yaml:"tmp_dir" mapstructure:"tmp_dir"`
	// OutDir receives the release binary.
	OutDir string `yaml:"out_dir" mapstructure:"out_dir"`
}

type CSSConfig struct {
	Input  string `yaml:"input" mapstructure:"input"`
	Output string `yaml:"output" mapstructure:"output"`
}

// EntryPointDir returns the directory holding the generated entry point.
func (c *Config) EntryPointDir() string {
	return filepath.Join("cmd", c.Project.Name)
}

// EntryPointFile returns the path of the generated entry-point source file.
func (c *Config) EntryPointFile() string {
	return filepath.Join(c.EntryPointDir(), "main.go")
}

// ReleaseBinary returns the fixed output path of the release build.
func (c *Config) ReleaseBinary() string {
	return filepath.Join(c.Build.OutDir, c.Project.Name)
}

// ScaffoldDirs returns the fixed directory skeleton created by init.
func (c *Config) ScaffoldDirs() []string {
	return []string{
		"static/js",
		"static/css",
		"views/components",
		"views/layouts",
		"views/pages",
		c.EntryPointDir(),
	}
}

// Load builds the effective configuration from viper state plus defaults.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Project.Root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		config.Project.Root = cwd
	}
	if config.Project.Name == "" {
		config.Project.Name = ProjectNameFromDir(config.Project.Root)
	}

	if config.Server.AppPort == 0 {
		config.Server.AppPort = DefaultAppPort
	}
	if config.Server.ProxyPort == 0 {
		config.Server.ProxyPort = DefaultProxyPort
	}
	if config.Build.TmpDir == "" {
		config.Build.TmpDir = "tmp"
	}
	if config.Build.OutDir == "" {
		config.Build.OutDir = "bin"
	}
	if config.CSS.Input == "" {
		config.CSS.Input = "static/css/input.css"
	}
	if config.CSS.Output == "" {
		config.CSS.Output = "static/css/style.css"
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ProjectNameFromDir derives the project/module name from a directory path
// the same way the entry-point package is named: lowercased basename with
// spaces and underscores normalized to hyphens.
func ProjectNameFromDir(dir string) string {
	name := filepath.Base(dir)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")
	return name
}

// Validate rejects configurations the rest of the pipeline cannot use.
func Validate(c *Config) error {
	if c.Project.Name == "" || c.Project.Name == "." || c.Project.Name == string(filepath.Separator) {
		return fmt.Errorf("invalid project name %q", c.Project.Name)
	}
	if c.Server.AppPort < 1 || c.Server.AppPort > 65535 {
		return fmt.Errorf("invalid app port %d", c.Server.AppPort)
	}
	if c.Server.ProxyPort < 1 || c.Server.ProxyPort > 65535 {
		return fmt.Errorf("invalid proxy port %d", c.Server.ProxyPort)
	}
	if c.Server.ProxyPort == c.Server.AppPort {
		return fmt.Errorf("app port and proxy port must differ, both are %d", c.Server.AppPort)
	}
	return nil
}

// WriteDefault writes a .pbdev.yml for the given config into dir unless one
// already exists. Returns true if a file was written.
func WriteDefault(c *Config, dir string) (bool, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return false, fmt.Errorf("failed to marshal config: %w", err)
	}

	content := append([]byte("# pbdev configuration file\n"), data...)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", ConfigFileName, err)
	}
	return true, nil
}
