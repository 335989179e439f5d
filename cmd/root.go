// Package cmd provides the pbdev command-line interface.
//
// Configuration sources, highest priority first: command-line flags,
// PBDEV_-prefixed environment variables (PBDEV_SERVER_APP_PORT and friends),
// and a .pbdev.yml file in the working directory. Missing or malformed
// config files degrade to defaults without failing.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/heynickdev/pbdev/internal/logging"
)

var (
	cfgFile  string
	logLevel string
	logger   logging.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pbdev",
	Short: "Bootstrap and run a PocketBase + templ + tailwind dev environment",
	Long: `pbdev bootstraps a local development environment for a PocketBase-style
Go web app built with templ views and tailwindcss, then orchestrates the
development loop around the air reload supervisor.

Quick Start:
  pbdev init                      Bootstrap the project in the current directory
  pbdev dev                       Start the watch + reload loop
  pbdev build                     Produce the release binary
  pbdev clean                     Remove build artifacts
  pbdev doctor                    Diagnose the tool environment

pbdev shells out to external tools (go, bun, templ, air, inotify-tools) and
offers to install any that are missing. Declining a required install aborts
the run.`,
	SilenceUsage: true,
	// The caller prints the single diagnostic line.
	SilenceErrors: true,
}

// Execute runs the root command. The caller prints the diagnostic line and
// maps the error to the process exit status.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .pbdev.yml)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("PBDEV_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pbdev")
	}

	viper.SetEnvPrefix("PBDEV")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Make every persistent flag reachable through viper as well.
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	// A missing or unreadable config file just means defaults.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func initLogger() {
	logger = logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(viper.GetString("log-level")),
		Format: "text",
		Output: os.Stderr,
	})
}
