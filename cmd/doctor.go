package cmd

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/heynickdev/pbdev/internal/config"
	"github.com/heynickdev/pbdev/internal/reload"
	"github.com/heynickdev/pbdev/internal/tools"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the development environment",
	Long: `Diagnose the development environment without changing anything.

Checks tool resolution for the full roster, availability of the app and
proxy ports, and whether the generated air configuration is present and
current.

Examples:
  pbdev doctor                  # Human-readable report
  pbdev doctor --format json    # JSON for tooling
  pbdev doctor --format yaml    # YAML`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var doctorFormat string

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().StringVarP(&doctorFormat, "format", "f", "table", "Output format (table|json|yaml)")
}

// DiagnosticResult is one row of the doctor report.
type DiagnosticResult struct {
	Name       string `json:"name" yaml:"name"`
	Category   string `json:"category" yaml:"category"`
	Status     string `json:"status" yaml:"status"` // "ok", "warning", "error"
	Message    string `json:"message" yaml:"message"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// DoctorReport is the complete diagnostic report.
type DoctorReport struct {
	Timestamp time.Time          `json:"timestamp" yaml:"timestamp"`
	Project   string             `json:"project" yaml:"project"`
	Results   []DiagnosticResult `json:"results" yaml:"results"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	report := DoctorReport{
		Timestamp: time.Now(),
		Project:   cfg.Project.Name,
	}

	report.Results = append(report.Results, checkTools()...)
	report.Results = append(report.Results,
		checkPort("App port", cfg.Server.AppPort),
		checkPort("Proxy port", cfg.Server.ProxyPort),
		checkAirConfig(cfg, cwd),
	)

	switch doctorFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	case "table":
		printDoctorTable(report)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json, yaml)", doctorFormat)
	}
}

func checkTools() []DiagnosticResult {
	resolver := tools.NewResolver()
	var results []DiagnosticResult

	for _, tool := range tools.Required() {
		result := DiagnosticResult{
			Name:     tool.Name,
			Category: "Tools",
		}
		if path, found := resolver.Resolve(tool); found {
			result.Status = "ok"
			result.Message = fmt.Sprintf("resolved to %s", path)
		} else {
			result.Status = "error"
			result.Message = fmt.Sprintf("%s not found", tool.Description)
			result.Suggestion = "run 'pbdev init' to install missing tools"
		}
		results = append(results, result)
	}
	return results
}

func checkPort(name string, port int) DiagnosticResult {
	result := DiagnosticResult{
		Name:     name,
		Category: "Network",
	}

	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("port %d is already in use", port)
		result.Suggestion = "stop the process holding it or change the port in .pbdev.yml"
		return result
	}
	ln.Close()

	result.Status = "ok"
	result.Message = fmt.Sprintf("port %d is free", port)
	return result
}

func checkAirConfig(cfg *config.Config, dir string) DiagnosticResult {
	result := DiagnosticResult{
		Name:     "Air config",
		Category: "Config",
	}

	if _, err := os.Stat(filepath.Join(dir, reload.AirConfigFile)); err != nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("%s not found", reload.AirConfigFile)
		result.Suggestion = "run 'pbdev init' to generate it"
		return result
	}

	if !reload.IsCurrent(cfg, dir) {
		result.Status = "warning"
		result.Message = fmt.Sprintf("%s is stale (launch command marker missing)", reload.AirConfigFile)
		result.Suggestion = "run 'pbdev init' or 'pbdev dev' to regenerate it"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("%s present and current", reload.AirConfigFile)
	return result
}

func printDoctorTable(report DoctorReport) {
	fmt.Printf("pbdev doctor: %s\n\n", report.Project)

	statusIcon := map[string]string{
		"ok":      "✓",
		"warning": "!",
		"error":   "✗",
	}

	for _, r := range report.Results {
		icon, ok := statusIcon[r.Status]
		if !ok {
			icon = "?"
		}
		fmt.Printf("  %s %-12s %s\n", icon, r.Name, r.Message)
		if r.Suggestion != "" {
			fmt.Printf("      suggestion: %s\n", r.Suggestion)
		}
	}
}
