// huntctl is a terminal client for the Treasure Hunt solving service.
// Run without arguments for the interactive form; the solve and get
// subcommands cover scripted use.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"huntctl/cmd/huntctl/ui"
	"huntctl/internal/client"
	"huntctl/internal/config"
	"huntctl/internal/hunt"
)

var (
	// Global flags
	baseURL    string
	timeout    time.Duration
	verbose    bool
	jsonOutput bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "huntctl",
	Short: "Terminal client for the Treasure Hunt solving service",
	Long: `huntctl collects an N×M treasure hunt matrix with a value cap P,
submits it to the solving service, and shows the minimum fuel the
service computed. Previous calculations can be retrieved by id.

Run without arguments to start the interactive form.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it owns the screen)
		if cmd.Use == "huntctl" && cmd.CalledAs() == "huntctl" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// solveCmd submits a problem document without the TUI
var solveCmd = &cobra.Command{
	Use:   "solve [file]",
	Short: "Submit a problem JSON document and print the result",
	Long: `Reads a problem document {"n":..,"m":..,"p":..,"matrix":[[..]]} from
the given file (or stdin when the file is "-"), validates it locally,
and submits it to the solving service.

Example:
  huntctl solve problem.json
  cat problem.json | huntctl solve -`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

// getCmd retrieves a persisted calculation
var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Retrieve a previous calculation by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

// configCmd shows or updates stored preferences
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update stored preferences",
	RunE:  runConfig,
}

var (
	setBaseURL string
	setTheme   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "solving service address (overrides config)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")

	configCmd.Flags().StringVar(&setBaseURL, "set-base-url", "", "store a new service address")
	configCmd.Flags().StringVar(&setTheme, "set-theme", "", "store the theme (light or dark)")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(configCmd)
}

// newClient resolves the service address (flag > environment > config
// file > default) and builds the HTTP client.
func newClient() (*client.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil && logger != nil {
		logger.Warn("config load failed, using defaults", zap.Error(err))
	}

	url := cfg.BaseURL
	if baseURL != "" {
		url = baseURL
	}

	opts := []client.Option{client.WithTimeout(timeout)}
	if logger != nil {
		opts = append(opts, client.WithLogger(logger))
	}
	return client.New(url, opts...), cfg, nil
}

func runInteractive() error {
	c, cfg, err := newClient()
	if err != nil {
		return err
	}

	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))
	app := ui.NewApp(c, styles)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read problem document: %w", err)
	}

	var problem hunt.Problem
	if err := json.Unmarshal(data, &problem); err != nil {
		return fmt.Errorf("failed to parse problem document: %w", err)
	}
	if err := problem.Validate(); err != nil {
		return fmt.Errorf("invalid problem: %w", err)
	}

	c, _, err := newClient()
	if err != nil {
		return err
	}

	logger.Info("submitting problem",
		zap.Int("n", problem.N),
		zap.Int("m", problem.M),
		zap.Int("p", problem.P))

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	result, err := c.Solve(ctx, problem)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Calculation ID: %d\n", result.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Minimum Fuel Required: %d\n", result.MinimumFuel)
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("id must be a positive integer, got %q", args[0])
	}

	c, _, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	record, err := c.Lookup(ctx, id)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), record)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Calculation ID: %d\n", record.ID)
	fmt.Fprintf(out, "Minimum Fuel Required: %d\n", record.MinimumFuel)
	fmt.Fprintf(out, "Input: N=%d M=%d P=%d\n", record.Input.N, record.Input.M, record.Input.P)
	for _, row := range record.Input.Matrix {
		fmt.Fprintf(out, "  %v\n", row)
	}
	if record.CalculatedAt != "" {
		fmt.Fprintf(out, "Calculated at: %s\n", record.CalculatedAt)
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("config load failed, starting from defaults", zap.Error(err))
	}

	changed := false
	if setBaseURL != "" {
		cfg.BaseURL = setBaseURL
		changed = true
	}
	if setTheme != "" {
		if setTheme != "light" && setTheme != "dark" {
			return fmt.Errorf("theme must be light or dark, got %q", setTheme)
		}
		cfg.Theme = setTheme
		changed = true
	}

	if changed {
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "base_url: %s\n", cfg.BaseURL)
	fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\n", cfg.Theme)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
