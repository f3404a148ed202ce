package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/goframe/internal/config"
	"github.com/alexiusacademia/goframe/internal/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	envFile    string
	verbose    bool

	// Loaded before every command runs
	cfg    = config.Default()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "goframe",
	Short: "2D Frame Geometry and Result Viewer",
	Long: `goframe - Go 2D Frame Editor Engine

A CLI tool for working with plane frame models and the results
produced by an external structural solver.

This tool helps structural engineers:
  - Run a model through a solver over the websocket bridge
  - Render bending moment, shear and axial force diagrams
  - Render the magnified deformed shape
  - Query snapping and box selection the way the editor does
  - Generate NSCP 2015 load combinations for a model

Models are JSON files; results use the solver's JSON result schema.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		if err := config.LoadEnv(envFile); err != nil {
			return err
		}
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Debug("configuration loaded", "config", configPath, "solver", cfg.Solver.URL)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   goframe v%-47s║\n", version.Version)
		fmt.Println("  ║   Go 2D Frame Editor Engine                               ║")
		fmt.Printf("  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Solver bridge over websockets with request correlation")
		fmt.Println("    • Force diagrams and deformed shapes exported as images")
		fmt.Println("    • Node/element snapping and window/crossing selection")
		fmt.Println("    • NSCP 2015 load combinations")
		fmt.Println()
		fmt.Println("  Use 'goframe --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Environment file with GOFRAME_* overrides")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
