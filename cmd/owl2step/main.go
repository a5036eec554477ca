// Package main provides the owl2step binary entry point.
// Owl2step converts ifcOWL RDF model graphs into ISO-10303-21 STEP
// physical files.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/owl2step/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "owl2step"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		schemaDir  string
		ifcVersion string
		output     string
		logLevel   string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "owl2step [flags] INPUT...",
		Short: "Convert ifcOWL RDF graphs to STEP physical files",
		Long: `Owl2step converts ifcOWL RDF model graphs into ISO-10303-21 STEP
physical files (SPF, the .ifc exchange format).

Inputs are N-Triples (.nt, or .ttl restricted to N-Triples statements)
or JSON Lines (.jsonl, .ndjson) edge streams; glob patterns such as
'models/**/*.nt' select several at once. The IFC
schema version is detected from the model's owl:imports declaration
unless forced with --ifc-version.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, runOptions{
				configPath: configPath,
				schemaDir:  schemaDir,
				ifcVersion: ifcVersion,
				output:     output,
				logLevel:   logLevel,
				watch:      watch,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&schemaDir, "schema-dir", "", "Directory with schema fact-base documents")
	cmd.Flags().StringVar(&ifcVersion, "ifc-version", "", "Force an IFC version instead of detecting it (e.g. IFC4)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, or directory for several inputs (default: input with .step extension)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and reconvert inputs on change")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

type runOptions struct {
	configPath string
	schemaDir  string
	ifcVersion string
	output     string
	logLevel   string
	watch      bool
}

func run(patterns []string, opts runOptions) error {
	// Load layered config, then apply flag overrides on top
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Configure logging
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Watch.Enabled {
		return app.Watch(patterns, opts.output)
	}
	return app.Run(patterns, opts.output)
}

func loadConfig(opts runOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if opts.configPath != "" {
		cfg, err = config.LoadFromFile(opts.configPath)
	} else {
		cfg, err = config.NewLoader(slog.Default()).Load()
	}
	if err != nil {
		return nil, err
	}

	// Flags take precedence over every file layer
	if opts.schemaDir != "" {
		cfg.Schema.Dir = opts.schemaDir
	}
	if opts.ifcVersion != "" {
		cfg.Convert.Version = opts.ifcVersion
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.watch {
		cfg.Watch.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
