package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/owl2step/config"
	"github.com/c360studio/owl2step/convert"
	"github.com/c360studio/owl2step/schema"
	"github.com/c360studio/owl2step/tripleio"
)

// App wires configuration, schema fact bases, and the converter together
// for command-line runs.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	conv   *convert.Converter
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	info, err := os.Stat(cfg.Schema.Dir)
	if err != nil {
		return nil, fmt.Errorf("stat schema directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", cfg.Schema.Dir)
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		conv: &convert.Converter{
			Schemas: os.DirFS(cfg.Schema.Dir),
			Version: schema.Version(cfg.Convert.Version),
			Logger:  logger,
		},
	}, nil
}

// Run converts every input matched by the glob patterns once and exits.
// Conversion continues past per-file failures; the first failure is
// returned after all inputs were attempted.
func (a *App) Run(patterns []string, output string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	inputs, err := expandGlobs(patterns)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input files match %s", strings.Join(patterns, " "))
	}

	var firstErr error
	for _, input := range inputs {
		outPath, err := outputPath(input, output, len(inputs))
		if err != nil {
			return err
		}
		if err := a.ConvertFile(ctx, input, outPath); err != nil {
			a.logger.Error("Conversion failed", "input", input, "error", err.Error())
			if firstErr == nil {
				firstErr = fmt.Errorf("convert %s: %w", input, err)
			}
		}
	}
	return firstErr
}

// ConvertFile converts one input file and writes the STEP text to outPath.
// The output file only appears once the conversion got past schema
// loading; a partially written file is removed on failure.
func (a *App) ConvertFile(ctx context.Context, input, outPath string) error {
	src, err := sourceFor(input, a.logger)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := a.conv.Convert(ctx, src, out); err != nil {
		out.Close()
		os.Remove(outPath)
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	a.logger.Info("Wrote STEP file", "input", input, "output", outPath)
	return nil
}

// sourceFor picks the edge-stream decoder from the input extension. A .ttl
// file is accepted only when it is line-oriented N-Triples (a common naming
// for ifcOWL exports); prefixed Turtle syntax is not parsed and its lines
// are skipped with a warning.
func sourceFor(path string, logger *slog.Logger) (convert.Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nt", ".ttl":
		return tripleio.NewNTriplesFile(path, logger), nil
	case ".jsonl", ".ndjson":
		return tripleio.NewJSONLinesFile(path, logger), nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", path)
	}
}

// expandGlobs resolves the input patterns. A pattern without glob
// metacharacters is taken as a literal path so missing files surface as
// errors instead of empty matches.
func expandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var inputs []string

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("stat input: %w", err)
			}
			if !seen[pattern] {
				seen[pattern] = true
				inputs = append(inputs, pattern)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				inputs = append(inputs, m)
			}
		}
	}

	sort.Strings(inputs)
	return inputs, nil
}

// outputPath derives where one input's STEP text goes. With a single
// input, --output names the file; with several it names a directory.
func outputPath(input, output string, inputCount int) (string, error) {
	if output == "" {
		return stepName(input), nil
	}
	if inputCount == 1 {
		if info, err := os.Stat(output); err == nil && info.IsDir() {
			return filepath.Join(output, filepath.Base(stepName(input))), nil
		}
		return output, nil
	}

	info, err := os.Stat(output)
	if err != nil {
		return "", fmt.Errorf("stat output directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("output must be a directory for several inputs: %s", output)
	}
	return filepath.Join(output, filepath.Base(stepName(input))), nil
}

func stepName(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".step"
}
