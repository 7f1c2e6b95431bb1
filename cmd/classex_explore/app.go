package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/user/classex_explore_go/internal/analysis"
	"github.com/user/classex_explore_go/internal/config"
	"github.com/user/classex_explore_go/internal/parser"
	"github.com/user/classex_explore_go/internal/report"
	"github.com/user/classex_explore_go/internal/stream"
)

// App carries the state shared by every subcommand of one invocation.
type App struct {
	cfg    *config.Config
	format report.Format
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer

	readFile func(path string) (*parser.PerturbFile, error)
}

// NewApp creates an App writing results to stdout and diagnostics to stderr.
func NewApp(stdout, stderr io.Writer) *App {
	return &App{
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, nil)),

		readFile: parser.ParsePerturbFile,
	}
}

// configure installs the resolved configuration and the logger level.
func (a *App) configure(cfg *config.Config) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.format = format
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *App) sendStatus(message string, args ...any) {
	a.logger.Info(message, args...)
}

// loadDataset reads path and builds the queryable dataset.
func (a *App) loadDataset(path string) (*analysis.Dataset, error) {
	a.sendStatus("parsing", "path", path)
	raw, err := a.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing perturbation file: %w", err)
	}
	for _, w := range raw.Warnings {
		a.logger.Warn(w, "path", path)
	}

	ds, err := analysis.NewDataset(raw, analysis.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("error loading dataset: %w", err)
	}
	a.sendStatus("dataset ready",
		"wavenumbers", len(ds.Wavenumbers),
		"times", len(ds.LogConformalTimes),
		"functions", ds.NumFunctions())
	return ds, nil
}

// output opens the configured destination. An empty output path means
// stdout; a path ending in .zst or .lz4 is compressed.
func (a *App) output() (io.WriteCloser, error) {
	if a.cfg == nil || a.cfg.Output == "" {
		return stream.NewWriter(a.stdout, stream.None)
	}
	w, err := stream.Create(a.cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("error creating output file: %w", err)
	}
	a.sendStatus("writing", "path", a.cfg.Output, "codec", stream.CodecFor(a.cfg.Output))
	return w, nil
}

// emit writes doc in the configured format.
func (a *App) emit(doc *report.Document) error {
	return a.writeWith(func(w io.Writer) error { return report.Write(w, doc, a.format) })
}

// writeWith renders into the configured destination. An output file is
// removed again when rendering fails.
func (a *App) writeWith(render func(io.Writer) error) error {
	w, err := a.output()
	if err != nil {
		return err
	}
	if err := render(w); err != nil {
		_ = w.Close()
		if a.cfg != nil && a.cfg.Output != "" {
			if rmErr := os.Remove(a.cfg.Output); rmErr != nil {
				a.logger.Warn("failed to remove partial output", "path", a.cfg.Output, "error", rmErr)
			}
		}
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("error closing output: %w", err)
	}
	return nil
}
