package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/browser"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/cvfile"
	"github.com/jonathan/cv-builder/internal/cvstate"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/tui"
	"github.com/jonathan/cv-builder/internal/types"
)

var editCmd = &cobra.Command{
	Use:   "edit [document]",
	Short: "Edit a CV in the terminal",
	Long: `Opens the multi-step form (personal info, experience, education, skills). The
document is saved back to the file when the editor exits. A missing file is created.

Press ctrl+e on the last step to export the PDF into --out-dir.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

var (
	editOutDir   string
	editTemplate string
	editLogFile  string
)

func init() {
	editCmd.Flags().StringVarP(&editOutDir, "out-dir", "o", "", "Directory exported PDFs are written to (default: current directory)")
	editCmd.Flags().StringVarP(&editTemplate, "template", "t", "", "Initial layout: classic, modern or minimal")
	editCmd.Flags().StringVar(&editLogFile, "log-file", "cv_builder.log", "Where log output goes while the editor owns the terminal (with --verbose)")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd, func(explicit *config.Config) {
		if cmd.Flags().Changed("out-dir") {
			explicit.OutputDir = editOutDir
		}
		if cmd.Flags().Changed("template") {
			explicit.Template = editTemplate
		}
	})
	if err != nil {
		return err
	}

	path, err := documentPath(args, cfg)
	if err != nil {
		return err
	}
	st, err := loadOrNewState(path, cfg)
	if err != nil {
		return err
	}

	// The editor owns the terminal, so logs go to a file or nowhere.
	if cfg.Verbose {
		f, err := tea.LogToFile(editLogFile, "cv_builder")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	}

	bc, err := browserConfig(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exporter := &lazyExporter{cfg: bc, outDir: cfg.OutputDir}
	defer exporter.Close()

	final, runErr := tui.Run(ctx, st, tui.Options{Export: exporter.Export, Verbose: cfg.Verbose})
	if err := cvfile.Save(path, &final.Document); err != nil {
		return errors.Join(runErr, err)
	}
	if runErr != nil {
		return runErr
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	return nil
}

// loadOrNewState loads path, or starts an empty document when the file does not exist yet.
func loadOrNewState(path string, cfg config.Config) (cvstate.State, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if _, err := cvfile.FormatFor(path); err != nil {
			return cvstate.State{}, err
		}
		tmpl, err := types.ParseTemplate(cfg.Template)
		if err != nil {
			return cvstate.State{}, err
		}
		st := cvstate.New()
		st.Template = tmpl
		return st, nil
	}
	return loadState(path, cfg)
}

// lazyExporter starts Chrome on the first export and reuses it afterwards.
type lazyExporter struct {
	cfg    browser.Config
	outDir string

	mu       sync.Mutex
	renderer *browser.Renderer
}

func (e *lazyExporter) Export(ctx context.Context, st cvstate.State) (*export.Result, error) {
	e.mu.Lock()
	if e.renderer == nil {
		r, err := browser.NewRenderer(ctx, e.cfg)
		if err != nil {
			e.mu.Unlock()
			return nil, err
		}
		e.renderer = r
	}
	r := e.renderer
	e.mu.Unlock()

	return exportState(ctx, r, st, e.outDir, nil)
}

func (e *lazyExporter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.renderer != nil {
		e.renderer.Close()
		e.renderer = nil
	}
}
