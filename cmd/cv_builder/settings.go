package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/browser"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/cvfile"
	"github.com/jonathan/cv-builder/internal/cvstate"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/types"
)

// loadSettings layers the --config file, the environment and the flags set on cmd.
// overrides copies command-specific flags into the explicit layer.
func loadSettings(cmd *cobra.Command, overrides func(explicit *config.Config)) (config.Config, error) {
	var file *config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		file = loaded
	}

	var explicit config.Config
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		explicit.Verbose = rootVerbose
	}
	if flags.Changed("chrome-path") {
		explicit.ChromePath = rootChromePath
	}
	if flags.Changed("headful") {
		explicit.Headful = rootHeadful
	}
	if flags.Changed("render-timeout") {
		explicit.RenderTimeout = rootRenderTimeout
	}
	if overrides != nil {
		overrides(&explicit)
	}

	cfg, err := config.Resolve(explicit, file)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Verbose && rootConfigPath != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Loaded config from: %s\n", rootConfigPath)
	}
	return cfg, nil
}

// documentPath picks the document argument, falling back to the configured document.
func documentPath(args []string, cfg config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Document != "" {
		return cfg.Document, nil
	}
	return "", fmt.Errorf("no CV document given: pass a file or set 'document' in --config")
}

// loadState reads the document at path into a fresh form state using the configured template.
func loadState(path string, cfg config.Config) (cvstate.State, error) {
	doc, err := cvfile.Load(path)
	if err != nil {
		return cvstate.State{}, err
	}
	tmpl, err := types.ParseTemplate(cfg.Template)
	if err != nil {
		return cvstate.State{}, err
	}
	st := cvstate.FromDocument(*doc)
	st.Template = tmpl
	return st, nil
}

// browserConfig maps the resolved settings onto Chrome launch options.
func browserConfig(cfg config.Config) (browser.Config, error) {
	timeout, err := cfg.RenderTimeoutDuration()
	if err != nil {
		return browser.Config{}, err
	}
	bc := browser.DefaultConfig()
	bc.ChromePath = cfg.ChromePath
	bc.Headless = !cfg.Headful
	bc.Timeout = timeout
	bc.Verbose = cfg.Verbose
	return bc, nil
}

// exportState renders st in a new tab of r and saves the PDF into outDir.
func exportState(ctx context.Context, r *browser.Renderer, st cvstate.State, outDir string, printer *observability.Printer) (*export.Result, error) {
	html, err := renderHTML(st)
	if err != nil {
		return nil, err
	}
	page, err := r.Open(ctx, html)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	opts := export.Options{Creator: "cv_builder " + version}
	var placements []export.Placement
	if printer != nil {
		opts.Verbose = true
		opts.OnProgress = func(ev export.ProgressEvent) {
			printer.PrintProgress(ev)
			if p, ok := ev.Content.([]export.Placement); ok {
				placements = p
			}
		}
	}

	res, err := export.New(export.DirSaver{Dir: outDir}, opts).Export(ctx, page, st.FileName())
	if err != nil {
		return nil, err
	}
	if printer != nil {
		printer.PrintLayout(res.MappedHeight, placements)
		printer.PrintExportResult(res)
	}
	return res, nil
}

// verbosePrinter returns a printer on stdout when verbose output is on.
func verbosePrinter(cmd *cobra.Command, cfg config.Config) *observability.Printer {
	if !cfg.Verbose {
		return nil
	}
	return observability.NewPrinter(cmd.OutOrStdout())
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
