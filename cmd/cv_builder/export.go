package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/browser"
	"github.com/jonathan/cv-builder/internal/config"
)

var exportCmd = &cobra.Command{
	Use:   "export [document]",
	Short: "Export a CV document to PDF",
	Long: `Renders the document with the chosen template in headless Chrome, rasterizes it at 2x
on a white background and tiles the image onto A4 pages.

The file is named after the full name ("Jane Doe" becomes Jane_Doe_CV.pdf, or My_CV.pdf
when the name is empty) and written to --out-dir.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var (
	exportOutDir   string
	exportTemplate string
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutDir, "out-dir", "o", "", "Directory to write the PDF to (default: current directory)")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Layout: classic, modern or minimal (default: classic)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd, func(explicit *config.Config) {
		if cmd.Flags().Changed("out-dir") {
			explicit.OutputDir = exportOutDir
		}
		if cmd.Flags().Changed("template") {
			explicit.Template = exportTemplate
		}
	})
	if err != nil {
		return err
	}

	path, err := documentPath(args, cfg)
	if err != nil {
		return err
	}
	st, err := loadState(path, cfg)
	if err != nil {
		return err
	}

	printer := verbosePrinter(cmd, cfg)
	if printer != nil {
		printer.PrintDocument(&st.Document, st.Template)
	}

	bc, err := browserConfig(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer, err := browser.NewRenderer(ctx, bc)
	if err != nil {
		return err
	}
	defer renderer.Close()

	res, err := exportState(ctx, renderer, st, cfg.OutputDir, printer)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d page(s))\n", res.Location, res.Pages)
	return nil
}
