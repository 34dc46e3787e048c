package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/cvstate"
	"github.com/jonathan/cv-builder/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview [document]",
	Short: "Render a CV document to standalone HTML",
	Long:  "Writes the same HTML the exporter rasterizes, so a layout can be checked in any browser.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPreview,
}

var (
	previewOut      string
	previewTemplate string
)

func init() {
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "", "Path to output HTML file (default: stdout)")
	previewCmd.Flags().StringVarP(&previewTemplate, "template", "t", "", "Layout: classic, modern or minimal (default: classic)")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd, func(explicit *config.Config) {
		if cmd.Flags().Changed("template") {
			explicit.Template = previewTemplate
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

	html, err := renderHTML(st)
	if err != nil {
		return err
	}

	if previewOut == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), html)
		return err
	}
	if err := writeFile(previewOut, []byte(html)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Preview written to %s\n", previewOut)
	return nil
}

func renderHTML(st cvstate.State) (string, error) {
	return preview.Render(&st.Document, st.Template)
}
