// Package main provides the cv_builder command line: batch export, preview and
// validation of CV documents, a terminal editor and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is stamped into exported PDFs as the creator.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "cv_builder",
	Short: "Build a CV and export it as an A4 PDF",
	Long: `cv_builder edits CV documents (personal info, experience, education and skills),
previews them in the classic, modern or minimal layout and exports them to a
multi-page A4 PDF by rasterizing the rendered preview in headless Chrome.

Configuration can be loaded from a JSON file using --config. Environment variables
(CV_BUILDER_*, CHROME_PATH) override the file and command-line flags override both.`,
	SilenceUsage: true,
}

var (
	rootConfigPath    string
	rootVerbose       bool
	rootChromePath    string
	rootHeadful       bool
	rootRenderTimeout string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&rootChromePath, "chrome-path", "", "Chrome/Chromium binary (defaults to CHROME_PATH or auto-detection)")
	rootCmd.PersistentFlags().BoolVar(&rootHeadful, "headful", false, "Show the browser window while rendering")
	rootCmd.PersistentFlags().StringVar(&rootRenderTimeout, "render-timeout", "", "Timeout for each browser operation, e.g. 30s (default: none)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
