package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/cvfile"
	"github.com/jonathan/cv-builder/internal/observability"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document>",
	Short: "Check a CV document against the schema and field rules",
	Long: `Checks the document file (JSON or YAML) against the CV document schema, then the
field rules: email format, YYYY-MM dates, unique entry ids and skills, and end dates
that are not before start dates.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

// errValidationFailed is returned after the problems have been printed.
var errValidationFailed = errors.New("validation failed")

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	printer := observability.NewPrinter(cmd.OutOrStdout())

	doc, err := cvfile.Load(args[0])
	printer.PrintValidation(err)
	if err != nil {
		return errValidationFailed
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %d experience, %d education, %d skills\n",
		len(doc.Experience), len(doc.Education), len(doc.Skills))
	return nil
}
