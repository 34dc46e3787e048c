package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/preview"
	"github.com/jonathan/cv-builder/internal/types"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available layouts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, info := range preview.Templates() {
			marker := " "
			if info.ID == types.DefaultTemplate {
				marker = "*"
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %-8s %-8s %s\n", marker, info.ID, info.Name, info.Description); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
