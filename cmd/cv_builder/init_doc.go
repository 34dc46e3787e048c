package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/cvfile"
	"github.com/jonathan/cv-builder/internal/cvstate"
	"github.com/jonathan/cv-builder/internal/types"
)

var initCmd = &cobra.Command{
	Use:   "init <document>",
	Short: "Write a starter CV document",
	Long:  "Creates a JSON or YAML document (chosen by extension) with one example entry per section.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInit,
}

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	doc := starterDocument()
	if err := cvfile.Save(path, &doc); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// starterDocument builds the example content through the form operations so ids are generated.
func starterDocument() types.CVDocument {
	st := cvstate.SetPersonalInfo(cvstate.New(), types.PersonalInfo{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+1 555 0100",
		Location: "Berlin, Germany",
		Title:    "Software Engineer",
		Summary:  "Engineer focused on reliable backend systems.",
	})

	st, expID := cvstate.AddExperience(st)
	st, _ = cvstate.UpdateExperience(st, expID, func(e *types.ExperienceEntry) {
		e.Company = "Acme Corp"
		e.Position = "Backend Engineer"
		e.StartDate = "2021-03"
		e.Current = true
		e.Description = "Built and operated the billing platform."
	})

	st, eduID := cvstate.AddEducation(st)
	st, _ = cvstate.UpdateEducation(st, eduID, func(e *types.EducationEntry) {
		e.School = "State University"
		e.Degree = "BSc"
		e.Field = "Computer Science"
		e.StartDate = "2016-09"
		e.EndDate = "2020-06"
	})

	for _, skill := range []string{"Go", "PostgreSQL", "Kubernetes"} {
		st, _ = cvstate.AddSkill(st, skill)
	}
	return st.Document
}
