package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"patientor/internal/forms"
	"patientor/internal/state"
	"patientor/internal/views"
)

func patientsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "List, show and add patients",
	}
	cmd.AddCommand(patientsListCmd(a))
	cmd.AddCommand(patientsShowCmd(a))
	cmd.AddCommand(patientsAddCmd(a))
	return cmd
}

func patientsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			page := views.NewPatientListPage(a.client(), state.NewStore(a.logger), a.logger)
			if err := page.Load(cmd.Context()); err != nil {
				return err
			}
			return page.Render(cmd.OutOrStdout())
		},
	}
}

func patientsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a patient with all entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := views.NewPatientDetailsPage(a.client(), state.NewStore(a.logger), a.logger)
			page.Mount(cmd.Context())
			defer page.Unmount()

			if err := page.Show(args[0]); err != nil {
				return err
			}
			return page.Render(cmd.OutOrStdout())
		},
	}
}

var patientFlags = map[string]string{
	"name":          "name",
	"date-of-birth": "dateOfBirth",
	"ssn":           "ssn",
	"gender":        "gender",
	"occupation":    "occupation",
}

func patientsAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			page := views.NewPatientListPage(a.client(), state.NewStore(a.logger), a.logger)
			form := page.OpenModal()
			if err := applyFlags(cmd, patientFlags, form.SetField); err != nil {
				return err
			}
			if !form.CanSubmit() {
				return validationFailed(cmd.ErrOrStderr(), form.Errors())
			}

			created, err := page.Submit(cmd.Context())
			if err != nil {
				if banner := page.Banner(); banner != "" {
					return errors.New(banner)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added patient %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("date-of-birth", "", "Date of birth (YYYY-MM-DD)")
	cmd.Flags().String("ssn", "", "Social security number")
	cmd.Flags().String("gender", "other", "Gender (male, female, other)")
	cmd.Flags().String("occupation", "", "Occupation")
	return cmd
}

// applyFlags copies every flag the user set into the form field it maps to.
func applyFlags(cmd *cobra.Command, fields map[string]string, set func(name, value string) error) error {
	flagNames := make([]string, 0, len(fields))
	for name := range fields {
		flagNames = append(flagNames, name)
	}
	sort.Strings(flagNames)

	for _, flag := range flagNames {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		value, err := cmd.Flags().GetString(flag)
		if err != nil {
			return err
		}
		if err := set(fields[flag], value); err != nil {
			return fmt.Errorf("--%s: %w", flag, err)
		}
	}
	return nil
}

func validationFailed(w io.Writer, errs forms.Errors) error {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "  %s: %s\n", field, errs[field])
	}
	return fmt.Errorf("%d invalid field(s), nothing was submitted", len(errs))
}
