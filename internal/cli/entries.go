package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"patientor/internal/models"
	"patientor/internal/state"
	"patientor/internal/views"
)

var entryFlags = map[string]string{
	"date":               "date",
	"description":        "description",
	"specialist":         "specialist",
	"diagnosis-codes":    "diagnosisCodes",
	"type":               "type",
	"employer":           "employerName",
	"sick-leave-start":   "sickLeave.startDate",
	"sick-leave-end":     "sickLeave.endDate",
	"discharge-date":     "discharge.date",
	"discharge-criteria": "discharge.criteria",
	"rating":             "healthCheckRating",
}

func entriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Patient entries",
	}
	cmd.AddCommand(entriesAddCmd(a))
	return cmd
}

func entriesAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add PATIENT_ID",
		Short: "Add an entry to a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := state.NewStore(a.logger)
			page := views.NewPatientDetailsPage(a.client(), store, a.logger)
			page.Mount(cmd.Context())
			defer page.Unmount()

			if err := page.Show(args[0]); err != nil {
				return err
			}

			// Re-render whenever the submitted entry lands in the store.
			var renderErr error
			unsubscribe := store.Subscribe(func(state.State) {
				renderErr = page.Render(cmd.OutOrStdout())
			})
			defer unsubscribe()

			form := page.OpenModal()
			if err := applyFlags(cmd, entryFlags, form.SetField); err != nil {
				return err
			}
			if !form.CanSubmit() {
				return validationFailed(cmd.ErrOrStderr(), form.Errors())
			}

			if _, err := page.SubmitEntry(); err != nil {
				if banner := page.Banner(); banner != "" {
					return errors.New(banner)
				}
				return err
			}
			return renderErr
		},
	}

	flags := cmd.Flags()
	flags.String("type", string(models.EntryTypeOccupationalHealthcare), "Entry type ("+entryTypeNames()+")")
	flags.String("date", "", "Visit date (YYYY-MM-DD)")
	flags.String("description", "", "Description")
	flags.String("specialist", "", "Specialist")
	flags.String("diagnosis-codes", "", "Comma separated diagnosis codes")
	flags.String("employer", "", "Employer name (OccupationalHealthcare)")
	flags.String("sick-leave-start", "", "Sick leave start date (OccupationalHealthcare)")
	flags.String("sick-leave-end", "", "Sick leave end date (OccupationalHealthcare)")
	flags.String("discharge-date", "", "Discharge date (Hospital)")
	flags.String("discharge-criteria", "", "Discharge criteria (Hospital)")
	flags.String("rating", "0", fmt.Sprintf("Health check rating 0-%d (HealthCheck)", models.RatingCriticalRisk))
	return cmd
}

func entryTypeNames() string {
	names := make([]string, 0, len(models.EntryTypes))
	for _, t := range models.EntryTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
