package cli

import (
	"github.com/spf13/cobra"

	"patientor/internal/render"
	"patientor/internal/state"
)

func diagnosesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnoses",
		Short: "Diagnosis reference data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List diagnosis codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			diagnoses, err := a.client().ListDiagnoses(cmd.Context())
			if err != nil {
				return err
			}
			store := state.NewStore(a.logger)
			s := store.Dispatch(state.SetDiagnosisList(diagnoses))
			return render.Diagnoses(cmd.OutOrStdout(), s.Diagnoses)
		},
	})
	return cmd
}
