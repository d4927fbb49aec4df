package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"patientor/internal/utils"
)

func tokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API access token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.AuthEnabled() {
				return errors.New("JWT_SECRET is not set")
			}
			subject, _ := cmd.Flags().GetString("subject")
			role, _ := cmd.Flags().GetString("role")
			if subject == "" {
				return errors.New("--subject is required")
			}
			r := utils.Role(role)
			if r != utils.RoleClinician && r != utils.RoleViewer {
				return fmt.Errorf("role must be %q or %q", utils.RoleClinician, utils.RoleViewer)
			}

			ttl := time.Duration(a.cfg.JWTExpirationMinutes) * time.Minute
			token, err := utils.GenerateToken(subject, r, a.cfg.JWTSecret, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().String("subject", "", "Token subject, e.g. a user name")
	cmd.Flags().String("role", string(utils.RoleViewer), "Role claim (clinician or viewer)")
	return cmd
}
