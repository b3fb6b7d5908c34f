package main

import (
	"fmt"

	"foodgram-backend/internal/config"
	"foodgram-backend/internal/shared/actor"
	"foodgram-backend/pkg/jwt"

	"github.com/spf13/cobra"
)

func newIssueTokenCmd() *cobra.Command {
	var (
		userID    int64
		role      string
		superuser bool
	)

	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Sign an access token for local development",
		Long: `Signs an HS256 access token with JWT_SECRET, the way the identity
provider does in deployed environments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user-id must be positive")
			}
			if role != actor.RoleUser && role != actor.RoleAdmin {
				return fmt.Errorf("--role must be %q or %q", actor.RoleUser, actor.RoleAdmin)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			token, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL()).GenerateToken(userID, role, superuser)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "user id to put in the token")
	cmd.Flags().StringVar(&role, "role", actor.RoleUser, "role claim (user or admin)")
	cmd.Flags().BoolVar(&superuser, "superuser", false, "set the is_superuser claim")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
