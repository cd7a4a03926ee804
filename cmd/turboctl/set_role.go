// Set-role command for the turboctl CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
)

var (
	setRoleEmail string
	setRoleRole  string
)

var setRoleCmd = &cobra.Command{
	Use:   "set-role",
	Short: "Change a team member's role",
	Long: `Change a team member's role directly in Supabase, bypassing the API's
admin check. This is the bootstrap path for the first admin:

  turboctl set-role --email cadu@turbo.com --role admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		role := domain.Role(setRoleRole)
		if domain.ParseRole(setRoleRole) != role {
			return fmt.Errorf("invalid role %q (valid: admin, editor, sales, viewer)", setRoleRole)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		profile, err := client.GetProfileByEmail(ctx, setRoleEmail)
		if err != nil {
			fmt.Fprintln(os.Stderr, "lookup profile:", err)
			os.Exit(exitSysError)
		}

		if _, err := client.UpdateRole(ctx, profile.ID, role); err != nil {
			fmt.Fprintln(os.Stderr, "update role:", err)
			os.Exit(exitSysError)
		}

		// Read back instead of trusting the PATCH response; confirms the
		// write is visible and not silently swallowed by an RLS policy.
		updated, err := client.GetProfile(ctx, profile.ID)
		if err != nil {
			fmt.Fprintln(os.Stderr, "verify role:", err)
			os.Exit(exitSysError)
		}
		if updated.Role != role {
			fmt.Fprintf(os.Stderr, "role did not stick: wanted %s, profile still has %s\n", role, updated.Role)
			os.Exit(exitSysError)
		}

		fmt.Printf("%s is now %s\n", updated.Email, updated.Role)
		return nil
	},
}

func init() {
	setRoleCmd.Flags().StringVar(&setRoleEmail, "email", "", "email of the team member")
	setRoleCmd.Flags().StringVar(&setRoleRole, "role", "", "new role (admin, editor, sales, viewer)")
	_ = setRoleCmd.MarkFlagRequired("email")
	_ = setRoleCmd.MarkFlagRequired("role")
}
