package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (r *runner) tokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Maintain refresh tokens",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "cleanup",
		Short: "Remove expired and revoked refresh tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withServices(cmd, func(ctx context.Context, svc *Services) error {
				removed, err := svc.Auth.CleanupTokens(ctx)
				if err != nil {
					return fmt.Errorf("error cleaning up tokens: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d refresh tokens\n", removed)
				return nil
			})
		},
	})
	return cmd
}
