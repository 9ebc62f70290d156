package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"quicknote/internal/gateway/app/dto"
)

func (r *runner) usersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect users",
	}
	cmd.AddCommand(r.usersListCommand())
	return cmd
}

func (r *runner) usersListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withServices(cmd, func(ctx context.Context, svc *Services) error {
				users, err := svc.Users.ListUsers(ctx)
				if err != nil {
					return fmt.Errorf("error listing users: %w", err)
				}

				if asJSON {
					profiles := make([]*dto.UserProfileResponse, 0, len(users))
					for _, u := range users {
						profiles = append(profiles, dto.UserProfileFromEntity(u))
					}
					return writeJSON(cmd.OutOrStdout(), profiles)
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tPROVIDER\tSTAFF\tJOINED")
				for _, u := range users {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n", u.ID, u.Email, u.FullName(),
						u.AuthProvider, u.IsStaff, u.CreatedAt.Local().Format(timeLayout))
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
