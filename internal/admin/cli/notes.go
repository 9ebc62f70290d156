package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"quicknote/internal/notes/domain/entities"
)

const timeLayout = "2006-01-02 15:04:05"

func (r *runner) notesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Inspect and delete notes",
	}
	cmd.AddCommand(r.notesListCommand(), r.notesShowCommand(), r.notesDeleteCommand())
	return cmd
}

func (r *runner) notesListCommand() *cobra.Command {
	var (
		filter entities.NoteFilter
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withServices(cmd, func(ctx context.Context, svc *Services) error {
				notes, err := svc.Notes.Search(ctx, filter)
				if err != nil {
					return fmt.Errorf("error listing notes: %w", err)
				}
				if notes == nil {
					notes = []*entities.Note{}
				}

				if asJSON {
					return writeJSON(cmd.OutOrStdout(), notes)
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tBODY\tCREATED\tUPDATED")
				for _, n := range notes {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", n.ID, n.Summary(),
						n.Created.Local().Format(timeLayout), n.Updated.Local().Format(timeLayout))
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&filter.Search, "search", "", "Only notes whose body contains TEXT (case-insensitive)")
	cmd.Flags().IntVar(&filter.CreatedYear, "created-year", 0, "Only notes created in YEAR")
	cmd.Flags().IntVar(&filter.UpdatedYear, "updated-year", 0, "Only notes updated in YEAR")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "Maximum number of notes (0 means no limit)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func (r *runner) notesShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a single note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}

			return r.withServices(cmd, func(ctx context.Context, svc *Services) error {
				note, err := svc.Notes.Retrieve(ctx, id)
				if err != nil {
					return fmt.Errorf("error reading note %d: %w", id, err)
				}

				if asJSON {
					return writeJSON(cmd.OutOrStdout(), note)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:      %d\n", note.ID)
				fmt.Fprintf(out, "Created: %s\n", note.Created.Local().Format(time.RFC3339))
				fmt.Fprintf(out, "Updated: %s\n\n", note.Updated.Local().Format(time.RFC3339))
				fmt.Fprintln(out, note.Body)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func (r *runner) notesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a note and invalidate its cache entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}

			return r.withServices(cmd, func(ctx context.Context, svc *Services) error {
				if err := svc.Notes.Destroy(ctx, id); err != nil {
					return fmt.Errorf("error deleting note %d: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Note deleted: %d\n", id)
				return nil
			})
		},
	}
}

func parseNoteID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", raw)
	}
	return id, nil
}
