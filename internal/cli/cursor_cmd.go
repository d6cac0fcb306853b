package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxviazov/lead-service/internal/pagination"
)

func cursorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Encode or decode pagination cursors",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "decode <token>",
		Short: "Print the ordering key inside a cursor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, ok := pagination.DecodeCursor(args[0])
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), warnColor.Sprint("malformed cursor: the API would restart from the first page"))
				return errors.New("malformed cursor")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("created_at:"), k.CreatedAt.Format(time.RFC3339Nano))
			fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("id:        "), idColor.Sprint(k.ID))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "encode <created_at> <id>",
		Short: "Build a cursor from an RFC 3339 timestamp and a lead id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := time.Parse(time.RFC3339Nano, args[0])
			if err != nil {
				return fmt.Errorf("created_at: %w", err)
			}
			if args[1] == "" {
				return errors.New("id must not be empty")
			}
			fmt.Fprintln(cmd.OutOrStdout(), pagination.EncodeCursor(pagination.Key{CreatedAt: ts.UTC(), ID: args[1]}))
			return nil
		},
	})
	return cmd
}
