package cli

import (
	"github.com/spf13/cobra"
)

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <lead-id>",
		Short: "Show one lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()

			l, err := e.svc.GetLead(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printLead(cmd.OutOrStdout(), l)
			return nil
		},
	}
}
