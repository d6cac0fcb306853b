package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxviazov/lead-service/internal/service"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads newest first",
		Long: `List one page of leads, or every page with --all.

Examples:
  leadctl list --industry Technology --industry Finance --page-size 10
  leadctl list --min-headcount 100 --max-headcount 1000 --all
  leadctl list --cursor <next cursor from a previous page>`,
		RunE: runList,
	}
	cmd.Flags().StringSlice("industry", nil, "Industry to include (repeatable)")
	cmd.Flags().Int("min-headcount", 0, "Minimum headcount, inclusive")
	cmd.Flags().Int("max-headcount", 0, "Maximum headcount, inclusive")
	cmd.Flags().Int("page-size", 0, "Page size (defaults to pagination.default_page_size)")
	cmd.Flags().String("cursor", "", "Resume after this cursor")
	cmd.Flags().Bool("all", false, "Follow next cursors until the last page")
	return cmd
}

func listParams(cmd *cobra.Command) (service.ListParams, error) {
	var p service.ListParams
	p.Filter.Industries, _ = cmd.Flags().GetStringSlice("industry")
	p.Cursor, _ = cmd.Flags().GetString("cursor")
	p.PageSize, _ = cmd.Flags().GetInt("page-size")
	if cmd.Flags().Changed("page-size") && p.PageSize < 1 {
		return p, fmt.Errorf("--page-size must be >= 1")
	}
	for _, name := range []string{"min-headcount", "max-headcount"} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, _ := cmd.Flags().GetInt(name)
		if v < 1 {
			return p, fmt.Errorf("--%s must be >= 1", name)
		}
		if name == "min-headcount" {
			p.Filter.MinHeadcount = &v
		} else {
			p.Filter.MaxHeadcount = &v
		}
	}
	return p, nil
}

func runList(cmd *cobra.Command, _ []string) error {
	params, err := listParams(cmd)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")

	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	seen := 0
	for {
		page, err := e.svc.ListLeads(cmd.Context(), params)
		if err != nil {
			return err
		}
		for _, l := range page.Items {
			printLeadRow(out, l)
		}
		seen += len(page.Items)
		if !all {
			printPageFooter(out, page)
			return nil
		}
		if !page.HasNext {
			fmt.Fprintf(out, "%s %d of %d\n", labelColor.Sprint("listed"), seen, page.Total)
			return nil
		}
		params.Cursor = *page.NextCursor
	}
}
