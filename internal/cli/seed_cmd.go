package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxviazov/lead-service/internal/seed"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert generated leads",
		Long: `Insert fake leads into the configured store. Unlike startup seeding,
this always writes, even when the store already has data.`,
		RunE: runSeed,
	}
	cmd.Flags().Int("count", 100, "Number of leads to generate")
	cmd.Flags().Int64("seed", 0, "Random seed (defaults to seed.seed from config)")
	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	count, _ := cmd.Flags().GetInt("count")
	if count < 1 {
		return fmt.Errorf("--count must be >= 1")
	}
	s := e.cfg.Seed.Seed
	if cmd.Flags().Changed("seed") {
		s, _ = cmd.Flags().GetInt64("seed")
	}

	n, err := seed.Load(cmd.Context(), e.store, seed.NewGenerator(s, time.Now()), count)
	if err != nil {
		return err
	}
	total, err := e.store.Count(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s seeded %d leads (store now holds %d)\n", okColor.Sprint("✓"), n, total)
	return nil
}
