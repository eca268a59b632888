package cmd

import (
	"context"
	"fmt"

	"github.com/kozaktomas/securevote/internal/config"
	"github.com/kozaktomas/securevote/internal/database/postgres"
	"github.com/spf13/cobra"
)

var votersCmd = &cobra.Command{
	Use:   "voters",
	Short: "Manage enrolled voters",
}

var votersCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of enrolled voters",
	RunE:  runVotersCount,
}

func init() {
	rootCmd.AddCommand(votersCmd)
	votersCmd.AddCommand(votersCountCmd)
}

// initStorage connects to PostgreSQL for CLI commands and returns the config.
func initStorage() (*config.Config, *postgres.Pool, error) {
	cfg := config.Load()
	if cfg.Database.URL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if err := postgres.Initialize(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	return cfg, postgres.GetGlobalPool(), nil
}

func runVotersCount(cmd *cobra.Command, args []string) error {
	_, pool, err := initStorage()
	if err != nil {
		return err
	}
	defer pool.Close()

	count, err := postgres.NewVoterRepository(pool).Count(context.Background())
	if err != nil {
		return fmt.Errorf("counting voters: %w", err)
	}

	fmt.Printf("%d voters enrolled\n", count)
	return nil
}
