package cmd

import (
	"context"
	"fmt"

	"github.com/kozaktomas/securevote/internal/database/postgres"
	"github.com/spf13/cobra"
)

var ballotsCmd = &cobra.Command{
	Use:   "ballots",
	Short: "Read the ballot audit log",
}

var ballotsTallyCmd = &cobra.Command{
	Use:   "tally",
	Short: "Print vote counts per candidate",
	RunE:  runBallotsTally,
}

var ballotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the newest ballots in the audit log",
	RunE:  runBallotsList,
}

func init() {
	rootCmd.AddCommand(ballotsCmd)
	ballotsCmd.AddCommand(ballotsTallyCmd)
	ballotsCmd.AddCommand(ballotsListCmd)

	ballotsListCmd.Flags().Int("limit", 50, "Maximum number of ballots to print")
}

func runBallotsTally(cmd *cobra.Command, args []string) error {
	_, pool, err := initStorage()
	if err != nil {
		return err
	}
	defer pool.Close()

	counts, err := postgres.NewBallotRepository(pool).Tally(context.Background())
	if err != nil {
		return fmt.Errorf("tallying ballots: %w", err)
	}

	if len(counts) == 0 {
		fmt.Println("No ballots cast yet")
		return nil
	}

	total := 0
	for _, c := range counts {
		fmt.Printf("%6d  %s\n", c.Votes, c.Candidate)
		total += c.Votes
	}
	fmt.Printf("%6d  total\n", total)
	return nil
}

func runBallotsList(cmd *cobra.Command, args []string) error {
	limit := mustGetInt(cmd, "limit")

	_, pool, err := initStorage()
	if err != nil {
		return err
	}
	defer pool.Close()

	records, err := postgres.NewBallotRepository(pool).List(context.Background(), limit)
	if err != nil {
		return fmt.Errorf("listing ballots: %w", err)
	}

	for _, r := range records {
		fmt.Printf("#%d  %s  voter=%d  %s  %s\n",
			r.ID, r.Receipt, r.VoterID, r.Candidate, r.CastAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
