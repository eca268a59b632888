package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "securevote",
	Short: "Biometric voter authentication and vote-integrity service",
	Long: `SecureVote authenticates voters by matching a live face image against
all enrolled templates, issues short-lived session credentials for resolved
identities and guarantees that each identity casts at most one ballot.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
