package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kozaktomas/securevote/internal/config"
	"github.com/kozaktomas/securevote/internal/database/postgres"
	"github.com/kozaktomas/securevote/internal/web"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the voting web server",
	Long: `Start the SecureVote web server.
The server exposes voter registration, face login, ballot casting and
voter status over HTTP. It requires a PostgreSQL database with the
pgvector extension and a running template extraction service.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return port, host
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if cfg.Auth.Secret == "" {
		return errors.New("AUTH_SECRET environment variable is required")
	}

	log.Info("connecting to PostgreSQL database")
	if err := postgres.Initialize(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}

	pool := postgres.GetGlobalPool()
	voterRepo := postgres.NewVoterRepository(pool)
	ballotRepo := postgres.NewBallotRepository(pool)

	port, host := resolveServeHostPort(cmd)
	server := web.NewServer(cfg, port, host, voterRepo, ballotRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("error during shutdown")
		}
		pool.Close()
	}()

	log.WithFields(log.Fields{
		"host":      host,
		"port":      port,
		"threshold": cfg.Matcher.Threshold,
		"token_ttl": cfg.Auth.TokenTTL,
	}).Info("starting SecureVote")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
