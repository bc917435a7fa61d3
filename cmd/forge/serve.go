package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/forge-ai/forge/internal/config"
	"github.com/forge-ai/forge/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Forge backend HTTP server",
	Long: `Starts the REST backend: auth, conversation persistence, and health.

DATABASE_URL is optional; without it the server starts in degraded mode and
every data route answers 503 so clients fall back to local-only operation.`,
	RunE: runServe,
}

var (
	servePort       int
	serveDatabase   string
	serveCORSOrigin string
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (defaults to PORT env var, then 3001)")
	serveCmd.Flags().StringVar(&serveDatabase, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveCORSOrigin, "cors-origin", "", "Allowed CORS origin (defaults to CORS_ORIGIN env var)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	port := servePort
	if port == 0 {
		if env := os.Getenv("PORT"); env != "" {
			parsed, err := strconv.Atoi(env)
			if err == nil {
				port = parsed
			}
		}
	}
	if port == 0 {
		port = config.DefaultPort
	}

	databaseURL := serveDatabase
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}

	corsOrigin := serveCORSOrigin
	if corsOrigin == "" {
		corsOrigin = os.Getenv("CORS_ORIGIN")
	}

	srv, err := server.New(server.Config{
		Port:        port,
		DatabaseURL: databaseURL,
		CORSOrigin:  corsOrigin,
	})
	if err != nil {
		return err
	}
	return srv.Start()
}
