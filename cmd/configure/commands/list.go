package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/novaos-app/novaos-api/internal/config"
	"github.com/novaos-app/novaos-api/internal/database"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all runtime configuration",
		Long:  "List CORS and rate limit configuration stored in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := database.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
				}
			}()

			ctx := context.Background()

			corsRepo := database.NewCorsConfigRepository(db)
			corsCfg, err := corsRepo.Get(ctx)
			if err != nil {
				return fmt.Errorf("failed to get CORS config: %w", err)
			}

			fmt.Println("CORS configuration:")
			if corsCfg == nil {
				fmt.Printf("  (not set, falling back to FRONTEND_URL: %s)\n", cfg.FrontendURL)
			} else {
				fmt.Printf("  Allowed origins: %s\n", corsCfg.AllowedOrigins)
				fmt.Printf("  Allow credentials: %v\n", corsCfg.AllowCredentials)
				fmt.Printf("  Max-Age: %d\n", corsCfg.MaxAge)
			}

			ratelimitRepo := database.NewRatelimitConfigRepository(db)
			rateCfg, err := ratelimitRepo.Get(ctx)
			if err != nil {
				return fmt.Errorf("failed to get rate limit config: %w", err)
			}

			fmt.Println("\nRate limit configuration:")
			if rateCfg == nil {
				fmt.Println("  (not set, using default rate)")
			} else {
				fmt.Printf("  Rate: %s\n", rateCfg.Rate)
			}

			return nil
		},
	}

	return cmd
}
