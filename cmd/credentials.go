package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agrilabs/fivetran-sync-agent/internal/config"
	"github.com/agrilabs/fivetran-sync-agent/internal/services"
	"github.com/agrilabs/fivetran-sync-agent/internal/store"
	"github.com/agrilabs/fivetran-sync-agent/internal/store/migrations"
)

func NewCredentialsCommand(cfg *config.Configuration) *cobra.Command {
	credCmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the stored Fivetran API credentials",
	}

	var apiKey, apiSecret string

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Store the Fivetran API key and secret",
		Example: `  syncagent credentials set --data-folder /var/lib/syncagent --api-key KEY --api-secret SECRET`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dbPath := ":memory:"
			if cfg.Agent.DataFolder != "" {
				dbPath = filepath.Join(cfg.Agent.DataFolder, "syncagent.duckdb")
			} else {
				zap.S().Warn("data-folder not set, credentials will not persist")
			}
			db, err := store.NewDB(dbPath)
			if err != nil {
				return err
			}
			s := store.NewStore(db)
			defer s.Close()

			if err := migrations.Run(ctx, db); err != nil {
				return err
			}

			scope := cfg.Fivetran.SecretScope
			if err := s.Secrets().Save(ctx, scope, services.SecretKeyAPIKey, apiKey); err != nil {
				return err
			}
			if err := s.Secrets().Save(ctx, scope, services.SecretKeyAPISecret, apiSecret); err != nil {
				return err
			}

			zap.S().Infow("API credentials stored", "scope", scope)
			return nil
		},
	}

	setCmd.Flags().StringVar(&apiKey, "api-key", "", "Fivetran API key")
	setCmd.Flags().StringVar(&apiSecret, "api-secret", "", "Fivetran API secret")
	setCmd.Flags().StringVar(&cfg.Agent.DataFolder, "data-folder", cfg.Agent.DataFolder, "Path to the persistent data folder")
	setCmd.Flags().StringVar(&cfg.Fivetran.SecretScope, "fivetran-secret-scope", cfg.Fivetran.SecretScope, "Secret scope to store the credentials under")
	_ = setCmd.MarkFlagRequired("api-key")
	_ = setCmd.MarkFlagRequired("api-secret")

	credCmd.AddCommand(setCmd)

	return credCmd
}
