package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agrilabs/fivetran-sync-agent/internal/config"
	"github.com/agrilabs/fivetran-sync-agent/internal/models"
	"github.com/agrilabs/fivetran-sync-agent/internal/services"
	"github.com/agrilabs/fivetran-sync-agent/internal/store"
	"github.com/agrilabs/fivetran-sync-agent/internal/store/migrations"
	"github.com/agrilabs/fivetran-sync-agent/pkg/fivetran"
	"github.com/agrilabs/fivetran-sync-agent/pkg/scheduler"
)

func NewSyncCommand(cfg *config.Configuration) *cobra.Command {
	var connectorName string

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync lifecycle to completion and exit",
		Long: `Resumes the connector if it is paused, waits for the running sync to reach a
terminal state, and repauses the connector. Exits non-zero when the sync could
not be observed to completion.`,
		Example: `  # Resume hubspot, wait for the sync to finish, repause it
  syncagent sync --connector hubspot

  # With credentials from the environment instead of the local store
  FIVETRAN_BI_SERVICE_API_KEY=... FIVETRAN_BI_SERVICE_API_SECRET=... syncagent sync --connector hubspot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfiguration(cfg); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
			defer cancel()

			dbPath := ":memory:"
			if cfg.Agent.DataFolder != "" {
				dbPath = filepath.Join(cfg.Agent.DataFolder, "syncagent.duckdb")
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

			sched := scheduler.NewScheduler(1)
			defer sched.Close()

			registry, err := services.NewConnectorRegistry(cfg.Agent.Connectors)
			if err != nil {
				return err
			}

			// Environment wins over the local store, so CI jobs do not need a
			// seeded database.
			secrets := services.ChainSecretProvider{
				services.EnvSecretProvider{},
				services.NewStoreSecretProvider(s),
			}
			newClient := func(creds models.Credentials) services.ConnectorAPI {
				return fivetran.NewClient(cfg.Fivetran.APIURL, creds,
					fivetran.WithRateLimit(cfg.Fivetran.RequestsPerSecond, cfg.Fivetran.Burst))
			}
			syncSrv := services.NewSyncOrchestrator(cfg.Agent, cfg.Fivetran.SecretScope, sched, registry, secrets, newClient)

			if err := syncSrv.Run(ctx, connectorName); err != nil {
				return err
			}

			zap.S().Infow("connector repaused, downstream work may start", "connector", connectorName)
			return nil
		},
	}

	syncCmd.Flags().StringVar(&connectorName, "connector", "", "Logical name of the connector to sync")
	_ = syncCmd.MarkFlagRequired("connector")
	registerFlags(syncCmd, cfg)

	return syncCmd
}
