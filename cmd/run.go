package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/ecordell/optgen/helpers"
	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	v1 "github.com/agrilabs/fivetran-sync-agent/api/v1"
	"github.com/agrilabs/fivetran-sync-agent/internal/config"
	"github.com/agrilabs/fivetran-sync-agent/internal/handlers"
	"github.com/agrilabs/fivetran-sync-agent/internal/models"
	"github.com/agrilabs/fivetran-sync-agent/internal/server"
	"github.com/agrilabs/fivetran-sync-agent/internal/services"
	"github.com/agrilabs/fivetran-sync-agent/internal/store"
	"github.com/agrilabs/fivetran-sync-agent/internal/store/migrations"
	"github.com/agrilabs/fivetran-sync-agent/pkg/fivetran"
	"github.com/agrilabs/fivetran-sync-agent/pkg/scheduler"
)

func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sync agent with its HTTP API",
		Example: `  # Run the agent with an on-disk secret store
  syncagent run --data-folder /var/lib/syncagent

  # Run with a custom connector table and faster polling
  syncagent run --connector-table hubspot=embarkation_cropped --poll-interval 10s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfiguration(cfg); err != nil {
				return err
			}

			zap.S().Infow("using configuration",
				"agent", helpers.Flatten(cfg.Agent.DebugMap()),
				"server", helpers.Flatten(cfg.Server.DebugMap()),
				"fivetran", helpers.Flatten(cfg.Fivetran.DebugMap()),
			)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
			wg := sync.WaitGroup{}
			wg.Add(1)

			// init store
			dbPath := filepath.Join(cfg.Agent.DataFolder, "syncagent.duckdb")
			if cfg.Agent.DataFolder == "" {
				dbPath = ":memory:"
				zap.S().Warn("data-folder not set, using in-memory secret store (credentials will not persist)")
			}
			db, err := store.NewDB(dbPath)
			if err != nil {
				zap.S().Errorw("failed to initialize database", "error", err)
				return err
			}
			s := store.NewStore(db)
			defer s.Close()

			if err := migrations.Run(ctx, db); err != nil {
				zap.S().Errorw("failed to run migrations", "error", err)
				return err
			}
			zap.S().Info("database initialized successfully")

			// init scheduler
			sched := scheduler.NewScheduler(cfg.Agent.NumWorkers)
			defer sched.Close()

			// init registry and services
			registry, err := services.NewConnectorRegistry(cfg.Agent.Connectors)
			if err != nil {
				zap.S().Errorw("invalid connector table", "error", err)
				return err
			}

			secrets := services.NewStoreSecretProvider(s)
			newClient := func(creds models.Credentials) services.ConnectorAPI {
				return fivetran.NewClient(cfg.Fivetran.APIURL, creds,
					fivetran.WithRateLimit(cfg.Fivetran.RequestsPerSecond, cfg.Fivetran.Burst))
			}
			syncSrv := services.NewSyncOrchestrator(cfg.Agent, cfg.Fivetran.SecretScope, sched, registry, secrets, newClient)

			// init handlers
			h := handlers.New(syncSrv, s, cfg.Fivetran.SecretScope)

			srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
				v1.RegisterHandlers(router, h)
			})
			if err != nil {
				zap.S().Errorw("failed to create http server", "error", err)
				return err
			}

			go func() {
				defer func() {
					wg.Done()
					cancel()
				}()
				zap.S().Infof("Starting HTTP server on port %d", cfg.Server.HTTPPort)

				if err := srv.Start(ctx); err != nil {
					if !errors.Is(err, http.ErrServerClosed) {
						zap.S().Errorw("failed to start http server", "error", err)
					}
				}
			}()

			go func() {
				<-ctx.Done()
				stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				srv.Stop(stopCtx)
			}()

			<-ctx.Done()
			wg.Wait()

			zap.S().Info("server shutdown")

			return nil
		},
	}

	registerFlags(runCmd, cfg)

	return runCmd
}

func registerFlags(cmd *cobra.Command, config *config.Configuration) {
	nfs := cobrautil.NewNamedFlagSets(cmd)

	serverFlagSet := nfs.FlagSet(color.New(color.FgBlue, color.Bold).Sprint("Server"))
	registerServerFlags(serverFlagSet, config)

	agentFlagSet := nfs.FlagSet(color.New(color.FgBlue, color.Bold).Sprint("Agent"))
	registerAgentFlags(agentFlagSet, config)

	fivetranFlagSet := nfs.FlagSet(color.New(color.FgBlue, color.Bold).Sprint("Fivetran"))
	registerFivetranFlags(fivetranFlagSet, config)

	nfs.AddFlagSets(cmd)
}

func validateConfiguration(cfg *config.Configuration) error {
	switch config.ServerModeType(cfg.Server.ServerMode) {
	case config.ServerModeProd, config.ServerModeDev:
	default:
		return fmt.Errorf("invalid server mode %q: must be %q or %q", cfg.Server.ServerMode, config.ServerModeProd, config.ServerModeDev)
	}

	if cfg.Server.HTTPPort < 1 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid server-http-port %d: must be between 1 and 65535", cfg.Server.HTTPPort)
	}

	if cfg.Agent.NumWorkers < 1 {
		return fmt.Errorf("invalid num-workers %d: must be at least 1", cfg.Agent.NumWorkers)
	}

	if cfg.Agent.SettleDelay <= 0 {
		return fmt.Errorf("invalid settle-delay %s: must be positive", cfg.Agent.SettleDelay)
	}
	if cfg.Agent.PollInterval <= 0 {
		return fmt.Errorf("invalid poll-interval %s: must be positive", cfg.Agent.PollInterval)
	}
	if cfg.Agent.MaxSyncWait <= cfg.Agent.SettleDelay {
		return fmt.Errorf("invalid max-sync-wait %s: must be longer than the settle delay", cfg.Agent.MaxSyncWait)
	}

	if len(cfg.Agent.Connectors) == 0 {
		return errors.New("connector table cannot be empty")
	}

	if cfg.Fivetran.APIURL == "" {
		return errors.New("fivetran-api-url cannot be empty")
	}
	if cfg.Fivetran.RequestsPerSecond <= 0 || cfg.Fivetran.Burst < 1 {
		return errors.New("fivetran rate limit must allow at least one request")
	}

	return nil
}

func registerServerFlags(flagSet *pflag.FlagSet, config *config.Configuration) {
	flagSet.IntVar(&config.Server.HTTPPort, "server-http-port", config.Server.HTTPPort, "Port on which the HTTP server is listening")
	flagSet.StringVar(&config.Server.ServerMode, "server-mode", config.Server.ServerMode, "Server mode: either prod or dev")
}

func registerAgentFlags(flagSet *pflag.FlagSet, config *config.Configuration) {
	flagSet.StringVar(&config.Agent.DataFolder, "data-folder", config.Agent.DataFolder, "Path to the persistent data folder")
	flagSet.IntVar(&config.Agent.NumWorkers, "num-workers", config.Agent.NumWorkers, "Number of scheduler workers")
	flagSet.DurationVar(&config.Agent.SettleDelay, "settle-delay", config.Agent.SettleDelay, "Grace period between unpausing a connector and the first status poll")
	flagSet.DurationVar(&config.Agent.PollInterval, "poll-interval", config.Agent.PollInterval, "Wait between sync status polls")
	flagSet.DurationVar(&config.Agent.MaxSyncWait, "max-sync-wait", config.Agent.MaxSyncWait, "Upper bound on how long a sync may stay in progress before the run times out")
	flagSet.StringToStringVar(&config.Agent.Connectors, "connector-table", config.Agent.Connectors, "Mapping of logical connector names to Fivetran connector ids")
}

func registerFivetranFlags(flagSet *pflag.FlagSet, config *config.Configuration) {
	flagSet.StringVar(&config.Fivetran.APIURL, "fivetran-api-url", config.Fivetran.APIURL, "Base URL of the Fivetran API")
	flagSet.StringVar(&config.Fivetran.SecretScope, "fivetran-secret-scope", config.Fivetran.SecretScope, "Secret scope the API key and secret are stored under")
	flagSet.Float64Var(&config.Fivetran.RequestsPerSecond, "fivetran-requests-per-second", config.Fivetran.RequestsPerSecond, "Client-side request rate limit")
	flagSet.IntVar(&config.Fivetran.Burst, "fivetran-burst", config.Fivetran.Burst, "Client-side request burst size")
}
