package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrilabs/fivetran-sync-agent/internal/config"
	"github.com/agrilabs/fivetran-sync-agent/internal/models"
	"github.com/agrilabs/fivetran-sync-agent/pkg/scheduler"
)

var (
	ErrRunInProgress = errors.New("sync run already in progress")
	ErrNoActiveRun   = errors.New("no sync run in progress")
	ErrSyncTimeout   = errors.New("timed out waiting for sync to finish")
)

// ConnectorAPI is the part of the Fivetran client the orchestrator depends
// on.
type ConnectorAPI interface {
	GetSyncStatus(ctx context.Context, connectorID string) (models.SyncState, error)
	SetPaused(ctx context.Context, connectorID string, paused bool) error
}

// ClientFactory builds a ConnectorAPI from freshly resolved credentials.
// Credentials are loaded per run so they never outlive the client that owns
// them.
type ClientFactory func(creds models.Credentials) ConnectorAPI

type OrchestratorOption func(*SyncOrchestrator)

// WithObserver registers a callback invoked on every phase transition and
// polling observation.
func WithObserver(fn func(models.RunEvent)) OrchestratorOption {
	return func(o *SyncOrchestrator) {
		o.observer = fn
	}
}

// SyncOrchestrator drives one connector's sync lifecycle: resume it if
// paused, wait for the sync to leave the "syncing" state, then repause it so
// downstream consumers see a quiet connector with freshly landed data.
//
// Exactly one run is in flight at a time. Each run owns its own credentials
// and client.
type SyncOrchestrator struct {
	cfg         config.Agent
	secretScope string
	registry    *ConnectorRegistry
	secrets     SecretProvider
	newClient   ClientFactory
	scheduler   *scheduler.Scheduler
	observer    func(models.RunEvent)

	mu        sync.RWMutex
	status    models.RunStatus
	runFuture *models.Future[models.Result[any]]
}

func NewSyncOrchestrator(
	cfg config.Agent,
	secretScope string,
	sched *scheduler.Scheduler,
	registry *ConnectorRegistry,
	secrets SecretProvider,
	newClient ClientFactory,
	opts ...OrchestratorOption,
) *SyncOrchestrator {
	o := &SyncOrchestrator{
		cfg:         cfg,
		secretScope: secretScope,
		registry:    registry,
		secrets:     secrets,
		newClient:   newClient,
		scheduler:   sched,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start begins an orchestration run for the given logical connector name and
// returns immediately. It fails without any network activity when the name
// is unknown, and with ErrRunInProgress when a run is already in flight.
func (o *SyncOrchestrator) Start(ctx context.Context, name string) (models.RunStatus, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.runFuture != nil && !o.runFuture.IsResolved() {
		return models.RunStatus{}, ErrRunInProgress
	}

	connectorID, err := o.registry.Resolve(name)
	if err != nil {
		return models.RunStatus{}, err
	}

	creds, err := LoadAPICredentials(ctx, o.secrets, o.secretScope)
	if err != nil {
		return models.RunStatus{}, err
	}
	client := o.newClient(creds)

	o.status = models.RunStatus{
		RunID:     uuid.NewString(),
		Connector: name,
		Phase:     models.RunPhasePending,
		StartedAt: time.Now(),
	}
	zap.S().Infow("sync run starting", "connector", name, "run_id", o.status.RunID)

	o.runFuture = o.scheduler.AddWork(func(jobCtx context.Context) (any, error) {
		runErr := o.run(jobCtx, client, name, connectorID)
		o.finish(runErr)
		return nil, runErr
	})

	return o.status, nil
}

// Run executes one orchestration run to completion. It blocks until the run
// finishes or ctx is cancelled.
func (o *SyncOrchestrator) Run(ctx context.Context, name string) error {
	if _, err := o.Start(ctx, name); err != nil {
		return err
	}

	o.mu.RLock()
	future := o.runFuture
	o.mu.RUnlock()

	result, err := future.Wait(ctx)
	if err != nil {
		future.Stop()
		return err
	}
	return result.Err
}

// Cancel aborts the in-flight run, if any.
func (o *SyncOrchestrator) Cancel() error {
	o.mu.RLock()
	future := o.runFuture
	o.mu.RUnlock()

	if future == nil || future.IsResolved() {
		return ErrNoActiveRun
	}
	future.Stop()
	return nil
}

// Status returns the observable state of the current or most recent run.
func (o *SyncOrchestrator) Status() models.RunStatus {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.status
}

func (o *SyncOrchestrator) run(ctx context.Context, client ConnectorAPI, name, connectorID string) error {
	state, err := client.GetSyncStatus(ctx, connectorID)
	if err != nil {
		return err
	}

	if state == models.SyncStatePaused {
		o.setPhase(models.RunPhaseResuming, state)
		if err := client.SetPaused(ctx, connectorID, false); err != nil {
			// Best-effort mutation: record and carry on as if it took effect.
			zap.S().Warnw("unpause not acknowledged, continuing", "connector", name, "error", err)
		}
		o.setPhase(models.RunPhaseSettling, state)
		if err := sleepCtx(ctx, o.cfg.SettleDelay); err != nil {
			return err
		}
	}

	o.setPhase(models.RunPhasePolling, state)
	deadline := time.Now().Add(o.cfg.MaxSyncWait)
	for {
		state, err = client.GetSyncStatus(ctx, connectorID)
		if err != nil {
			// The connector is left unpaused here: restoring the paused flag
			// after a failed read would itself need the API we just failed
			// to reach.
			return err
		}
		o.setPhase(models.RunPhasePolling, state)
		zap.S().Infow("sync status", "connector", name, "sync_state", state)

		if state.Terminal() {
			break
		}
		if time.Now().After(deadline) {
			return ErrSyncTimeout
		}
		if err := sleepCtx(ctx, o.cfg.PollInterval); err != nil {
			return err
		}
	}

	zap.S().Infow("sync ended", "connector", name, "sync_state", state)
	o.setPhase(models.RunPhasePausing, state)
	if err := client.SetPaused(ctx, connectorID, true); err != nil {
		zap.S().Warnw("repause not acknowledged, continuing", "connector", name, "error", err)
	}

	o.setPhase(models.RunPhaseDone, state)
	return nil
}

func (o *SyncOrchestrator) setPhase(phase models.RunPhase, state models.SyncState) {
	o.mu.Lock()
	if o.status.Phase != phase {
		zap.S().Debugw("sync run phase transition", "from", o.status.Phase, "to", phase)
	}
	o.status.Phase = phase
	o.status.SyncState = state
	event := models.RunEvent{
		RunID:     o.status.RunID,
		Connector: o.status.Connector,
		Phase:     phase,
		SyncState: state,
	}
	o.mu.Unlock()

	o.emit(event)
}

func (o *SyncOrchestrator) finish(runErr error) {
	o.mu.Lock()
	o.status.FinishedAt = time.Now()
	if runErr != nil {
		if errors.Is(runErr, ErrSyncTimeout) {
			o.status.Phase = models.RunPhaseTimedOut
		} else {
			o.status.Phase = models.RunPhaseError
		}
		o.status.Error = runErr.Error()
		zap.S().Errorw("sync run failed", "connector", o.status.Connector, "run_id", o.status.RunID, "error", runErr)
		event := models.RunEvent{
			RunID:     o.status.RunID,
			Connector: o.status.Connector,
			Phase:     o.status.Phase,
			SyncState: o.status.SyncState,
			Err:       runErr,
		}
		o.mu.Unlock()
		o.emit(event)
		return
	}

	zap.S().Infow("sync run finished", "connector", o.status.Connector, "run_id", o.status.RunID)
	o.mu.Unlock()
}

func (o *SyncOrchestrator) emit(event models.RunEvent) {
	if o.observer != nil {
		o.observer(event)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
