package models

import "time"

// SyncState is the sync_state reported by the Fivetran API for a connection.
// The API may return values beyond the ones enumerated here; only
// SyncStateSyncing means a sync is in progress, every other value is terminal
// for monitoring purposes.
type SyncState string

const (
	SyncStateSyncing     SyncState = "syncing"
	SyncStatePaused      SyncState = "paused"
	SyncStateRescheduled SyncState = "rescheduled"
	SyncStateScheduled   SyncState = "scheduled"
)

// Terminal reports whether the state ends a monitoring loop.
func (s SyncState) Terminal() bool {
	return s != SyncStateSyncing
}

// RunPhase represents the current phase of an orchestration run.
type RunPhase string

const (
	// RunPhasePending - run accepted, no request issued yet
	RunPhasePending RunPhase = "pending"
	// RunPhaseResuming - connector found paused, unpause issued
	RunPhaseResuming RunPhase = "resuming"
	// RunPhaseSettling - waiting for the remote side to start syncing
	RunPhaseSettling RunPhase = "settling"
	// RunPhasePolling - watching sync_state until it leaves "syncing"
	RunPhasePolling RunPhase = "polling"
	// RunPhasePausing - terminal state observed, repausing the connector
	RunPhasePausing RunPhase = "pausing"
	// RunPhaseDone - connector repaused, downstream work may start
	RunPhaseDone RunPhase = "done"
	// RunPhaseTimedOut - sync did not finish within the configured wait
	RunPhaseTimedOut RunPhase = "timed_out"
	// RunPhaseError - a status read failed, run aborted
	RunPhaseError RunPhase = "error"
)

// Finished reports whether the phase is terminal for the run.
func (p RunPhase) Finished() bool {
	switch p {
	case RunPhaseDone, RunPhaseTimedOut, RunPhaseError:
		return true
	}
	return false
}

// RunStatus holds the observable state of an orchestration run.
type RunStatus struct {
	RunID      string
	Connector  string
	Phase      RunPhase
	SyncState  SyncState
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// RunEvent is emitted on every phase transition and polling observation so
// callers can render progress without coupling to the logger.
type RunEvent struct {
	RunID     string
	Connector string
	Phase     RunPhase
	SyncState SyncState
	Err       error
}
