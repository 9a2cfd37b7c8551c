package v1

import "time"

// SyncRunRequest triggers an orchestration run for a logical connector name.
type SyncRunRequest struct {
	Connector string `json:"connector" binding:"required"`
}

// SyncRunStatus describes the current or most recent orchestration run.
type SyncRunStatus struct {
	RunID      string     `json:"run_id"`
	Connector  string     `json:"connector"`
	Phase      string     `json:"phase"`
	SyncState  string     `json:"sync_state,omitempty"`
	Error      string     `json:"error,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// CredentialsRequest stores the Fivetran API key/secret pair.
type CredentialsRequest struct {
	APIKey    string `json:"api_key" binding:"required"`
	APISecret string `json:"api_secret" binding:"required"`
}
