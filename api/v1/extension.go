package v1

import (
	"github.com/agrilabs/fivetran-sync-agent/internal/models"
)

func (s *SyncRunStatus) FromModel(m models.RunStatus) {
	s.RunID = m.RunID
	s.Connector = m.Connector
	s.Phase = string(m.Phase)
	s.SyncState = string(m.SyncState)
	s.Error = m.Error
	if !m.StartedAt.IsZero() {
		t := m.StartedAt
		s.StartedAt = &t
	}
	if !m.FinishedAt.IsZero() {
		t := m.FinishedAt
		s.FinishedAt = &t
	}
}
