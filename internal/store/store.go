package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db      *sql.DB
	secrets *SecretStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		secrets: NewSecretStore(db),
	}
}

func (s *Store) Secrets() *SecretStore {
	return s.secrets
}

func (s *Store) Close() error {
	return s.db.Close()
}
