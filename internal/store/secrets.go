package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/agrilabs/fivetran-sync-agent/internal/models"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("not found")

// SecretStore holds credential material keyed by scope and key.
type SecretStore struct {
	db *sql.DB
}

func NewSecretStore(db *sql.DB) *SecretStore {
	return &SecretStore{db: db}
}

// Get retrieves a single secret.
func (s *SecretStore) Get(ctx context.Context, scope, key string) (*models.Secret, error) {
	row := s.db.QueryRowContext(ctx, queryGetSecret, scope, key)

	var secret models.Secret
	err := row.Scan(&secret.Scope, &secret.Key, &secret.Value, &secret.CreatedAt, &secret.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &secret, nil
}

// Save stores or updates a secret.
func (s *SecretStore) Save(ctx context.Context, scope, key, value string) error {
	_, err := s.db.ExecContext(ctx, queryUpsertSecret, scope, key, value)
	return err
}

// Delete removes a secret.
func (s *SecretStore) Delete(ctx context.Context, scope, key string) error {
	_, err := s.db.ExecContext(ctx, queryDeleteSecret, scope, key)
	return err
}
