package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/agrilabs/fivetran-sync-agent/internal/models"
	"github.com/agrilabs/fivetran-sync-agent/internal/store"
)

// ErrSecretNotFound is returned when a provider has no value for the
// requested scope and key.
var ErrSecretNotFound = errors.New("secret not found")

// Keys under which the Fivetran API credentials are stored.
const (
	SecretKeyAPIKey    = "api_key"
	SecretKeyAPISecret = "api_secret"
)

// SecretProvider resolves credential material by scope and key.
type SecretProvider interface {
	Get(ctx context.Context, scope, key string) (string, error)
}

// StoreSecretProvider reads secrets from the local store.
type StoreSecretProvider struct {
	store *store.Store
}

func NewStoreSecretProvider(s *store.Store) *StoreSecretProvider {
	return &StoreSecretProvider{store: s}
}

func (p *StoreSecretProvider) Get(ctx context.Context, scope, key string) (string, error) {
	secret, err := p.store.Secrets().Get(ctx, scope, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("%w: %s/%s", ErrSecretNotFound, scope, key)
	}
	if err != nil {
		return "", err
	}
	return secret.Value, nil
}

// EnvSecretProvider resolves secrets from environment variables named
// <SCOPE>_<KEY>, uppercased. Useful for one-shot runs and CI.
type EnvSecretProvider struct{}

func (EnvSecretProvider) Get(_ context.Context, scope, key string) (string, error) {
	name := strings.ToUpper(scope + "_" + key)
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("%w: environment variable %s not set", ErrSecretNotFound, name)
	}
	return value, nil
}

// ChainSecretProvider tries each provider in order and returns the first
// value found.
type ChainSecretProvider []SecretProvider

func (c ChainSecretProvider) Get(ctx context.Context, scope, key string) (string, error) {
	for _, p := range c {
		value, err := p.Get(ctx, scope, key)
		if errors.Is(err, ErrSecretNotFound) {
			continue
		}
		if err != nil {
			return "", err
		}
		return value, nil
	}
	return "", fmt.Errorf("%w: %s/%s", ErrSecretNotFound, scope, key)
}

// LoadAPICredentials resolves the Fivetran key/secret pair from the provider.
func LoadAPICredentials(ctx context.Context, provider SecretProvider, scope string) (models.Credentials, error) {
	apiKey, err := provider.Get(ctx, scope, SecretKeyAPIKey)
	if err != nil {
		return models.Credentials{}, err
	}
	apiSecret, err := provider.Get(ctx, scope, SecretKeyAPISecret)
	if err != nil {
		return models.Credentials{}, err
	}
	return models.Credentials{APIKey: apiKey, APISecret: apiSecret}, nil
}
