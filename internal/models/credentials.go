package models

import "time"

// Credentials is the Fivetran API key/secret pair. Values are set once at
// client construction and never logged.
type Credentials struct {
	APIKey    string
	APISecret string
}

// Secret is one entry of the local secret store, addressed by scope and key.
type Secret struct {
	Scope     string
	Key       string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
