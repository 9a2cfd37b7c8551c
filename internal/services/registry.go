package services

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownConnector is returned when a logical connector name has no entry
// in the registry.
var ErrUnknownConnector = errors.New("unknown connector")

// ConnectorRegistry resolves the logical connector names used by callers to
// Fivetran connector ids. The table is injected at startup and validated
// once, so resolution failures surface before any network activity.
type ConnectorRegistry struct {
	byName map[string]string
}

func NewConnectorRegistry(table map[string]string) (*ConnectorRegistry, error) {
	if len(table) == 0 {
		return nil, errors.New("connector table is empty")
	}

	byName := make(map[string]string, len(table))
	for name, id := range table {
		if name == "" {
			return nil, errors.New("connector table contains an empty name")
		}
		if id == "" {
			return nil, fmt.Errorf("connector %q has an empty id", name)
		}
		byName[name] = id
	}

	return &ConnectorRegistry{byName: byName}, nil
}

// Resolve returns the Fivetran connector id for a logical name.
func (r *ConnectorRegistry) Resolve(name string) (string, error) {
	id, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownConnector, name)
	}
	return id, nil
}

// Names returns the known logical names, sorted.
func (r *ConnectorRegistry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
