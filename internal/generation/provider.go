package generation

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ProviderRequest is everything an adapter needs for one call.
// APIKey must never be logged.
type ProviderRequest struct {
	Prompt Prompt
	APIKey string
	Model  string
}

// Provider performs exactly one network call to an LLM endpoint and returns
// the raw text payload at the protocol specific path.
//
// Implementations return *ProviderRequestError for non-success statuses and
// *ProviderUnreachableError for transport failures. They must not retry.
type Provider interface {
	// Name is the registry key of the adapter, e.g. "openai".
	Name() string

	// Generate sends the prompt and returns the provider's text payload.
	Generate(ctx context.Context, req ProviderRequest) (string, error)
}

// Registry selects a Provider by name.
type Registry struct {
	providers   map[string]Provider
	defaultName string
}

// NewRegistry builds a registry over providers. defaultName must be one of them.
func NewRegistry(defaultName string, providers ...Provider) (*Registry, error) {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if p == nil {
			continue
		}
		r.providers[p.Name()] = p
	}
	if _, ok := r.providers[defaultName]; !ok {
		return nil, fmt.Errorf("%w: default provider %q is not registered", ErrInvalidConfig, defaultName)
	}
	r.defaultName = defaultName
	return r, nil
}

// Get returns the provider registered under name. An empty name selects the default.
func (r *Registry) Get(name string) (Provider, error) {
	if name == "" {
		name = r.defaultName
	}
	p, ok := r.providers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// Default returns the name of the default provider.
func (r *Registry) Default() string {
	return r.defaultName
}

// Names lists registered provider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for n := range r.providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
