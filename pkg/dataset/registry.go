package dataset

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
)

// FetcherFactory creates a Fetcher for one URL scheme
type FetcherFactory func(ctx context.Context) (Fetcher, error)

// Registry maps URL schemes to fetcher factories
type Registry interface {
	// Register adds a factory for scheme
	Register(scheme string, factory FetcherFactory) error
	// Create instantiates the fetcher registered for scheme
	Create(ctx context.Context, scheme string) (Fetcher, error)
	// ListSchemes returns the registered schemes
	ListSchemes() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]FetcherFactory
}

func NewRegistry(factories map[string]FetcherFactory) Registry {
	r := &registry{factories: make(map[string]FetcherFactory, len(factories))}
	for scheme, factory := range factories {
		r.factories[scheme] = factory
	}
	return r
}

// DefaultRegistry knows http, https, file and s3 sources.
func DefaultRegistry(client *http.Client) Registry {
	httpFactory := func(context.Context) (Fetcher, error) {
		return &HTTPFetcher{Client: client}, nil
	}
	return NewRegistry(map[string]FetcherFactory{
		"http":  httpFactory,
		"https": httpFactory,
		"file": func(context.Context) (Fetcher, error) {
			return FileFetcher{}, nil
		},
		"s3": S3FetcherFactory,
	})
}

func (r *registry) Register(scheme string, factory FetcherFactory) error {
	if scheme == "" {
		return fmt.Errorf("scheme cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[scheme]; exists {
		return fmt.Errorf("scheme %q is already registered", scheme)
	}

	r.factories[scheme] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, scheme string) (Fetcher, error) {
	r.mu.RLock()
	factory, exists := r.factories[scheme]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported source scheme %q, supported: %v", scheme, r.ListSchemes())
	}
	return factory(ctx)
}

func (r *registry) ListSchemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemes := make([]string, 0, len(r.factories))
	for scheme := range r.factories {
		schemes = append(schemes, scheme)
	}
	sort.Strings(schemes)
	return schemes
}
