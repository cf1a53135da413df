// Package registry holds the static catalog of candidate agent frameworks and
// the two pure engines built on it: keyword relevance ranking and metric-based
// outcome simulation.
package registry

import (
	"context"
	"strings"
	"sync"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/internal/mylog"
)

// Store loads the registry lazily, once. A successful read is cached for the
// lifetime of the Store; a failed read is logged, served as an empty registry
// and retried on the next Load.
type Store struct {
	source Source
	logger *mylog.Logger

	mu     sync.Mutex
	loaded bool
	agents []entity.AgentDescriptor
}

func NewStore(source Source, logger *mylog.Logger) *Store {
	if source == nil {
		source = EmbeddedSource{}
	}
	if logger == nil {
		logger = mylog.Discard()
	}
	return &Store{
		source: source,
		logger: logger,
	}
}

// Load returns the cached descriptors in registry order. The returned slice
// is shared and must be treated as read-only.
func (s *Store) Load(ctx context.Context) []entity.AgentDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.agents[:len(s.agents):len(s.agents)]
	}

	agents, err := s.source.Read(ctx)
	if err != nil {
		s.logger.Warn("failed to load agent registry; serving empty registry", mylog.Err(err))
		return []entity.AgentDescriptor{}
	}
	if agents == nil {
		agents = []entity.AgentDescriptor{}
	}

	s.agents = agents
	s.loaded = true
	s.logger.Debug("agent registry loaded", "agents", len(agents))

	return s.agents[:len(s.agents):len(s.agents)]
}

// Lookup finds a descriptor by name, ignoring case.
func (s *Store) Lookup(ctx context.Context, name string) (entity.AgentDescriptor, bool) {
	for _, a := range s.Load(ctx) {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return entity.AgentDescriptor{}, false
}

// Reset drops the cache so the next Load reads the source again. Tests only.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = false
	s.agents = nil
}
