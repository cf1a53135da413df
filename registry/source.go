package registry

import (
	"context"
	_ "embed"
	"os"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/errors"
	"sigs.k8s.io/yaml"
)

// Source reads the registry document. A missing document is an empty
// registry, not an error.
type Source interface {
	Read(ctx context.Context) ([]entity.AgentDescriptor, error)
}

// Document is the on-disk registry shape shared by YAML and JSON files.
type Document struct {
	Agents []entity.AgentDescriptor `json:"agents"`
}

// FileSource reads a YAML or JSON document from Path.
type FileSource struct {
	Path string
}

var _ Source = (*FileSource)(nil)

func (s *FileSource) Read(_ context.Context) ([]entity.AgentDescriptor, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return []entity.AgentDescriptor{}, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to read registry %s", s.Path)
	}

	agents, err := ParseDocument(data)
	if err != nil {
		return nil, errors.Wrapf(err, "registry %s", s.Path)
	}
	return agents, nil
}

//go:embed data/agent_registry.yaml
var embeddedRegistry []byte

// EmbeddedSource serves the registry built into the binary.
type EmbeddedSource struct{}

var _ Source = EmbeddedSource{}

func (EmbeddedSource) Read(_ context.Context) ([]entity.AgentDescriptor, error) {
	return ParseDocument(embeddedRegistry)
}

func ParseDocument(data []byte) ([]entity.AgentDescriptor, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "malformed registry document: %v", err)
	}
	if doc.Agents == nil {
		return []entity.AgentDescriptor{}, nil
	}
	return doc.Agents, nil
}

// StaticSource serves a fixed slice. Useful for callers that already hold descriptors.
type StaticSource []entity.AgentDescriptor

func (s StaticSource) Read(_ context.Context) ([]entity.AgentDescriptor, error) {
	if s == nil {
		return []entity.AgentDescriptor{}, nil
	}
	return []entity.AgentDescriptor(s), nil
}
