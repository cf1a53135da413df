package registry

import (
	"context"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AgentRecord is a registry row in a SQLite catalog.
type AgentRecord struct {
	ID       uint   `gorm:"primarykey"`
	Position int    `gorm:"index"`
	Name     string `gorm:"uniqueIndex"`
	Category string

	Description string
	Features    datatypes.JSONSlice[string]
	BestFor     datatypes.JSONSlice[string]

	AccuracyRetrieval *float64
	LatencyP95Ms      *float64
	MaxContextTokens  *float64
}

func (AgentRecord) TableName() string {
	return "agents"
}

func (r AgentRecord) Descriptor() entity.AgentDescriptor {
	return entity.AgentDescriptor{
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Features:    []string(r.Features),
		BestFor:     []string(r.BestFor),
		Metrics: entity.AgentMetrics{
			AccuracyRetrieval: r.AccuracyRetrieval,
			LatencyP95Ms:      r.LatencyP95Ms,
			MaxContextTokens:  r.MaxContextTokens,
		},
	}
}

// GormSource reads the registry from the agents table, in position order.
type GormSource struct {
	DB *gorm.DB
}

var _ Source = (*GormSource)(nil)

// OpenSQLiteSource opens (creating if needed) a SQLite catalog at path.
func OpenSQLiteSource(ctx context.Context, path string) (*GormSource, error) {
	gdb, err := db.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(ctx, gdb, &AgentRecord{}); err != nil {
		_ = db.CloseDB(gdb)
		return nil, errors.Wrapf(err, "failed to migrate registry catalog")
	}
	return &GormSource{DB: gdb}, nil
}

func (s *GormSource) Read(ctx context.Context) ([]entity.AgentDescriptor, error) {
	var records []AgentRecord
	if err := s.DB.WithContext(ctx).Order("position, id").Find(&records).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to read registry catalog")
	}

	agents := make([]entity.AgentDescriptor, 0, len(records))
	for _, r := range records {
		agents = append(agents, r.Descriptor())
	}
	return agents, nil
}

func (s *GormSource) Close() error {
	return db.CloseDB(s.DB)
}

// SeedGorm replaces the catalog content with agents, keeping their order.
func SeedGorm(ctx context.Context, gdb *gorm.DB, agents []entity.AgentDescriptor) error {
	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&AgentRecord{}).Error; err != nil {
			return errors.Wrapf(err, "failed to clear registry catalog")
		}
		if len(agents) == 0 {
			return nil
		}

		records := make([]AgentRecord, 0, len(agents))
		for i, a := range agents {
			records = append(records, AgentRecord{
				Position:          i,
				Name:              a.Name,
				Category:          a.Category,
				Description:       a.Description,
				Features:          datatypes.JSONSlice[string](a.Features),
				BestFor:           datatypes.JSONSlice[string](a.BestFor),
				AccuracyRetrieval: a.Metrics.AccuracyRetrieval,
				LatencyP95Ms:      a.Metrics.LatencyP95Ms,
				MaxContextTokens:  a.Metrics.MaxContextTokens,
			})
		}
		return errors.WithStack(tx.Create(&records).Error)
	})
}
