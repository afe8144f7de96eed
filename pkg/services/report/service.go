package report

import (
	"context"
	"fmt"
	"time"

	"github.com/mcp-analytics/resort-dmr/pkg/models/domain"
	"github.com/mcp-analytics/resort-dmr/pkg/services/config"
)

// Service resolves resort names against the profile and runs the engine,
// stamping each run with the wall clock. It is the entry point shared by the
// CLI and the web API.
type Service struct {
	engine  *Engine
	profile *config.Profile
	now     func() time.Time
}

func NewService(engine *Engine, profile *config.Profile) (*Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	return &Service{engine: engine, profile: profile, now: time.Now}, nil
}

func (s *Service) Generate(ctx context.Context, resortName string, reportDate time.Time) (*domain.Report, error) {
	resort, err := s.profile.Resort(resortName)
	if err != nil {
		return nil, err
	}
	return s.engine.Generate(ctx, RunParams{
		Resort:     resort,
		ReportDate: reportDate,
		Now:        s.now(),
	})
}

func (s *Service) Resorts() []string {
	return s.profile.ResortNames()
}
