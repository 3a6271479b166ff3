package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/repository"
	"github.com/google/uuid"
)

// StageDomain restricts the stages selectable by records of one entity type.
type StageDomain struct {
	Model string
}

// Contains reports whether stage may be assigned under this domain.
func (d StageDomain) Contains(stage *domain.Stage) bool {
	return stage != nil && stage.Accepts(d.Model)
}

func (d StageDomain) String() string {
	return fmt.Sprintf("model = %q", d.Model)
}

// DefaultStageFunc returns the default-stage factory for model: the first
// stage scoped to model in natural order, or nil when model has no stages.
func DefaultStageFunc(stages repository.StageRepo, model string) func(ctx context.Context) (*domain.Stage, error) {
	return func(ctx context.Context) (*domain.Stage, error) {
		list, err := stages.ListByModel(ctx, model, repository.StageOrderNatural)
		if err != nil {
			return nil, fmt.Errorf("resolving default stage: %w", err)
		}
		if len(list) == 0 {
			return nil, nil
		}
		return list[0], nil
	}
}

type stageService struct {
	stages repository.StageRepo
	types  repository.EntityTypeRepo
}

func NewStageService(stages repository.StageRepo, types repository.EntityTypeRepo) StageService {
	return &stageService{stages: stages, types: types}
}

func (s *stageService) Create(ctx context.Context, stage *domain.Stage) error {
	if err := domain.Validate(stage); err != nil {
		return err
	}
	if _, err := s.types.Get(ctx, stage.Model); err != nil {
		return err
	}
	if stage.ID == "" {
		stage.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	stage.CreatedAt = now
	stage.UpdatedAt = now
	if err := s.stages.Create(ctx, stage); err != nil {
		return fmt.Errorf("creating stage: %w", err)
	}
	return nil
}

func (s *stageService) GetByID(ctx context.Context, id string) (*domain.Stage, error) {
	return s.stages.GetByID(ctx, id)
}

func (s *stageService) Update(ctx context.Context, stage *domain.Stage) error {
	if err := domain.Validate(stage); err != nil {
		return err
	}
	stage.UpdatedAt = time.Now().UTC()
	return s.stages.Update(ctx, stage)
}

func (s *stageService) Delete(ctx context.Context, id string) error {
	return s.stages.Delete(ctx, id)
}

func (s *stageService) ExpandGroups(ctx context.Context, model string, order repository.StageOrder) ([]*domain.Stage, error) {
	return s.stages.ListByModel(ctx, model, order)
}

func (s *stageService) Domain(model string) StageDomain {
	return StageDomain{Model: model}
}
