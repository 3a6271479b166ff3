package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/repository"
)

type entityTypeService struct {
	types repository.EntityTypeRepo
}

func NewEntityTypeService(types repository.EntityTypeRepo) EntityTypeService {
	return &entityTypeService{types: types}
}

func (s *entityTypeService) Create(ctx context.Context, e *domain.EntityType) error {
	e.Model = strings.TrimSpace(e.Model)
	e.Name = domain.CoalesceStr(strings.TrimSpace(e.Name), e.Model)
	if err := e.ValidateModel(); err != nil {
		return &domain.ValidationError{Fields: map[string]string{"model": err.Error()}}
	}
	if err := domain.Validate(e); err != nil {
		return err
	}
	e.CreatedAt = time.Now().UTC()
	if err := s.types.Create(ctx, e); err != nil {
		return fmt.Errorf("creating entity type: %w", err)
	}
	return nil
}

func (s *entityTypeService) Get(ctx context.Context, model string) (*domain.EntityType, error) {
	return s.types.Get(ctx, model)
}

func (s *entityTypeService) List(ctx context.Context) ([]*domain.EntityType, error) {
	return s.types.List(ctx)
}

func (s *entityTypeService) Delete(ctx context.Context, model string) error {
	if _, err := s.types.Get(ctx, model); err != nil {
		return err
	}
	return s.types.Delete(ctx, model)
}
