package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/repository"
	"github.com/google/uuid"
)

type companyService struct {
	companies repository.CompanyRepo
}

func NewCompanyService(companies repository.CompanyRepo) CompanyService {
	return &companyService{companies: companies}
}

func (s *companyService) Create(ctx context.Context, c *domain.Company) error {
	if c.Country != nil {
		c.Country = domain.NilIfBlank(strings.ToUpper(*c.Country))
	}
	if err := domain.Validate(c); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.companies.Create(ctx, c); err != nil {
		return fmt.Errorf("creating company: %w", err)
	}
	return nil
}

func (s *companyService) Resolve(ctx context.Context, ref string) (*domain.Company, error) {
	c, err := s.companies.GetByID(ctx, ref)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.companies.GetByName(ctx, ref)
}

func (s *companyService) List(ctx context.Context) ([]*domain.Company, error) {
	return s.companies.List(ctx)
}

// Delete removes the company together with its parameters.
func (s *companyService) Delete(ctx context.Context, id string) error {
	return s.companies.Delete(ctx, id)
}
