package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/basekit/internal/db"
	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/importer"
	"github.com/alexanderramin/basekit/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService returns an ImportService that writes each import in a
// single transaction.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportParameters(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportParametersFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"parameters": len(schema.Parameters)}
	defer func() {
		if result != nil {
			fields["versions"] = result.VersionCount
		}
		observe(ctx, s.observer, "import-parameters", startedAt, fields, err)
	}()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	res := &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txParams := repository.NewSQLiteParameterRepo(tx)
		txVersions := repository.NewSQLiteVersionRepo(tx)
		txCompanies := repository.NewSQLiteCompanyRepo(tx)

		companies := make(map[string]string)
		for _, gen := range generated {
			if gen.CompanyRef != "" {
				id, ok := companies[gen.CompanyRef]
				if !ok {
					c, created, err := resolveOrCreateCompany(ctx, txCompanies, gen.CompanyRef)
					if err != nil {
						return err
					}
					if created {
						res.CompaniesCreated++
					}
					id = c.ID
					companies[gen.CompanyRef] = id
				}
				gen.Parameter.CompanyID = &id
			}

			p, reused, err := findOrCreateParameter(ctx, txParams, gen.Parameter)
			if err != nil {
				return err
			}
			if reused {
				res.ParametersReused++
			} else {
				res.ParametersCreated++
			}

			for _, v := range gen.Versions {
				v.Relate(p)
				if err := txVersions.Create(ctx, v); err != nil {
					if errors.Is(err, repository.ErrDuplicateVersion) {
						return fmt.Errorf("importing %s version %s: %w", p.Code, v.EffectiveDate.Format("2006-01-02"), err)
					}
					return fmt.Errorf("creating version of %s: %w", p.Code, err)
				}
				res.VersionCount++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// resolveOrCreateCompany finds a company by id, then by name, creating one
// named ref when neither matches.
func resolveOrCreateCompany(ctx context.Context, companies repository.CompanyRepo, ref string) (*domain.Company, bool, error) {
	c, err := companies.GetByID(ctx, ref)
	if err == nil {
		return c, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}
	c, err = companies.GetByName(ctx, ref)
	if err == nil {
		return c, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	now := time.Now().UTC()
	c = &domain.Company{ID: uuid.New().String(), Name: ref, CreatedAt: now, UpdatedAt: now}
	if err := companies.Create(ctx, c); err != nil {
		return nil, false, fmt.Errorf("creating company %q: %w", ref, err)
	}
	return c, true, nil
}

// findOrCreateParameter returns the stored parameter with p's code and
// scope, or stores p. A stored parameter of another type is an error.
func findOrCreateParameter(ctx context.Context, params repository.ParameterRepo, p *domain.TimeParameter) (*domain.TimeParameter, bool, error) {
	existing, err := params.GetByCode(ctx, p.Code, p.Scope())
	if err == nil {
		if existing.Type != p.Type {
			return nil, false, fmt.Errorf("importing %s: stored as %s, file declares %s", p.Code, existing.Type, p.Type)
		}
		return existing, true, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}
	if err := validateParameter(p); err != nil {
		return nil, false, fmt.Errorf("importing %s: %w", p.Code, err)
	}
	if err := params.Create(ctx, p); err != nil {
		return nil, false, fmt.Errorf("creating parameter %s: %w", p.Code, err)
	}
	return p, false, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
