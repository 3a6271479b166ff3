package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/basekit/internal/domain"
)

type EntityTypeRepo interface {
	Create(ctx context.Context, e *domain.EntityType) error
	Get(ctx context.Context, model string) (*domain.EntityType, error)
	List(ctx context.Context) ([]*domain.EntityType, error)
	Delete(ctx context.Context, model string) error
}

type StageRepo interface {
	Create(ctx context.Context, s *domain.Stage) error
	GetByID(ctx context.Context, id string) (*domain.Stage, error)
	// ListByModel returns every stage scoped to model in the given order.
	ListByModel(ctx context.Context, model string, order StageOrder) ([]*domain.Stage, error)
	Update(ctx context.Context, s *domain.Stage) error
	Delete(ctx context.Context, id string) error
}

type CardRepo interface {
	Create(ctx context.Context, c *domain.Card) error
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	// ListByModel returns cards in kanban order: priority descending, then
	// sequence ascending, then id.
	ListByModel(ctx context.Context, model string) ([]*domain.Card, error)
	ListByStage(ctx context.Context, stageID string) ([]*domain.Card, error)
	Update(ctx context.Context, c *domain.Card) error
	Delete(ctx context.Context, id string) error
}

type LanguageRepo interface {
	Get(ctx context.Context, code string) (*domain.Language, error)
	List(ctx context.Context) ([]*domain.Language, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type CompanyRepo interface {
	Create(ctx context.Context, c *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	GetByName(ctx context.Context, name string) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
	Delete(ctx context.Context, id string) error
}

type ParameterRepo interface {
	Create(ctx context.Context, p *domain.TimeParameter) error
	GetByID(ctx context.Context, id string) (*domain.TimeParameter, error)
	// GetByCode matches the scope exactly: a nil country or company only
	// matches parameters without one.
	GetByCode(ctx context.Context, code string, scope domain.Scope) (*domain.TimeParameter, error)
	List(ctx context.Context) ([]*domain.TimeParameter, error)
	Update(ctx context.Context, p *domain.TimeParameter) error
	Delete(ctx context.Context, id string) error
}

type VersionRepo interface {
	Create(ctx context.Context, v *domain.TimeParameterVersion) error
	GetByID(ctx context.Context, id string) (*domain.TimeParameterVersion, error)
	// ListByParameter returns versions most recent first.
	ListByParameter(ctx context.Context, parameterID string) ([]*domain.TimeParameterVersion, error)
	// ListAll returns every version, grouped by parameter code.
	ListAll(ctx context.Context) ([]*domain.TimeParameterVersion, error)
	// EffectiveAt returns the version with the latest effective date on or
	// before date.
	EffectiveAt(ctx context.Context, parameterID string, date time.Time) (*domain.TimeParameterVersion, error)
	UpdateValue(ctx context.Context, id, value string) error
	// RefreshCopies rewrites the code and company copied from the parent.
	RefreshCopies(ctx context.Context, p *domain.TimeParameter) error
	Delete(ctx context.Context, id string) error
}
