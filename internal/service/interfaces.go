package service

import (
	"context"
	"time"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/importer"
	"github.com/alexanderramin/basekit/internal/repository"
	"github.com/alexanderramin/basekit/internal/valuetype"
)

type EntityTypeService interface {
	Create(ctx context.Context, e *domain.EntityType) error
	Get(ctx context.Context, model string) (*domain.EntityType, error)
	List(ctx context.Context) ([]*domain.EntityType, error)
	Delete(ctx context.Context, model string) error
}

type StageService interface {
	Create(ctx context.Context, s *domain.Stage) error
	GetByID(ctx context.Context, id string) (*domain.Stage, error)
	Update(ctx context.Context, s *domain.Stage) error
	Delete(ctx context.Context, id string) error
	// ExpandGroups returns every stage scoped to model, including stages no
	// record currently sits in, so grouped views can show empty columns.
	ExpandGroups(ctx context.Context, model string, order repository.StageOrder) ([]*domain.Stage, error)
	// Domain is the filter restricting which stages a record of model may use.
	Domain(model string) StageDomain
}

// StageGroup is one column of a board: a stage and its records in kanban
// order. Stage is nil for the group of unstaged records.
type StageGroup struct {
	Stage *domain.Stage
	Cards []*domain.Card
}

// Board is a grouped-by-stage view of every card of one entity type.
type Board struct {
	Model  string
	Groups []StageGroup
}

type CardService interface {
	// Create stores c. When c has no stage, the default stage of its entity
	// type is assigned, if any.
	Create(ctx context.Context, c *domain.Card) error
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	ListByModel(ctx context.Context, model string) ([]*domain.Card, error)
	Update(ctx context.Context, c *domain.Card) error
	Delete(ctx context.Context, id string) error
	// MoveToStage sets the card's stage; an empty stageID unstages it.
	MoveToStage(ctx context.Context, id, stageID string) (*domain.Card, error)
	SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Card, error)
	SetPriority(ctx context.Context, id string, priority domain.Priority) (*domain.Card, error)
	// Assign sets the assignee by login; an empty login unassigns.
	Assign(ctx context.Context, id, login string) (*domain.Card, error)
	Duplicate(ctx context.Context, id string) (*domain.Card, error)
	Board(ctx context.Context, model string, order repository.StageOrder) (*Board, error)
}

type UserService interface {
	// Current returns the acting user named in ctx (see WithActor).
	Current(ctx context.Context) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	SetLanguage(ctx context.Context, login, lang string) error
	Languages(ctx context.Context) ([]*domain.Language, error)
	// DateFormat returns the strftime date format of the acting user's language.
	DateFormat(ctx context.Context) (string, error)
}

type CompanyService interface {
	Create(ctx context.Context, c *domain.Company) error
	// Resolve finds a company by id, then by name.
	Resolve(ctx context.Context, ref string) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
	Delete(ctx context.Context, id string) error
}

// AuditFinding is one stored value that does not conform to its parameter.
type AuditFinding struct {
	ParameterID   string
	Code          string
	Type          domain.ValueType
	VersionID     string
	EffectiveDate time.Time
	Value         string
	Problem       string
}

type ParamService interface {
	CreateParameter(ctx context.Context, p *domain.TimeParameter) error
	GetParameter(ctx context.Context, id string) (*domain.TimeParameter, error)
	FindParameter(ctx context.Context, code string, scope domain.Scope) (*domain.TimeParameter, error)
	ListParameters(ctx context.Context) ([]*domain.TimeParameter, error)
	// UpdateParameter saves p and refreshes the copies held by its versions
	// in the same transaction. The value type cannot change.
	UpdateParameter(ctx context.Context, p *domain.TimeParameter) error
	// DeleteParameter removes p and all of its versions.
	DeleteParameter(ctx context.Context, id string) error

	// OnValueChange coerces user-entered raw text for p's value type.
	OnValueChange(ctx context.Context, p *domain.TimeParameter, raw string) (valuetype.Result, error)
	// EnterVersion is the user-entry path: raw is coerced before the version
	// is stored.
	EnterVersion(ctx context.Context, parameterID string, effective time.Time, raw string) (*domain.TimeParameterVersion, valuetype.Result, error)
	// SetVersionValue coerces raw and stores it on an existing version.
	SetVersionValue(ctx context.Context, versionID, raw string) (*domain.TimeParameterVersion, valuetype.Result, error)
	// AddVersion stores v as given, without coercion. Audit reports values
	// written this way that do not conform to the parameter type.
	AddVersion(ctx context.Context, v *domain.TimeParameterVersion) error
	GetVersion(ctx context.Context, id string) (*domain.TimeParameterVersion, error)
	ListVersions(ctx context.Context, parameterID string) ([]*domain.TimeParameterVersion, error)
	DeleteVersion(ctx context.Context, id string) error

	// ValueAt returns the version of the parameter (code, scope) in effect
	// on date.
	ValueAt(ctx context.Context, code string, date time.Time, scope domain.Scope) (*domain.TimeParameterVersion, error)
	Audit(ctx context.Context) ([]AuditFinding, error)
}

// ImportResult holds the outcome of a parameter import.
type ImportResult struct {
	ParametersCreated int
	ParametersReused  int
	VersionCount      int
	CompaniesCreated  int
}

type ImportService interface {
	ImportParameters(ctx context.Context, filePath string) (*ImportResult, error)
	ImportParametersFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
