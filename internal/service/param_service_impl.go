package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/basekit/internal/db"
	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/repository"
	"github.com/alexanderramin/basekit/internal/valuetype"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
)

type paramService struct {
	params    repository.ParameterRepo
	versions  repository.VersionRepo
	companies repository.CompanyRepo
	users     UserService
	uow       db.UnitOfWork
	logger    *slog.Logger
	observer  UseCaseObserver
}

func NewParamService(
	params repository.ParameterRepo,
	versions repository.VersionRepo,
	companies repository.CompanyRepo,
	users UserService,
	uow db.UnitOfWork,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) ParamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &paramService{
		params:    params,
		versions:  versions,
		companies: companies,
		users:     users,
		uow:       uow,
		logger:    logger,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *paramService) CreateParameter(ctx context.Context, p *domain.TimeParameter) error {
	if err := s.checkParameter(ctx, p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.params.Create(ctx, p); err != nil {
		return fmt.Errorf("creating parameter: %w", err)
	}
	return nil
}

// checkParameter normalizes p and validates it, including its JSON schema
// and company reference.
func (s *paramService) checkParameter(ctx context.Context, p *domain.TimeParameter) error {
	if err := validateParameter(p); err != nil {
		return err
	}
	if p.CompanyID != nil {
		if _, err := s.companies.GetByID(ctx, *p.CompanyID); err != nil {
			return err
		}
	}
	return nil
}

func validateParameter(p *domain.TimeParameter) error {
	p.Normalize()
	if err := domain.Validate(p); err != nil {
		return err
	}
	if p.JSONSchema == "" {
		return nil
	}
	if p.Type != domain.TypeJSON {
		return &domain.ValidationError{Fields: map[string]string{"json_schema": "only json parameters take a schema"}}
	}
	if _, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(p.JSONSchema)); err != nil {
		return &domain.ValidationError{Fields: map[string]string{"json_schema": err.Error()}}
	}
	return nil
}

func (s *paramService) GetParameter(ctx context.Context, id string) (*domain.TimeParameter, error) {
	return s.params.GetByID(ctx, id)
}

func (s *paramService) FindParameter(ctx context.Context, code string, scope domain.Scope) (*domain.TimeParameter, error) {
	return s.params.GetByCode(ctx, strings.TrimSpace(code), normalizeScope(scope))
}

func (s *paramService) ListParameters(ctx context.Context) ([]*domain.TimeParameter, error) {
	return s.params.List(ctx)
}

func (s *paramService) UpdateParameter(ctx context.Context, p *domain.TimeParameter) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"parameter_id": p.ID, "code": p.Code}
	defer func() { observe(ctx, s.observer, "update-parameter", startedAt, fields, err) }()

	existing, err := s.params.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if p.Type != existing.Type {
		return &domain.ValidationError{Fields: map[string]string{
			"type": fmt.Sprintf("cannot change from %s to %s", existing.Type, p.Type),
		}}
	}
	if err = s.checkParameter(ctx, p); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txParams := repository.NewSQLiteParameterRepo(tx)
		txVersions := repository.NewSQLiteVersionRepo(tx)

		if err := txParams.Update(ctx, p); err != nil {
			return err
		}
		return txVersions.RefreshCopies(ctx, p)
	})
}

func (s *paramService) DeleteParameter(ctx context.Context, id string) error {
	if _, err := s.params.GetByID(ctx, id); err != nil {
		return err
	}
	return s.params.Delete(ctx, id)
}

func (s *paramService) OnValueChange(ctx context.Context, p *domain.TimeParameter, raw string) (valuetype.Result, error) {
	opts := valuetype.Options{Logger: s.logger}
	if p.Type == domain.TypeDate && raw != "" {
		format, err := s.users.DateFormat(ctx)
		if err != nil {
			return valuetype.Result{}, err
		}
		opts.DateFormat = format
	}
	return valuetype.Coerce(ctx, p.Type, raw, opts)
}

func (s *paramService) EnterVersion(ctx context.Context, parameterID string, effective time.Time, raw string) (v *domain.TimeParameterVersion, res valuetype.Result, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"parameter_id": parameterID}
	defer func() { observe(ctx, s.observer, "enter-version", startedAt, fields, err) }()

	p, err := s.params.GetByID(ctx, parameterID)
	if err != nil {
		return nil, res, err
	}
	res, err = s.OnValueChange(ctx, p, raw)
	if err != nil {
		return nil, res, err
	}
	fields["outcome"] = res.Outcome.String()

	v = &domain.TimeParameterVersion{EffectiveDate: effective, Value: res.Value}
	v.Relate(p)
	if err = s.createVersion(ctx, v); err != nil {
		return nil, res, err
	}
	return v, res, nil
}

func (s *paramService) SetVersionValue(ctx context.Context, versionID, raw string) (*domain.TimeParameterVersion, valuetype.Result, error) {
	v, err := s.versions.GetByID(ctx, versionID)
	if err != nil {
		return nil, valuetype.Result{}, err
	}
	p, err := s.params.GetByID(ctx, v.ParameterID)
	if err != nil {
		return nil, valuetype.Result{}, err
	}
	res, err := s.OnValueChange(ctx, p, raw)
	if err != nil {
		return nil, res, err
	}
	if err := s.versions.UpdateValue(ctx, v.ID, res.Value); err != nil {
		return nil, res, err
	}
	v.Value = res.Value
	return v, res, nil
}

func (s *paramService) AddVersion(ctx context.Context, v *domain.TimeParameterVersion) error {
	p, err := s.params.GetByID(ctx, v.ParameterID)
	if err != nil {
		return err
	}
	v.Relate(p)
	return s.createVersion(ctx, v)
}

func (s *paramService) createVersion(ctx context.Context, v *domain.TimeParameterVersion) error {
	v.EffectiveDate = domain.TruncateDay(v.EffectiveDate)
	if err := domain.Validate(v); err != nil {
		return err
	}
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	return s.versions.Create(ctx, v)
}

func (s *paramService) GetVersion(ctx context.Context, id string) (*domain.TimeParameterVersion, error) {
	return s.versions.GetByID(ctx, id)
}

func (s *paramService) ListVersions(ctx context.Context, parameterID string) ([]*domain.TimeParameterVersion, error) {
	return s.versions.ListByParameter(ctx, parameterID)
}

func (s *paramService) DeleteVersion(ctx context.Context, id string) error {
	return s.versions.Delete(ctx, id)
}

func (s *paramService) ValueAt(ctx context.Context, code string, date time.Time, scope domain.Scope) (*domain.TimeParameterVersion, error) {
	p, err := s.FindParameter(ctx, code, scope)
	if err != nil {
		return nil, err
	}
	return s.versions.EffectiveAt(ctx, p.ID, domain.TruncateDay(date))
}

func (s *paramService) Audit(ctx context.Context) (findings []AuditFinding, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "audit", startedAt, fields, err) }()

	params, err := s.params.List(ctx)
	if err != nil {
		return nil, err
	}
	schemas := make(map[string]*gojsonschema.Schema)
	for _, p := range params {
		if p.Type != domain.TypeJSON || p.JSONSchema == "" {
			continue
		}
		schema, serr := gojsonschema.NewSchema(gojsonschema.NewStringLoader(p.JSONSchema))
		if serr != nil {
			findings = append(findings, AuditFinding{
				ParameterID: p.ID, Code: p.Code, Type: p.Type,
				Problem: fmt.Sprintf("invalid json_schema: %v", serr),
			})
			continue
		}
		schemas[p.ID] = schema
	}

	versions, err := s.versions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range versions {
		if v.Value == "" {
			continue
		}
		if problem := auditValue(v, schemas[v.ParameterID]); problem != "" {
			findings = append(findings, AuditFinding{
				ParameterID:   v.ParameterID,
				Code:          v.Code,
				Type:          v.Type,
				VersionID:     v.ID,
				EffectiveDate: v.EffectiveDate,
				Value:         v.Value,
				Problem:       problem,
			})
		}
	}
	fields["versions"] = len(versions)
	fields["findings"] = len(findings)
	return findings, nil
}

// auditValue returns a description of what is wrong with v's stored value,
// or "" when it conforms.
func auditValue(v *domain.TimeParameterVersion, schema *gojsonschema.Schema) string {
	if _, err := valuetype.Decode(v.Type, v.Value); err != nil {
		return err.Error()
	}
	if schema == nil {
		return ""
	}
	result, err := schema.Validate(gojsonschema.NewStringLoader(v.Value))
	if err != nil {
		return fmt.Sprintf("validating against json_schema: %v", err)
	}
	if result.Valid() {
		return ""
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		msgs = append(msgs, re.String())
	}
	return "does not match json_schema: " + strings.Join(msgs, "; ")
}

func normalizeScope(scope domain.Scope) domain.Scope {
	if scope.Country != nil {
		scope.Country = domain.NilIfBlank(strings.ToUpper(*scope.Country))
	}
	if scope.CompanyID != nil {
		scope.CompanyID = domain.NilIfBlank(*scope.CompanyID)
	}
	return scope
}
