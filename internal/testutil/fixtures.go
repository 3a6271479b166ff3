package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/google/uuid"
)

var testModelCounter atomic.Int64

// NewTestEntityType returns an entity type with a unique model name
// (e.g. "test.model3") unless one is given.
func NewTestEntityType(model string) *domain.EntityType {
	if model == "" {
		model = fmt.Sprintf("test.model%d", testModelCounter.Add(1))
	}
	return &domain.EntityType{
		Model:     model,
		Name:      model,
		CreatedAt: time.Now().UTC(),
	}
}

// Stage options
type StageOption func(*domain.Stage)

func WithStageSequence(seq int) StageOption {
	return func(s *domain.Stage) {
		s.Sequence = seq
	}
}

func WithFold() StageOption {
	return func(s *domain.Stage) {
		s.Fold = true
	}
}

func WithLegends(priority, blocked, done, normal string) StageOption {
	return func(s *domain.Stage) {
		s.LegendPriority = priority
		s.LegendBlocked = blocked
		s.LegendDone = done
		s.LegendNormal = normal
	}
}

func NewTestStage(model, name string, opts ...StageOption) *domain.Stage {
	now := time.Now().UTC()
	s := &domain.Stage{
		ID:        uuid.New().String(),
		Name:      name,
		Model:     model,
		Sequence:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Card options
type CardOption func(*domain.Card)

func WithPriority(p domain.Priority) CardOption {
	return func(c *domain.Card) {
		c.Priority = p
	}
}

func WithSequence(seq int) CardOption {
	return func(c *domain.Card) {
		c.Sequence = seq
	}
}

func WithStage(s *domain.Stage) CardOption {
	return func(c *domain.Card) {
		c.SetStage(s)
	}
}

func WithStatus(s domain.Status) CardOption {
	return func(c *domain.Card) {
		c.Status = s
	}
}

func WithAssignee(userID string) CardOption {
	return func(c *domain.Card) {
		c.UserID = &userID
	}
}

func NewTestCard(model, name string, opts ...CardOption) *domain.Card {
	now := time.Now().UTC()
	c := &domain.Card{
		ID:        uuid.New().String(),
		Model:     model,
		Name:      name,
		Kanban:    domain.NewKanban(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewTestCompany(name string, country string) *domain.Company {
	now := time.Now().UTC()
	c := &domain.Company{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if country != "" {
		c.Country = &country
	}
	return c
}

// Parameter options
type ParameterOption func(*domain.TimeParameter)

func WithCountry(code string) ParameterOption {
	return func(p *domain.TimeParameter) {
		p.Country = &code
	}
}

func WithCompany(id string) ParameterOption {
	return func(p *domain.TimeParameter) {
		p.CompanyID = &id
	}
}

func WithJSONSchema(schema string) ParameterOption {
	return func(p *domain.TimeParameter) {
		p.JSONSchema = schema
	}
}

func NewTestParameter(code string, vt domain.ValueType, opts ...ParameterOption) *domain.TimeParameter {
	now := time.Now().UTC()
	p := &domain.TimeParameter{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      code,
		Type:      vt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestVersion returns a version of p effective on the given "2006-01-02" date.
func NewTestVersion(p *domain.TimeParameter, effective, value string) *domain.TimeParameterVersion {
	d, err := time.Parse("2006-01-02", effective)
	if err != nil {
		panic(fmt.Sprintf("bad test date %q: %v", effective, err))
	}
	now := time.Now().UTC()
	v := &domain.TimeParameterVersion{
		ID:            uuid.New().String(),
		EffectiveDate: d,
		Value:         value,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	v.Relate(p)
	return v
}

// Date is a shorthand for midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
