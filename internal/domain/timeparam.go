package domain

import (
	"strings"
	"time"
)

// DuplicateVersionMessage is reported when a parameter would get two
// versions starting on the same day.
const DuplicateVersionMessage = "A parameter cannot have two versions starting the same day."

type Company struct {
	ID        string
	Name      string  `validate:"required"`
	Country   *string `validate:"omitempty,iso3166_1_alpha2"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Scope selects the country/company a time parameter applies to. A nil
// field means "not scoped" and only matches parameters without that scope.
type Scope struct {
	Country   *string
	CompanyID *string
}

// TimeParameter is a named configuration key whose value changes over time
// through dated versions.
type TimeParameter struct {
	ID          string
	Code        string    `validate:"required"`
	Name        string    `validate:"required"`
	Description string
	Type        ValueType `validate:"required,oneof=date string integer float boolean json"`
	Country     *string   `validate:"omitempty,iso3166_1_alpha2"`
	CompanyID   *string
	JSONSchema  string `validate:"omitempty,json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Normalize upper-cases the country code so "fr" and "FR" scope the same.
func (p *TimeParameter) Normalize() {
	p.Code = strings.TrimSpace(p.Code)
	if p.Country != nil {
		c := strings.ToUpper(strings.TrimSpace(*p.Country))
		if c == "" {
			p.Country = nil
		} else {
			p.Country = &c
		}
	}
}

func (p *TimeParameter) Scope() Scope {
	return Scope{Country: p.Country, CompanyID: p.CompanyID}
}

// TimeParameterVersion is one dated value of a TimeParameter, effective from
// EffectiveDate until a later version supersedes it.
type TimeParameterVersion struct {
	ID            string
	ParameterID   string    `validate:"required"`
	EffectiveDate time.Time `validate:"required"`
	Value         string

	// Related to the parent parameter. Code and CompanyID are persisted
	// copies; Type and Country are read through the parent.
	Code      string
	CompanyID *string
	Type      ValueType
	Country   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Relate copies the parent's related attributes onto the version.
func (v *TimeParameterVersion) Relate(p *TimeParameter) {
	v.ParameterID = p.ID
	v.Code = p.Code
	v.CompanyID = p.CompanyID
	v.Type = p.Type
	v.Country = p.Country
}

// EffectiveOn reports whether the version is in force on date, ignoring
// later versions.
func (v *TimeParameterVersion) EffectiveOn(date time.Time) bool {
	return !TruncateDay(v.EffectiveDate).After(TruncateDay(date))
}

// TruncateDay drops the time of day, keeping the calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
