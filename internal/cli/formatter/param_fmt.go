package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/basekit/internal/domain"
)

// FormatParameterList renders parameters with their scope. companies maps
// company ids to names.
func FormatParameterList(params []*domain.TimeParameter, companies map[string]string) string {
	rows := make([][]string, 0, len(params))
	for _, p := range params {
		rows = append(rows, []string{
			TruncID(p.ID),
			StyleGreen.Render(p.Code),
			p.Name,
			TypeBadge(p.Type),
			OrDash(domain.StrOrEmpty(p.Country)),
			OrDash(companies[domain.StrOrEmpty(p.CompanyID)]),
		})
	}
	return RenderTable([]string{"ID", "CODE", "NAME", "TYPE", "COUNTRY", "COMPANY"}, rows)
}

// FormatParameter renders a parameter and its versions, most recent first,
// marking the version in force on now.
func FormatParameter(p *domain.TimeParameter, companyName string, versions []*domain.TimeParameterVersion, now time.Time) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("%-12s %s\n", Dim(label), value))
	}
	line("ID", p.ID)
	line("Code", StyleGreen.Render(p.Code))
	line("Type", TypeBadge(p.Type))
	line("Country", OrDash(domain.StrOrEmpty(p.Country)))
	line("Company", OrDash(companyName))
	if p.Description != "" {
		line("Description", p.Description)
	}
	if p.JSONSchema != "" {
		line("JSON schema", Dim(Truncate(p.JSONSchema, 60)))
	}
	b.WriteString("\n")
	if len(versions) == 0 {
		b.WriteString(Dim("No versions."))
	} else {
		b.WriteString(FormatVersionList(versions, now))
	}
	return RenderBox(p.Name, strings.TrimRight(b.String(), "\n"))
}

// FormatVersionList renders versions given most recent first. The version
// in force on now is marked.
func FormatVersionList(versions []*domain.TimeParameterVersion, now time.Time) string {
	current := -1
	for i, v := range versions {
		if v.EffectiveOn(now) {
			current = i
			break
		}
	}

	rows := make([][]string, 0, len(versions))
	for i, v := range versions {
		marker := ""
		if i == current {
			marker = StyleGreen.Render("●")
		}
		rows = append(rows, []string{
			marker,
			v.EffectiveDate.Format("2006-01-02"),
			Dim(RelativeDateFrom(v.EffectiveDate, domain.TruncateDay(now))),
			OrDash(v.Value),
			TruncID(v.ID),
		})
	}
	return RenderTable([]string{"", "EFFECTIVE", "", "VALUE", "ID"}, rows)
}

// FormatAuditFindings renders audit findings, or a green all-clear line.
func FormatAuditFindings(findings []AuditRow) string {
	if len(findings) == 0 {
		return StyleGreen.Render("✔ All stored values conform to their parameter types.")
	}
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		date := Dim("--")
		if !f.EffectiveDate.IsZero() {
			date = f.EffectiveDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			StyleGreen.Render(f.Code),
			TypeBadge(f.Type),
			date,
			OrDash(Truncate(f.Value, 24)),
			StyleRed.Render(f.Problem),
		})
	}
	summary := StyleYellow.Render(fmt.Sprintf("%d non-conforming value(s)", len(findings)))
	return summary + "\n\n" + RenderTable([]string{"CODE", "TYPE", "EFFECTIVE", "VALUE", "PROBLEM"}, rows)
}

// AuditRow is the display form of one audit finding.
type AuditRow struct {
	Code          string
	Type          domain.ValueType
	EffectiveDate time.Time
	Value         string
	Problem       string
}
