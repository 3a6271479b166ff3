package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/basekit/internal/domain"
)

func FormatEntityTypeList(types []*domain.EntityType) string {
	rows := make([][]string, 0, len(types))
	for _, e := range types {
		rows = append(rows, []string{StyleGreen.Render(e.Model), e.Name})
	}
	return RenderTable([]string{"MODEL", "NAME"}, rows)
}

func FormatStageList(stages []*domain.Stage) string {
	rows := make([][]string, 0, len(stages))
	for _, s := range stages {
		fold := ""
		if s.Fold {
			fold = Dim("folded")
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			Bold(s.Name),
			fmt.Sprintf("%d", s.Sequence),
			fold,
			OrDash(legendSummary(s)),
		})
	}
	return RenderTable([]string{"ID", "NAME", "SEQ", "", "LEGENDS"}, rows)
}

func legendSummary(s *domain.Stage) string {
	var parts []string
	for _, l := range []struct{ label, text string }{
		{"normal", s.LegendNormal},
		{"blocked", s.LegendBlocked},
		{"done", s.LegendDone},
		{"priority", s.LegendPriority},
	} {
		if l.text != "" {
			parts = append(parts, l.label+"="+l.text)
		}
	}
	return strings.Join(parts, ", ")
}

// FormatCardList renders cards with their stage name looked up in stages.
func FormatCardList(cards []*domain.Card, stages map[string]string) string {
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		stage := Dim("--")
		if c.StageID != nil {
			stage = stages[*c.StageID]
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			PriorityStars(c.Priority),
			Bold(c.Name),
			stage,
			StatusPill(c.Status, c.StatusLegend()),
			fmt.Sprintf("%d", c.Sequence),
		})
	}
	return RenderTable([]string{"ID", "PRI", "NAME", "STAGE", "STATUS", "SEQ"}, rows)
}

// FormatCard renders the full detail of one card.
func FormatCard(c *domain.Card, stageName, assignee string) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("%-10s %s\n", Dim(label), value))
	}
	line("ID", c.ID)
	line("Model", c.Model)
	line("Stage", OrDash(stageName))
	line("Priority", PriorityStars(c.Priority)+" "+c.Priority.Label())
	line("Status", StatusPill(c.Status, c.StatusLegend()))
	line("Sequence", fmt.Sprintf("%d", c.Sequence))
	line("Assignee", OrDash(assignee))
	if c.Description != "" {
		b.WriteString("\n" + c.Description + "\n")
	}
	return RenderBox(c.Name, strings.TrimRight(b.String(), "\n"))
}

func FormatUserList(users []*domain.User, current string) string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		login := u.Login
		if u.Login == current {
			login = StyleGreen.Render(login + " *")
		}
		rows = append(rows, []string{login, OrDash(u.Name), u.Lang})
	}
	return RenderTable([]string{"LOGIN", "NAME", "LANG"}, rows)
}

func FormatLanguageList(langs []*domain.Language) string {
	rows := make([][]string, 0, len(langs))
	for _, l := range langs {
		rows = append(rows, []string{l.Code, l.Name, l.DateFormat})
	}
	return RenderTable([]string{"CODE", "NAME", "DATE FORMAT"}, rows)
}

func FormatCompanyList(companies []*domain.Company) string {
	rows := make([][]string, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, []string{TruncID(c.ID), Bold(c.Name), OrDash(domain.StrOrEmpty(c.Country))})
	}
	return RenderTable([]string{"ID", "NAME", "COUNTRY"}, rows)
}
