package formatter

import (
	"testing"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testCard(id, name string, p domain.Priority, s domain.Status) *domain.Card {
	c := &domain.Card{ID: id, Model: "project.task", Name: name, Kanban: domain.NewKanban()}
	c.Priority = p
	c.Status = s
	return c
}

func TestFormatBoard_ColumnsAndCards(t *testing.T) {
	todo := &domain.Stage{ID: "s1", Name: "Todo", Model: "project.task"}
	done := &domain.Stage{ID: "s2", Name: "Done", Model: "project.task"}

	out := FormatBoard("project.task", []BoardColumn{
		{Stage: todo, Cards: []*domain.Card{testCard("c1", "Write docs", domain.PriorityHigh, domain.StatusNormal)}},
		{Stage: done},
		{Stage: nil, Cards: []*domain.Card{testCard("c2", "Loose end", domain.PriorityNormal, domain.StatusBlocked)}},
	})

	assert.Contains(t, out, "PROJECT.TASK")
	assert.Contains(t, out, "Todo")
	assert.Contains(t, out, "Write docs")
	assert.Contains(t, out, "Done")
	assert.Contains(t, out, "empty")
	assert.Contains(t, out, "Unstaged")
	assert.Contains(t, out, "Loose end")
}

func TestFormatBoard_NoColumns(t *testing.T) {
	assert.Contains(t, FormatBoard("project.task", nil), "No stages or cards.")
}

func TestRenderColumn_Folded(t *testing.T) {
	stage := &domain.Stage{ID: "s1", Name: "Archive", Model: "project.task", Fold: true}
	out := RenderColumn(BoardColumn{Stage: stage, Cards: []*domain.Card{
		testCard("c1", "Old", domain.PriorityNormal, domain.StatusDone),
		testCard("c2", "Older", domain.PriorityNormal, domain.StatusDone),
	}}, -1, false)

	assert.Contains(t, out, "2 folded")
	assert.NotContains(t, out, "Older")
}

func TestRenderColumn_SelectedMarker(t *testing.T) {
	stage := &domain.Stage{ID: "s1", Name: "Todo", Model: "project.task"}
	col := BoardColumn{Stage: stage, Cards: []*domain.Card{
		testCard("c1", "First", domain.PriorityNormal, domain.StatusNormal),
		testCard("c2", "Second", domain.PriorityNormal, domain.StatusNormal),
	}}

	assert.Contains(t, RenderColumn(col, 1, true), "▸")
	assert.NotContains(t, RenderColumn(col, -1, false), "▸")
}

func TestCardLine_TruncatesLongNames(t *testing.T) {
	c := testCard("c1", "A card name that is far too long for a column", domain.PriorityNormal, domain.StatusNormal)
	line := CardLine(c, 20)
	assert.Contains(t, line, "…")
	assert.NotContains(t, line, "column")
}
