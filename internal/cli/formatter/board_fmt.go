package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// BoardColumn is one stage column of a rendered board.
type BoardColumn struct {
	// Stage is nil for the column of unstaged cards.
	Stage *domain.Stage
	Cards []*domain.Card
}

// ColumnWidth is the inner width of a board column.
const ColumnWidth = 26

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Width(ColumnWidth).
			Padding(0, 1)
	foldedColumnStyle = columnStyle.Width(12)
	selectedCardStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
)

// ColumnTitle is the stage name, or "Unstaged" for the nil stage.
func ColumnTitle(stage *domain.Stage) string {
	if stage == nil {
		return "Unstaged"
	}
	return stage.Name
}

// CardLine renders a card as one line: stars, status dot and name.
func CardLine(c *domain.Card, width int) string {
	prefix := PriorityStars(c.Priority) + " " + StatusDot(c.Status) + " "
	return prefix + Truncate(c.Name, width-lipgloss.Width(prefix))
}

// RenderColumn draws one column. selected is the index of the highlighted
// card, or -1. Folded stages collapse to their title and card count.
func RenderColumn(col BoardColumn, selected int, focused bool) string {
	title := ColumnTitle(col.Stage)
	style := columnStyle
	if focused {
		style = style.BorderForeground(ColorHeader)
	}

	if col.Stage != nil && col.Stage.Fold {
		style = foldedColumnStyle
		if focused {
			style = style.BorderForeground(ColorHeader)
		}
		return style.Render(StyleHeader.Render(Truncate(title, 10)) + "\n" +
			Dim(fmt.Sprintf("%d folded", len(col.Cards))))
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Render(Truncate(title, ColumnWidth-6)))
	b.WriteString(Dim(fmt.Sprintf(" (%d)", len(col.Cards))))
	b.WriteString("\n")
	if len(col.Cards) == 0 {
		b.WriteString(Dim("empty"))
	}
	for i, c := range col.Cards {
		line := CardLine(c, ColumnWidth-2)
		if i == selected {
			line = selectedCardStyle.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(col.Cards)-1 {
			b.WriteString("\n")
		}
	}
	return style.Render(b.String())
}

// FormatBoard renders every column side by side.
func FormatBoard(model string, columns []BoardColumn) string {
	rendered := make([]string, 0, len(columns))
	for _, col := range columns {
		rendered = append(rendered, RenderColumn(col, -1, false))
	}
	var b strings.Builder
	b.WriteString(Header(model))
	b.WriteString("\n")
	if len(rendered) == 0 {
		b.WriteString(Dim("No stages or cards."))
		return b.String()
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	return b.String()
}
