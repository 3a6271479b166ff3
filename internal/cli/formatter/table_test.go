package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"CODE", "VALUE"}, [][]string{
		{"min_wage", "11.65"},
		{"vat", StyleGreen.Render("20")},
	})

	lines := strings.Split(out, "\n")
	assert.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[0], "CODE")
	assert.Contains(t, lines[1], "─")
	assert.Equal(t, strings.Index(lines[2], "11.65"), strings.Index(lines[3], "20"))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, [][]string{{"x"}}))
}
