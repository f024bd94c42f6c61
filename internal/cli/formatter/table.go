package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Column describes one table column. Right-aligned columns suit numbers.
type Column struct {
	Header string
	Right  bool
}

// Cols builds left-aligned columns from header names.
func Cols(headers ...string) []Column {
	out := make([]Column, len(headers))
	for i, h := range headers {
		out[i] = Column{Header: h}
	}
	return out
}

// RenderTable renders an aligned table with a header separator line. Widths
// are measured on visible text so styled cells line up.
func RenderTable(cols []Column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c.Header)
	}
	for _, row := range rows {
		for i := 0; i < len(cols) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	headers := make([]string, len(cols))
	seps := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = StyleHeader.Render(c.Header)
		seps[i] = StyleDim.Render(strings.Repeat("─", widths[i]))
	}
	writeRow(&b, cols, widths, headers)
	writeRow(&b, cols, widths, seps)
	for _, row := range rows {
		writeRow(&b, cols, widths, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cols []Column, widths []int, cells []string) {
	for i := range cols {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", max(widths[i]-lipgloss.Width(cell), 0))
		last := i == len(cols)-1
		switch {
		case cols[i].Right:
			b.WriteString(pad + cell)
		case last:
			b.WriteString(cell)
		default:
			b.WriteString(cell + pad)
		}
		if !last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}
