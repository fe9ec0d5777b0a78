package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Table struct {
	headers []string
	rows    [][]string
}

func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func (t *Table) String() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := t.columnWidths()
	var sb strings.Builder

	writeBorder := func() {
		sb.WriteString("+")
		for _, w := range widths {
			sb.WriteString(strings.Repeat("-", w+2))
			sb.WriteString("+")
		}
		sb.WriteString("\n")
	}
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(" ")
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", w-len(cell)))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeBorder()
	writeRow(t.headers)
	writeBorder()
	for _, row := range t.rows {
		writeRow(row)
	}
	writeBorder()

	return strings.TrimSuffix(sb.String(), "\n")
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	sectionStyle = lipgloss.NewStyle().Faint(true)
)

// FormatHeader renders a prominent section header.
func FormatHeader(title string) string {
	return headerStyle.Render(title)
}

// FormatSectionTitle renders a minor section title.
func FormatSectionTitle(title string) string {
	return sectionStyle.Render("-- " + title + " --")
}
