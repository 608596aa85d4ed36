package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yumyai/genecanvas/pkg/db"
)

// RenderTemplates writes the catalog as a table.
func RenderTemplates(w io.Writer, templates []db.Template) error {
	st := newStyles(w)
	if len(templates) == 0 {
		_, err := fmt.Fprintln(w, st.muted.Render("No templates."))
		return err
	}

	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		hasSeq := "no"
		if t.Sequence != "" {
			hasSeq = "yes"
		}
		rows = append(rows, []string{t.ID, t.Name, t.Category, strconv.Itoa(t.Length), hasSeq})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "CATEGORY", "LENGTH", "SEQUENCE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	_, err := fmt.Fprintln(w, tbl.String())
	return err
}
