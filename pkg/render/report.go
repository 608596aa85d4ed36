// Package render writes design analysis reports for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yumyai/genecanvas/pkg/circuit"
	"github.com/yumyai/genecanvas/pkg/compose"
)

var headerTemplate = template.Must(template.New("report_header").Parse(
	`{{ .Title }}
Background: {{ .BackgroundLength }} bp   Composed: {{ .ComposedLength }} bp   Parts: {{ .Placed }} placed, {{ .Floating }} floating
`))

// Report is everything the text report shows about one design.
type Report struct {
	Name             string
	BackgroundLength int
	ComposedLength   int
	Elements         []circuit.Element
	Floating         []compose.Part
	Operons          []circuit.Operon
	Summary          circuit.Summary
}

// NewReport analyzes the editor's current layout.
func NewReport(name string, e *compose.Editor) Report {
	layout := e.Layout()
	parts := e.Parts()

	var floating []compose.Part
	for _, p := range parts {
		if !p.Placed {
			floating = append(floating, p)
		}
	}

	elements := circuit.ElementsFromLayout(parts, layout)
	operons := circuit.Analyze(elements)
	return Report{
		Name:             name,
		BackgroundLength: layout.BackgroundLength,
		ComposedLength:   layout.Len(),
		Elements:         elements,
		Floating:         floating,
		Operons:          operons,
		Summary:          circuit.Summarize(operons),
	}
}

type styles struct {
	title, header, ok, warn, muted lipgloss.Style
}

func newStyles(w io.Writer) styles {
	re := lipgloss.NewRenderer(w)
	return styles{
		title:  re.NewStyle().Bold(true).Foreground(lipgloss.Color("#2CD7C7")),
		header: re.NewStyle().Bold(true).Padding(0, 1),
		ok:     re.NewStyle().Foreground(lipgloss.Color("#2CD7C7")),
		warn:   re.NewStyle().Foreground(lipgloss.Color("#F4D03F")),
		muted:  re.NewStyle().Foreground(lipgloss.Color("#2C4A54")),
	}
}

// RenderReport writes the header, the part table, the operon table and the
// warnings. Colors are dropped when w is not a terminal.
func RenderReport(w io.Writer, rep Report) error {
	st := newStyles(w)

	title := rep.Name
	if title == "" {
		title = "Design"
	}
	var header strings.Builder
	if err := headerTemplate.Execute(&header, map[string]any{
		"Title":            st.title.Render(title),
		"BackgroundLength": rep.BackgroundLength,
		"ComposedLength":   rep.ComposedLength,
		"Placed":           len(rep.Elements),
		"Floating":         len(rep.Floating),
	}); err != nil {
		return err
	}

	sections := []string{header.String(), partsTable(rep, st).String()}
	if len(rep.Operons) == 0 {
		sections = append(sections, st.muted.Render("No operons found."))
	} else {
		sections = append(sections, operonTable(rep.Operons, st).String())
		if warnings := warningLines(rep.Operons, st); warnings != "" {
			sections = append(sections, warnings)
		}
	}
	sections = append(sections, summaryLine(rep.Summary))

	_, err := fmt.Fprintln(w, strings.Join(sections, "\n"))
	return err
}

func partsTable(rep Report, st styles) *table.Table {
	rows := make([][]string, 0, len(rep.Elements)+len(rep.Floating))
	for _, el := range rep.Elements {
		rows = append(rows, []string{
			el.ID, el.Name, el.Kind.String(),
			strconv.Itoa(el.Start), strconv.Itoa(el.End), strconv.Itoa(el.End - el.Start),
		})
	}
	for _, p := range rep.Floating {
		rows = append(rows, []string{
			p.ID, p.Name, circuit.Classify(p.Category).String(), "-", "-", strconv.Itoa(p.Len()),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "KIND", "START", "END", "LENGTH").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func operonTable(operons []circuit.Operon, st styles) *table.Table {
	rows := make([][]string, 0, len(operons))
	for _, o := range operons {
		genes := make([]string, 0, len(o.Pairs))
		for _, g := range o.Genes() {
			genes = append(genes, g.Name)
		}
		terminator := "-"
		if o.Terminator != nil {
			terminator = o.Terminator.Name
		}
		status := "valid"
		if !o.Valid {
			status = fmt.Sprintf("%d warning(s)", len(o.Warnings))
		}
		rows = append(rows, []string{
			o.ID, o.Promoter.Name, strings.Join(genes, ", "), terminator,
			fmt.Sprintf("%d-%d", o.Start, o.End), status,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("OPERON", "PROMOTER", "GENES", "TERMINATOR", "SPAN", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.header
			case col == 5 && operons[row].Valid:
				return st.ok.Padding(0, 1)
			case col == 5:
				return st.warn.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func warningLines(operons []circuit.Operon, st styles) string {
	var b strings.Builder
	for _, o := range operons {
		for _, w := range o.Warnings {
			b.WriteString(st.warn.Render(fmt.Sprintf("! %s: %s", o.ID, w)))
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func summaryLine(s circuit.Summary) string {
	return fmt.Sprintf("%d operon(s): %d valid, %d invalid; %d gene(s); %d warning(s)",
		s.Operons, s.Valid, s.Invalid, s.Genes, s.Warnings)
}
