// Package render draws dashboard pages for a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/rpggio/mlaconnect/internal/dashboard"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	oddStyle    = cellStyle.Faint(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// MaxCellWidth truncates long cells such as grievance descriptions.
const MaxCellWidth = 40

// Table renders the result as a bordered table followed by a footer line.
func Table(res *dashboard.Result) string {
	headers := make([]string, len(res.Columns))
	for i, col := range res.Columns {
		headers[i] = headerText(col.Header, col.ID)
		for _, key := range res.Sort {
			if key.Column == col.ID {
				headers[i] += sortMarker(key.Desc)
			}
		}
	}

	rows := make([][]string, len(res.Rows))
	for i, cells := range res.Rows {
		row := make([]string, len(res.Columns))
		for j, col := range res.Columns {
			row[j] = ansi.Truncate(cells[col.ID], MaxCellWidth, "…")
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 1:
				return oddStyle
			default:
				return cellStyle
			}
		}).
		Headers(headers...).
		Rows(rows...)

	return t.Render() + "\n" + footerStyle.Render(Footer(res))
}

// Footer summarises the page position and filter counts.
func Footer(res *dashboard.Result) string {
	return fmt.Sprintf("page %d/%d · %d of %d rows", res.PageIndex+1, res.PageCount, res.Filtered, res.Total)
}

// Tables lists the served tables one per line with their column ids.
func Tables(w io.Writer, infos []dashboard.TableInfo) error {
	for _, info := range infos {
		ids := make([]string, 0, len(info.Columns))
		for _, col := range info.Columns {
			id := col.ID
			if !col.Visible {
				id = "(" + id + ")"
			}
			ids = append(ids, id)
		}
		if _, err := fmt.Fprintf(w, "%-16s %s\n", info.Name, strings.Join(ids, " ")); err != nil {
			return err
		}
	}
	return nil
}

func headerText(header, id string) string {
	if header != "" {
		return header
	}
	return id
}

func sortMarker(desc bool) string {
	if desc {
		return " ↓"
	}
	return " ↑"
}
