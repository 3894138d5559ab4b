package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/srcview/internal/config"
	"github.com/user/srcview/internal/source"
)

// Hex digits in a rendered pointer, matching a 64-bit debugger's
// address column.
const addrDigits = 16

// Row formats one source line into the Address | Line | Code columns
type Row struct {
	addrStyle     lipgloss.Style
	lineNumStyle  lipgloss.Style
	codeStyle     lipgloss.Style
	selectedStyle lipgloss.Style

	showAddresses   bool
	showLineNumbers bool
}

// NewRow builds a row renderer from the configured theme
func NewRow(cfg *config.Config) *Row {
	return &Row{
		addrStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Address)),
		lineNumStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.LineNumbers)),
		codeStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Code)),
		selectedStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Selection)).Bold(true),
		showAddresses:   cfg.Display.ShowAddresses,
		showLineNumbers: cfg.Display.ShowLineNumbers,
	}
}

// FormatAddr renders addr as a fixed-width hex pointer. Rows without
// a resolved address get a blank cell of the same width.
func FormatAddr(addr uint64, ok bool) string {
	if !ok {
		return strings.Repeat(" ", addrDigits)
	}
	return fmt.Sprintf("%0*X", addrDigits, addr)
}

// Render returns the styled row text. numWidth is the width of the
// line number column, sized by the caller from the total line count.
func (r *Row) Render(line *source.Line, numWidth int, selected bool) string {
	var b strings.Builder

	if r.showAddresses {
		cell := FormatAddr(line.Addr, line.HasAddr)
		if selected && line.HasAddr {
			b.WriteString(r.selectedStyle.Render(cell))
		} else {
			b.WriteString(r.addrStyle.Render(cell))
		}
		b.WriteString(" ")
	}

	if r.showLineNumbers {
		cell := fmt.Sprintf("%*d", numWidth, line.Number)
		if selected {
			b.WriteString(r.selectedStyle.Render(cell))
		} else {
			b.WriteString(r.lineNumStyle.Render(cell))
		}
		b.WriteString(" ")
	}

	if selected {
		b.WriteString(r.selectedStyle.Render(line.Text))
	} else {
		b.WriteString(r.codeStyle.Render(line.Text))
	}

	return b.String()
}
