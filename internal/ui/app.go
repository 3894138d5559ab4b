package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/srcview/internal/config"
	"github.com/user/srcview/internal/render"
	"github.com/user/srcview/internal/source"
	"github.com/user/srcview/internal/symbol"
	"github.com/user/srcview/internal/view"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeGoto
)

// ModelOptions configures the application model
type ModelOptions struct {
	Filepath string
	Config   *config.Config

	// Resolver and ModBase feed the address column
	Resolver symbol.Resolver
	ModBase  uint64

	// SelectAddr selects the line containing this address on startup
	SelectAddr uint64

	// GotoLine scrolls to this 1-based line on startup
	GotoLine int
}

// Model is the main application model
type Model struct {
	viewport *view.Viewport
	source   *source.FileSource
	cfg      *config.Config
	input    textinput.Model

	mode   Mode
	width  int
	height int

	searchTerm    string
	searchResults []int // 0-based line indices with matches
	searchIndex   int

	filename string
}

// NewModel opens the source file and builds the application model
func NewModel(opts ModelOptions) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	src, err := source.NewFileSource(opts.Filepath, source.Options{
		Resolver: opts.Resolver,
		ModBase:  opts.ModBase,
		TabWidth: cfg.Display.TabWidth,
		Mapped:   cfg.Display.UseMmap,
	})
	if err != nil {
		return nil, err
	}

	viewport := view.NewViewport(80, 24, render.NewRow(cfg))
	viewport.SetProvider(src)

	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = 256

	m := &Model{
		viewport: viewport,
		source:   src,
		cfg:      cfg,
		input:    ti,
		mode:     ModeNormal,
		filename: filepath.Base(opts.Filepath),
	}

	if opts.GotoLine > 0 {
		viewport.ScrollSelect(opts.GotoLine - 1)
	}
	if opts.SelectAddr != 0 {
		m.SelectAddr(opts.SelectAddr)
	}

	return m, nil
}

// SelectAddr selects the line the resolver maps addr to
func (m *Model) SelectAddr(addr uint64) {
	line, ok := m.source.LineFromAddr(addr)
	if !ok {
		return
	}
	m.viewport.ScrollSelect(line - 1)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve 2 lines for status bar and help line
		m.viewport.SetSize(msg.Width, msg.Height-2)
		return m, nil
	}

	return m, nil
}

func matches(key string, bindings []string) bool {
	for _, b := range bindings {
		if key == b {
			return true
		}
	}
	return false
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeSearch {
		return m.handleSearchKey(msg)
	}
	if m.mode == ModeGoto {
		return m.handleGotoKey(msg)
	}

	keys := m.cfg.Keybindings
	key := msg.String()

	switch {
	case matches(key, keys.Quit):
		return m, tea.Quit

	case matches(key, keys.ScrollDown):
		m.viewport.ScrollDown(1)
	case matches(key, keys.ScrollUp):
		m.viewport.ScrollUp(1)

	case matches(key, keys.PageDown):
		m.viewport.PageDown()
	case matches(key, keys.PageUp):
		m.viewport.PageUp()

	case matches(key, keys.Top):
		m.viewport.GotoTop()
	case matches(key, keys.Bottom):
		m.viewport.GotoBottom()

	case matches(key, keys.Search):
		m.mode = ModeSearch
		m.input.SetValue("")
		m.input.Placeholder = "Search..."
		m.input.Focus()
		return m, textinput.Blink

	case matches(key, keys.GotoLine):
		m.mode = ModeGoto
		m.input.SetValue("")
		m.input.Placeholder = "Line number..."
		m.input.Focus()
		return m, textinput.Blink

	case matches(key, keys.NextMatch):
		m.nextSearchResult()
	case matches(key, keys.PrevMatch):
		m.prevSearchResult()

	case key == "esc":
		m.viewport.ClearSelection()
	}

	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchTerm = m.input.Value()
		m.performSearch()
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		var lineNum int
		fmt.Sscanf(m.input.Value(), "%d", &lineNum)
		if lineNum > 0 {
			m.viewport.ScrollSelect(lineNum - 1)
		}
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) performSearch() {
	m.searchResults = nil
	if m.searchTerm == "" {
		return
	}

	for i := 0; i < m.source.LineCount(); i++ {
		line, err := m.source.GetLine(i)
		if err != nil || line == nil {
			continue
		}
		if strings.Contains(line.Text, m.searchTerm) {
			m.searchResults = append(m.searchResults, i)
		}
	}

	if len(m.searchResults) > 0 {
		m.searchIndex = 0
		m.viewport.ScrollSelect(m.searchResults[0])
	}
}

func (m *Model) nextSearchResult() {
	if len(m.searchResults) == 0 {
		return
	}
	m.searchIndex = (m.searchIndex + 1) % len(m.searchResults)
	m.viewport.ScrollSelect(m.searchResults[m.searchIndex])
}

func (m *Model) prevSearchResult() {
	if len(m.searchResults) == 0 {
		return
	}
	m.searchIndex--
	if m.searchIndex < 0 {
		m.searchIndex = len(m.searchResults) - 1
	}
	m.viewport.ScrollSelect(m.searchResults[m.searchIndex])
}

// View implements tea.Model
func (m *Model) View() string {
	var builder strings.Builder

	builder.WriteString(m.viewport.Render())
	builder.WriteString("\n")

	statusStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(m.cfg.Theme.StatusBar)).
		Foreground(lipgloss.Color(m.cfg.Theme.StatusBarText)).
		Width(m.width)

	var status string
	switch m.mode {
	case ModeSearch:
		status = "/" + m.input.View()
	case ModeGoto:
		status = ":" + m.input.View()
	default:
		lineInfo := fmt.Sprintf("L%d/%d",
			m.viewport.CurrentLine()+1,
			m.source.LineCount())

		percent := fmt.Sprintf("%.0f%%", m.viewport.PercentScrolled())

		selInfo := ""
		if sel := m.viewport.Selected(); sel >= 0 {
			selInfo = fmt.Sprintf("  [line %d]", sel+1)
		}

		searchInfo := ""
		if m.searchTerm != "" {
			searchInfo = fmt.Sprintf("  [%d matches]", len(m.searchResults))
		}

		status = fmt.Sprintf(" %s  %s  %s%s%s",
			m.filename, lineInfo, percent, selInfo, searchInfo)
	}

	builder.WriteString(statusStyle.Render(status))
	builder.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	help := "j/k:scroll  f/b:page  g/G:top/bottom  ::goto  /:search  n/N:next/prev  q:quit"
	builder.WriteString(helpStyle.Render(help))

	return builder.String()
}

// Close cleans up resources
func (m *Model) Close() error {
	if m.source != nil {
		return m.source.Close()
	}
	return nil
}
