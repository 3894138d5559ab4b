package view

import (
	"fmt"
	"strings"

	"github.com/user/srcview/internal/render"
	"github.com/user/srcview/internal/source"
)

// Viewport manages the visible portion of a source table. It knows
// nothing about files, resolvers or key handling; it only displays
// rows from a LineProvider and tracks scroll and selection state.
type Viewport struct {
	provider source.LineProvider
	renderer *render.Row

	width  int
	height int

	scrollOffset int
	selected     int // 0-based line index, -1 for none
}

// NewViewport creates a viewport with the given dimensions
func NewViewport(width, height int, renderer *render.Row) *Viewport {
	return &Viewport{
		width:    width,
		height:   height,
		renderer: renderer,
		selected: -1,
	}
}

// SetProvider sets the line provider and resets position
func (v *Viewport) SetProvider(provider source.LineProvider) {
	v.provider = provider
	v.scrollOffset = 0
	v.selected = -1
}

// SetSize updates viewport dimensions
func (v *Viewport) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampScroll()
}

// ScrollDown scrolls down by n lines
func (v *Viewport) ScrollDown(n int) {
	v.scrollOffset += n
	v.clampScroll()
}

// ScrollUp scrolls up by n lines
func (v *Viewport) ScrollUp(n int) {
	v.scrollOffset -= n
	v.clampScroll()
}

// PageDown scrolls down by one page
func (v *Viewport) PageDown() {
	v.ScrollDown(v.height - 1)
}

// PageUp scrolls up by one page
func (v *Viewport) PageUp() {
	v.ScrollUp(v.height - 1)
}

// GotoTop scrolls to the beginning
func (v *Viewport) GotoTop() {
	v.scrollOffset = 0
}

// GotoBottom scrolls to the end
func (v *Viewport) GotoBottom() {
	if v.provider == nil {
		return
	}
	v.scrollOffset = v.provider.LineCount() - v.height
	v.clampScroll()
}

// GotoLine scrolls so the 0-based line is at the top
func (v *Viewport) GotoLine(line int) {
	v.scrollOffset = line
	v.clampScroll()
}

// ScrollSelect selects the 0-based line and scrolls it into view,
// centered when possible.
func (v *Viewport) ScrollSelect(line int) {
	if v.provider == nil {
		return
	}
	if line < 0 || line >= v.provider.LineCount() {
		return
	}
	v.selected = line
	if line < v.scrollOffset || line >= v.scrollOffset+v.height {
		v.scrollOffset = line - v.height/2
		v.clampScroll()
	}
}

// Selected returns the selected 0-based line, -1 for none
func (v *Viewport) Selected() int {
	return v.selected
}

// ClearSelection removes the selection
func (v *Viewport) ClearSelection() {
	v.selected = -1
}

// CurrentLine returns the current top line number
func (v *Viewport) CurrentLine() int {
	return v.scrollOffset
}

// clampScroll ensures scroll offset is within valid bounds
func (v *Viewport) clampScroll() {
	if v.provider == nil {
		v.scrollOffset = 0
		return
	}

	maxScroll := v.provider.LineCount() - v.height
	if maxScroll < 0 {
		maxScroll = 0
	}

	if v.scrollOffset > maxScroll {
		v.scrollOffset = maxScroll
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

// Render returns the viewport content as a string
func (v *Viewport) Render() string {
	if v.provider == nil {
		return ""
	}

	lines, err := v.provider.GetLines(v.scrollOffset, v.height)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	numWidth := len(fmt.Sprintf("%d", v.provider.LineCount()))

	var builder strings.Builder
	for i, line := range lines {
		if i > 0 {
			builder.WriteString("\n")
		}
		selected := v.selected >= 0 && v.scrollOffset+i == v.selected
		builder.WriteString(v.renderer.Render(line, numWidth, selected))
	}

	// Pad with empty lines if needed
	for i := len(lines); i < v.height; i++ {
		if i > 0 || len(lines) > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("~")
	}

	return builder.String()
}

// PercentScrolled returns how far through the file we are
func (v *Viewport) PercentScrolled() float64 {
	if v.provider == nil || v.provider.LineCount() == 0 {
		return 0
	}

	total := v.provider.LineCount()
	if total <= v.height {
		return 100
	}

	return float64(v.scrollOffset) / float64(total-v.height) * 100
}
