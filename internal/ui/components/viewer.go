package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Viewer is a vertically scrollable block of pre-rendered text
type Viewer struct {
	Title  string
	Height int

	lines  []string
	offset int
}

// NewViewer creates a viewer showing height lines at a time
func NewViewer(title string, height int) *Viewer {
	return &Viewer{Title: title, Height: height}
}

// SetContent replaces the text and scrolls back to the top
func (v *Viewer) SetContent(content string) {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		v.lines = nil
	} else {
		v.lines = strings.Split(content, "\n")
	}
	v.offset = 0
}

// SetHeight changes the visible line count, keeping the offset in range
func (v *Viewer) SetHeight(height int) {
	v.Height = max(1, height)
	v.clamp()
}

// ScrollDown moves down n lines and reports whether the view moved
func (v *Viewer) ScrollDown(n int) bool {
	before := v.offset
	v.offset += n
	v.clamp()
	return v.offset != before
}

// ScrollUp moves up n lines and reports whether the view moved
func (v *Viewer) ScrollUp(n int) bool {
	before := v.offset
	v.offset -= n
	v.clamp()
	return v.offset != before
}

// Offset returns the first visible line index
func (v *Viewer) Offset() int {
	return v.offset
}

// LineCount returns the number of content lines
func (v *Viewer) LineCount() int {
	return len(v.lines)
}

// Render renders the visible lines with a position indicator in the title
func (v *Viewer) Render(header, muted lipgloss.Style) string {
	if len(v.lines) == 0 {
		return header.Render(v.Title)
	}

	end := min(len(v.lines), v.offset+v.Height)
	title := v.Title
	if len(v.lines) > v.Height {
		title = fmt.Sprintf("%s %s", v.Title, muted.Render(fmt.Sprintf("(%d-%d/%d)", v.offset+1, end, len(v.lines))))
	}

	content := []string{header.Render(title)}
	content = append(content, v.lines[v.offset:end]...)
	return lipgloss.JoinVertical(lipgloss.Left, content...)
}

func (v *Viewer) clamp() {
	maxOffset := max(0, len(v.lines)-v.Height)
	v.offset = min(max(0, v.offset), maxOffset)
}
