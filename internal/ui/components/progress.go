package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner represents a spinning progress indicator
type Spinner struct {
	Frame     int
	StartTime time.Time
	Label     string
	Style     lipgloss.Style
}

// NewSpinner creates a new spinner
func NewSpinner(style lipgloss.Style) *Spinner {
	return &Spinner{
		StartTime: time.Now(),
		Style:     style,
	}
}

// Start resets the elapsed time and sets the label
func (s *Spinner) Start(label string) {
	s.Frame = 0
	s.StartTime = time.Now()
	s.Label = label
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Elapsed returns the time since Start
func (s *Spinner) Elapsed() time.Duration {
	return time.Since(s.StartTime)
}

// Render renders the spinner, its label and elapsed seconds
func (s *Spinner) Render() string {
	spinner := s.Style.Render(spinnerFrames[s.Frame])
	if s.Label == "" {
		return spinner
	}
	return fmt.Sprintf("%s %s (%.0fs)", spinner, s.Label, s.Elapsed().Seconds())
}
