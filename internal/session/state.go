package session

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/yildizm/TextLens/internal/analysis"
)

// Snapshot is a point-in-time copy of the session state
type Snapshot struct {
	Text         string
	CharCount    int
	SelectedKind analysis.Kind
	Busy         bool
	ErrorMessage string
	HasError     bool
	CanSubmit    bool
}

// State holds the input text, selected kind, busy flag and error message.
// While busy, SetText, SelectKind and ClearAll are rejected.
type State struct {
	mu           sync.RWMutex
	text         string
	charCount    int
	selectedKind analysis.Kind
	busy         bool
	errorMessage string
	hasError     bool
}

// New returns an idle state with summarize selected
func New() *State {
	return &State{selectedKind: analysis.KindSummarize}
}

// SetText replaces the input text. It reports false while busy.
func (s *State) SetText(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return false
	}
	s.text = text
	s.charCount = utf8.RuneCountInString(text)
	return true
}

// SelectKind selects kind. It reports false while busy or for an unknown kind.
func (s *State) SelectKind(kind analysis.Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy || !kind.Valid() {
		return false
	}
	s.selectedKind = kind
	return true
}

// BeginBusy marks a request as outstanding. It reports false if one already is.
func (s *State) BeginBusy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return false
	}
	s.busy = true
	return true
}

// EndBusy releases the busy flag
func (s *State) EndBusy() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// IsBusy reports whether a request is outstanding
func (s *State) IsBusy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

// SetError records the current error message
func (s *State) SetError(message string) {
	s.mu.Lock()
	s.errorMessage = message
	s.hasError = true
	s.mu.Unlock()
}

// ClearError clears the current error message
func (s *State) ClearError() {
	s.mu.Lock()
	s.errorMessage = ""
	s.hasError = false
	s.mu.Unlock()
}

// ClearAll resets text, character count and error. It reports false while busy.
func (s *State) ClearAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return false
	}
	s.text = ""
	s.charCount = 0
	s.errorMessage = ""
	s.hasError = false
	return true
}

// Text returns the current input text
func (s *State) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// SelectedKind returns the selected kind
func (s *State) SelectedKind() analysis.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedKind
}

// CanSubmit reports whether a request may be sent now
func (s *State) CanSubmit() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.busy && HasContent(s.text)
}

// Snapshot returns a copy of the state
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Text:         s.text,
		CharCount:    s.charCount,
		SelectedKind: s.selectedKind,
		Busy:         s.busy,
		ErrorMessage: s.errorMessage,
		HasError:     s.hasError,
		CanSubmit:    !s.busy && HasContent(s.text),
	}
}

// HasContent reports whether text has anything besides whitespace
func HasContent(text string) bool {
	return strings.TrimSpace(text) != ""
}
