package results

import "sync"

// Surface is the display the sink drives. Implementations must not call back
// into the Sink.
type Surface interface {
	ShowError(message string)
	HideError()
	SetEntries(entries []Entry) // newest first
	SetEmptyStateVisible(visible bool)
	SetClearResultsVisible(visible bool)
}

// NopSurface discards every update
type NopSurface struct{}

func (NopSurface) ShowError(string)            {}
func (NopSurface) HideError()                  {}
func (NopSurface) SetEntries([]Entry)          {}
func (NopSurface) SetEmptyStateVisible(bool)   {}
func (NopSurface) SetClearResultsVisible(bool) {}

// Sink owns the rendered entries, most recent first. Entries are only ever
// inserted at the head or cleared as a whole.
type Sink struct {
	mu       sync.Mutex
	entries  []Entry
	errorMsg string
	hasError bool
	surface  Surface
}

// NewSink creates an empty sink and syncs surface to it
func NewSink(surface Surface) *Sink {
	if surface == nil {
		surface = NopSurface{}
	}
	s := &Sink{surface: surface}
	s.publish(nil)
	return s
}

// Push inserts entry at the head
func (s *Sink) Push(entry Entry) {
	s.mu.Lock()
	entries := make([]Entry, 0, len(s.entries)+1)
	entries = append(entries, entry)
	entries = append(entries, s.entries...)
	s.entries = entries
	snapshot := s.copyEntries()
	s.mu.Unlock()

	s.publish(snapshot)
}

// Clear removes every entry. The error banner is left as is.
func (s *Sink) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()

	s.publish(nil)
}

// ShowError sets the banner text without touching entries
func (s *Sink) ShowError(message string) {
	s.mu.Lock()
	s.errorMsg = message
	s.hasError = true
	s.mu.Unlock()

	s.surface.ShowError(message)
}

// HideError hides the banner without touching entries
func (s *Sink) HideError() {
	s.mu.Lock()
	s.errorMsg = ""
	s.hasError = false
	s.mu.Unlock()

	s.surface.HideError()
}

// Entries returns a copy of the entries, newest first
func (s *Sink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyEntries()
}

// Len returns the number of entries
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Error returns the banner text and whether it is visible
func (s *Sink) Error() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorMsg, s.hasError
}

func (s *Sink) copyEntries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// publish pushes entries and the derived affordances to the surface
func (s *Sink) publish(entries []Entry) {
	if entries == nil {
		entries = []Entry{}
	}
	hasEntries := len(entries) > 0
	s.surface.SetEntries(entries)
	s.surface.SetEmptyStateVisible(!hasEntries)
	s.surface.SetClearResultsVisible(hasEntries)
}
