package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/TextLens/internal/results"
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramSurface forwards display updates to a bubbletea program. Updates
// before Attach are dropped; the model reads the initial state itself.
//
// Controller calls made from Update run on the program's event loop, and
// Send blocks until that loop reads the message. Updates are therefore
// queued in order and delivered by a separate goroutine.
type ProgramSurface struct {
	mu     sync.Mutex
	sender Sender
	queue  []tea.Msg
	wake   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewProgramSurface returns a detached surface
func NewProgramSurface() *ProgramSurface {
	return &ProgramSurface{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Attach starts forwarding updates to s
func (p *ProgramSurface) Attach(s Sender) {
	p.mu.Lock()
	first := p.sender == nil
	p.sender = s
	p.mu.Unlock()
	if first {
		go p.deliver()
	}
}

// Close stops delivery. Queued updates are discarded.
func (p *ProgramSurface) Close() {
	p.once.Do(func() { close(p.done) })
}

func (p *ProgramSurface) send(msg tea.Msg) {
	p.mu.Lock()
	if p.sender == nil {
		p.mu.Unlock()
		return
	}
	p.queue = append(p.queue, msg)
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *ProgramSurface) deliver() {
	for {
		select {
		case <-p.done:
			return
		case <-p.wake:
		}
		for {
			p.mu.Lock()
			if len(p.queue) == 0 {
				p.mu.Unlock()
				break
			}
			msg := p.queue[0]
			p.queue[0] = nil
			p.queue = p.queue[1:]
			s := p.sender
			p.mu.Unlock()

			select {
			case <-p.done:
				return
			default:
			}
			s.Send(msg)
		}
	}
}

func (p *ProgramSurface) ShowError(message string) {
	p.send(errorBannerMsg{message: message, visible: true})
}

func (p *ProgramSurface) HideError() {
	p.send(errorBannerMsg{})
}

func (p *ProgramSurface) SetEntries(entries []results.Entry) {
	p.send(entriesMsg{entries: entries})
}

func (p *ProgramSurface) SetEmptyStateVisible(visible bool) {
	p.send(emptyStateMsg(visible))
}

func (p *ProgramSurface) SetClearResultsVisible(visible bool) {
	p.send(clearResultsMsg(visible))
}

func (p *ProgramSurface) SetCharCount(n int) {
	p.send(charCountMsg(n))
}

func (p *ProgramSurface) SetBusy(busy bool) {
	p.send(busyMsg(busy))
}
