package tui

import (
	"sync"

	"github.com/de-tools/irevolution/pkg/models/domain"
	tea "github.com/charmbracelet/bubbletea"
)

type rowsMsg struct {
	rows []domain.ProductRow
}

type valueMsg struct {
	slot domain.Slot
	text string
}

// ProgramView forwards the dashboard output to a running program. Calls
// made before the program is attached are dropped.
type ProgramView struct {
	mu      sync.RWMutex
	program *tea.Program
}

func (v *ProgramView) Attach(p *tea.Program) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.program = p
}

func (v *ProgramView) send(msg tea.Msg) {
	v.mu.RLock()
	p := v.program
	v.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

func (v *ProgramView) SetRows(rows []domain.ProductRow) {
	v.send(rowsMsg{rows: append([]domain.ProductRow(nil), rows...)})
}

func (v *ProgramView) SetValue(slot domain.Slot, text string) {
	v.send(valueMsg{slot: slot, text: text})
}

// SearchBridge connects the filter input of the model to the product
// loader. The loader registers its handler once the table is loaded.
type SearchBridge struct {
	mu      sync.Mutex
	handler func(query string)
	applied uint64
}

func (b *SearchBridge) OnChange(handler func(query string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = handler
}

// Emit hands query number seq to the handler. Queries older than the last
// applied one are dropped, so the table always ends on the newest query.
// It returns false when the query was dropped or nobody listens.
func (b *SearchBridge) Emit(seq uint64, query string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handler == nil || seq <= b.applied {
		return false
	}
	b.applied = seq
	b.handler(query)
	return true
}
