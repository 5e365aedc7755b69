package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/de-tools/irevolution/pkg/dashboard"
	"github.com/rs/zerolog"
)

// Run opens the dashboard full screen until the user quits or ctx is done.
// View and Search of opts are replaced.
func Run(ctx context.Context, opts dashboard.Options) error {
	// the alternate screen owns the terminal, warnings go to the status line
	ctx = zerolog.Nop().WithContext(ctx)

	view := &ProgramView{}
	search := &SearchBridge{}
	opts.View = view
	opts.Search = search

	d := dashboard.New(opts)
	trigger := d.Trigger(ctx)

	model := NewModel(search,
		func(ratio float64) { trigger.Observe(ratio) },
		func() tea.Msg { return LoadedMsg{Results: d.Load(ctx)} },
	)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	view.Attach(p)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
