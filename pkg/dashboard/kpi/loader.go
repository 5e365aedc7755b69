package kpi

import (
	"context"
	"sync"

	"github.com/de-tools/irevolution/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Source provides the aggregate metrics
type Source interface {
	KPIs(ctx context.Context) (domain.KPIs, error)
}

// ValueSetter displays the text of one KPI slot
type ValueSetter interface {
	SetValue(slot domain.Slot, text string)
}

type Option func(*Loader)

func WithAnimation(a Animation) Option {
	return func(l *Loader) {
		l.animation = a
	}
}

// WithDefaults sets the pending state slots keep when the load fails.
func WithDefaults(defaults map[domain.Slot]domain.Pending) Option {
	return func(l *Loader) {
		l.pending = make(map[domain.Slot]domain.Pending, len(defaults))
		for slot, p := range defaults {
			l.pending[slot] = p
		}
	}
}

// Loader fetches the KPIs once and animates the four counters once the
// panel becomes visible.
type Loader struct {
	source    Source
	view      ValueSetter
	animation Animation

	mu      sync.Mutex
	pending map[domain.Slot]domain.Pending

	animateOnce sync.Once
	done        chan struct{}
}

// NewLoader builds a loader. A nil view disables display; loading still
// records the pending targets.
func NewLoader(source Source, view ValueSetter, opts ...Option) *Loader {
	l := &Loader{
		source:    source,
		view:      view,
		animation: DefaultAnimation(),
		pending:   map[domain.Slot]domain.Pending{},
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the metrics and stores the slot targets. Nothing is
// displayed until Animate runs. Failures are logged and returned, and the
// slots keep their previous pending state.
func (l *Loader) Load(ctx context.Context) domain.LoadResult {
	logger := zerolog.Ctx(ctx)
	result := domain.LoadResult{Pipeline: domain.PipelineKPIs}

	kpis, err := l.source.KPIs(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("KPI API unavailable, using static defaults")
		result.Err = err
		return result
	}

	targets := Targets(kpis)

	l.mu.Lock()
	for slot, p := range targets {
		l.pending[slot] = p
	}
	l.mu.Unlock()

	result.Records = len(targets)
	logger.Debug().Int("total_products", kpis.TotalProducts).Msg("KPI targets updated")
	return result
}

// Pending returns the stored target of slot
func (l *Loader) Pending(slot domain.Slot) (domain.Pending, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.pending[slot]
	return p, ok
}

// Trigger returns a visibility trigger that starts the animation.
func (l *Loader) Trigger(ctx context.Context, threshold float64) *Trigger {
	return NewTrigger(threshold, func() {
		l.Animate(ctx)
	})
}

// Animate starts one counter per slot that has pending state. It only runs
// once; Done is closed when every counter reached its target.
func (l *Loader) Animate(ctx context.Context) {
	l.animateOnce.Do(func() {
		l.mu.Lock()
		snapshot := make(map[domain.Slot]domain.Pending, len(l.pending))
		for slot, p := range l.pending {
			snapshot[slot] = p
		}
		l.mu.Unlock()

		if l.view == nil {
			close(l.done)
			return
		}

		var wg sync.WaitGroup
		for _, slot := range domain.Slots() {
			p, ok := snapshot[slot]
			if !ok {
				continue
			}
			wg.Add(1)
			go func(slot domain.Slot, p domain.Pending) {
				defer wg.Done()
				l.animation.Run(ctx, slot, p, l.view)
			}(slot, p)
		}

		go func() {
			wg.Wait()
			close(l.done)
		}()
	})
}

func (l *Loader) Done() <-chan struct{} {
	return l.done
}
