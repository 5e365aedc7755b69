package kpi

import (
	"sync"
	"sync/atomic"
)

const DefaultThreshold = 0.3

// Trigger fires once, the first time the observed panel is at least
// threshold visible. After that it stops observing.
type Trigger struct {
	threshold float64
	fire      func()
	once      sync.Once
	fired     atomic.Bool
}

func NewTrigger(threshold float64, fire func()) *Trigger {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Trigger{threshold: threshold, fire: fire}
}

// Observe reports the visible fraction of the panel. It returns true only
// for the call that fired.
func (t *Trigger) Observe(ratio float64) bool {
	if t.fired.Load() || ratio < t.threshold {
		return false
	}

	fired := false
	t.once.Do(func() {
		t.fired.Store(true)
		fired = true
		t.fire()
	})
	return fired
}

func (t *Trigger) Observing() bool {
	return !t.fired.Load()
}
