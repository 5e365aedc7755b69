package kpi

import (
	"context"
	"math"
	"time"

	"github.com/de-tools/irevolution/pkg/models/domain"
)

const (
	DefaultInterval = 30 * time.Millisecond
	DefaultSteps    = 40
)

// Animation counts a slot up from zero to its target.
type Animation struct {
	Interval time.Duration
	Steps    int
}

func DefaultAnimation() Animation {
	return Animation{Interval: DefaultInterval, Steps: DefaultSteps}
}

// Step is the per-tick increment for target.
func (a Animation) Step(target int) int {
	return int(math.Ceil(float64(target) / float64(a.steps())))
}

// Frames lists the values displayed on each tick. The last frame is always
// the target and there are at most Steps frames for a positive target.
func (a Animation) Frames(target int) []int {
	step := a.Step(target)
	var frames []int
	current := 0
	for {
		current += step
		if current >= target {
			return append(frames, target)
		}
		frames = append(frames, current)
	}
}

// Run displays every frame of p on slot, one per tick. It returns once the
// target is displayed or ctx is done.
func (a Animation) Run(ctx context.Context, slot domain.Slot, p domain.Pending, view ValueSetter) {
	frames := a.Frames(p.Target)

	ticker := time.NewTicker(a.interval())
	defer ticker.Stop()

	for _, value := range frames {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			view.SetValue(slot, p.Text(value))
		}
	}
}

func (a Animation) steps() int {
	if a.Steps <= 0 {
		return DefaultSteps
	}
	return a.Steps
}

func (a Animation) interval() time.Duration {
	if a.Interval <= 0 {
		return DefaultInterval
	}
	return a.Interval
}
