package kpi

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/de-tools/irevolution/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) KPIs(ctx context.Context) (domain.KPIs, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.KPIs), args.Error(1)
}

type recordingView struct {
	mu      sync.Mutex
	values  map[domain.Slot]string
	updates map[domain.Slot][]string
}

func newRecordingView() *recordingView {
	return &recordingView{
		values:  map[domain.Slot]string{},
		updates: map[domain.Slot][]string{},
	}
}

func (v *recordingView) SetValue(slot domain.Slot, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values[slot] = text
	v.updates[slot] = append(v.updates[slot], text)
}

func (v *recordingView) value(slot domain.Slot) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.values[slot]
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func fastAnimation() Animation {
	return Animation{Interval: time.Millisecond, Steps: DefaultSteps}
}

func waitDone(t *testing.T, l *Loader) {
	t.Helper()
	select {
	case <-l.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("animation did not finish")
	}
}

func TestTargets(t *testing.T) {
	targets := Targets(domain.KPIs{
		TotalProducts: 62,
		AvgPrice:      75000,
		AvgRating:     4.5,
		LatestRevenue: 394.33,
	})

	assert.Equal(t, domain.Pending{Target: 62, Suffix: "+"}, targets[domain.SlotProducts])
	assert.Equal(t, domain.Pending{Target: 75, Prefix: "₹", Suffix: "K"}, targets[domain.SlotPrice])
	assert.Equal(t, domain.Pending{Target: 4, Suffix: ".5"}, targets[domain.SlotRating])
	assert.Equal(t, domain.Pending{Target: 394, Prefix: "$", Suffix: "B"}, targets[domain.SlotRevenue])
}

func TestTargets_Rounding(t *testing.T) {
	tests := []struct {
		name         string
		kpis         domain.KPIs
		price        int
		revenue      int
		rating       int
		ratingSuffix string
	}{
		{name: "half rounds up", kpis: domain.KPIs{AvgPrice: 80500, LatestRevenue: 365.5, AvgRating: 4.35},
			price: 81, revenue: 366, rating: 4, ratingSuffix: ".35"},
		{name: "below half rounds down", kpis: domain.KPIs{AvgPrice: 80499, LatestRevenue: 260.17, AvgRating: 3.9},
			price: 80, revenue: 260, rating: 3, ratingSuffix: ".9"},
		{name: "integral rating has no fraction", kpis: domain.KPIs{AvgRating: 4},
			price: 0, revenue: 0, rating: 4, ratingSuffix: ""},
		{name: "negative rating keeps raw fraction", kpis: domain.KPIs{AvgRating: -1.5},
			price: 0, revenue: 0, rating: -2, ratingSuffix: ".5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			targets := Targets(tc.kpis)
			assert.Equal(t, tc.price, targets[domain.SlotPrice].Target)
			assert.Equal(t, tc.revenue, targets[domain.SlotRevenue].Target)
			assert.Equal(t, tc.rating, targets[domain.SlotRating].Target)
			assert.Equal(t, tc.ratingSuffix, targets[domain.SlotRating].Suffix)
		})
	}
}

func TestAnimation_FramesEndExactlyAtTarget(t *testing.T) {
	a := DefaultAnimation()
	for _, target := range []int{1, 4, 39, 40, 41, 62, 75, 99, 394, 1000, 80073, 123457} {
		frames := a.Frames(target)
		require.NotEmpty(t, frames)
		assert.Equal(t, target, frames[len(frames)-1], "target %d", target)
		assert.LessOrEqual(t, len(frames), DefaultSteps, "target %d", target)
		for i := 1; i < len(frames); i++ {
			assert.Greater(t, frames[i], frames[i-1], "target %d", target)
		}
	}
}

func TestAnimation_FramesStepByCeiling(t *testing.T) {
	a := DefaultAnimation()
	assert.Equal(t, 3, a.Step(81))
	assert.Equal(t, []int{3, 6, 9}, a.Frames(81)[:3])
	assert.Equal(t, 27, len(a.Frames(81)))
}

func TestAnimation_NonPositiveTargetShowsTargetOnFirstTick(t *testing.T) {
	a := DefaultAnimation()
	assert.Equal(t, []int{0}, a.Frames(0))
	assert.Equal(t, []int{-5}, a.Frames(-5))
}

func TestTrigger_FiresOnceAtThreshold(t *testing.T) {
	var calls atomic.Int32
	trigger := NewTrigger(DefaultThreshold, func() { calls.Add(1) })

	assert.False(t, trigger.Observe(0))
	assert.False(t, trigger.Observe(0.29))
	assert.True(t, trigger.Observing())

	assert.True(t, trigger.Observe(0.3))
	assert.False(t, trigger.Observing())
	assert.False(t, trigger.Observe(1))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			trigger.Observe(1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestLoader_LoadStoresTargetsWithoutDisplay(t *testing.T) {
	source := new(mockSource)
	source.On("KPIs", mock.Anything).Return(domain.KPIs{
		TotalProducts: 62, AvgPrice: 75000, AvgRating: 4.5, LatestRevenue: 394.3,
	}, nil)
	view := newRecordingView()

	l := NewLoader(source, view, WithAnimation(fastAnimation()))
	result := l.Load(testContext(t))

	require.True(t, result.OK())
	assert.Equal(t, domain.PipelineKPIs, result.Pipeline)
	assert.Equal(t, 4, result.Records)

	p, ok := l.Pending(domain.SlotPrice)
	require.True(t, ok)
	assert.Equal(t, domain.Pending{Target: 75, Prefix: "₹", Suffix: "K"}, p)
	assert.Empty(t, view.values)
	source.AssertExpectations(t)
}

func TestLoader_AnimationEndsAtTargets(t *testing.T) {
	source := new(mockSource)
	source.On("KPIs", mock.Anything).Return(domain.KPIs{
		TotalProducts: 62, AvgPrice: 75000, AvgRating: 4.5, LatestRevenue: 394.3,
	}, nil)
	view := newRecordingView()
	ctx := testContext(t)

	l := NewLoader(source, view, WithAnimation(fastAnimation()))
	require.True(t, l.Load(ctx).OK())

	trigger := l.Trigger(ctx, DefaultThreshold)
	assert.False(t, trigger.Observe(0.1))
	assert.True(t, trigger.Observe(0.5))
	waitDone(t, l)

	assert.Equal(t, "62+", view.value(domain.SlotProducts))
	assert.Equal(t, "₹75K", view.value(domain.SlotPrice))
	assert.Equal(t, "4.5", view.value(domain.SlotRating))
	assert.Equal(t, "$394B", view.value(domain.SlotRevenue))

	view.mu.Lock()
	defer view.mu.Unlock()
	assert.Equal(t, "₹2K", view.updates[domain.SlotPrice][0])
	assert.LessOrEqual(t, len(view.updates[domain.SlotPrice]), DefaultSteps)
}

func TestLoader_FailureKeepsDefaults(t *testing.T) {
	source := new(mockSource)
	source.On("KPIs", mock.Anything).Return(domain.KPIs{}, errors.New("connection refused"))
	view := newRecordingView()
	ctx := testContext(t)

	l := NewLoader(source, view, WithAnimation(fastAnimation()), WithDefaults(DefaultTargets()))
	result := l.Load(ctx)

	require.False(t, result.OK())
	assert.EqualError(t, result.Err, "connection refused")
	assert.Empty(t, view.values)

	l.Animate(ctx)
	waitDone(t, l)
	assert.Equal(t, "62+", view.value(domain.SlotProducts))
	assert.Equal(t, "$394B", view.value(domain.SlotRevenue))
}

func TestLoader_SlotsWithoutStateAreUntouched(t *testing.T) {
	source := new(mockSource)
	source.On("KPIs", mock.Anything).Return(domain.KPIs{}, errors.New("timeout"))
	view := newRecordingView()
	ctx := testContext(t)

	l := NewLoader(source, view, WithAnimation(fastAnimation()))
	l.Load(ctx)
	l.Animate(ctx)
	l.Animate(ctx)
	waitDone(t, l)

	assert.Empty(t, view.values)
}

func TestLoader_NilViewDoesNothing(t *testing.T) {
	source := new(mockSource)
	source.On("KPIs", mock.Anything).Return(domain.KPIs{TotalProducts: 3}, nil)
	ctx := testContext(t)

	l := NewLoader(source, nil)
	require.True(t, l.Load(ctx).OK())
	l.Animate(ctx)
	waitDone(t, l)
}
