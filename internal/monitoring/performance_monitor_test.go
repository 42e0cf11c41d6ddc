package monitoring

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when told to.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestMonitor() (*PerformanceMonitor, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	return newPerformanceMonitor(clock.Now), clock
}

func TestNewPerformanceMonitor(t *testing.T) {
	pm := NewPerformanceMonitor()
	require.NotNil(t, pm)
	assert.Equal(t, time.Second, pm.sampleInterval)
	assert.Less(t, time.Since(pm.startTime), time.Second, "start time should be recent")
}

func TestPerformanceMonitorRaycastTiming(t *testing.T) {
	pm, clock := newTestMonitor()

	rt := pm.StartRaycast()
	clock.Advance(4 * time.Millisecond)
	rt.EndRaycast(1280)

	m := pm.GetCurrentMetrics()
	assert.Equal(t, uint64(1), m.Ticks)
	assert.Equal(t, uint64(1280), m.ColumnsCast)
	assert.Equal(t, 4*time.Millisecond, m.LastRaycast)
	assert.Equal(t, 4*time.Millisecond, m.AvgRaycast, "first sample seeds the average")

	rt = pm.StartRaycast()
	clock.Advance(14 * time.Millisecond)
	rt.EndRaycast(1280)
	m = pm.GetCurrentMetrics()
	assert.Equal(t, 5*time.Millisecond, m.AvgRaycast)
}

func TestPerformanceMonitorFrameTiming(t *testing.T) {
	pm, clock := newTestMonitor()
	ft := pm.StartFrame()
	clock.Advance(10 * time.Millisecond)
	ft.EndFrame()

	m := pm.GetCurrentMetrics()
	assert.Equal(t, uint64(1), m.Frames)
	assert.Equal(t, 10*time.Millisecond, m.AvgFrame)
}

func TestPerformanceMonitorSampleRates(t *testing.T) {
	pm, clock := newTestMonitor()
	for i := 0; i < 30; i++ {
		pm.StartRaycast().EndRaycast(10)
		pm.StartFrame().EndFrame()
	}

	clock.Advance(500 * time.Millisecond)
	pm.Sample()
	assert.Zero(t, pm.GetCurrentMetrics().TicksPerSecond, "no sample before the interval")

	clock.Advance(500 * time.Millisecond)
	pm.Sample()
	m := pm.GetCurrentMetrics()
	assert.InDelta(t, 30, m.TicksPerSecond, 1e-9)
	assert.InDelta(t, 30, m.FramesPerSec, 1e-9)

	alerts := pm.CheckPerformanceAlerts(60)
	require.Len(t, alerts, 1)
	assert.Equal(t, "low_tps", alerts[0].Type)
}

func TestPerformanceMonitorCounters(t *testing.T) {
	pm, _ := newTestMonitor()
	pm.RecordGuardTrip()
	pm.RecordGuardTrip()
	pm.RecordSkippedColumns(3)
	pm.RecordSkippedColumns(-1)
	pm.RecordSpans(12)

	m := pm.GetCurrentMetrics()
	assert.Equal(t, uint64(2), m.GuardTrips)
	assert.Equal(t, uint64(3), m.SkippedColumns)
	assert.Equal(t, uint64(12), m.SpansDrawn)

	stats := pm.GetDetailedStats()
	assert.Equal(t, uint64(2), stats["guard_trips"])

	pm.Reset()
	m = pm.GetCurrentMetrics()
	assert.Zero(t, m.GuardTrips)
	assert.Zero(t, m.Ticks)
}

func TestPerformanceMonitorSlowRaycastAlert(t *testing.T) {
	pm, clock := newTestMonitor()
	rt := pm.StartRaycast()
	clock.Advance(40 * time.Millisecond)
	rt.EndRaycast(1)

	alerts := pm.CheckPerformanceAlerts(60)
	require.Len(t, alerts, 1)
	assert.Equal(t, "slow_raycast", alerts[0].Type)
	assert.Empty(t, pm.CheckPerformanceAlerts(0))
}

func TestPerformanceMonitorConcurrentAccess(t *testing.T) {
	pm := NewPerformanceMonitor()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				pm.StartRaycast().EndRaycast(1)
				pm.RecordGuardTrip()
				_ = pm.GetCurrentMetrics()
			}
		}()
	}
	wg.Wait()
	m := pm.GetCurrentMetrics()
	assert.Equal(t, uint64(800), m.Ticks)
	assert.Equal(t, uint64(800), m.GuardTrips)
}
