package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// PerformanceMonitor tracks tick, frame and raycast metrics
type PerformanceMonitor struct {
	// Loop metrics
	tickCount  atomic.Uint64
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	// Raycast metrics
	raycastTime    atomic.Uint64 // nanoseconds, last tick
	columnsCast    atomic.Uint64
	guardTrips     atomic.Uint64
	skippedColumns atomic.Uint64
	spansDrawn     atomic.Uint64

	// Statistics
	mutex          sync.RWMutex
	avgFrameTime   float64
	avgRaycastTime float64
	ticksPerSecond float64
	framesPerSec   float64
	lastSample     time.Time
	lastTicks      uint64
	lastFrames     uint64
	startTime      time.Time

	// Configuration
	smoothing      float64
	sampleInterval time.Duration
	now            func() time.Time
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return newPerformanceMonitor(time.Now)
}

func newPerformanceMonitor(now func() time.Time) *PerformanceMonitor {
	start := now()
	return &PerformanceMonitor{
		startTime:      start,
		lastSample:     start,
		smoothing:      0.1,
		sampleInterval: time.Second,
		now:            now,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{monitor: pm, startTime: pm.now()}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	pm := ft.monitor
	frameTime := pm.now().Sub(ft.startTime)
	pm.frameTime.Store(uint64(frameTime.Nanoseconds()))
	pm.frameCount.Add(1)

	pm.mutex.Lock()
	pm.avgFrameTime = pm.smooth(pm.avgFrameTime, float64(frameTime.Nanoseconds()), pm.frameCount.Load())
	pm.mutex.Unlock()
}

// RaycastTimer helps measure raycasting performance
type RaycastTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartRaycast begins raycast timing
func (pm *PerformanceMonitor) StartRaycast() *RaycastTimer {
	return &RaycastTimer{monitor: pm, startTime: pm.now()}
}

// EndRaycast completes raycast timing for one tick that cast the given
// number of columns.
func (rt *RaycastTimer) EndRaycast(columns int) {
	pm := rt.monitor
	raycastTime := pm.now().Sub(rt.startTime)
	pm.raycastTime.Store(uint64(raycastTime.Nanoseconds()))
	ticks := pm.tickCount.Add(1)
	pm.columnsCast.Add(uint64(columns))

	pm.mutex.Lock()
	pm.avgRaycastTime = pm.smooth(pm.avgRaycastTime, float64(raycastTime.Nanoseconds()), ticks)
	pm.mutex.Unlock()
}

// smooth is an exponential moving average seeded with the first sample.
func (pm *PerformanceMonitor) smooth(avg, sample float64, count uint64) float64 {
	if count <= 1 {
		return sample
	}
	return avg + pm.smoothing*(sample-avg)
}

// RecordGuardTrip counts a column whose ray hit the traversal limit
func (pm *PerformanceMonitor) RecordGuardTrip() {
	pm.guardTrips.Add(1)
}

// RecordSkippedColumns counts columns that produced no wall span
func (pm *PerformanceMonitor) RecordSkippedColumns(n int) {
	if n > 0 {
		pm.skippedColumns.Add(uint64(n))
	}
}

// RecordSpans counts spans drawn into a frame
func (pm *PerformanceMonitor) RecordSpans(n int) {
	if n > 0 {
		pm.spansDrawn.Add(uint64(n))
	}
}

// Sample rolls the per-second tick and frame rates once sampleInterval
// has elapsed since the previous sample.
func (pm *PerformanceMonitor) Sample() {
	now := pm.now()
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	elapsed := now.Sub(pm.lastSample)
	if elapsed < pm.sampleInterval {
		return
	}
	ticks := pm.tickCount.Load()
	frames := pm.frameCount.Load()
	secs := elapsed.Seconds()
	pm.ticksPerSecond = float64(ticks-pm.lastTicks) / secs
	pm.framesPerSec = float64(frames-pm.lastFrames) / secs
	pm.lastTicks = ticks
	pm.lastFrames = frames
	pm.lastSample = now
}

// Metrics is a point-in-time copy of the monitor's counters
type Metrics struct {
	Ticks          uint64
	Frames         uint64
	ColumnsCast    uint64
	GuardTrips     uint64
	SkippedColumns uint64
	SpansDrawn     uint64
	TicksPerSecond float64
	FramesPerSec   float64
	LastRaycast    time.Duration
	AvgRaycast     time.Duration
	AvgFrame       time.Duration
	Uptime         time.Duration
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() Metrics {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	return Metrics{
		Ticks:          pm.tickCount.Load(),
		Frames:         pm.frameCount.Load(),
		ColumnsCast:    pm.columnsCast.Load(),
		GuardTrips:     pm.guardTrips.Load(),
		SkippedColumns: pm.skippedColumns.Load(),
		SpansDrawn:     pm.spansDrawn.Load(),
		TicksPerSecond: pm.ticksPerSecond,
		FramesPerSec:   pm.framesPerSec,
		LastRaycast:    time.Duration(pm.raycastTime.Load()),
		AvgRaycast:     time.Duration(pm.avgRaycastTime),
		AvgFrame:       time.Duration(pm.avgFrameTime),
		Uptime:         pm.now().Sub(pm.startTime),
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	m := pm.GetCurrentMetrics()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"uptime_seconds":      m.Uptime.Seconds(),
		"tick_count":          m.Ticks,
		"frame_count":         m.Frames,
		"ticks_per_second":    m.TicksPerSecond,
		"frames_per_second":   m.FramesPerSec,
		"avg_frame_time_ms":   float64(m.AvgFrame) / float64(time.Millisecond),
		"avg_raycast_time_ms": float64(m.AvgRaycast) / float64(time.Millisecond),
		"columns_cast":        m.ColumnsCast,
		"guard_trips":         m.GuardTrips,
		"skipped_columns":     m.SkippedColumns,
		"memory_alloc_mb":     memStats.Alloc / 1024 / 1024,
		"gc_cycles":           memStats.NumGC,
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts compares the sampled tick rate and raycast time
// against the budget of one tick at targetTPS.
func (pm *PerformanceMonitor) CheckPerformanceAlerts(targetTPS int) []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	m := pm.GetCurrentMetrics()
	currentTime := pm.now()
	if targetTPS <= 0 {
		return alerts
	}

	minTPS := float64(targetTPS) * 0.9
	if m.TicksPerSecond > 0 && m.TicksPerSecond < minTPS {
		alerts = append(alerts, PerformanceAlert{
			Type:      "low_tps",
			Message:   "Logic tick rate is below target",
			Value:     m.TicksPerSecond,
			Threshold: minTPS,
			Timestamp: currentTime,
		})
	}

	budget := time.Second / time.Duration(targetTPS)
	if m.AvgRaycast > budget {
		alerts = append(alerts, PerformanceAlert{
			Type:      "slow_raycast",
			Message:   "Average raycast exceeds the tick budget",
			Value:     float64(m.AvgRaycast) / float64(time.Millisecond),
			Threshold: float64(budget) / float64(time.Millisecond),
			Timestamp: currentTime,
		})
	}

	return alerts
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.tickCount.Store(0)
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.columnsCast.Store(0)
	pm.guardTrips.Store(0)
	pm.skippedColumns.Store(0)
	pm.spansDrawn.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.ticksPerSecond = 0
	pm.framesPerSec = 0
	pm.lastTicks = 0
	pm.lastFrames = 0
	pm.startTime = pm.now()
	pm.lastSample = pm.startTime
	pm.mutex.Unlock()
}
