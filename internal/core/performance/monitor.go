// Package performance keeps rolling windows of cache, render, memory and
// animation signals, derives strategy flags from them and grades overall health.
package performance

import (
	"sync"
	"time"

	"budgetcache.app/internal/ports"
)

// Flags are the adaptive strategy switches derived from the rolling windows
type Flags struct {
	AggressiveCaching  bool `json:"aggressive_caching"`
	DataCompression    bool `json:"data_compression"`
	AnimationReduction bool `json:"animation_reduction"`
	MemoryOptimization bool `json:"memory_optimization"`
}

// Metrics is a snapshot of the monitor state
type Metrics struct {
	CacheHits            int64         `json:"cache_hits"`
	CacheMisses          int64         `json:"cache_misses"`
	NetworkCalls         int64         `json:"network_calls"`
	HitRate              float64       `json:"hit_rate"`
	AverageRenderTime    time.Duration `json:"average_render_time"`
	AverageMemoryUsage   float64       `json:"average_memory_usage"`
	AverageAnimationTime time.Duration `json:"average_animation_time"`
	RenderSamples        int           `json:"render_samples"`
	MemorySamples        int           `json:"memory_samples"`
	AnimationSamples     int           `json:"animation_samples"`
	Flags                Flags         `json:"flags"`
}

// Monitor records performance signals. Safe for concurrent use.
type Monitor struct {
	mu     sync.RWMutex
	policy Policy

	hits     int64
	misses   int64
	apiCalls int64

	render    *ring[time.Duration]
	memory    *ring[uint64]
	animation *ring[time.Duration]

	flags Flags
}

var _ ports.PerformanceRecorder = (*Monitor)(nil)

// NewMonitor creates a monitor applying policy
func NewMonitor(policy Policy) *Monitor {
	return &Monitor{
		policy:    policy,
		render:    newRing[time.Duration](RenderWindow),
		memory:    newRing[uint64](MemoryWindow),
		animation: newRing[time.Duration](AnimationWindow),
	}
}

func (m *Monitor) RecordCacheHit() {
	m.mu.Lock()
	m.hits++
	m.mu.Unlock()
}

func (m *Monitor) RecordCacheMiss() {
	m.mu.Lock()
	m.misses++
	m.mu.Unlock()
}

func (m *Monitor) RecordAPICall() {
	m.mu.Lock()
	m.apiCalls++
	m.mu.Unlock()
}

// RecordRenderTime pushes a render sample and recomputes the strategy flags
func (m *Monitor) RecordRenderTime(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.render.push(d)
	m.flags = m.computeFlags()
}

// RecordMemoryUsage pushes a heap usage sample in bytes
func (m *Monitor) RecordMemoryUsage(bytes uint64) {
	m.mu.Lock()
	m.memory.push(bytes)
	m.mu.Unlock()
}

// RecordAnimationPerformance pushes an animation frame time sample
func (m *Monitor) RecordAnimationPerformance(d time.Duration) {
	m.mu.Lock()
	m.animation.push(d)
	m.mu.Unlock()
}

// Flags returns the flags as of the last render sample
func (m *Monitor) Flags() Flags {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags
}

// Policy returns the thresholds in effect
func (m *Monitor) Policy() Policy {
	return m.policy
}

// Metrics returns counters, rolling averages and the current flags
func (m *Monitor) Metrics() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot()
}

// Reset clears every counter, window and flag
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hits, m.misses, m.apiCalls = 0, 0, 0
	m.render.reset()
	m.memory.reset()
	m.animation.reset()
	m.flags = Flags{}
}

// snapshot requires m.mu held
func (m *Monitor) snapshot() Metrics {
	return Metrics{
		CacheHits:            m.hits,
		CacheMisses:          m.misses,
		NetworkCalls:         m.apiCalls,
		HitRate:              m.hitRate(),
		AverageRenderTime:    time.Duration(m.render.mean()),
		AverageMemoryUsage:   m.memory.mean(),
		AverageAnimationTime: time.Duration(m.animation.mean()),
		RenderSamples:        m.render.len(),
		MemorySamples:        m.memory.len(),
		AnimationSamples:     m.animation.len(),
		Flags:                m.flags,
	}
}

func (m *Monitor) hitRate() float64 {
	total := m.hits + m.misses
	if total == 0 {
		return 0
	}
	return float64(m.hits) / float64(total)
}

func (m *Monitor) computeFlags() Flags {
	p := m.policy
	threshold := p.MemoryOptimizationMemory

	return Flags{
		AggressiveCaching:  m.hitRate() < p.AggressiveCachingHitRate,
		DataCompression:    m.memory.mean() > p.CompressionMemory,
		AnimationReduction: time.Duration(m.render.mean()) > p.AnimationReductionRender,
		MemoryOptimization: m.memory.all(p.MemoryOptimizationSamples, func(v uint64) bool {
			return float64(v) > threshold
		}),
	}
}
