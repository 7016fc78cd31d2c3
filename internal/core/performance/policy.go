package performance

import "time"

// MiB is one mebibyte in bytes
const MiB = 1024 * 1024

// Window sizes of the rolling sample buffers
const (
	RenderWindow    = 50
	MemoryWindow    = 20
	AnimationWindow = 30
)

// Policy holds every threshold and penalty the monitor applies.
// Zero fields are not replaced with defaults; start from DefaultPolicy.
type Policy struct {
	// Strategy flags
	AggressiveCachingHitRate  float64       `json:"aggressive_caching_hit_rate"`
	CompressionMemory         float64       `json:"compression_memory_bytes"`
	AnimationReductionRender  time.Duration `json:"animation_reduction_render"`
	MemoryOptimizationMemory  float64       `json:"memory_optimization_memory_bytes"`
	MemoryOptimizationSamples int           `json:"memory_optimization_samples"`

	// Grade thresholds
	TargetHitRate     float64       `json:"target_hit_rate"`
	MaxRenderTime     time.Duration `json:"max_render_time"`
	MaxMemory         float64       `json:"max_memory_bytes"`
	MaxAnimationFrame time.Duration `json:"max_animation_frame"`
	MaxNetworkCalls   int64         `json:"max_network_calls"`

	// Grade penalties in points
	HitRatePenalty   int `json:"hit_rate_penalty"`
	RenderPenalty    int `json:"render_penalty"`
	MemoryPenalty    int `json:"memory_penalty"`
	AnimationPenalty int `json:"animation_penalty"`
	NetworkPenalty   int `json:"network_penalty"`
}

// DefaultPolicy returns the stock thresholds
func DefaultPolicy() Policy {
	return Policy{
		AggressiveCachingHitRate:  0.7,
		CompressionMemory:         50 * MiB,
		AnimationReductionRender:  100 * time.Millisecond,
		MemoryOptimizationMemory:  30 * MiB,
		MemoryOptimizationSamples: 10,

		TargetHitRate:     0.8,
		MaxRenderTime:     100 * time.Millisecond,
		MaxMemory:         50 * MiB,
		MaxAnimationFrame: 16670 * time.Microsecond,
		MaxNetworkCalls:   30,

		HitRatePenalty:   20,
		RenderPenalty:    25,
		MemoryPenalty:    20,
		AnimationPenalty: 15,
		NetworkPenalty:   20,
	}
}
