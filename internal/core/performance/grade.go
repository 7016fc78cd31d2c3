package performance

import (
	"fmt"
	"time"
)

// Grade is a letter bucket of the performance score
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

const maxScore = 100

// Report bundles the score, grade and advice for one snapshot
type Report struct {
	Score           int      `json:"score"`
	Grade           Grade    `json:"grade"`
	Recommendations []string `json:"recommendations"`
	Metrics         Metrics  `json:"metrics"`
}

// Score starts at 100 and deducts the policy penalty for each violated threshold
func (m *Monitor) Score() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return scoreOf(m.snapshot(), m.policy)
}

// Grade buckets the score: A >= 90, B >= 80, C >= 70, D >= 60, otherwise F
func (m *Monitor) Grade() Grade {
	return GradeFor(m.Score())
}

// Recommendations returns one advisory line per violated threshold
func (m *Monitor) Recommendations() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return recommendationsFor(m.snapshot(), m.policy)
}

// Report computes score, grade and recommendations from a single snapshot
func (m *Monitor) Report() Report {
	m.mu.RLock()
	defer m.mu.RUnlock()

	metrics := m.snapshot()
	score := scoreOf(metrics, m.policy)
	return Report{
		Score:           score,
		Grade:           GradeFor(score),
		Recommendations: recommendationsFor(metrics, m.policy),
		Metrics:         metrics,
	}
}

// GradeFor maps a score to its letter
func GradeFor(score int) Grade {
	switch {
	case score >= 90:
		return GradeA
	case score >= 80:
		return GradeB
	case score >= 70:
		return GradeC
	case score >= 60:
		return GradeD
	default:
		return GradeF
	}
}

type violation struct {
	penalty int
	advice  string
}

func violations(metrics Metrics, p Policy) []violation {
	var out []violation

	if metrics.HitRate < p.TargetHitRate {
		out = append(out, violation{
			penalty: p.HitRatePenalty,
			advice: fmt.Sprintf("Cache hit rate is %.0f%%, below the %.0f%% target: preload common queries or raise the cache TTL",
				metrics.HitRate*100, p.TargetHitRate*100),
		})
	}
	if metrics.AverageRenderTime > p.MaxRenderTime {
		out = append(out, violation{
			penalty: p.RenderPenalty,
			advice: fmt.Sprintf("Average render time is %s, above %s: render fewer rows or enable animation reduction",
				roundMillis(metrics.AverageRenderTime), p.MaxRenderTime),
		})
	}
	if metrics.AverageMemoryUsage > p.MaxMemory {
		out = append(out, violation{
			penalty: p.MemoryPenalty,
			advice: fmt.Sprintf("Average memory usage is %.1f MiB, above %.1f MiB: enable data compression or lower the cache capacity",
				metrics.AverageMemoryUsage/MiB, p.MaxMemory/MiB),
		})
	}
	if metrics.AverageAnimationTime > p.MaxAnimationFrame {
		out = append(out, violation{
			penalty: p.AnimationPenalty,
			advice: fmt.Sprintf("Average animation frame time is %s, above %s: simplify transitions",
				roundMillis(metrics.AverageAnimationTime), p.MaxAnimationFrame),
		})
	}
	if metrics.NetworkCalls > p.MaxNetworkCalls {
		out = append(out, violation{
			penalty: p.NetworkPenalty,
			advice: fmt.Sprintf("%d network calls recorded, above %d: cache broader queries to cut fetches",
				metrics.NetworkCalls, p.MaxNetworkCalls),
		})
	}

	return out
}

func scoreOf(metrics Metrics, p Policy) int {
	score := maxScore
	for _, v := range violations(metrics, p) {
		score -= v.penalty
	}
	return score
}

func recommendationsFor(metrics Metrics, p Policy) []string {
	advice := []string{}
	for _, v := range violations(metrics, p) {
		advice = append(advice, v.advice)
	}
	return advice
}

func roundMillis(d time.Duration) time.Duration {
	return d.Round(10 * time.Microsecond)
}
