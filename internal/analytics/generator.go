// Package analytics produces performance metrics for marketing variations.
// STANDARD and PRO accounts get metrics attached to each generated variation;
// BASIC accounts get none.
package analytics

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tahsinkabir/marketmind/pkg/models"
)

// Generator produces the metrics block for a single variation.
type Generator interface {
	Generate() models.AnalyticsMetrics
}

// RandomGenerator derives plausible funnel numbers from a seeded reach:
// impressions track reach, engagement tracks impressions, and the rate
// metrics stay in realistic ad-platform ranges.
type RandomGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomGenerator returns a generator seeded from the given source.
func NewRandomGenerator(seed int64) *RandomGenerator {
	return &RandomGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *RandomGenerator) Generate() models.AnalyticsMetrics {
	g.mu.Lock()
	defer g.mu.Unlock()

	reach := float64(g.rng.Intn(5000) + 1000)
	impressions := reach * (1.1 + g.rng.Float64()*0.4)
	engagement := impressions * (0.01 + g.rng.Float64()*0.02)

	return models.AnalyticsMetrics{
		Reach:       int(reach),
		Impressions: int(impressions),
		Engagement:  int(engagement),
		CTR:         round2(0.5 + g.rng.Float64()*2.5),
		ROAS:        round2(1.5 + g.rng.Float64()*5.0),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Attach fills in metrics on every variation of a content entry when the
// plan includes analytics. It is a no-op for BASIC and unselected plans.
func Attach(g Generator, plan models.Plan, content *models.GeneratedContent) {
	if plan != models.PlanStandard && plan != models.PlanPro {
		return
	}
	for i := range content.Variations {
		metrics := g.Generate()
		content.Variations[i].Analytics = &metrics
	}
}
