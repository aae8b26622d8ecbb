package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahsinkabir/marketmind/pkg/models"
)

func TestGenerateRanges(t *testing.T) {
	g := NewRandomGenerator(1)

	for i := 0; i < 200; i++ {
		m := g.Generate()

		assert.GreaterOrEqual(t, m.Reach, 1000)
		assert.Less(t, m.Reach, 6000)
		assert.GreaterOrEqual(t, float64(m.Impressions), float64(m.Reach)*1.1)
		assert.LessOrEqual(t, float64(m.Impressions), float64(m.Reach)*1.5)
		assert.Less(t, m.Engagement, m.Impressions)
		assert.GreaterOrEqual(t, m.CTR, 0.5)
		assert.LessOrEqual(t, m.CTR, 3.0)
		assert.GreaterOrEqual(t, m.ROAS, 1.5)
		assert.LessOrEqual(t, m.ROAS, 6.5)
	}
}

func TestAttachByPlan(t *testing.T) {
	tests := []struct {
		name string
		plan models.Plan
		want bool
	}{
		{"standard gets analytics", models.PlanStandard, true},
		{"pro gets analytics", models.PlanPro, true},
		{"basic gets none", models.PlanBasic, false},
		{"no plan gets none", models.PlanNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := &models.GeneratedContent{
				Variations: []models.MarketingVariation{{ID: 1}, {ID: 2}},
			}
			Attach(NewRandomGenerator(42), tt.plan, content)

			for _, v := range content.Variations {
				if tt.want {
					require.NotNil(t, v.Analytics)
					assert.GreaterOrEqual(t, v.Analytics.Reach, 1000)
				} else {
					assert.Nil(t, v.Analytics)
				}
			}
		})
	}
}

func TestAttachIndependentMetrics(t *testing.T) {
	content := &models.GeneratedContent{
		Variations: []models.MarketingVariation{{ID: 1}, {ID: 2}},
	}
	Attach(NewRandomGenerator(7), models.PlanPro, content)

	require.NotNil(t, content.Variations[0].Analytics)
	require.NotNil(t, content.Variations[1].Analytics)
	assert.NotSame(t, content.Variations[0].Analytics, content.Variations[1].Analytics)
}
