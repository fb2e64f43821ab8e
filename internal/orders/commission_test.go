package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adorzia/adorzia-backend/pkg/config"
)

func splitConfig() config.CommerceConfig {
	return config.CommerceConfig{
		MarkupMultiplier: 2.3,
		CommissionRate:   0.10,
	}
}

func TestSplitLineTotalKnownValues(t *testing.T) {
	cfg := splitConfig()

	// 10000 / 2.3 = 4347.83 -> 4348; profit 5652; 10% -> 565; rest 5087
	split := SplitLineTotal(cfg, 10000)
	assert.Equal(t, 4348, split.ProductionCostCents)
	assert.Equal(t, 565, split.DesignerCommissionCents)
	assert.Equal(t, 5087, split.PlatformFeeCents)

	// 230 / 2.3 = 100 exactly
	split = SplitLineTotal(cfg, 230)
	assert.Equal(t, 100, split.ProductionCostCents)
	assert.Equal(t, 13, split.DesignerCommissionCents)
	assert.Equal(t, 117, split.PlatformFeeCents)
}

func TestSplitLineTotalExhaustsTotalExactly(t *testing.T) {
	cfg := splitConfig()

	for _, total := range []int{1, 2, 23, 99, 100, 101, 230, 999, 1000, 7500, 9999, 10000, 15000, 19999, 20000, 123457} {
		split := SplitLineTotal(cfg, total)
		sum := split.ProductionCostCents + split.DesignerCommissionCents + split.PlatformFeeCents
		assert.Equal(t, total, sum, "split must reassemble the total for %d", total)
		assert.GreaterOrEqual(t, split.ProductionCostCents, 0)
		assert.GreaterOrEqual(t, split.DesignerCommissionCents, 0)
		assert.GreaterOrEqual(t, split.PlatformFeeCents, 0)
	}
}

func TestSplitLineTotalNonPositive(t *testing.T) {
	cfg := splitConfig()

	assert.Equal(t, CommissionSplit{}, SplitLineTotal(cfg, 0))
	assert.Equal(t, CommissionSplit{}, SplitLineTotal(cfg, -500))
}
