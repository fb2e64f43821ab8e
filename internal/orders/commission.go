package orders

import (
	"github.com/shopspring/decimal"

	"github.com/adorzia/adorzia-backend/pkg/config"
)

// CommissionSplit is the per-line revenue breakdown frozen onto an order
// line item. The three parts always satisfy
// total = production + commission + platform.
type CommissionSplit struct {
	ProductionCostCents     int
	DesignerCommissionCents int
	PlatformFeeCents        int
}

// SplitLineTotal divides a line total (cents) into production cost, designer
// commission and platform fee. Production cost is total divided by the markup
// multiplier; the commission rate applies to the remaining profit; the
// platform fee is the rest of the profit, computed by subtraction so the
// split exhausts the profit exactly. Rounding is half-up to whole cents.
func SplitLineTotal(cfg config.CommerceConfig, totalCents int) CommissionSplit {
	if totalCents <= 0 {
		return CommissionSplit{}
	}
	total := decimal.NewFromInt(int64(totalCents))
	markup := decimal.NewFromFloat(cfg.MarkupMultiplier)
	rate := decimal.NewFromFloat(cfg.CommissionRate)

	cost := total.Div(markup).Round(0)
	profit := total.Sub(cost)
	commission := profit.Mul(rate).Round(0)
	platform := profit.Sub(commission)

	return CommissionSplit{
		ProductionCostCents:     int(cost.IntPart()),
		DesignerCommissionCents: int(commission.IntPart()),
		PlatformFeeCents:        int(platform.IntPart()),
	}
}
