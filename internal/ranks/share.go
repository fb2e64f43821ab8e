package ranks

import (
	"github.com/adorzia/adorzia-backend/pkg/enums"
	pkgerrors "github.com/adorzia/adorzia-backend/pkg/errors"
)

// Revenue-share percentages surfaced on the designer dashboard. Display
// only: the checkout commission split does not read these tables.
var baseShare = map[enums.StandardRank]int{
	enums.StandardRankApprentice: 30,
	enums.StandardRankStylist:    35,
	enums.StandardRankDesigner:   40,
	enums.StandardRankCouturier:  45,
	enums.StandardRankMaison:     50,
}

var foundationBonus = map[enums.FoundationRank]int{
	enums.FoundationRankNone: 0,
	enums.FoundationRankF3:   2,
	enums.FoundationRankF2:   4,
	enums.FoundationRankF1:   6,
}

// BaseShare returns the percentage for an earned rank.
func BaseShare(rank enums.StandardRank) int {
	return baseShare[rank]
}

// FoundationBonus returns the additive percentage for a foundation tier.
func FoundationBonus(rank enums.FoundationRank) int {
	return foundationBonus[rank]
}

// EffectiveShare sums the base share and foundation bonus. Both enums are
// closed; unknown values are rejected at the API edge, so they are a
// validation error here rather than a silent zero.
func EffectiveShare(standard enums.StandardRank, foundation enums.FoundationRank) (int, error) {
	if !standard.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "unknown standard rank")
	}
	if !foundation.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "unknown foundation rank")
	}
	return baseShare[standard] + foundationBonus[foundation], nil
}

// ShareRow is one row of the published revenue-share table.
type ShareRow struct {
	StandardRank    string `json:"standard_rank"`
	FoundationRank  string `json:"foundation_rank"`
	BaseShare       int    `json:"base_share"`
	FoundationBonus int    `json:"foundation_bonus"`
	EffectiveShare  int    `json:"effective_share"`
}

// Table enumerates every rank combination for the dashboard.
func Table() []ShareRow {
	standards := []enums.StandardRank{
		enums.StandardRankApprentice,
		enums.StandardRankStylist,
		enums.StandardRankDesigner,
		enums.StandardRankCouturier,
		enums.StandardRankMaison,
	}
	foundations := []enums.FoundationRank{
		enums.FoundationRankNone,
		enums.FoundationRankF3,
		enums.FoundationRankF2,
		enums.FoundationRankF1,
	}

	rows := make([]ShareRow, 0, len(standards)*len(foundations))
	for _, standard := range standards {
		for _, foundation := range foundations {
			rows = append(rows, ShareRow{
				StandardRank:    standard.String(),
				FoundationRank:  foundation.String(),
				BaseShare:       baseShare[standard],
				FoundationBonus: foundationBonus[foundation],
				EffectiveShare:  baseShare[standard] + foundationBonus[foundation],
			})
		}
	}
	return rows
}
