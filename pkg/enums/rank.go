package enums

import "fmt"

// StandardRank is the earned progression tier of a designer.
type StandardRank string

const (
	StandardRankApprentice StandardRank = "apprentice"
	StandardRankStylist    StandardRank = "stylist"
	StandardRankDesigner   StandardRank = "designer"
	StandardRankCouturier  StandardRank = "couturier"
	StandardRankMaison     StandardRank = "maison"
)

var validStandardRanks = []StandardRank{
	StandardRankApprentice,
	StandardRankStylist,
	StandardRankDesigner,
	StandardRankCouturier,
	StandardRankMaison,
}

// String implements fmt.Stringer.
func (s StandardRank) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StandardRank.
func (s StandardRank) IsValid() bool {
	for _, candidate := range validStandardRanks {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStandardRank converts raw input into a StandardRank.
func ParseStandardRank(value string) (StandardRank, error) {
	for _, candidate := range validStandardRanks {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid standard rank %q", value)
}

// FoundationRank is the founder cohort tier granted at platform launch.
type FoundationRank string

const (
	FoundationRankNone FoundationRank = "none"
	FoundationRankF3   FoundationRank = "f3"
	FoundationRankF2   FoundationRank = "f2"
	FoundationRankF1   FoundationRank = "f1"
)

var validFoundationRanks = []FoundationRank{
	FoundationRankNone,
	FoundationRankF3,
	FoundationRankF2,
	FoundationRankF1,
}

// String implements fmt.Stringer.
func (f FoundationRank) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FoundationRank.
func (f FoundationRank) IsValid() bool {
	for _, candidate := range validFoundationRanks {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFoundationRank converts raw input into a FoundationRank.
func ParseFoundationRank(value string) (FoundationRank, error) {
	for _, candidate := range validFoundationRanks {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid foundation rank %q", value)
}
