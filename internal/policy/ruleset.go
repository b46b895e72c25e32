// internal/policy/ruleset.go
package policy

import (
	"github.com/shopspring/decimal"

	"github.com/quotedesk/backend/internal/models"
)

// AmountThreshold adds a role once the quote total crosses the (exclusive)
// bound. Thresholds are monotonic: crossing a higher threshold never removes
// a lower-threshold obligation.
type AmountThreshold struct {
	Amount decimal.Decimal
	Role   models.ApproverRole

	// Smart thresholds are eligible for approval carryover when the amount
	// does not move unfavorably. Non-smart thresholds always force a fresh
	// approval while the new amount crosses them.
	Smart bool
}

// DiscountBand adds a role while the discount percentage sits inside the
// band. Max is inclusive when set; a nil Max leaves the band open-ended.
type DiscountBand struct {
	Min          decimal.Decimal
	MinInclusive bool
	Max          *decimal.Decimal
	Role         models.ApproverRole
}

func (b DiscountBand) Contains(d decimal.Decimal) bool {
	if b.MinInclusive {
		if d.LessThan(b.Min) {
			return false
		}
	} else if d.LessThanOrEqual(b.Min) {
		return false
	}
	if b.Max != nil && d.GreaterThan(*b.Max) {
		return false
	}
	return true
}

// Ruleset is the single configuration artifact behind the requirement engine
// and the carryover evaluator. Every threshold, band and ordinal ranking
// lives here so policy revisions never touch engine control flow.
type Ruleset struct {
	AmountThresholds []AmountThreshold
	DiscountBands    []DiscountBand

	// Ordinal rankings for the enumerated term fields; a lower rank is the
	// more desirable value. Values absent from the table rank as 1.
	PaymentTermRanks map[models.PaymentTerms]int
	DurationRanks    map[models.ContractDuration]int

	// Payment terms ranking at or above this value add Finance.
	ExtendedTermsRank int
}

func (r Ruleset) PaymentTermRank(t models.PaymentTerms) int {
	if rank, ok := r.PaymentTermRanks[t]; ok {
		return rank
	}
	return 1
}

func (r Ruleset) DurationRank(d models.ContractDuration) int {
	if rank, ok := r.DurationRanks[d]; ok {
		return rank
	}
	return 1
}

// DefaultRuleset returns the canonical commercial approval policy: a single
// non-smart >100k Finance threshold, the 20-30/30+/40+ discount ladder and
// the standard term rankings.
func DefaultRuleset() Ruleset {
	thirty := decimal.NewFromInt(30)
	return Ruleset{
		AmountThresholds: []AmountThreshold{
			{Amount: decimal.NewFromInt(100000), Role: models.RoleFinance, Smart: false},
		},
		DiscountBands: []DiscountBand{
			{Min: decimal.NewFromInt(20), MinInclusive: true, Max: &thirty, Role: models.RoleDealDesk},
			{Min: decimal.NewFromInt(30), Role: models.RoleFinance},
			{Min: decimal.NewFromInt(40), Role: models.RoleLegal},
		},
		PaymentTermRanks: map[models.PaymentTerms]int{
			models.PaymentTermsStandard: 1,
			models.PaymentTermsNet60:    2,
			models.PaymentTermsNet90:    3,
		},
		DurationRanks: map[models.ContractDuration]int{
			models.ContractDurationAny:    1,
			models.ContractDurationMedium: 2,
			models.ContractDurationLong:   3,
		},
		ExtendedTermsRank: 2,
	}
}
