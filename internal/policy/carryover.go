// internal/policy/carryover.go
package policy

import (
	"github.com/shopspring/decimal"

	"github.com/quotedesk/backend/internal/models"
)

// CarryoverEvaluator decides whether an approval granted on a prior quote
// version still applies after an edit. It inspects only the attributes
// relevant to the role's own triggers and keeps the approval only when none
// of them moved unfavorably; any ambiguity forces a fresh approval.
type CarryoverEvaluator struct {
	rules Ruleset
}

func NewCarryoverEvaluator(rules Ruleset) *CarryoverEvaluator {
	return &CarryoverEvaluator{rules: rules}
}

// ShouldKeepApproval reports whether the role's Approved decision on the
// prior attributes may be carried forward to the next attributes. Callers
// invoke it only for roles that are required on the new quote and were
// approved on the immediately prior version.
func (e *CarryoverEvaluator) ShouldKeepApproval(prior, next models.QuoteAttributes, role models.ApproverRole) bool {
	// Manager never carries over: every resubmission needs fresh management
	// sign-off, independent of what changed.
	if role == models.RoleManager {
		return false
	}

	switch role {
	case models.RoleDealDesk:
		if !e.amountStillFavorable(role, prior.TotalAmount, next.TotalAmount) {
			return false
		}
		if !e.discountStillFavorable(role, prior.Discount(), next.Discount()) {
			return false
		}
		if e.rules.DurationRank(next.ContractDuration) > e.rules.DurationRank(prior.ContractDuration) {
			return false
		}
		if enteredCategory(prior.DiscountType, next.DiscountType, models.DiscountTypeNonStandard) {
			return false
		}
		return true

	case models.RoleFinance:
		if !e.amountStillFavorable(role, prior.TotalAmount, next.TotalAmount) {
			return false
		}
		if !e.discountStillFavorable(role, prior.Discount(), next.Discount()) {
			return false
		}
		if e.rules.PaymentTermRank(next.PaymentTerms) > e.rules.PaymentTermRank(prior.PaymentTerms) {
			return false
		}
		if enteredCategory(prior.PaymentType, next.PaymentType, models.PaymentTypeInvoice) {
			return false
		}
		if enteredCategory(prior.BillingFrequency, next.BillingFrequency, models.BillingFrequencyMonthly) {
			return false
		}
		return true

	case models.RoleLegal:
		if !e.amountStillFavorable(role, prior.TotalAmount, next.TotalAmount) {
			return false
		}
		if !e.discountStillFavorable(role, prior.Discount(), next.Discount()) {
			return false
		}
		if e.rules.DurationRank(next.ContractDuration) > e.rules.DurationRank(prior.ContractDuration) {
			return false
		}
		if enteredCategory(prior.SpecialTerms, next.SpecialTerms, models.SpecialTermsNonStandard) {
			return false
		}
		if enteredCategory(prior.RegionTerritory, next.RegionTerritory, models.RegionTerritoryInternational) {
			return false
		}
		return true

	case models.RoleServices:
		if enteredCategory(prior.SpecialTerms, next.SpecialTerms, models.SpecialTermsService) {
			return false
		}
		if enteredCategory(prior.ProductService, next.ProductService, models.ProductServiceService) {
			return false
		}
		return true
	}

	return true
}

// amountStillFavorable checks the role's amount thresholds. A non-smart
// threshold forces re-approval while the new total crosses it; a smart one
// keeps the approval only when the total did not grow past or within the
// threshold (lower totals are the more desirable direction).
func (e *CarryoverEvaluator) amountStillFavorable(role models.ApproverRole, prev, next decimal.Decimal) bool {
	for _, t := range e.rules.AmountThresholds {
		if t.Role != role {
			continue
		}
		crossesNow := next.GreaterThan(t.Amount)
		if !crossesNow {
			continue
		}
		if !t.Smart {
			return false
		}
		if !prev.GreaterThan(t.Amount) || next.GreaterThan(prev) {
			return false
		}
	}
	return true
}

// discountStillFavorable compares band membership for the role's discount
// bands. Entering a band forces re-approval, and a higher discount inside
// the same band is less favorable. Leaving the band keeps the approval: the
// role's other triggers may still justify what was already granted.
func (e *CarryoverEvaluator) discountStillFavorable(role models.ApproverRole, prev, next decimal.Decimal) bool {
	for _, b := range e.rules.DiscountBands {
		if b.Role != role {
			continue
		}
		oldIn, newIn := b.Contains(prev), b.Contains(next)
		if newIn && !oldIn {
			return false
		}
		if newIn && oldIn && next.GreaterThan(prev) {
			return false
		}
	}
	return true
}

func enteredCategory[T comparable](prev, next, trigger T) bool {
	return next == trigger && prev != trigger
}
