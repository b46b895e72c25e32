// internal/policy/engine.go
package policy

import (
	"errors"

	"github.com/quotedesk/backend/internal/models"
)

// ErrInvalidAttributes is returned when the quote total is malformed. The
// total is the only attribute every evaluation depends on; all other fields
// are optional.
var ErrInvalidAttributes = errors.New("total_amount must be a non-negative amount")

// Engine derives the required approver sequence from quote attributes. It is
// a pure function of the attributes and the ruleset: no side effects, always
// deterministic, so callers may recompute the sequence at any time.
type Engine struct {
	rules Ruleset
}

func NewEngine(rules Ruleset) *Engine {
	return &Engine{rules: rules}
}

// RequiredApprovals returns the roles that must sign off on a quote with the
// given attributes, in canonical order, without duplicates. Manager is always
// first: every quote needs management sign-off regardless of content.
func (e *Engine) RequiredApprovals(attrs models.QuoteAttributes) ([]models.ApproverRole, error) {
	if attrs.TotalAmount.IsNegative() {
		return nil, ErrInvalidAttributes
	}

	required := map[models.ApproverRole]bool{
		models.RoleManager: true, // blanket rule
	}

	for _, t := range e.rules.AmountThresholds {
		if attrs.TotalAmount.GreaterThan(t.Amount) {
			required[t.Role] = true
		}
	}

	discount := attrs.Discount()
	for _, b := range e.rules.DiscountBands {
		if b.Contains(discount) {
			required[b.Role] = true
		}
	}

	if e.rules.PaymentTermRank(attrs.PaymentTerms) >= e.rules.ExtendedTermsRank {
		required[models.RoleFinance] = true
	}

	if attrs.PaymentType == models.PaymentTypeInvoice {
		required[models.RoleFinance] = true
	}

	if attrs.BillingFrequency == models.BillingFrequencyMonthly {
		required[models.RoleFinance] = true
	}

	switch attrs.SpecialTerms {
	case models.SpecialTermsService:
		required[models.RoleServices] = true
	case models.SpecialTermsNonStandard:
		required[models.RoleLegal] = true
	}

	if attrs.ProductService == models.ProductServiceService {
		required[models.RoleServices] = true
	}

	switch attrs.ContractDuration {
	case models.ContractDurationMedium:
		required[models.RoleDealDesk] = true
	case models.ContractDurationLong:
		required[models.RoleLegal] = true
	}

	if attrs.DiscountType == models.DiscountTypeNonStandard {
		required[models.RoleDealDesk] = true
	}

	if attrs.RegionTerritory == models.RegionTerritoryInternational {
		required[models.RoleLegal] = true
	}

	sequence := make([]models.ApproverRole, 0, len(required))
	for _, role := range models.ApprovalOrder {
		if required[role] {
			sequence = append(sequence, role)
		}
	}
	return sequence, nil
}
