// internal/policy/carryover_test.go
package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quotedesk/backend/internal/models"
)

func TestManagerNeverCarriesOver(t *testing.T) {
	eval := NewCarryoverEvaluator(DefaultRuleset())

	attrs := models.QuoteAttributes{TotalAmount: dec(1000)}
	assert.False(t, eval.ShouldKeepApproval(attrs, attrs, models.RoleManager),
		"manager must re-approve even when nothing changed")
}

func TestDealDeskCarryover(t *testing.T) {
	eval := NewCarryoverEvaluator(DefaultRuleset())

	tests := []struct {
		name  string
		prior models.QuoteAttributes
		next  models.QuoteAttributes
		keep  bool
	}{
		{
			name:  "discount lowered within band",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(28)},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(22)},
			keep:  true,
		},
		{
			name:  "discount unchanged",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(25)},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(25)},
			keep:  true,
		},
		{
			name:  "discount raised within band",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(22)},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(28)},
			keep:  false,
		},
		{
			name:  "discount entered band from below",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(10)},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(25)},
			keep:  false,
		},
		{
			name:  "discount left band downward",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(25)},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(15)},
			keep:  true,
		},
		{
			name:  "duration extended",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), ContractDuration: models.ContractDurationMedium},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), ContractDuration: models.ContractDurationLong},
			keep:  false,
		},
		{
			name:  "duration shortened",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), ContractDuration: models.ContractDurationMedium},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), ContractDuration: models.ContractDurationAny},
			keep:  true,
		},
		{
			name:  "discount type became non-standard",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), DiscountType: models.DiscountTypeStandard},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), DiscountType: models.DiscountTypeNonStandard},
			keep:  false,
		},
		{
			name:  "discount type became standard",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), DiscountType: models.DiscountTypeNonStandard},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), DiscountType: models.DiscountTypeStandard},
			keep:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keep, eval.ShouldKeepApproval(tt.prior, tt.next, models.RoleDealDesk))
		})
	}
}

func TestFinanceCarryover(t *testing.T) {
	eval := NewCarryoverEvaluator(DefaultRuleset())

	tests := []struct {
		name  string
		prior models.QuoteAttributes
		next  models.QuoteAttributes
		keep  bool
	}{
		{
			name:  "amount over threshold always re-approves",
			prior: models.QuoteAttributes{TotalAmount: dec(200000)},
			next:  models.QuoteAttributes{TotalAmount: dec(150000)},
			keep:  false,
		},
		{
			name:  "amount dropped below threshold",
			prior: models.QuoteAttributes{TotalAmount: dec(200000)},
			next:  models.QuoteAttributes{TotalAmount: dec(90000)},
			keep:  true,
		},
		{
			name:  "discount lowered within finance band",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(38)},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(32)},
			keep:  true,
		},
		{
			name:  "discount raised within finance band",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(32)},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(38)},
			keep:  false,
		},
		{
			name:  "discount entered finance band",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(25)},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(35)},
			keep:  false,
		},
		{
			name:  "payment terms extended",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), PaymentTerms: models.PaymentTermsStandard},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), PaymentTerms: models.PaymentTermsNet60},
			keep:  false,
		},
		{
			name:  "payment terms extended further",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), PaymentTerms: models.PaymentTermsNet60},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), PaymentTerms: models.PaymentTermsNet90},
			keep:  false,
		},
		{
			name:  "payment terms shortened",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), PaymentTerms: models.PaymentTermsNet60},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), PaymentTerms: models.PaymentTermsStandard},
			keep:  true,
		},
		{
			name:  "payment type became invoice",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), PaymentType: models.PaymentTypeCredit},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), PaymentType: models.PaymentTypeInvoice},
			keep:  false,
		},
		{
			name:  "billing became monthly",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), BillingFrequency: models.BillingFrequencyStandard},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), BillingFrequency: models.BillingFrequencyMonthly},
			keep:  false,
		},
		{
			name:  "billing left monthly",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), BillingFrequency: models.BillingFrequencyMonthly},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), BillingFrequency: models.BillingFrequencyStandard},
			keep:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keep, eval.ShouldKeepApproval(tt.prior, tt.next, models.RoleFinance))
		})
	}
}

func TestLegalCarryover(t *testing.T) {
	eval := NewCarryoverEvaluator(DefaultRuleset())

	tests := []struct {
		name  string
		prior models.QuoteAttributes
		next  models.QuoteAttributes
		keep  bool
	}{
		{
			name:  "discount raised within legal band",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(42)},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(48)},
			keep:  false,
		},
		{
			name:  "discount lowered within legal band",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(48)},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), DiscountPercentage: decPtr(42)},
			keep:  true,
		},
		{
			name:  "duration became long",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), ContractDuration: models.ContractDurationAny},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), ContractDuration: models.ContractDurationLong},
			keep:  false,
		},
		{
			name:  "special terms became non-standard",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), SpecialTerms: models.SpecialTermsNone},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), SpecialTerms: models.SpecialTermsNonStandard},
			keep:  false,
		},
		{
			name:  "region became international",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), RegionTerritory: models.RegionTerritoryDomestic},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), RegionTerritory: models.RegionTerritoryInternational},
			keep:  false,
		},
		{
			name:  "region became domestic",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), RegionTerritory: models.RegionTerritoryInternational},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), RegionTerritory: models.RegionTerritoryDomestic},
			keep:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keep, eval.ShouldKeepApproval(tt.prior, tt.next, models.RoleLegal))
		})
	}
}

func TestServicesCarryover(t *testing.T) {
	eval := NewCarryoverEvaluator(DefaultRuleset())

	tests := []struct {
		name  string
		prior models.QuoteAttributes
		next  models.QuoteAttributes
		keep  bool
	}{
		{
			name:  "special terms became service terms",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), SpecialTerms: models.SpecialTermsNone},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), SpecialTerms: models.SpecialTermsService},
			keep:  false,
		},
		{
			name:  "product became service",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), ProductService: models.ProductServiceProduct},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), ProductService: models.ProductServiceService},
			keep:  false,
		},
		{
			name:  "service attributes unchanged",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), ProductService: models.ProductServiceService},
			next:  models.QuoteAttributes{TotalAmount: dec(5000), ProductService: models.ProductServiceService},
			keep:  true,
		},
		{
			name:  "product left service",
			prior: models.QuoteAttributes{TotalAmount: dec(1000), ProductService: models.ProductServiceService},
			next:  models.QuoteAttributes{TotalAmount: dec(1000), ProductService: models.ProductServiceProduct},
			keep:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keep, eval.ShouldKeepApproval(tt.prior, tt.next, models.RoleServices))
		})
	}
}
