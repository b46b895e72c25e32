// internal/models/quote.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteAttributes is the rule-relevant snapshot of a quote. Attributes are
// immutable once the quote is created; a resubmission creates a new Quote
// record instead of editing this one, so every approval decision stays tied
// to the exact attribute values it was granted against.
type QuoteAttributes struct {
	TotalAmount        decimal.Decimal  `json:"total_amount" gorm:"type:numeric(14,2);not null"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty" gorm:"type:numeric(5,2)"`
	PaymentTerms       PaymentTerms     `json:"payment_terms,omitempty" gorm:"size:32"`
	PaymentType        PaymentType      `json:"payment_type,omitempty" gorm:"size:32"`
	BillingFrequency   BillingFrequency `json:"billing_frequency,omitempty" gorm:"size:32"`
	SpecialTerms       SpecialTerms     `json:"special_terms,omitempty" gorm:"size:32"`
	ProductService     ProductService   `json:"product_service,omitempty" gorm:"size:32"`
	ContractDuration   ContractDuration `json:"contract_duration,omitempty" gorm:"size:32"`
	DiscountType       DiscountType     `json:"discount_type,omitempty" gorm:"size:32"`
	RegionTerritory    RegionTerritory  `json:"region_territory,omitempty" gorm:"size:32"`
}

// Discount returns the discount percentage, treating an absent value as
// exactly zero for every comparison.
func (a QuoteAttributes) Discount() decimal.Decimal {
	if a.DiscountPercentage == nil {
		return decimal.Zero
	}
	return *a.DiscountPercentage
}

type Quote struct {
	BaseModel
	QuoteAttributes   `gorm:"embedded"`
	Status            QuoteStatus `json:"status" gorm:"size:16;not null;default:'Pending';index"`
	PreviousVersionID *uuid.UUID  `json:"previous_version_id,omitempty" gorm:"type:uuid;index"`
}
