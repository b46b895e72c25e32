// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "Pending"
	QuoteStatusApproved QuoteStatus = "Approved"
	QuoteStatusRejected QuoteStatus = "Rejected"
	QuoteStatusRecalled QuoteStatus = "Recalled"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "Pending"
	ApprovalStatusApproved ApprovalStatus = "Approved"
	ApprovalStatusRejected ApprovalStatus = "Rejected"
)

type ApproverRole string

const (
	RoleManager  ApproverRole = "Manager"
	RoleServices ApproverRole = "Services"
	RoleDealDesk ApproverRole = "Deal Desk"
	RoleFinance  ApproverRole = "Finance"
	RoleLegal    ApproverRole = "Legal"
)

// ApprovalOrder is the canonical role order. It is both the display order and
// the mandatory approval sequence.
var ApprovalOrder = []ApproverRole{
	RoleManager,
	RoleServices,
	RoleDealDesk,
	RoleFinance,
	RoleLegal,
}

// Rank returns the position of the role in the canonical order, or -1 for an
// unknown role.
func (r ApproverRole) Rank() int {
	for i, role := range ApprovalOrder {
		if role == r {
			return i
		}
	}
	return -1
}

func (r ApproverRole) Valid() bool {
	return r.Rank() >= 0
}

type PaymentTerms string

const (
	PaymentTermsStandard PaymentTerms = "Standard"
	PaymentTermsNet60    PaymentTerms = ">Net 60"
	PaymentTermsNet90    PaymentTerms = ">Net 90"
)

type PaymentType string

const (
	PaymentTypeCredit  PaymentType = "Credit"
	PaymentTypeInvoice PaymentType = "Invoice"
)

type BillingFrequency string

const (
	BillingFrequencyStandard BillingFrequency = "Standard"
	BillingFrequencyMonthly  BillingFrequency = "Monthly"
	BillingFrequencyCustom   BillingFrequency = "Custom"
)

type SpecialTerms string

const (
	SpecialTermsNone        SpecialTerms = "None"
	SpecialTermsService     SpecialTerms = "Service Terms"
	SpecialTermsNonStandard SpecialTerms = "Non-standard"
)

type ProductService string

const (
	ProductServiceProduct ProductService = "Product"
	ProductServiceService ProductService = "Service"
)

type ContractDuration string

const (
	ContractDurationAny    ContractDuration = "Any Duration"
	ContractDurationMedium ContractDuration = "12-24 Months"
	ContractDurationLong   ContractDuration = ">24 Months"
)

type DiscountType string

const (
	DiscountTypeStandard    DiscountType = "Standard"
	DiscountTypeNonStandard DiscountType = "Non-standard"
)

type RegionTerritory string

const (
	RegionTerritoryDomestic      RegionTerritory = "Domestic"
	RegionTerritoryInternational RegionTerritory = "International"
)
