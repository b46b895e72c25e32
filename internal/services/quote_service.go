// internal/services/quote_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quotedesk/backend/internal/models"
	"github.com/quotedesk/backend/internal/policy"
	"github.com/quotedesk/backend/internal/store"
	"github.com/quotedesk/backend/internal/utils"
)

// QuoteService owns the quote lifecycle: creation, resubmission lineage and
// recall. Approval decisions on a live quote are handled by ApprovalService.
type QuoteService struct {
	store     store.Store
	engine    *policy.Engine
	carryover *policy.CarryoverEvaluator
}

func NewQuoteService(st store.Store, rules policy.Ruleset) *QuoteService {
	return &QuoteService{
		store:     st,
		engine:    policy.NewEngine(rules),
		carryover: policy.NewCarryoverEvaluator(rules),
	}
}

type SubmitQuoteRequest struct {
	TotalAmount        *decimal.Decimal        `json:"total_amount" validate:"required"`
	DiscountPercentage *decimal.Decimal        `json:"discount_percentage,omitempty"`
	PaymentTerms       models.PaymentTerms     `json:"payment_terms,omitempty" validate:"omitempty,oneof=Standard '>Net 60' '>Net 90'"`
	PaymentType        models.PaymentType      `json:"payment_type,omitempty" validate:"omitempty,oneof=Credit Invoice"`
	BillingFrequency   models.BillingFrequency `json:"billing_frequency,omitempty" validate:"omitempty,oneof=Standard Monthly Custom"`
	SpecialTerms       models.SpecialTerms     `json:"special_terms,omitempty" validate:"omitempty,oneof=None 'Service Terms' Non-standard"`
	ProductService     models.ProductService   `json:"product_service,omitempty" validate:"omitempty,oneof=Product Service"`
	ContractDuration   models.ContractDuration `json:"contract_duration,omitempty" validate:"omitempty,oneof='Any Duration' '12-24 Months' '>24 Months'"`
	DiscountType       models.DiscountType     `json:"discount_type,omitempty" validate:"omitempty,oneof=Standard Non-standard"`
	RegionTerritory    models.RegionTerritory  `json:"region_territory,omitempty" validate:"omitempty,oneof=Domestic International"`
	PreviousQuoteID    *uuid.UUID              `json:"previous_quote_id,omitempty"`
}

func (r *SubmitQuoteRequest) attributes() models.QuoteAttributes {
	attrs := models.QuoteAttributes{
		DiscountPercentage: r.DiscountPercentage,
		PaymentTerms:       r.PaymentTerms,
		PaymentType:        r.PaymentType,
		BillingFrequency:   r.BillingFrequency,
		SpecialTerms:       r.SpecialTerms,
		ProductService:     r.ProductService,
		ContractDuration:   r.ContractDuration,
		DiscountType:       r.DiscountType,
		RegionTerritory:    r.RegionTerritory,
	}
	if r.TotalAmount != nil {
		attrs.TotalAmount = *r.TotalAmount
	}
	return attrs
}

// QuoteDetail is a quote together with its approval set and the required
// sequence recomputed from the quote's immutable attributes.
type QuoteDetail struct {
	Quote            models.Quote          `json:"quote"`
	Approvals        []models.Approval     `json:"approvals"`
	RequiredSequence []models.ApproverRole `json:"required_sequence"`
}

// Submit creates a new quote version and seeds its approval set. When the
// request names a previous quote, each required role's prior Approved
// decision is carried forward if the carryover policy allows it; Manager is
// never seeded, so a resubmitted quote can never arrive fully approved.
func (s *QuoteService) Submit(req *SubmitQuoteRequest) (*QuoteDetail, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &Error{
			Code:    CodeInvalidAttributes,
			Message: "invalid quote attributes",
			Details: utils.GetValidationErrors(err),
		}
	}

	attrs := req.attributes()

	// The required sequence is fixed here, once, for the lifetime of this
	// quote version.
	sequence, err := s.engine.RequiredApprovals(attrs)
	if err != nil {
		return nil, newError(CodeInvalidAttributes, err.Error())
	}

	var prevQuote *models.Quote
	var prevApprovals []models.Approval
	if req.PreviousQuoteID != nil {
		prevQuote, err = s.store.GetQuote(*req.PreviousQuoteID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, newError(CodeNotFound, "previous quote not found")
			}
			return nil, fmt.Errorf("failed to load previous quote: %w", err)
		}
		// Historical approvals included: after a recall every prior approval
		// is historical and still carries the authoritative decision.
		prevApprovals, err = s.store.ApprovalsForQuote(prevQuote.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load previous approvals: %w", err)
		}
	}

	quote := &models.Quote{
		QuoteAttributes:   attrs,
		Status:            models.QuoteStatusPending,
		PreviousVersionID: req.PreviousQuoteID,
	}
	if err := s.store.CreateQuote(quote); err != nil {
		return nil, err
	}

	approvals := make([]models.Approval, 0, len(sequence))
	for _, role := range sequence {
		approval := models.Approval{
			QuoteID:      quote.ID,
			ApproverRole: role,
			Status:       models.ApprovalStatusPending,
		}

		if prevQuote != nil {
			if prev := latestApprovalForRole(prevApprovals, role); prev != nil &&
				prev.DecidedStatus() == models.ApprovalStatusApproved &&
				s.carryover.ShouldKeepApproval(prevQuote.QuoteAttributes, attrs, role) {
				prevID := prev.ID
				approval.Status = models.ApprovalStatusApproved
				approval.SmartApproval = true
				approval.PreviousApprovalID = &prevID
			}
		}

		if err := s.store.CreateApproval(&approval); err != nil {
			return nil, err
		}
		approvals = append(approvals, approval)
	}

	return &QuoteDetail{
		Quote:            *quote,
		Approvals:        approvals,
		RequiredSequence: sequence,
	}, nil
}

// Get returns the quote, its full approval set (historical records included)
// and the required sequence recomputed from its attributes.
func (s *QuoteService) Get(id uuid.UUID) (*QuoteDetail, error) {
	quote, err := s.store.GetQuote(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(CodeNotFound, "quote not found")
		}
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}

	approvals, err := s.store.ApprovalsForQuote(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load approvals: %w", err)
	}

	sequence, err := s.engine.RequiredApprovals(quote.QuoteAttributes)
	if err != nil {
		return nil, newError(CodeInvalidAttributes, err.Error())
	}

	return &QuoteDetail{
		Quote:            *quote,
		Approvals:        approvals,
		RequiredSequence: sequence,
	}, nil
}

// List returns quotes ordered newest first.
func (s *QuoteService) List(params utils.PaginationParams) ([]models.Quote, int64, error) {
	return s.store.ListQuotes(params.Page, params.Limit)
}

// Recall withdraws a quote that is still pending or fully approved, marking
// every approval historical while preserving each one's last status in
// OriginalStatus. The returned snapshot reflects the quote before the recall
// so callers can prefill a resubmission.
func (s *QuoteService) Recall(id uuid.UUID) (*models.Quote, error) {
	quote, err := s.store.GetQuote(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(CodeNotFound, "quote not found")
		}
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}

	if quote.Status != models.QuoteStatusPending && quote.Status != models.QuoteStatusApproved {
		return nil, newError(CodeInvalidState,
			fmt.Sprintf("cannot recall a quote with status %s", quote.Status))
	}

	snapshot := *quote

	quote.Status = models.QuoteStatusRecalled
	if err := s.store.UpdateQuote(quote); err != nil {
		return nil, err
	}

	approvals, err := s.store.ApprovalsForQuote(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load approvals: %w", err)
	}
	for i := range approvals {
		approval := &approvals[i]
		if approval.Historical {
			continue
		}
		status := approval.Status
		approval.OriginalStatus = &status
		approval.Status = models.ApprovalStatusPending
		approval.Historical = true
		if err := s.store.UpdateApproval(approval); err != nil {
			return nil, err
		}
	}

	return &snapshot, nil
}

// latestApprovalForRole picks the most recent approval record for the role.
// The one-record-per-role invariant normally makes this unique; if older
// duplicates exist the newest decision wins.
func latestApprovalForRole(approvals []models.Approval, role models.ApproverRole) *models.Approval {
	var match *models.Approval
	for i := range approvals {
		if approvals[i].ApproverRole == role {
			match = &approvals[i]
		}
	}
	return match
}
