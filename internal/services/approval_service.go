// internal/services/approval_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/quotedesk/backend/internal/models"
	"github.com/quotedesk/backend/internal/policy"
	"github.com/quotedesk/backend/internal/store"
	"github.com/quotedesk/backend/internal/utils"
)

// ApprovalService is the approval state machine for a single quote: it
// admits decisions strictly in role order and drives the quote-level status
// transitions (rejection cascade, full-approval closure).
type ApprovalService struct {
	store  store.Store
	engine *policy.Engine
}

func NewApprovalService(st store.Store, rules policy.Ruleset) *ApprovalService {
	return &ApprovalService{
		store:  st,
		engine: policy.NewEngine(rules),
	}
}

type DecisionRequest struct {
	ApproverRole models.ApproverRole   `json:"approver_role" validate:"required,oneof=Manager Services 'Deal Desk' Finance Legal"`
	Decision     models.ApprovalStatus `json:"decision" validate:"required,oneof=Approved Rejected"`
}

// DecisionOutcome tells the caller what the decision led to.
type DecisionOutcome string

const (
	OutcomeRecorded      DecisionOutcome = "recorded"
	OutcomeFullyApproved DecisionOutcome = "fully_approved"
	OutcomeRejected      DecisionOutcome = "rejected"
)

type DecisionResult struct {
	Quote            models.Quote          `json:"quote"`
	Approval         models.Approval       `json:"approval"`
	RequiredSequence []models.ApproverRole `json:"required_sequence"`
	Outcome          DecisionOutcome       `json:"outcome"`
}

// RecordDecision applies one role's decision to a pending quote. The
// required sequence is recomputed from the quote's immutable attributes on
// every call, so the gating check never trusts a possibly stale snapshot.
func (s *ApprovalService) RecordDecision(quoteID uuid.UUID, req *DecisionRequest) (*DecisionResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &Error{
			Code:    CodeInvalidAttributes,
			Message: "invalid decision request",
			Details: utils.GetValidationErrors(err),
		}
	}

	quote, err := s.store.GetQuote(quoteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(CodeNotFound, "quote not found")
		}
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}

	if quote.Status != models.QuoteStatusPending {
		return nil, newError(CodeInvalidState,
			fmt.Sprintf("quote is %s and no longer accepts decisions", quote.Status))
	}

	sequence, err := s.engine.RequiredApprovals(quote.QuoteAttributes)
	if err != nil {
		return nil, newError(CodeInvalidAttributes, err.Error())
	}

	position := -1
	for i, role := range sequence {
		if role == req.ApproverRole {
			position = i
			break
		}
	}
	if position < 0 {
		return nil, &Error{
			Code:    CodeInvalidRole,
			Message: fmt.Sprintf("%s approval is not required for this quote", req.ApproverRole),
			Details: map[string]interface{}{"required_sequence": sequence},
		}
	}

	approvals, err := s.store.ApprovalsForQuote(quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load approvals: %w", err)
	}

	active := make(map[models.ApproverRole]*models.Approval, len(sequence))
	for i := range approvals {
		if !approvals[i].Historical {
			active[approvals[i].ApproverRole] = &approvals[i]
		}
	}

	// Sequential gate: every predecessor in the required sequence must hold
	// an Approved, non-historical approval.
	for _, predecessor := range sequence[:position] {
		prev := active[predecessor]
		if prev == nil || prev.Status != models.ApprovalStatusApproved {
			return nil, &Error{
				Code:    CodeOrderViolation,
				Message: fmt.Sprintf("cannot record decision: %s must approve first", predecessor),
				Details: map[string]interface{}{
					"required_sequence": sequence,
					"unmet_role":        predecessor,
				},
			}
		}
	}

	target := active[req.ApproverRole]
	if target == nil {
		return nil, newError(CodeNotFound, "approval not found")
	}

	decided := req.Decision
	target.Status = decided
	target.OriginalStatus = &decided
	target.SmartApproval = false
	if err := s.store.UpdateApproval(target); err != nil {
		return nil, err
	}

	outcome := OutcomeRecorded
	switch decided {
	case models.ApprovalStatusRejected:
		// Rejection freezes the audit trail: every live approval becomes
		// historical and the quote terminates.
		for _, approval := range active {
			approval.Historical = true
			if err := s.store.UpdateApproval(approval); err != nil {
				return nil, err
			}
		}
		quote.Status = models.QuoteStatusRejected
		if err := s.store.UpdateQuote(quote); err != nil {
			return nil, err
		}
		outcome = OutcomeRejected

	case models.ApprovalStatusApproved:
		complete := true
		for _, role := range sequence {
			approval := active[role]
			if approval == nil || approval.Status != models.ApprovalStatusApproved {
				complete = false
				break
			}
		}
		if complete {
			quote.Status = models.QuoteStatusApproved
			if err := s.store.UpdateQuote(quote); err != nil {
				return nil, err
			}
			outcome = OutcomeFullyApproved
		}
	}

	return &DecisionResult{
		Quote:            *quote,
		Approval:         *target,
		RequiredSequence: sequence,
		Outcome:          outcome,
	}, nil
}
