// internal/services/approval_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotedesk/backend/internal/models"
)

func TestRecordDecisionUnknownQuote(t *testing.T) {
	_, approvalSvc := newTestServices()

	_, err := approvalSvc.RecordDecision(uuid.New(), &DecisionRequest{
		ApproverRole: models.RoleManager,
		Decision:     models.ApprovalStatusApproved,
	})
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, svcErr.Code)
}

func TestRecordDecisionInvalidRole(t *testing.T) {
	quoteSvc, approvalSvc := newTestServices()

	detail, err := quoteSvc.Submit(&SubmitQuoteRequest{TotalAmount: amount(5000)})
	require.NoError(t, err)

	// Legal is not part of this quote's sequence.
	_, err = approvalSvc.RecordDecision(detail.Quote.ID, &DecisionRequest{
		ApproverRole: models.RoleLegal,
		Decision:     models.ApprovalStatusApproved,
	})
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidRole, svcErr.Code)
	details, ok := svcErr.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "required_sequence")
}

func TestRecordDecisionMalformed(t *testing.T) {
	quoteSvc, approvalSvc := newTestServices()

	detail, err := quoteSvc.Submit(&SubmitQuoteRequest{TotalAmount: amount(5000)})
	require.NoError(t, err)

	_, err = approvalSvc.RecordDecision(detail.Quote.ID, &DecisionRequest{
		ApproverRole: models.RoleManager,
		Decision:     models.ApprovalStatus("Maybe"),
	})
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidAttributes, svcErr.Code)
}

func TestRecordDecisionOutOfOrder(t *testing.T) {
	quoteSvc, approvalSvc := newTestServices()

	detail, err := quoteSvc.Submit(&SubmitQuoteRequest{
		TotalAmount:        amount(150000),
		DiscountPercentage: amount(25),
	})
	require.NoError(t, err)
	require.Equal(t,
		[]models.ApproverRole{models.RoleManager, models.RoleDealDesk, models.RoleFinance},
		detail.RequiredSequence)

	// Finance cannot act before Manager and Deal Desk.
	_, err = approvalSvc.RecordDecision(detail.Quote.ID, &DecisionRequest{
		ApproverRole: models.RoleFinance,
		Decision:     models.ApprovalStatusApproved,
	})
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeOrderViolation, svcErr.Code)
	details, ok := svcErr.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, models.RoleManager, details["unmet_role"])

	// Manager approves; Deal Desk is now the gate.
	_, err = approvalSvc.RecordDecision(detail.Quote.ID, &DecisionRequest{
		ApproverRole: models.RoleManager,
		Decision:     models.ApprovalStatusApproved,
	})
	require.NoError(t, err)

	_, err = approvalSvc.RecordDecision(detail.Quote.ID, &DecisionRequest{
		ApproverRole: models.RoleFinance,
		Decision:     models.ApprovalStatusApproved,
	})
	svcErr, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeOrderViolation, svcErr.Code)
	details, ok = svcErr.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, models.RoleDealDesk, details["unmet_role"])
}

func TestRecordDecisionFullApproval(t *testing.T) {
	quoteSvc, approvalSvc := newTestServices()

	detail, err := quoteSvc.Submit(&SubmitQuoteRequest{
		TotalAmount:        amount(5000),
		DiscountPercentage: amount(25),
	})
	require.NoError(t, err)

	result, err := approvalSvc.RecordDecision(detail.Quote.ID, &DecisionRequest{
		ApproverRole: models.RoleManager,
		Decision:     models.ApprovalStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeRecorded, result.Outcome)
	assert.Equal(t, models.QuoteStatusPending, result.Quote.Status)

	result, err = approvalSvc.RecordDecision(detail.Quote.ID, &DecisionRequest{
		ApproverRole: models.RoleDealDesk,
		Decision:     models.ApprovalStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeFullyApproved, result.Outcome)
	assert.Equal(t, models.QuoteStatusApproved, result.Quote.Status)
}

func TestRecordDecisionSmartApprovalCountsTowardClosure(t *testing.T) {
	quoteSvc, approvalSvc := newTestServices()

	first, err := quoteSvc.Submit(&SubmitQuoteRequest{
		TotalAmount:        amount(5000),
		DiscountPercentage: amount(25),
	})
	require.NoError(t, err)
	approveAll(t, approvalSvc, first.Quote.ID, first.RequiredSequence)

	second, err := quoteSvc.Submit(&SubmitQuoteRequest{
		TotalAmount:        amount(5000),
		DiscountPercentage: amount(25),
		PreviousQuoteID:    &first.Quote.ID,
	})
	require.NoError(t, err)

	// Deal Desk carried over; the quote closes on Manager's approval alone.
	result, err := approvalSvc.RecordDecision(second.Quote.ID, &DecisionRequest{
		ApproverRole: models.RoleManager,
		Decision:     models.ApprovalStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeFullyApproved, result.Outcome)
	assert.Equal(t, models.QuoteStatusApproved, result.Quote.Status)
}

func TestRecordDecisionRejectionCascade(t *testing.T) {
	quoteSvc, approvalSvc := newTestServices()

	detail, err := quoteSvc.Submit(&SubmitQuoteRequest{
		TotalAmount:        amount(5000),
		DiscountPercentage: amount(25),
	})
	require.NoError(t, err)

	_, err = approvalSvc.RecordDecision(detail.Quote.ID, &DecisionRequest{
		ApproverRole: models.RoleManager,
		Decision:     models.ApprovalStatusApproved,
	})
	require.NoError(t, err)

	result, err := approvalSvc.RecordDecision(detail.Quote.ID, &DecisionRequest{
		ApproverRole: models.RoleDealDesk,
		Decision:     models.ApprovalStatusRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Equal(t, models.QuoteStatusRejected, result.Quote.Status)

	after, err := quoteSvc.Get(detail.Quote.ID)
	require.NoError(t, err)
	for _, approval := range after.Approvals {
		assert.True(t, approval.Historical)
	}

	// No further decisions once the quote is rejected.
	_, err = approvalSvc.RecordDecision(detail.Quote.ID, &DecisionRequest{
		ApproverRole: models.RoleManager,
		Decision:     models.ApprovalStatusApproved,
	})
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidState, svcErr.Code)
}

func TestRecordDecisionAfterFullApproval(t *testing.T) {
	quoteSvc, approvalSvc := newTestServices()

	detail, err := quoteSvc.Submit(&SubmitQuoteRequest{TotalAmount: amount(5000)})
	require.NoError(t, err)
	approveAll(t, approvalSvc, detail.Quote.ID, detail.RequiredSequence)

	_, err = approvalSvc.RecordDecision(detail.Quote.ID, &DecisionRequest{
		ApproverRole: models.RoleManager,
		Decision:     models.ApprovalStatusApproved,
	})
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidState, svcErr.Code)
}

func TestRecordDecisionOverridesSmartApproval(t *testing.T) {
	quoteSvc, approvalSvc := newTestServices()

	first, err := quoteSvc.Submit(&SubmitQuoteRequest{
		TotalAmount:        amount(150000),
		DiscountPercentage: amount(25),
	})
	require.NoError(t, err)
	approveAll(t, approvalSvc, first.Quote.ID, first.RequiredSequence)

	// Deal Desk carries (discount unchanged) but Finance re-reviews because
	// the amount is still over its threshold, so the quote stays open.
	second, err := quoteSvc.Submit(&SubmitQuoteRequest{
		TotalAmount:        amount(150000),
		DiscountPercentage: amount(25),
		PreviousQuoteID:    &first.Quote.ID,
	})
	require.NoError(t, err)

	_, err = approvalSvc.RecordDecision(second.Quote.ID, &DecisionRequest{
		ApproverRole: models.RoleManager,
		Decision:     models.ApprovalStatusApproved,
	})
	require.NoError(t, err)

	// A carried approval can still be explicitly re-decided while the quote
	// is pending; doing so clears the smart flag.
	result, err := approvalSvc.RecordDecision(second.Quote.ID, &DecisionRequest{
		ApproverRole: models.RoleDealDesk,
		Decision:     models.ApprovalStatusApproved,
	})
	require.NoError(t, err)
	assert.False(t, result.Approval.SmartApproval)
}
