// internal/handlers/quote.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quotedesk/backend/internal/services"
	"github.com/quotedesk/backend/internal/utils"
)

type QuoteHandler struct {
	quoteService    *services.QuoteService
	approvalService *services.ApprovalService
}

func NewQuoteHandler(quoteService *services.QuoteService, approvalService *services.ApprovalService) *QuoteHandler {
	return &QuoteHandler{
		quoteService:    quoteService,
		approvalService: approvalService,
	}
}

// POST /quotes
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req services.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	detail, err := h.quoteService.Submit(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Quote created successfully",
		"id":      detail.Quote.ID,
		"quote":   detail,
	})
}

// GET /quotes
func (h *QuoteHandler) GetQuotes(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	quotes, total, err := h.quoteService.List(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(quotes, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /quotes/:id
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id, ok := parseQuoteID(c)
	if !ok {
		return
	}

	detail, err := h.quoteService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"quote":             detail.Quote,
		"approvals":         detail.Approvals,
		"required_sequence": detail.RequiredSequence,
	})
}

// POST /quotes/:id/decision
func (h *QuoteHandler) RecordDecision(c *gin.Context) {
	id, ok := parseQuoteID(c)
	if !ok {
		return
	}

	var req services.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.approvalService.RecordDecision(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Approval updated successfully"
	switch result.Outcome {
	case services.OutcomeFullyApproved:
		message = "Quote fully approved"
	case services.OutcomeRejected:
		message = "Quote rejected; it may be resubmitted"
	}

	utils.SuccessResponse(c, gin.H{
		"message":           message,
		"outcome":           result.Outcome,
		"quote":             result.Quote,
		"approval":          result.Approval,
		"required_sequence": result.RequiredSequence,
	})
}

// POST /quotes/:id/recall
func (h *QuoteHandler) RecallQuote(c *gin.Context) {
	id, ok := parseQuoteID(c)
	if !ok {
		return
	}

	snapshot, err := h.quoteService.Recall(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":         "Quote recalled successfully",
		"previous_values": snapshot,
	})
}

func parseQuoteID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid quote ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps typed service errors onto HTTP statuses; anything
// untyped is a store or programming failure and surfaces as a 500.
func respondServiceError(c *gin.Context, err error) {
	svcErr, ok := services.AsServiceError(err)
	if !ok {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	status := http.StatusBadRequest
	switch svcErr.Code {
	case services.CodeNotFound:
		status = http.StatusNotFound
	case services.CodeInvalidState:
		status = http.StatusConflict
	}

	utils.ErrorResponse(c, status, string(svcErr.Code), svcErr.Message, svcErr.Details)
}
