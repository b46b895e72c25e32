// internal/models/approval.go
package models

import (
	"github.com/google/uuid"
)

// Approval is one role's sign-off slot on a single quote version. There is
// exactly one record per (quote, role) pair for each role in the quote's
// required sequence.
//
// Historical records are retained for audit only; they are excluded from
// sequential gating and from the all-approved completion check.
type Approval struct {
	BaseModel
	QuoteID      uuid.UUID      `json:"quote_id" gorm:"type:uuid;not null;index:idx_approvals_quote_role"`
	ApproverRole ApproverRole   `json:"approver_role" gorm:"size:16;not null;index:idx_approvals_quote_role"`
	Status       ApprovalStatus `json:"status" gorm:"size:16;not null;default:'Pending'"`
	Historical   bool           `json:"historical" gorm:"not null;default:false"`

	// SmartApproval marks an Approved status inherited from a prior quote
	// version rather than freshly granted.
	SmartApproval bool `json:"smart_approval" gorm:"not null;default:false"`

	// OriginalStatus snapshots the human decision at the time it was made.
	// A later administrative reset of Status to Pending (recall) must not
	// destroy the record of what was actually decided.
	OriginalStatus *ApprovalStatus `json:"original_status,omitempty" gorm:"size:16"`

	// PreviousApprovalID points to the approval on the prior quote version
	// whose decision was carried forward. Lineage only, never mutated.
	PreviousApprovalID *uuid.UUID `json:"previous_approval_id,omitempty" gorm:"type:uuid"`
}

// DecidedStatus returns the authoritative decision for carryover checks:
// OriginalStatus when set, falling back to Status.
func (a *Approval) DecidedStatus() ApprovalStatus {
	if a.OriginalStatus != nil {
		return *a.OriginalStatus
	}
	return a.Status
}
