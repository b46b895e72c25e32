// internal/store/store.go
package store

import (
	"errors"

	"github.com/google/uuid"

	"github.com/quotedesk/backend/internal/models"
)

// ErrNotFound is returned when an identifier does not resolve to a stored
// document.
var ErrNotFound = errors.New("record not found")

// Store is the keyed-document persistence boundary for quotes and approvals:
// insert assigns a stable identifier, documents are fetched by identifier or
// searched by field equality, and updates replace a document in place. The
// services enforce every domain invariant before writing, so no schema
// checks are expected from implementations.
type Store interface {
	CreateQuote(quote *models.Quote) error
	GetQuote(id uuid.UUID) (*models.Quote, error)
	UpdateQuote(quote *models.Quote) error
	ListQuotes(page, limit int) ([]models.Quote, int64, error)

	CreateApproval(approval *models.Approval) error
	UpdateApproval(approval *models.Approval) error

	// ApprovalsForQuote returns every approval owned by the quote, historical
	// ones included, ordered by canonical role rank.
	ApprovalsForQuote(quoteID uuid.UUID) ([]models.Approval, error)
}
