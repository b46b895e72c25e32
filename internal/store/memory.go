// internal/store/memory.go
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quotedesk/backend/internal/models"
)

// MemoryStore is an in-process Store used for deterministic tests and local
// development without PostgreSQL. It applies the same identifier-assignment
// and timestamp semantics as the GORM implementation.
type MemoryStore struct {
	mtx       sync.Mutex
	quotes    map[uuid.UUID]models.Quote
	approvals map[uuid.UUID]models.Approval
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		quotes:    make(map[uuid.UUID]models.Quote),
		approvals: make(map[uuid.UUID]models.Approval),
	}
}

func (s *MemoryStore) CreateQuote(quote *models.Quote) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	now := time.Now()
	quote.CreatedAt = now
	quote.UpdatedAt = now
	s.quotes[quote.ID] = *quote
	return nil
}

func (s *MemoryStore) GetQuote(id uuid.UUID) (*models.Quote, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	quote, ok := s.quotes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &quote, nil
}

func (s *MemoryStore) UpdateQuote(quote *models.Quote) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.quotes[quote.ID]; !ok {
		return ErrNotFound
	}
	quote.UpdatedAt = time.Now()
	s.quotes[quote.ID] = *quote
	return nil
}

func (s *MemoryStore) ListQuotes(page, limit int) ([]models.Quote, int64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	all := make([]models.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		all = append(all, q)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Quote{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *MemoryStore) CreateApproval(approval *models.Approval) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if approval.ID == uuid.Nil {
		approval.ID = uuid.New()
	}
	now := time.Now()
	approval.CreatedAt = now
	approval.UpdatedAt = now
	s.approvals[approval.ID] = *approval
	return nil
}

func (s *MemoryStore) UpdateApproval(approval *models.Approval) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.approvals[approval.ID]; !ok {
		return ErrNotFound
	}
	approval.UpdatedAt = time.Now()
	s.approvals[approval.ID] = *approval
	return nil
}

func (s *MemoryStore) ApprovalsForQuote(quoteID uuid.UUID) ([]models.Approval, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var approvals []models.Approval
	for _, a := range s.approvals {
		if a.QuoteID == quoteID {
			approvals = append(approvals, a)
		}
	}
	sortApprovals(approvals)
	return approvals, nil
}
