// internal/store/gorm_store.go
package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quotedesk/backend/internal/models"
)

// GormStore persists quotes and approvals through GORM/PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateQuote(quote *models.Quote) error {
	if err := s.db.Create(quote).Error; err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}
	return nil
}

func (s *GormStore) GetQuote(id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	if err := s.db.First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &quote, nil
}

func (s *GormStore) UpdateQuote(quote *models.Quote) error {
	if err := s.db.Save(quote).Error; err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}
	return nil
}

func (s *GormStore) ListQuotes(page, limit int) ([]models.Quote, int64, error) {
	query := s.db.Model(&models.Quote{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count quotes: %w", err)
	}

	var quotes []models.Quote
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&quotes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch quotes: %w", err)
	}
	return quotes, total, nil
}

func (s *GormStore) CreateApproval(approval *models.Approval) error {
	if err := s.db.Create(approval).Error; err != nil {
		return fmt.Errorf("failed to create approval: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateApproval(approval *models.Approval) error {
	if err := s.db.Save(approval).Error; err != nil {
		return fmt.Errorf("failed to update approval: %w", err)
	}
	return nil
}

func (s *GormStore) ApprovalsForQuote(quoteID uuid.UUID) ([]models.Approval, error) {
	var approvals []models.Approval
	if err := s.db.Where("quote_id = ?", quoteID).Find(&approvals).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch approvals: %w", err)
	}
	sortApprovals(approvals)
	return approvals, nil
}

// sortApprovals orders by canonical role rank, oldest first within a role so
// historical records precede their replacements.
func sortApprovals(approvals []models.Approval) {
	sort.SliceStable(approvals, func(i, j int) bool {
		ri, rj := approvals[i].ApproverRole.Rank(), approvals[j].ApproverRole.Rank()
		if ri != rj {
			return ri < rj
		}
		return approvals[i].CreatedAt.Before(approvals[j].CreatedAt)
	})
}
