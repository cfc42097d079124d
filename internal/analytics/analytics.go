// Package analytics provides read-only rollups over the complaint store
// for the admin dashboard.
package analytics

import (
	"civicgo/backend/internal/config"
	"civicgo/backend/internal/models"
	"civicgo/backend/internal/storage"
)

// Service computes complaint rollups.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new analytics service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Stats holds complaint counts by well-known status. Complaints with a
// status outside the three buckets count toward Total only, so
// Pending + InProgress + Resolved <= Total always holds.
type Stats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
}

// Stats runs four independent count queries over the complaint store.
func (s *Service) Stats() (*Stats, error) {
	total, err := s.Storage.CountComplaints("")
	if err != nil {
		return nil, err
	}
	pending, err := s.Storage.CountComplaints(config.StatusPending)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.Storage.CountComplaints(config.StatusInProgress)
	if err != nil {
		return nil, err
	}
	resolved, err := s.Storage.CountComplaints(config.StatusResolved)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Total:      total,
		Pending:    pending,
		InProgress: inProgress,
		Resolved:   resolved,
	}, nil
}

// CategoryBreakdown groups complaints by category, most frequent first.
func (s *Service) CategoryBreakdown() ([]models.CategoryCount, error) {
	return s.Storage.CategoryBreakdown()
}
