package services

import (
	"fmt"

	"github.com/bookmatch/bookmatch/internal/catalog"
	"github.com/bookmatch/bookmatch/internal/database"
	"github.com/bookmatch/bookmatch/internal/logging"
)

type HistoryService struct {
	repo *database.HistoryRepository
}

func NewHistoryService(dbCtx *database.Context) *HistoryService {
	return &HistoryService{repo: database.NewHistoryRepository(dbCtx)}
}

// Get returns the view history of username, oldest first.
func (s *HistoryService) Get(username string) catalog.History {
	return s.repo.Load(username)
}

// Record appends isbn to the history unless it is already there. It reports
// whether the history changed.
func (s *HistoryService) Record(username, isbn string) (bool, error) {
	history := s.repo.Load(username)
	if !history.Add(isbn) {
		return false, nil
	}
	if err := s.repo.Save(history); err != nil {
		return false, fmt.Errorf("failed to save history: %w", err)
	}

	logging.Debug().Str("user", username).Str("isbn", isbn).Msg("history recorded")
	return true, nil
}

// Remove deletes isbn from the history and reports whether it was present.
func (s *HistoryService) Remove(username, isbn string) (bool, error) {
	history := s.repo.Load(username)
	if !history.Remove(isbn) {
		return false, nil
	}
	if err := s.repo.Save(history); err != nil {
		return false, fmt.Errorf("failed to save history: %w", err)
	}
	return true, nil
}

// Clear empties the history of username.
func (s *HistoryService) Clear(username string) error {
	if err := s.repo.Clear(username); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
