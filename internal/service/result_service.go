package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecuaforma/simulador-backend/internal/model"
	"github.com/ecuaforma/simulador-backend/internal/repository"
)

// ResultService serves the signed-in candidate's attempt history.
type ResultService struct {
	resultRepo *repository.ResultRepository
}

// NewResultService creates a new ResultService.
func NewResultService(resultRepo *repository.ResultRepository) *ResultService {
	return &ResultService{resultRepo: resultRepo}
}

// History returns the candidate's past attempts, newest first. Attempts
// whose simulator was deleted keep their scores with a nil simulator.
func (s *ResultService) History(ctx context.Context, userID uuid.UUID) ([]model.HistoryEntry, error) {
	entries, err := s.resultRepo.ListHistoryByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return entries, nil
}
