package services

import (
	"context"

	"github.com/google/uuid"

	"cresocrm/internal/common"
	"cresocrm/internal/models"
	"cresocrm/internal/repositories"
)

type NoteService interface {
	Create(ctx context.Context, distributorID int64, content string) (*models.Note, error)
	ListByDistributor(ctx context.Context, distributorID int64) ([]*models.Note, error)
}

type noteService struct {
	noteRepo repositories.NoteRepository
}

func NewNoteService(noteRepo repositories.NoteRepository) NoteService {
	return &noteService{noteRepo: noteRepo}
}

func (s *noteService) Create(ctx context.Context, distributorID int64, content string) (*models.Note, error) {
	if distributorID == 0 {
		return nil, &common.ValidationError{Message: "distributorId is required"}
	}
	if content == "" {
		return nil, &common.ValidationError{Message: "content is required"}
	}

	note := &models.Note{
		ID:            uuid.New(),
		DistributorID: distributorID,
		Content:       content,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) ListByDistributor(ctx context.Context, distributorID int64) ([]*models.Note, error) {
	return s.noteRepo.ListByDistributor(ctx, distributorID)
}
