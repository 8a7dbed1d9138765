package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cresocrm/internal/common"
	"cresocrm/internal/models"
)

type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *models.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) ListByDistributor(ctx context.Context, distributorID int64) ([]*models.Note, error) {
	args := m.Called(ctx, distributorID)
	return args.Get(0).([]*models.Note), args.Error(1)
}

func TestCreateNote(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	svc := NewNoteService(noteRepo)
	ctx := context.Background()

	noteRepo.On("Create", ctx, mock.MatchedBy(func(n *models.Note) bool {
		return n.ID != uuid.Nil && n.DistributorID == 5 && n.Content == "called back"
	})).Return(nil)

	note, err := svc.Create(ctx, 5, "called back")
	assert.NoError(t, err)
	assert.Equal(t, int64(5), note.DistributorID)
	noteRepo.AssertExpectations(t)
}

func TestCreateNoteRequiresContent(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	svc := NewNoteService(noteRepo)

	_, err := svc.Create(context.Background(), 5, "")

	var validationErr *common.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	noteRepo.AssertNotCalled(t, "Create")
}

func TestCreateNoteRequiresDistributor(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	svc := NewNoteService(noteRepo)

	_, err := svc.Create(context.Background(), 0, "content")

	var validationErr *common.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
