package repositories

import (
	"context"

	"cresocrm/internal/common"
	"cresocrm/internal/models"
)

type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	ListByDistributor(ctx context.Context, distributorID int64) ([]*models.Note, error)
}

type noteRepo struct {
	db Database
}

func NewNoteRepository(db Database) NoteRepository {
	return &noteRepo{db: db}
}

const noteRefMsg = "note references an unknown distributor"

func (r *noteRepo) Create(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (id, distributor_id, content, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, note.ID, note.DistributorID, note.Content).Scan(&note.CreatedAt)
	if err != nil {
		return common.TranslateStoreError(err, noteRefMsg, noteRefMsg)
	}
	return nil
}

func (r *noteRepo) ListByDistributor(ctx context.Context, distributorID int64) ([]*models.Note, error) {
	query := `
		SELECT id, distributor_id, content, created_at
		FROM notes
		WHERE distributor_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, distributorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.DistributorID, &note.Content, &note.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}
