package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is a free-form annotation attached to a distributor. Notes are
// append-only; deleting the distributor cascades its notes.
type Note struct {
	ID            uuid.UUID `json:"id" db:"id"`
	DistributorID int64     `json:"distributor_id" db:"distributor_id"`
	Content       string    `json:"content" db:"content"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
