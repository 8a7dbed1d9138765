package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cresocrm/internal/common"
	"cresocrm/internal/models"
	"cresocrm/internal/services"
)

// NoteHandlers handles note HTTP requests
type NoteHandlers struct {
	noteService services.NoteService
}

func NewNoteHandlers(noteService services.NoteService) *NoteHandlers {
	return &NoteHandlers{noteService: noteService}
}

// CreateNoteRequest represents the note creation request payload
type CreateNoteRequest struct {
	DistributorID int64  `json:"distributorId"`
	Content       string `json:"content"`
}

// CreateNote appends a note to a distributor.
func (h *NoteHandlers) CreateNote(c echo.Context) error {
	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", "Invalid request format", nil))
	}

	note, err := h.noteService.Create(c.Request().Context(), req.DistributorID, req.Content)
	if err != nil {
		return common.SendError(c, err, "Failed to add note")
	}
	return c.JSON(http.StatusCreated, note)
}

// ListNotes returns a distributor's notes, newest first.
func (h *NoteHandlers) ListNotes(c echo.Context) error {
	id, err := parseID(c.Param("distributorId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", "Invalid distributor id", nil))
	}

	notes, err := h.noteService.ListByDistributor(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err, "Failed to retrieve notes")
	}
	if notes == nil {
		notes = []*models.Note{}
	}
	return c.JSON(http.StatusOK, notes)
}
