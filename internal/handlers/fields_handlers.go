package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cresocrm/internal/common"
	"cresocrm/internal/models"
	"cresocrm/internal/services"
)

// FieldHandlers handles dynamic field registry HTTP requests
type FieldHandlers struct {
	fieldService services.DynamicFieldService
}

func NewFieldHandlers(fieldService services.DynamicFieldService) *FieldHandlers {
	return &FieldHandlers{fieldService: fieldService}
}

// ListFields returns every field definition with dropdown options
// expanded to a list.
func (h *FieldHandlers) ListFields(c echo.Context) error {
	fields, err := h.fieldService.List(c.Request().Context())
	if err != nil {
		return common.SendError(c, err, "Failed to retrieve fields")
	}
	if fields == nil {
		fields = []*models.FieldDefinition{}
	}
	return c.JSON(http.StatusOK, fields)
}

// CreateFieldRequest represents the field creation request payload
type CreateFieldRequest struct {
	DisplayName string           `json:"displayName"`
	Type        models.FieldType `json:"type"`
	Options     []string         `json:"options"`
}

// CreateField registers a new dynamic field definition.
func (h *FieldHandlers) CreateField(c echo.Context) error {
	var req CreateFieldRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", "Invalid request format", nil))
	}

	field, err := h.fieldService.Create(c.Request().Context(), req.DisplayName, req.Type, req.Options)
	if err != nil {
		return common.SendError(c, err, "Failed to create field")
	}
	return c.JSON(http.StatusCreated, field)
}
