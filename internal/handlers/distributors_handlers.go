package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cresocrm/internal/common"
	"cresocrm/internal/models"
	"cresocrm/internal/services"
)

// DistributorHandlers handles distributor-related HTTP requests
type DistributorHandlers struct {
	distributorService services.DistributorService
}

// NewDistributorHandlers creates a new distributor handlers instance
func NewDistributorHandlers(distributorService services.DistributorService) *DistributorHandlers {
	return &DistributorHandlers{distributorService: distributorService}
}

// ListDistributors returns every distributor as a merged flat record.
func (h *DistributorHandlers) ListDistributors(c echo.Context) error {
	records, err := h.distributorService.GetAllMerged(c.Request().Context())
	if err != nil {
		return common.SendError(c, err, "Failed to retrieve distributors")
	}
	if records == nil {
		records = []models.FlatRecord{}
	}
	return c.JSON(http.StatusOK, records)
}

// GetDistributor returns one merged record by id.
func (h *DistributorHandlers) GetDistributor(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", "Invalid distributor id", nil))
	}

	record, err := h.distributorService.GetMerged(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err, "Failed to retrieve distributor")
	}
	return c.JSON(http.StatusOK, record)
}

// CreateDistributor accepts flat distributor fields plus an optional
// dynamicFields envelope and creates the record.
func (h *DistributorHandlers) CreateDistributor(c echo.Context) error {
	var input models.FlatRecord
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", "Invalid request format", nil))
	}

	id, err := h.distributorService.Save(c.Request().Context(), nil, input)
	if err != nil {
		return common.SendError(c, err, "Failed to create distributor")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"id": id})
}

// UpdateDistributor applies a partial update: only the columns present in
// the payload change, and stored dynamic values are replaced only when
// the dynamicFields envelope is present.
func (h *DistributorHandlers) UpdateDistributor(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", "Invalid distributor id", nil))
	}

	var input models.FlatRecord
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", "Invalid request format", nil))
	}

	savedID, err := h.distributorService.Save(c.Request().Context(), &id, input)
	if err != nil {
		return common.SendError(c, err, "Failed to update distributor")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"id": savedID})
}

// DeleteDistributor removes the record; dynamic values and notes cascade.
func (h *DistributorHandlers) DeleteDistributor(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", "Invalid distributor id", nil))
	}

	if err := h.distributorService.Delete(c.Request().Context(), id); err != nil {
		return common.SendError(c, err, "Failed to delete distributor")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Distributor deleted successfully"})
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
