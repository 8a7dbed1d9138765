package services

import (
	"cresocrm/internal/models"
)

// MergeRecord overlays a distributor's dynamic values onto its static
// columns, producing the flat view returned to clients. Pure function;
// dynamic keys never collide with static columns because the field
// registry rejects such keys at creation time.
func MergeRecord(distributor *models.Distributor, values []models.DynamicValue) models.FlatRecord {
	record := distributor.Flat()
	for _, value := range values {
		record[value.FieldKey] = value.Value
	}
	return record
}
