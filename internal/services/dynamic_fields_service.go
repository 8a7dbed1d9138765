package services

import (
	"context"
	"fmt"

	"cresocrm/internal/common"
	"cresocrm/internal/models"
	"cresocrm/internal/repositories"
)

// DynamicFieldService manages the registry of user-defined fields.
type DynamicFieldService interface {
	List(ctx context.Context) ([]*models.FieldDefinition, error)
	Create(ctx context.Context, displayName string, fieldType models.FieldType, options []string) (*models.FieldDefinition, error)
}

type dynamicFieldService struct {
	fieldRepo repositories.DynamicFieldRepository
}

func NewDynamicFieldService(fieldRepo repositories.DynamicFieldRepository) DynamicFieldService {
	return &dynamicFieldService{fieldRepo: fieldRepo}
}

func (s *dynamicFieldService) List(ctx context.Context) ([]*models.FieldDefinition, error) {
	return s.fieldRepo.List(ctx)
}

// Create derives the field key from the display name and registers the
// definition. The key must not collide with any static column or with an
// existing dynamic key; the former is checked here, the latter by the
// store's unique constraint.
func (s *dynamicFieldService) Create(ctx context.Context, displayName string, fieldType models.FieldType, options []string) (*models.FieldDefinition, error) {
	if displayName == "" {
		return nil, &common.ValidationError{Message: "displayName is required"}
	}
	if fieldType == "" {
		return nil, &common.ValidationError{Message: "type is required"}
	}
	if !fieldType.Valid() {
		return nil, &common.ValidationError{Message: fmt.Sprintf("unknown field type %q", fieldType)}
	}
	if fieldType == models.FieldTypeDropdown && len(options) == 0 {
		return nil, &common.ValidationError{Message: "dropdown fields require at least one option"}
	}
	if fieldType != models.FieldTypeDropdown {
		options = nil
	}

	key := models.FieldKeyFromDisplayName(displayName)
	if key == "id" || models.IsStaticColumn(key) {
		return nil, &common.ConflictError{Message: fmt.Sprintf("field key %q collides with a built-in column", key)}
	}

	field := &models.FieldDefinition{
		Key:         key,
		DisplayName: displayName,
		Type:        fieldType,
		Options:     options,
	}
	if err := s.fieldRepo.Create(ctx, field); err != nil {
		return nil, err
	}
	return field, nil
}
