package repositories

import (
	"context"
	"encoding/json"

	"cresocrm/internal/common"
	"cresocrm/internal/models"
)

// DynamicFieldRepository manages user-declared field definitions and
// their stored values. Definitions are never updated or deleted once
// created.
type DynamicFieldRepository interface {
	List(ctx context.Context) ([]*models.FieldDefinition, error)
	Create(ctx context.Context, field *models.FieldDefinition) error
	ValuesFor(ctx context.Context, distributorID int64) ([]models.DynamicValue, error)
}

type dynamicFieldRepo struct {
	db Database
}

func NewDynamicFieldRepository(db Database) DynamicFieldRepository {
	return &dynamicFieldRepo{db: db}
}

const fieldKeyConflictMsg = "a field with this key already exists"

func (r *dynamicFieldRepo) List(ctx context.Context) ([]*models.FieldDefinition, error) {
	query := `SELECT id, key, display_name, type, options FROM dynamic_fields ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []*models.FieldDefinition
	for rows.Next() {
		field := &models.FieldDefinition{}
		var fieldType string
		var options *string
		if err := rows.Scan(&field.ID, &field.Key, &field.DisplayName, &fieldType, &options); err != nil {
			return nil, err
		}
		field.Type = models.FieldType(fieldType)
		if options != nil {
			if err := json.Unmarshal([]byte(*options), &field.Options); err != nil {
				return nil, err
			}
		}
		fields = append(fields, field)
	}
	return fields, rows.Err()
}

func (r *dynamicFieldRepo) Create(ctx context.Context, field *models.FieldDefinition) error {
	var options *string
	if field.Options != nil {
		data, err := json.Marshal(field.Options)
		if err != nil {
			return err
		}
		serialized := string(data)
		options = &serialized
	}

	query := `INSERT INTO dynamic_fields (key, display_name, type, options) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRow(ctx, query, field.Key, field.DisplayName, field.Type, options).Scan(&field.ID)
	if err != nil {
		return common.TranslateStoreError(err, fieldKeyConflictMsg, fieldRefMsg)
	}
	return nil
}

// ValuesFor returns the stored dynamic values of one distributor. The
// join against dynamic_fields guarantees only currently-defined fields
// are surfaced.
func (r *dynamicFieldRepo) ValuesFor(ctx context.Context, distributorID int64) ([]models.DynamicValue, error) {
	query := `
		SELECT v.distributor_id, v.field_key, v.field_value
		FROM distributor_dynamic_values v
		JOIN dynamic_fields f ON v.field_key = f.key
		WHERE v.distributor_id = $1
		ORDER BY v.field_key
	`
	rows, err := r.db.Query(ctx, query, distributorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []models.DynamicValue
	for rows.Next() {
		var value models.DynamicValue
		if err := rows.Scan(&value.DistributorID, &value.FieldKey, &value.Value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}
