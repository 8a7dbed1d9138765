package models

import (
	"regexp"
	"strings"
)

// FieldType is the value type of a user-defined field.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumeric  FieldType = "numeric"
	FieldTypeDropdown FieldType = "dropdown"
)

// Valid reports whether t is one of the declared field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumeric, FieldTypeDropdown:
		return true
	}
	return false
}

// FieldDefinition is a user-declared extension column, created at runtime
// through the field registry. Options is ordered and only set for
// dropdown fields.
type FieldDefinition struct {
	ID          int64     `json:"id" db:"id"`
	Key         string    `json:"key" db:"key"`
	DisplayName string    `json:"displayName" db:"display_name"`
	Type        FieldType `json:"type" db:"type"`
	Options     []string  `json:"options" db:"options"`
}

// DynamicValue is one stored value of a dynamic field for a distributor.
// (distributor_id, field_key) is the composite primary key.
type DynamicValue struct {
	DistributorID int64  `json:"distributor_id" db:"distributor_id"`
	FieldKey      string `json:"field_key" db:"field_key"`
	Value         string `json:"field_value" db:"field_value"`
}

var fieldKeyPattern = regexp.MustCompile(`[^a-z0-9]+`)

// FieldKeyFromDisplayName derives the storage key for a field: lowercase,
// with every run of non-alphanumeric characters collapsed to a single
// underscore. "Target AUM" becomes "target_aum".
func FieldKeyFromDisplayName(displayName string) string {
	return fieldKeyPattern.ReplaceAllString(strings.ToLower(displayName), "_")
}
