package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cresocrm/internal/common"
	"cresocrm/internal/models"
)

func newFieldServiceUnderTest() (DynamicFieldService, *MockDynamicFieldRepository) {
	fieldRepo := new(MockDynamicFieldRepository)
	return NewDynamicFieldService(fieldRepo), fieldRepo
}

func TestCreateFieldDerivesKey(t *testing.T) {
	svc, fieldRepo := newFieldServiceUnderTest()
	ctx := context.Background()

	fieldRepo.On("Create", ctx, mock.MatchedBy(func(f *models.FieldDefinition) bool {
		return f.Key == "target_aum" && f.DisplayName == "Target AUM" && f.Type == models.FieldTypeNumeric
	})).Return(nil)

	field, err := svc.Create(ctx, "Target AUM", models.FieldTypeNumeric, nil)
	assert.NoError(t, err)
	assert.Equal(t, "target_aum", field.Key)
	fieldRepo.AssertExpectations(t)
}

func TestCreateFieldRequiresDisplayName(t *testing.T) {
	svc, fieldRepo := newFieldServiceUnderTest()

	_, err := svc.Create(context.Background(), "", models.FieldTypeText, nil)

	var validationErr *common.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	fieldRepo.AssertNotCalled(t, "Create")
}

func TestCreateFieldRequiresType(t *testing.T) {
	svc, _ := newFieldServiceUnderTest()

	_, err := svc.Create(context.Background(), "Some Field", "", nil)

	var validationErr *common.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateFieldRejectsUnknownType(t *testing.T) {
	svc, _ := newFieldServiceUnderTest()

	_, err := svc.Create(context.Background(), "Some Field", "checkbox", nil)

	var validationErr *common.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateFieldDropdownRequiresOptions(t *testing.T) {
	svc, _ := newFieldServiceUnderTest()

	_, err := svc.Create(context.Background(), "Risk Band", models.FieldTypeDropdown, nil)

	var validationErr *common.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateFieldRejectsStaticColumnCollision(t *testing.T) {
	svc, fieldRepo := newFieldServiceUnderTest()

	// "Date Added" normalizes to date_added, a built-in column.
	_, err := svc.Create(context.Background(), "Date Added", models.FieldTypeText, nil)

	var conflictErr *common.ConflictError
	assert.ErrorAs(t, err, &conflictErr)
	fieldRepo.AssertNotCalled(t, "Create")
}

func TestCreateFieldRejectsIDCollision(t *testing.T) {
	svc, _ := newFieldServiceUnderTest()

	_, err := svc.Create(context.Background(), "ID", models.FieldTypeText, nil)

	var conflictErr *common.ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestCreateFieldDropsOptionsForNonDropdown(t *testing.T) {
	svc, fieldRepo := newFieldServiceUnderTest()
	ctx := context.Background()

	fieldRepo.On("Create", ctx, mock.MatchedBy(func(f *models.FieldDefinition) bool {
		return f.Options == nil
	})).Return(nil)

	_, err := svc.Create(ctx, "Plain Text", models.FieldTypeText, []string{"stray"})
	assert.NoError(t, err)
	fieldRepo.AssertExpectations(t)
}

func TestFieldKeyNormalization(t *testing.T) {
	tests := []struct {
		displayName string
		want        string
	}{
		{"Target AUM", "target_aum"},
		{"Risk Band", "risk_band"},
		{"SIP %  Share", "sip_share"},
		{"already_snake", "already_snake"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, models.FieldKeyFromDisplayName(tt.displayName))
	}
}
