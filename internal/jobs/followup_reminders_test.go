package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cresocrm/internal/models"
)

type MockDistributorRepository struct {
	mock.Mock
}

func (m *MockDistributorRepository) Save(ctx context.Context, id *int64, static map[string]interface{}, dynamic map[string]string, replaceDynamic bool) (int64, error) {
	args := m.Called(ctx, id, static, dynamic, replaceDynamic)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDistributorRepository) GetByID(ctx context.Context, id int64) (*models.Distributor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Distributor), args.Error(1)
}

func (m *MockDistributorRepository) GetAll(ctx context.Context) ([]*models.Distributor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Distributor), args.Error(1)
}

func (m *MockDistributorRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func TestCheckDueFollowUps(t *testing.T) {
	repo := new(MockDistributorRepository)
	svc := NewFollowUpReminderService(repo)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	distributors := []*models.Distributor{
		{ID: 1, Arn: "ARN1", ArnHolderName: "Overdue", FollowUpDate: strPtr("2026-08-30")},
		{ID: 2, Arn: "ARN2", ArnHolderName: "Due today", FollowUpDate: strPtr("2026-09-01")},
		{ID: 3, Arn: "ARN3", ArnHolderName: "Future", FollowUpDate: strPtr("2026-09-15")},
		{ID: 4, Arn: "ARN4", ArnHolderName: "No date"},
		{ID: 5, Arn: "ARN5", ArnHolderName: "Bad date", FollowUpDate: strPtr("soon")},
	}
	repo.On("GetAll", mock.Anything).Return(distributors, nil)

	alerts, err := svc.CheckDueFollowUps(context.Background(), now)
	assert.NoError(t, err)
	assert.Len(t, alerts, 2)
	assert.Equal(t, int64(1), alerts[0].DistributorID)
	assert.Equal(t, int64(2), alerts[1].DistributorID)
}

func TestCheckDueFollowUpsEmpty(t *testing.T) {
	repo := new(MockDistributorRepository)
	svc := NewFollowUpReminderService(repo)

	repo.On("GetAll", mock.Anything).Return([]*models.Distributor{}, nil)

	alerts, err := svc.CheckDueFollowUps(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Empty(t, alerts)
}
