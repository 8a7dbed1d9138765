package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cresocrm/internal/common"
	"cresocrm/internal/models"
)

type MockDistributorService struct {
	mock.Mock
}

func (m *MockDistributorService) GetMerged(ctx context.Context, id int64) (models.FlatRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.FlatRecord), args.Error(1)
}

func (m *MockDistributorService) GetAllMerged(ctx context.Context) ([]models.FlatRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FlatRecord), args.Error(1)
}

func (m *MockDistributorService) Save(ctx context.Context, id *int64, input models.FlatRecord) (int64, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDistributorService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func performRequest(t *testing.T, handler echo.HandlerFunc, method, target, body string, paramNames, paramValues []string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(paramNames...)
	c.SetParamValues(paramValues...)
	require.NoError(t, handler(c))
	return rec
}

func TestCreateDistributorReturns201(t *testing.T) {
	svc := new(MockDistributorService)
	h := NewDistributorHandlers(svc)

	svc.On("Save", mock.Anything, (*int64)(nil), mock.Anything).Return(int64(7), nil)

	rec := performRequest(t, h.CreateDistributor, http.MethodPost, "/distributors",
		`{"arn":"ARN100","arn_holder_name":"Acme","dynamicFields":{"target_aum":"500000"}}`, nil, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["id"])
}

func TestCreateDistributorDuplicateArnReturns409(t *testing.T) {
	svc := new(MockDistributorService)
	h := NewDistributorHandlers(svc)

	svc.On("Save", mock.Anything, (*int64)(nil), mock.Anything).
		Return(int64(0), &common.ConflictError{Message: "distributor with this arn already exists"})

	rec := performRequest(t, h.CreateDistributor, http.MethodPost, "/distributors",
		`{"arn":"ARN100","arn_holder_name":"Acme"}`, nil, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateDistributorWithoutStaticFieldsReturns400(t *testing.T) {
	svc := new(MockDistributorService)
	h := NewDistributorHandlers(svc)

	svc.On("Save", mock.Anything, (*int64)(nil), mock.Anything).
		Return(int64(0), &common.ValidationError{Message: "at least one static field is required to create a distributor"})

	rec := performRequest(t, h.CreateDistributor, http.MethodPost, "/distributors", `{}`, nil, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDistributorNotFoundReturns404(t *testing.T) {
	svc := new(MockDistributorService)
	h := NewDistributorHandlers(svc)

	svc.On("GetMerged", mock.Anything, int64(99)).Return(nil, common.ErrNotFound)

	rec := performRequest(t, h.GetDistributor, http.MethodGet, "/distributors/99", "", []string{"id"}, []string{"99"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDistributorBadIDReturns400(t *testing.T) {
	svc := new(MockDistributorService)
	h := NewDistributorHandlers(svc)

	rec := performRequest(t, h.GetDistributor, http.MethodGet, "/distributors/abc", "", []string{"id"}, []string{"abc"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetMerged")
}

func TestUpdateDistributorPassesID(t *testing.T) {
	svc := new(MockDistributorService)
	h := NewDistributorHandlers(svc)

	five := int64(5)
	svc.On("Save", mock.Anything, &five, mock.Anything).Return(int64(5), nil)

	rec := performRequest(t, h.UpdateDistributor, http.MethodPut, "/distributors/5",
		`{"city":"Mumbai"}`, []string{"id"}, []string{"5"})

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestListDistributorsEmptyIsJSONArray(t *testing.T) {
	svc := new(MockDistributorService)
	h := NewDistributorHandlers(svc)

	svc.On("GetAllMerged", mock.Anything).Return(nil, nil)

	rec := performRequest(t, h.ListDistributors, http.MethodGet, "/distributors", "", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestDeleteDistributor(t *testing.T) {
	svc := new(MockDistributorService)
	h := NewDistributorHandlers(svc)

	svc.On("Delete", mock.Anything, int64(3)).Return(nil)

	rec := performRequest(t, h.DeleteDistributor, http.MethodDelete, "/distributors/3", "", []string{"id"}, []string{"3"})

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
