package scale_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-mission/internal/scale"
	scaleerrors "go-mission/internal/scale/errors"
	"go-mission/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

type fakeScaleService struct {
	createFn func(ctx context.Context, companyID, actorID string, req scale.CreateScaleRequest) (scale.ScaleResponse, error)
	getAllFn func(ctx context.Context, companyID string) ([]scale.ScaleResponse, error)
}

func (f *fakeScaleService) Create(ctx context.Context, companyID, actorID string, req scale.CreateScaleRequest) (scale.ScaleResponse, error) {
	return f.createFn(ctx, companyID, actorID, req)
}

func (f *fakeScaleService) GetAll(ctx context.Context, companyID string) ([]scale.ScaleResponse, error) {
	return f.getAllFn(ctx, companyID)
}

func (f *fakeScaleService) ResolverFor(ctx context.Context, companyID, categoryID string) (*scale.Resolver, error) {
	return nil, nil
}

func postScale(t *testing.T, svc scale.Service, body string) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/compensation-scales", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", "company-1")
	c.Set("employee_id", "emp-1")

	scale.NewHandler(svc).Create(c)

	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestScaleHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	categoryID := uuid.NewString()
	expenseID := uuid.NewString()

	t.Run("201", func(t *testing.T) {
		svc := &fakeScaleService{
			createFn: func(_ context.Context, companyID, actorID string, req scale.CreateScaleRequest) (scale.ScaleResponse, error) {
				assert.Equal(t, "company-1", companyID)
				assert.Equal(t, "emp-1", actorID)
				assert.Equal(t, "25.50", req.Amount)
				return scale.ScaleResponse{ID: "s-1", Amount: "25.50"}, nil
			},
		}

		w, env := postScale(t, svc, `{"employee_category_id":"`+categoryID+`","expense_type_id":"`+expenseID+`","amount":"25.50","effective_from":"2024-01-01"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), `"amount":"25.50"`)
	})

	t.Run("400 on negative amount", func(t *testing.T) {
		w, env := postScale(t, &fakeScaleService{}, `{"employee_category_id":"`+categoryID+`","expense_type_id":"`+expenseID+`","amount":"-3"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
	})

	t.Run("400 on malformed effective date", func(t *testing.T) {
		w, _ := postScale(t, &fakeScaleService{}, `{"employee_category_id":"`+categoryID+`","expense_type_id":"`+expenseID+`","amount":"3","effective_to":"2024/12/31"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service target error", func(t *testing.T) {
		svc := &fakeScaleService{
			createFn: func(context.Context, string, string, scale.CreateScaleRequest) (scale.ScaleResponse, error) {
				return scale.ScaleResponse{}, scaleerrors.ErrInvalidScaleTarget
			},
		}

		w, env := postScale(t, svc, `{"employee_category_id":"`+categoryID+`","amount":"3"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Ok)
	})
}

func TestScaleHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeScaleService{
		getAllFn: func(_ context.Context, companyID string) ([]scale.ScaleResponse, error) {
			assert.Equal(t, "company-1", companyID)
			return []scale.ScaleResponse{{ID: "s-1"}, {ID: "s-2"}}, nil
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/compensation-scales", nil)
	c.Set("company_id", "company-1")

	scale.NewHandler(svc).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var items []scale.ScaleResponse
	assert.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)
}
