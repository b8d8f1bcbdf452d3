package validation_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-mission/internal/validation"
	validationerrors "go-mission/internal/validation/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

type fakeValidationService struct {
	submitFn  func(ctx context.Context, companyID, actorID, missionID string, req validation.SubmitChainRequest) (validation.ChainResponse, error)
	advanceFn func(ctx context.Context, companyID, actorID, validationID string, req validation.AdvanceRequest) (validation.AdvanceResponse, error)
	chainFn   func(ctx context.Context, companyID, missionID string) (validation.ChainResponse, error)
}

func (f *fakeValidationService) Submit(ctx context.Context, companyID, actorID, missionID string, req validation.SubmitChainRequest) (validation.ChainResponse, error) {
	return f.submitFn(ctx, companyID, actorID, missionID, req)
}

func (f *fakeValidationService) Advance(ctx context.Context, companyID, actorID, validationID string, req validation.AdvanceRequest) (validation.AdvanceResponse, error) {
	return f.advanceFn(ctx, companyID, actorID, validationID, req)
}

func (f *fakeValidationService) GetChain(ctx context.Context, companyID, missionID string) (validation.ChainResponse, error) {
	return f.chainFn(ctx, companyID, missionID)
}

func (f *fakeValidationService) PaymentEligibility(ctx context.Context, companyID, missionID string) (string, error) {
	return validation.EligibilityPending, nil
}

func (f *fakeValidationService) IsEligibleForPayment(ctx context.Context, companyID, missionID string) (bool, error) {
	return false, nil
}

func newAdvanceContext(id, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/mission-validations/"+id, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = []gin.Param{{Key: "id", Value: id}}
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", uuid.New().String())
	return c, w
}

func TestValidationHandler_Advance(t *testing.T) {
	id := uuid.New().String()

	t.Run("200", func(t *testing.T) {
		svc := &fakeValidationService{
			advanceFn: func(ctx context.Context, companyID, actorID, validationID string, req validation.AdvanceRequest) (validation.AdvanceResponse, error) {
				assert.Equal(t, id, validationID)
				assert.Equal(t, validation.StatusApproved, req.Decision)
				assert.Equal(t, "sig-1", *req.Signature)
				return validation.AdvanceResponse{
					Step:          validation.ValidationResponse{ID: id, Status: validation.StatusApproved},
					OverallStatus: validation.StatusPending,
				}, nil
			},
		}
		c, w := newAdvanceContext(id, `{"decision":"APPROVED","comment":"fine","signature":"sig-1"}`)

		validation.NewHandler(svc).Advance(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("409 out of order", func(t *testing.T) {
		svc := &fakeValidationService{
			advanceFn: func(ctx context.Context, companyID, actorID, validationID string, req validation.AdvanceRequest) (validation.AdvanceResponse, error) {
				return validation.AdvanceResponse{}, validationerrors.ErrOutOfOrderValidation
			},
		}
		c, w := newAdvanceContext(id, `{"decision":"REJECTED"}`)

		validation.NewHandler(svc).Advance(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})

	t.Run("409 already resolved", func(t *testing.T) {
		svc := &fakeValidationService{
			advanceFn: func(ctx context.Context, companyID, actorID, validationID string, req validation.AdvanceRequest) (validation.AdvanceResponse, error) {
				return validation.AdvanceResponse{}, validationerrors.ErrAlreadyResolved
			},
		}
		c, w := newAdvanceContext(id, `{"decision":"APPROVED"}`)

		validation.NewHandler(svc).Advance(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("400 unknown decision", func(t *testing.T) {
		c, w := newAdvanceContext(id, `{"decision":"MAYBE"}`)

		validation.NewHandler(&fakeValidationService{}).Advance(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestValidationHandler_Submit(t *testing.T) {
	missionID := uuid.New().String()
	svc := &fakeValidationService{
		submitFn: func(ctx context.Context, companyID, actorID, mID string, req validation.SubmitChainRequest) (validation.ChainResponse, error) {
			assert.Equal(t, missionID, mID)
			assert.Empty(t, req.Roles)
			return validation.ChainResponse{MissionID: mID, OverallStatus: validation.StatusPending}, nil
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/missions/"+missionID+"/validations", nil)
	c.Params = []gin.Param{{Key: "id", Value: missionID}}
	c.Set("company_id", uuid.New().String())

	validation.NewHandler(svc).Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}
