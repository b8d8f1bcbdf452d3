package rbac

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct{}

func (f *fakeService) LoadCompanyPolicy(ctx context.Context, companyID string) error {
	return nil
}

func (f *fakeService) Enforce(ctx context.Context, req EnforceRequest) (bool, error) {
	return req.Resource == "compensation" && req.Action == "read", nil
}

func (f *fakeService) ListPermissions(ctx context.Context) ([]PermissionResponse, error) {
	return []PermissionResponse{{ID: "p-1"}}, nil
}

type enforceEnvelope struct {
	Ok   bool            `json:"ok"`
	Data EnforceResponse `json:"data"`
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/rbac/enforce", NewHandler(&fakeService{}).Enforce)

	body, _ := json.Marshal(EnforceRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		Resource:   "compensation",
		Action:     "read",
	})
	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp enforceEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Ok)
	assert.True(t, resp.Data.Allowed)
}

func TestHandler_EnforceOtherTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/rbac/enforce", func(c *gin.Context) {
		c.Set("company_id", "company-2")
		c.Next()
	}, NewHandler(&fakeService{}).Enforce)

	body, _ := json.Marshal(EnforceRequest{EmployeeID: "emp-1", CompanyID: "company-1", Resource: "compensation", Action: "read"})
	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_EnforceMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/rbac/enforce", NewHandler(&fakeService{}).Enforce)

	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"employee_id":"emp-1"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
