package payment

import (
	"fmt"
	"net/http"

	"go-mission/internal/shared/apperror"
	"go-mission/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payment.handler")
	}
	return &Handler{service: service, logger: l}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func pairParams(c *gin.Context) (string, string, error) {
	missionID := c.Query("missionId")
	if missionID == "" {
		return "", "", apperror.RequiredField("missionId")
	}
	employeeID := c.Query("employeeId")
	if employeeID == "" {
		return "", "", apperror.RequiredField("employeeId")
	}
	return missionID, employeeID, nil
}

func (h *Handler) GetPaymentView(c *gin.Context) {
	companyID := c.GetString("company_id")
	missionID, employeeID, err := pairParams(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.BuildPaymentView(c.Request.Context(), companyID, missionID, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPairs(c *gin.Context) {
	companyID := c.GetString("company_id")
	var req PaymentPairsFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, meta, err := h.service.ListPaymentPairs(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) Export(c *gin.Context) {
	companyID := c.GetString("company_id")
	missionID, employeeID, err := pairParams(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	file, err := h.service.Export(c.Request.Context(), companyID, missionID, employeeID, c.Query("format"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

func (h *Handler) Archive(c *gin.Context) {
	companyID := c.GetString("company_id")
	var req ArchiveExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http archive export validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Archive(c.Request.Context(), companyID, getActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}
