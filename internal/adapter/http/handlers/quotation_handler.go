package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	request "venue_backoffice/internal/adapter/http/dto/request"
	response "venue_backoffice/internal/adapter/http/dto/response"
	"venue_backoffice/internal/usecase"
)

// QuotationHandler handles HTTP requests for quotations.
type QuotationHandler struct {
	usecase usecase.IQuotationUseCase
	logger  *zap.Logger
	now     func() time.Time
}

func NewQuotationHandler(uc usecase.IQuotationUseCase, logger *zap.Logger) *QuotationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuotationHandler{
		usecase: uc,
		logger:  logger.Named("http.quotation"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (h *QuotationHandler) CreateQuotation(c *gin.Context) {
	var payload request.CreateQuotationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	q, err := h.usecase.Create(c.Request.Context(), payload.ToCommand())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuotation(q))
}

func (h *QuotationHandler) GetQuotation(c *gin.Context) {
	q, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotation(q))
}

func (h *QuotationHandler) ListQuotations(c *gin.Context) {
	quotations, err := h.usecase.ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	out := make([]response.QuotationResponse, 0, len(quotations))
	for _, q := range quotations {
		out = append(out, response.FromQuotation(q))
	}
	c.JSON(http.StatusOK, out)
}

func (h *QuotationHandler) GetAllowedActions(c *gin.Context) {
	actor, ok := actorFromRequest(c)
	if !ok {
		c.JSON(errInvalidActor.HTTPStatus, errInvalidActor.ToHTTPError())
		return
	}
	actions, err := h.usecase.AllowedActions(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromActions(c.Param("id"), actions))
}

func (h *QuotationHandler) GetHistory(c *gin.Context) {
	entries, err := h.usecase.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAuditEntries(entries))
}

func (h *QuotationHandler) Open(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToOpen, response.FromQuotation)
}

func (h *QuotationHandler) Accept(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToAccepted, response.FromQuotation)
}

func (h *QuotationHandler) Decline(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToDeclined, response.FromQuotation)
}

func (h *QuotationHandler) Expire(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToExpired, response.FromQuotation)
}

// ExpireOverdue runs the expiry sweep immediately, outside the schedule.
func (h *QuotationHandler) ExpireOverdue(c *gin.Context) {
	n, err := h.usecase.ExpireOverdue(c.Request.Context(), h.now())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.SweepResponse{Expired: n})
}
