package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	request "venue_backoffice/internal/adapter/http/dto/request"
	response "venue_backoffice/internal/adapter/http/dto/response"
	"venue_backoffice/internal/usecase"
)

// DepositHandler handles HTTP requests for security deposits. Refund
// routes are only granted to administrators and managers.
type DepositHandler struct {
	usecase usecase.IDepositUseCase
	logger  *zap.Logger
}

func NewDepositHandler(uc usecase.IDepositUseCase, logger *zap.Logger) *DepositHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepositHandler{usecase: uc, logger: logger.Named("http.deposit")}
}

func (h *DepositHandler) CreateDeposit(c *gin.Context) {
	var payload request.CreateDepositRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	d, err := h.usecase.Create(c.Request.Context(), payload.ToCommand())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromDeposit(d))
}

func (h *DepositHandler) GetDeposit(c *gin.Context) {
	d, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromDeposit(d))
}

func (h *DepositHandler) ListDeposits(c *gin.Context) {
	deposits, err := h.usecase.ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	out := make([]response.DepositResponse, 0, len(deposits))
	for _, d := range deposits {
		out = append(out, response.FromDeposit(d))
	}
	c.JSON(http.StatusOK, out)
}

func (h *DepositHandler) GetAllowedActions(c *gin.Context) {
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

func (h *DepositHandler) GetHistory(c *gin.Context) {
	entries, err := h.usecase.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAuditEntries(entries))
}

func (h *DepositHandler) Pay(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToPaid, response.FromDeposit)
}

func (h *DepositHandler) RefundPartial(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToPartiallyRefunded, response.FromDeposit)
}

func (h *DepositHandler) RefundFull(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToFullyRefunded, response.FromDeposit)
}

func (h *DepositHandler) Withdraw(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToWithdrawn, response.FromDeposit)
}

func (h *DepositHandler) DueRefund(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToDueRefund, response.FromDeposit)
}
