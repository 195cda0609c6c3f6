package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	request "venue_backoffice/internal/adapter/http/dto/request"
	response "venue_backoffice/internal/adapter/http/dto/response"
	"venue_backoffice/internal/usecase"
)

// LeaseHandler handles HTTP requests for venue leases and their utility
// readings.
type LeaseHandler struct {
	usecase usecase.ILeaseUseCase
	logger  *zap.Logger
}

func NewLeaseHandler(uc usecase.ILeaseUseCase, logger *zap.Logger) *LeaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaseHandler{usecase: uc, logger: logger.Named("http.lease")}
}

func (h *LeaseHandler) CreateLease(c *gin.Context) {
	var payload request.CreateLeaseRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	lease, err := h.usecase.Create(c.Request.Context(), payload.ToCommand())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromLease(lease))
}

func (h *LeaseHandler) GetLease(c *gin.Context) {
	lease, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromLease(lease))
}

func (h *LeaseHandler) ListLeases(c *gin.Context) {
	leases, err := h.usecase.ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	out := make([]response.LeaseResponse, 0, len(leases))
	for _, l := range leases {
		out = append(out, response.FromLease(l))
	}
	c.JSON(http.StatusOK, out)
}

// GetAllowedActions returns the transitions the calling user may fire on
// the lease right now.
func (h *LeaseHandler) GetAllowedActions(c *gin.Context) {
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

func (h *LeaseHandler) GetHistory(c *gin.Context) {
	entries, err := h.usecase.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAuditEntries(entries))
}

func (h *LeaseHandler) Quote(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToQuotation, response.FromLease)
}

func (h *LeaseHandler) Option(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToOption, response.FromLease)
}

func (h *LeaseHandler) Confirm(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToConfirmed, response.FromLease)
}

func (h *LeaseHandler) Complete(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToCompleted, response.FromLease)
}

func (h *LeaseHandler) Cancel(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToCancelled, response.FromLease)
}

func (h *LeaseHandler) Archive(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.Archive, response.FromLease)
}

func (h *LeaseHandler) AddUtilityMetric(c *gin.Context) {
	var payload request.UtilityMetricRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	metric, err := h.usecase.AddUtilityMetric(c.Request.Context(), c.Param("id"), payload.ToEntity())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromUtilityMetric(metric))
}

func (h *LeaseHandler) ListUtilityMetrics(c *gin.Context) {
	metrics, err := h.usecase.ListUtilityMetrics(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	out := make([]response.UtilityMetricResponse, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, response.FromUtilityMetric(m))
	}
	c.JSON(http.StatusOK, out)
}

