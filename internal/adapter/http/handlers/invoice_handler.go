package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	request "venue_backoffice/internal/adapter/http/dto/request"
	response "venue_backoffice/internal/adapter/http/dto/response"
	"venue_backoffice/internal/usecase"
)

// InvoiceHandler handles HTTP requests for invoices.
type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
	logger  *zap.Logger
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase, logger *zap.Logger) *InvoiceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceHandler{usecase: uc, logger: logger.Named("http.invoice")}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var payload request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	inv, err := h.usecase.Create(c.Request.Context(), payload.ToCommand())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(inv))
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.usecase.ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	out := make([]response.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, response.FromInvoice(inv))
	}
	c.JSON(http.StatusOK, out)
}

func (h *InvoiceHandler) GetAllowedActions(c *gin.Context) {
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

func (h *InvoiceHandler) GetHistory(c *gin.Context) {
	entries, err := h.usecase.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAuditEntries(entries))
}

func (h *InvoiceHandler) Open(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToOpen, response.FromInvoice)
}

// Pay registers a payment received outside the payment provider.
func (h *InvoiceHandler) Pay(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToPaid, response.FromInvoice)
}

func (h *InvoiceHandler) Uncollect(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToUncollected, response.FromInvoice)
}

func (h *InvoiceHandler) Void(c *gin.Context) {
	runTransition(c, h.logger, h.usecase.TransitionToVoid, response.FromInvoice)
}
