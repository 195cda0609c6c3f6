package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	request "venue_backoffice/internal/adapter/http/dto/request"
	response "venue_backoffice/internal/adapter/http/dto/response"
	"venue_backoffice/internal/usecase"
	"venue_backoffice/pkg"
)

// InvoicePaymentHandler charges invoices through the payment provider.
type InvoicePaymentHandler struct {
	usecase  usecase.IInvoicePaymentUseCase
	mockMode bool
	logger   *zap.Logger
}

// NewInvoicePaymentHandler builds the handler. In mock mode a malformed
// body falls back to an empty provider payload instead of failing.
func NewInvoicePaymentHandler(uc usecase.IInvoicePaymentUseCase, mockMode bool, logger *zap.Logger) *InvoicePaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoicePaymentHandler{usecase: uc, mockMode: mockMode, logger: logger.Named("http.payment")}
}

func (h *InvoicePaymentHandler) PayInvoice(c *gin.Context) {
	invoiceID := c.Param("id")
	log := h.logger.With(zap.String("invoice_id", invoiceID))

	actor, ok := actorFromRequest(c)
	if !ok {
		c.JSON(errInvalidActor.HTTPStatus, errInvalidActor.ToHTTPError())
		return
	}

	mpPayload, err := readMPPayload(c)
	if err != nil {
		if !h.mockMode {
			log.Warn("invalid payment payload", zap.Error(err))
			c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
			return
		}
		log.Info("invalid payload in mock mode; using empty payload", zap.Error(err))
		mpPayload = json.RawMessage("{}")
	}

	paid, err := h.usecase.PayInvoice(c.Request.Context(), invoiceID, actor, mpPayload)
	if err != nil {
		appErr := mapInvoicePaymentError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			log.Error("invoice payment failed", zap.Error(err))
		} else {
			log.Warn("invoice payment rejected", zap.String("code", appErr.Code), zap.Error(err))
		}
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Info("invoice paid",
		zap.String("provider_payment_id", paid.ProviderPaymentID),
		zap.String("provider_status", paid.ProviderStatus))

	c.JSON(http.StatusOK, response.FromInvoicePayment(paid))
}

// readMPPayload accepts either {"mp_payload": {...}} or the provider payload
// itself as the request body.
func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if _, ok := envelope["mp_payload"]; ok {
			var wrapped request.InvoicePaymentRequest
			if err := json.Unmarshal(raw, &wrapped); err != nil {
				return nil, err
			}
			trimmed := strings.TrimSpace(string(wrapped.MPPayload))
			if trimmed == "" || trimmed == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped.MPPayload, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapInvoicePaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainError("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainError("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", err, http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentNotApproved):
		return pkg.NewDomainError("PAYMENT_NOT_APPROVED", "Payment was not approved by the provider", err, http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider is not configured", err, http.StatusServiceUnavailable)
	default:
		return mapLifecycleError(err)
	}
}
