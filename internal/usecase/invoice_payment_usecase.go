package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/usecase/interfaces"
)

var (
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentNotApproved             = errors.New("payment not approved by provider")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// InvoicePayment is the outcome of a charged invoice.
type InvoicePayment struct {
	Invoice           entities.Invoice
	ProviderPaymentID string
	ProviderStatus    string
	ProviderResponse  json.RawMessage
}

// IInvoicePaymentUseCase charges an invoice through the payment provider
// and moves it to paid.
type IInvoicePaymentUseCase interface {
	PayInvoice(ctx context.Context, invoiceID string, actor entities.Actor, mpPayload json.RawMessage) (InvoicePayment, error)
}

type InvoicePaymentUseCase struct {
	invoices          IInvoiceUseCase
	gateway           interfaces.IPaymentGateway
	defaultPayerEmail string
	logger            *zap.Logger
	locks             invoiceLocks
}

var _ IInvoicePaymentUseCase = (*InvoicePaymentUseCase)(nil)

// NewInvoicePaymentUseCase builds the payment flow. defaultPayerEmail fills
// payer.email when the request carries neither a payer id nor an email,
// which sandbox accounts require.
func NewInvoicePaymentUseCase(invoices IInvoiceUseCase, gateway interfaces.IPaymentGateway, defaultPayerEmail string, logger *zap.Logger) *InvoicePaymentUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoicePaymentUseCase{
		invoices:          invoices,
		gateway:           gateway,
		defaultPayerEmail: strings.TrimSpace(defaultPayerEmail),
		logger:            logger,
	}
}

// PayInvoice checks that the invoice would accept the payment, charges the
// provider with the invoice total and then transitions the invoice to paid.
// The provider payment id is kept in the audit entry of that transition.
// Payments of one invoice run one at a time in this process, and the charge
// carries an idempotency key derived from the invoice and the request so a
// retried request is not charged twice by the provider.
func (u *InvoicePaymentUseCase) PayInvoice(ctx context.Context, invoiceID string, actor entities.Actor, mpPayload json.RawMessage) (InvoicePayment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	log := u.logger.With(zap.String("invoice_id", invoiceID))
	if invoiceID == "" {
		return InvoicePayment{}, ErrInvalidID
	}
	if len(mpPayload) == 0 {
		mpPayload = json.RawMessage("{}")
	}
	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		log.Warn("invalid payment payload", zap.Int("payload_len", len(mpPayload)))
		return InvoicePayment{}, ErrInvalidMPPayload
	}
	if u.gateway == nil {
		log.Error("payment gateway not configured")
		return InvoicePayment{}, ErrPaymentGatewayNotConfigured
	}

	unlock := u.locks.lock(invoiceID)
	defer unlock()

	inv, err := u.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return InvoicePayment{}, err
	}
	if err := u.invoices.CanTransitionToPaid(ctx, invoiceID, lifecycle.Input{Actor: actor}); err != nil {
		log.Warn("invoice does not accept payment", zap.String("status", string(inv.Status)), zap.Error(err))
		return InvoicePayment{}, err
	}

	ensurePayerDefaults(reqMap, u.defaultPayerEmail)
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = inv.ID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Invoice %s", inv.ID)
	}
	// The amount always comes from the stored invoice lines.
	reqMap["transaction_amount"] = inv.Total()
	payload, err := json.Marshal(reqMap)
	if err != nil {
		return InvoicePayment{}, err
	}

	key := paymentIdempotencyKey(inv.ID, payload)
	log.Info("charging invoice", zap.Float64("amount", inv.Total()), zap.String("idempotency_key", key))
	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, key, payload)
	if err != nil {
		log.Error("payment gateway failed", zap.Error(err))
		return InvoicePayment{}, classifyGatewayError(err)
	}
	if !strings.EqualFold(providerStatus, "approved") {
		log.Warn("payment not approved", zap.String("provider_payment_id", providerPaymentID), zap.String("provider_status", providerStatus))
		return InvoicePayment{}, fmt.Errorf("%w: status %q", ErrPaymentNotApproved, providerStatus)
	}

	paid, err := u.invoices.TransitionToPaid(ctx, invoiceID, lifecycle.Input{
		Actor: actor,
		Note:  "paid through mercado pago",
		Metadata: map[string]string{
			"provider":            "mercadopago",
			"provider_payment_id": providerPaymentID,
			"provider_status":     providerStatus,
		},
	})
	if err != nil {
		// The charge went through; the invoice must be reconciled by hand.
		log.Error("invoice charged but not marked paid", zap.String("provider_payment_id", providerPaymentID), zap.Error(err))
		return InvoicePayment{}, err
	}

	log.Info("invoice paid", zap.String("provider_payment_id", providerPaymentID))
	return InvoicePayment{
		Invoice:           paid,
		ProviderPaymentID: providerPaymentID,
		ProviderStatus:    providerStatus,
		ProviderResponse:  providerResp,
	}, nil
}

// paymentIdempotencyKey is stable for the same invoice and charge request. A
// retry with another card token gets a new key.
func paymentIdempotencyKey(invoiceID string, payload []byte) string {
	sum := sha256.Sum256(payload)
	return "invoice-" + invoiceID + "-" + hex.EncodeToString(sum[:16])
}

// invoiceLocks is a per-invoice mutex. Entries are dropped once no caller
// holds or waits on them.
type invoiceLocks struct {
	mu      sync.Mutex
	entries map[string]*invoiceLock
}

type invoiceLock struct {
	mu   sync.Mutex
	refs int
}

func (l *invoiceLocks) lock(id string) func() {
	l.mu.Lock()
	if l.entries == nil {
		l.entries = map[string]*invoiceLock{}
	}
	e, ok := l.entries[id]
	if !ok {
		e = &invoiceLock{}
		l.entries[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, id)
		}
		l.mu.Unlock()
	}
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func ensurePayerDefaults(m map[string]any, defaultEmail string) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if defaultEmail != "" && !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		payer["email"] = defaultEmail
	}
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayCustomerNotFound, err)
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayInvalidUsers, err)
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayUnauthorized, err)
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayBadRequest, err)
	default:
		return err
	}
}
