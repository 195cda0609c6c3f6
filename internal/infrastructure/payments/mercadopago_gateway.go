package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/requester"
	"go.uber.org/zap"

	appconfig "venue_backoffice/internal/config"
	"venue_backoffice/internal/usecase/interfaces"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// IdempotencyHeader is the Mercado Pago header that collapses repeated
// payment creations into one.
const IdempotencyHeader = "X-Idempotency-Key"

const requestTimeout = 30 * time.Second

type MercadoPagoGateway struct {
	client   payment.Client
	mockMode bool
	now      func() time.Time
	logger   *zap.Logger

	// mock mode replays the first response given for a key
	mockMu      sync.Mutex
	mockReplies map[string]mockReply
}

type mockReply struct {
	id   string
	body json.RawMessage
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(cfg appconfig.Payments, logger *zap.Logger) (*MercadoPagoGateway, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("payments.mercadopago")

	if cfg.Mock {
		logger.Info("mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, now: time.Now, logger: logger, mockReplies: map[string]mockReply{}}, nil
	}

	if cfg.MercadoPagoAccessToken == "" {
		logger.Warn("missing access token")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := config.New(cfg.MercadoPagoAccessToken,
		config.WithHTTPClient(idempotentRequester{next: &http.Client{Timeout: requestTimeout}}))
	if err != nil {
		logger.Error("failed creating sdk config", zap.Error(err))
		return nil, err
	}
	logger.Info("client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(sdkCfg), now: time.Now, logger: logger}, nil
}

// CreatePayment creates the payment, sending idempotencyKey in the
// X-Idempotency-Key header when it is set.
func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, idempotencyKey string, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error) {
	if g != nil && g.mockMode {
		return g.mockPayment(idempotencyKey, requestPayload)
	}

	if g == nil || g.client == nil {
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	g.logger.Debug("create start", zap.Int("payload_len", len(requestPayload)), zap.String("idempotency_key", idempotencyKey))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		g.logger.Warn("payload unmarshal failed", zap.Error(err))
		return "", "", nil, err
	}

	resp, err := g.client.Create(withIdempotencyKey(ctx, idempotencyKey), req)
	if err != nil {
		g.logger.Error("sdk create failed", zap.Error(err))
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	id := fmt.Sprintf("%d", resp.ID)
	g.logger.Info("create success",
		zap.String("provider_payment_id", id),
		zap.String("provider_status", resp.Status))

	return id, resp.Status, b, nil
}

// mockPayment echoes the request back as an approved payment. A repeated
// idempotency key gets the first reply again.
func (g *MercadoPagoGateway) mockPayment(idempotencyKey string, requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	g.mockMu.Lock()
	defer g.mockMu.Unlock()
	if r, ok := g.mockReplies[idempotencyKey]; ok && idempotencyKey != "" {
		g.logger.Info("mock create replayed", zap.String("provider_payment_id", r.id))
		return r.id, "approved", r.body, nil
	}

	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	now := g.now().UTC()
	id := strconv.FormatInt(now.UnixNano(), 10)
	stamp := now.Format(time.RFC3339Nano)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	if _, ok := resp["date_created"]; !ok {
		resp["date_created"] = stamp
	}
	if _, ok := resp["date_approved"]; !ok {
		resp["date_approved"] = stamp
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	if idempotencyKey != "" {
		if g.mockReplies == nil {
			g.mockReplies = map[string]mockReply{}
		}
		g.mockReplies[idempotencyKey] = mockReply{id: id, body: b}
	}
	g.logger.Info("mock create success", zap.String("provider_payment_id", id))
	return id, "approved", b, nil
}

type idempotencyKeyCtx struct{}

func withIdempotencyKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, idempotencyKeyCtx{}, key)
}

// idempotentRequester copies the idempotency key carried by the request
// context into the header, replacing the random key the SDK generates.
type idempotentRequester struct {
	next requester.Requester
}

func (r idempotentRequester) Do(req *http.Request) (*http.Response, error) {
	if key, ok := req.Context().Value(idempotencyKeyCtx{}).(string); ok {
		req.Header.Set(IdempotencyHeader, key)
	}
	return r.next.Do(req)
}
