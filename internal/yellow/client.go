package yellow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"yellowgate/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultAPIBaseURL = "https://api.yellowpay.co"
	invoicePath       = "/v1/invoice/"

	// CallbackPath is where the processor posts IPNs back to the store.
	CallbackPath = "/webhook/yellow"
)

// Client issues invoice-creation requests to the processor. It holds no
// state beyond credentials and transport; every invoice it returns is an
// immutable value.
type Client struct {
	signer       *Signer
	httpClient   *http.Client
	apiBaseURL   string
	storeBaseURL string
}

func NewClient(signer *Signer, storeBaseURL string) *Client {
	if storeBaseURL == "" {
		logger.L().Warn("store base URL is empty, processor callbacks will not resolve")
	}

	return &Client{
		signer: signer,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiBaseURL:   defaultAPIBaseURL,
		storeBaseURL: strings.TrimRight(storeBaseURL, "/"),
	}
}

// CallbackURL is a deterministic function of the store's base address. It
// is both sent to the processor at invoice creation and used to verify
// the target of inbound IPNs.
func (c *Client) CallbackURL() string {
	return c.storeBaseURL + CallbackPath
}

// CreateInvoice asks the processor for a fresh invoice quoting amount in
// currency for the given order number. It is never retried internally;
// the processor may have created the invoice even when the call fails,
// so the caller decides whether a retry is safe.
func (c *Client) CreateInvoice(ctx context.Context, orderNumber string, amount float64, currency string) (*Invoice, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("order", orderNumber),
		zap.Float64("amount", amount),
		zap.String("currency", currency),
	)

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	callback := c.CallbackURL()
	if u, err := url.Parse(callback); err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCallback, callback)
	}

	payload := invoiceRequest{
		BasePrice: amount,
		BaseCcy:   strings.ToUpper(currency),
		Callback:  callback,
		Type:      "cart",
		Order:     orderNumber,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		log.Error("Failed to marshal invoice request", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvoiceCreation, err)
	}

	endpoint := c.apiBaseURL + invoicePath

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvoiceCreation, err)
	}

	nonce := uuid.NewString()
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("API-KEY", c.signer.APIKey())
	req.Header.Add("API-NONCE", nonce)
	req.Header.Add("API-SIGN", c.signer.Sign(nonce, endpoint, jsonBody))

	log.Info("Sending invoice request to Yellow")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("Yellow request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvoiceCreation, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvoiceCreation, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("Yellow returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("%w: status %d: %s", ErrInvoiceCreation, resp.StatusCode, string(bodyBytes))
	}

	var inv Invoice
	if err := json.Unmarshal(bodyBytes, &inv); err != nil {
		log.Error("Failed decoding Yellow response", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvoiceCreation, err)
	}

	if inv.ID == "" || inv.URL == "" {
		log.Error("Yellow response missing invoice id or url", zap.ByteString("response", bodyBytes))
		return nil, fmt.Errorf("%w: incomplete invoice in response", ErrInvoiceCreation)
	}

	if inv.OrderReference == "" {
		inv.OrderReference = orderNumber
	}

	log.Info("Yellow invoice created",
		zap.String("invoice_id", inv.ID),
		zap.String("invoice_status", string(inv.Status)),
	)

	return &inv, nil
}
