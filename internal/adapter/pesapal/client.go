package pesapal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/mail"
	"net/url"
	"time"

	"github.com/dukahub/storefront/internal/domain/model"
)

// Base URLs per processor environment.
const (
	sandboxBaseURL = "https://cybqa.pesapal.com/pesapalv3"
	liveBaseURL    = "https://pay.pesapal.com/v3"
)

// AuthError indicates the processor rejected our credentials or the token
// request could not be completed.
type AuthError struct {
	Message string
}

func (e AuthError) Error() string {
	return fmt.Sprintf("processor auth failed: %s", e.Message)
}

// RegistrationError indicates IPN registration was rejected.
type RegistrationError struct {
	Message string
}

func (e RegistrationError) Error() string {
	return fmt.Sprintf("ipn registration failed: %s", e.Message)
}

// SubmissionError indicates the processor rejected an order submission.
// Submissions are never retried automatically: a retry would open a new
// remote payment attempt.
type SubmissionError struct {
	Message string
}

func (e SubmissionError) Error() string {
	return fmt.Sprintf("order submission failed: %s", e.Message)
}

// StatusQueryError indicates a transaction status query failed.
type StatusQueryError struct {
	Message string
}

func (e StatusQueryError) Error() string {
	return fmt.Sprintf("status query failed: %s", e.Message)
}

// BillingAddress carries payer contact fields required by the processor.
type BillingAddress struct {
	Email       string `json:"email_address"`
	Phone       string `json:"phone_number"`
	CountryCode string `json:"country_code"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

// OrderRequest is the transient payment-order payload sent to the
// processor. It is never persisted; the tracking id from the response is
// folded into the local order instead.
type OrderRequest struct {
	MerchantReference string
	Currency          string
	Amount            float64
	Description       string
	CallbackURL       string
	Billing           BillingAddress
}

// Validate checks submission preconditions before any network traffic.
func (r OrderRequest) Validate() error {
	if r.Amount <= 0 {
		return SubmissionError{Message: "amount must be positive"}
	}
	if len(r.Currency) != 3 {
		return SubmissionError{Message: "currency must be a three-letter code"}
	}
	if _, err := mail.ParseAddress(r.Billing.Email); err != nil {
		return SubmissionError{Message: "billing email is not valid"}
	}
	if r.Billing.Phone == "" {
		return SubmissionError{Message: "billing phone is required"}
	}
	return nil
}

// Client exposes payment processor operations.
type Client interface {
	EnsureIPN(ctx context.Context) (string, error)
	SubmitOrder(ctx context.Context, req OrderRequest) (*model.PaymentSubmission, error)
	TransactionStatus(ctx context.Context, trackingID string) (*model.ProcessorStatus, error)
}

// Config carries credentials and endpoint selection for the HTTP client.
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	Environment    string
	IPNURL         string
	BaseURL        string // overrides environment selection, used in tests
}

// HTTPClient implements Client against the processor's REST API.
type HTTPClient struct {
	baseURL    *url.URL
	cfg        Config
	session    *Session
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a processor client bound to a session cache.
func NewHTTPClient(cfg Config, session *Session, logger *slog.Logger) (*HTTPClient, error) {
	base := cfg.BaseURL
	if base == "" {
		if cfg.Environment == "live" {
			base = liveBaseURL
		} else {
			base = sandboxBaseURL
		}
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse processor url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("processor url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		cfg:     cfg,
		session: session,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type apiError struct {
	Type    string `json:"error_type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) text() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

type tokenResponse struct {
	Token      string    `json:"token"`
	ExpiryDate string    `json:"expiryDate"`
	Error      *apiError `json:"error"`
	Status     string    `json:"status"`
}

// token returns a bearer token, reusing the session cache while it is
// fresh. Callers must not assume token stability across calls.
func (c *HTTPClient) token(ctx context.Context) (string, error) {
	if cached, ok := c.session.Token(); ok {
		return cached, nil
	}

	payload := map[string]string{
		"consumer_key":    c.cfg.ConsumerKey,
		"consumer_secret": c.cfg.ConsumerSecret,
	}

	var parsed tokenResponse
	if err := c.post(ctx, "/api/Auth/RequestToken", "", payload, &parsed); err != nil {
		return "", AuthError{Message: err.Error()}
	}
	if parsed.Error != nil {
		return "", AuthError{Message: parsed.Error.text()}
	}
	if parsed.Token == "" {
		return "", AuthError{Message: "no token in processor response"}
	}

	expiry := time.Time{}
	if parsed.ExpiryDate != "" {
		if ts, err := time.Parse(time.RFC3339, parsed.ExpiryDate); err == nil {
			expiry = ts
		}
	}
	c.session.StoreToken(parsed.Token, expiry)
	return parsed.Token, nil
}

type ipnResponse struct {
	URL    string    `json:"url"`
	IPNID  string    `json:"ipn_id"`
	Error  *apiError `json:"error"`
	Status string    `json:"status"`
}

// EnsureIPN returns the notification registration id, registering the
// configured IPN URL on first use. Registration is idempotent on the
// processor side; the session cache keeps it to one round trip per process.
func (c *HTTPClient) EnsureIPN(ctx context.Context) (string, error) {
	if id, ok := c.session.IPNID(); ok {
		return id, nil
	}

	token, err := c.token(ctx)
	if err != nil {
		return "", err
	}

	payload := map[string]string{
		"url":                   c.cfg.IPNURL,
		"ipn_notification_type": "POST",
	}

	var parsed ipnResponse
	if err := c.post(ctx, "/api/URLSetup/RegisterIPN", token, payload, &parsed); err != nil {
		return "", RegistrationError{Message: err.Error()}
	}
	if parsed.Error != nil {
		return "", RegistrationError{Message: parsed.Error.text()}
	}
	if parsed.IPNID == "" {
		return "", RegistrationError{Message: "no ipn id in processor response"}
	}

	c.session.StoreIPNID(parsed.IPNID)
	c.logger.Info("ipn registered", slog.String("ipn_id", parsed.IPNID), slog.String("url", c.cfg.IPNURL))
	return parsed.IPNID, nil
}

type submitResponse struct {
	OrderTrackingID   string    `json:"order_tracking_id"`
	MerchantReference string    `json:"merchant_reference"`
	RedirectURL       string    `json:"redirect_url"`
	Error             *apiError `json:"error"`
	Status            string    `json:"status"`
}

// SubmitOrder registers a payment order with the processor and returns the
// tracking id and payer redirect URL.
func (c *HTTPClient) SubmitOrder(ctx context.Context, req OrderRequest) (*model.PaymentSubmission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	ipnID, err := c.EnsureIPN(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"id":              req.MerchantReference,
		"currency":        req.Currency,
		"amount":          req.Amount,
		"description":     req.Description,
		"callback_url":    req.CallbackURL,
		"notification_id": ipnID,
		"billing_address": req.Billing,
	}

	var parsed submitResponse
	if err := c.post(ctx, "/api/Transactions/SubmitOrderRequest", token, payload, &parsed); err != nil {
		return nil, SubmissionError{Message: err.Error()}
	}
	if parsed.Error != nil {
		return nil, SubmissionError{Message: parsed.Error.text()}
	}
	if parsed.OrderTrackingID == "" {
		return nil, SubmissionError{Message: "no tracking id in processor response"}
	}

	return &model.PaymentSubmission{
		TrackingID:        parsed.OrderTrackingID,
		MerchantReference: parsed.MerchantReference,
		RedirectURL:       parsed.RedirectURL,
	}, nil
}

type statusResponse struct {
	PaymentStatusDescription string    `json:"payment_status_description"`
	Amount                   float64   `json:"amount"`
	PaymentMethod            string    `json:"payment_method"`
	ConfirmationCode         string    `json:"confirmation_code"`
	Error                    *apiError `json:"error"`
}

// TransactionStatus queries the processor's authoritative settlement record
// for a tracking id. This is the single source of truth for settlement.
func (c *HTTPClient) TransactionStatus(ctx context.Context, trackingID string) (*model.ProcessorStatus, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := *c.baseURL
	endpoint.Path += "/api/Transactions/GetTransactionStatus"
	query := endpoint.Query()
	query.Set("orderTrackingId", trackingID)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, StatusQueryError{Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, StatusQueryError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.InvalidateToken()
		return nil, StatusQueryError{Message: "processor rejected token"}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("status query failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, StatusQueryError{Message: resp.Status}
	}

	var parsed statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, StatusQueryError{Message: err.Error()}
	}
	if parsed.Error != nil && parsed.Error.text() != "" {
		return nil, StatusQueryError{Message: parsed.Error.text()}
	}

	return &model.ProcessorStatus{
		TrackingID:       trackingID,
		Description:      parsed.PaymentStatusDescription,
		Amount:           parsed.Amount,
		PaymentMethod:    parsed.PaymentMethod,
		ConfirmationCode: parsed.ConfirmationCode,
	}, nil
}

// post issues a JSON POST and decodes the response body into out. An empty
// token sends an unauthenticated request.
func (c *HTTPClient) post(ctx context.Context, apiPath, token string, payload, out any) error {
	endpoint := *c.baseURL
	endpoint.Path += apiPath

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.InvalidateToken()
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("processor request failed",
			slog.String("path", apiPath),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(respBody)),
		)
		return fmt.Errorf("processor returned %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
