package external

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"
)

// PaymentClient talks to the external payment gateway used for paid
// registrations. The gateway signs every request with a SHA-256 token
// over the alphabetically sorted request parameters plus the merchant
// credentials.
type PaymentClient struct {
	baseURL    string
	merchantID string
	password   string
	httpClient *http.Client
}

type PaymentConfig struct {
	BaseURL    string
	MerchantID string
	Password   string
	Timeout    time.Duration
}

type PaymentInitRequest struct {
	MerchantID      string `json:"merchantId"`
	Token           string `json:"token"`
	Amount          int64  `json:"amount"`
	OrderID         string `json:"orderId"`
	Currency        string `json:"currency"`
	Description     string `json:"description,omitempty"`
	Email           string `json:"email,omitempty"`
	SuccessURL      string `json:"successURL,omitempty"`
	FailURL         string `json:"failURL,omitempty"`
	NotificationURL string `json:"notificationURL,omitempty"`
	Language        string `json:"language,omitempty"`
}

type PaymentInitResponse struct {
	Success    bool   `json:"success"`
	PaymentID  string `json:"paymentId"`
	OrderID    string `json:"orderId"`
	Status     string `json:"status"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	PaymentURL string `json:"paymentURL"`
	ExpiresAt  string `json:"expiresAt"`
	CreatedAt  string `json:"createdAt"`
}

type PaymentCheckRequest struct {
	MerchantID string `json:"merchantId"`
	Token      string `json:"token"`
	PaymentID  string `json:"paymentId,omitempty"`
	OrderID    string `json:"orderId,omitempty"`
}

type PaymentCheckResponse struct {
	Success    bool             `json:"success"`
	Payments   []PaymentDetails `json:"payments"`
	TotalCount int              `json:"totalCount"`
	OrderID    string           `json:"orderId"`
}

type PaymentDetails struct {
	PaymentID         string `json:"paymentId"`
	OrderID           string `json:"orderId"`
	Status            string `json:"status"`
	StatusDescription string `json:"statusDescription"`
	Amount            int64  `json:"amount"`
	Currency          string `json:"currency"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
	ExpiresAt         string `json:"expiresAt"`
	Description       string `json:"description"`
}

func NewPaymentClient(cfg PaymentConfig) *PaymentClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &PaymentClient{
		baseURL:    cfg.BaseURL,
		merchantID: cfg.MerchantID,
		password:   cfg.Password,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (pc *PaymentClient) generateToken(params map[string]string) string {
	params["MerchantId"] = pc.merchantID
	params["Password"] = pc.password

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var tokenString string
	for _, key := range keys {
		tokenString += params[key]
	}

	hash := sha256.Sum256([]byte(tokenString))
	return hex.EncodeToString(hash[:])
}

func (pc *PaymentClient) InitPayment(amount int64, orderID, currency, description string) (*PaymentInitResponse, error) {
	params := map[string]string{
		"Amount":   strconv.FormatInt(amount, 10),
		"Currency": currency,
		"OrderId":  orderID,
	}
	token := pc.generateToken(params)

	req := PaymentInitRequest{
		MerchantID:  pc.merchantID,
		Token:       token,
		Amount:      amount,
		OrderID:     orderID,
		Currency:    currency,
		Description: description,
		Language:    "en",
	}

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := pc.httpClient.Post(pc.baseURL+"/api/v1/PaymentInit/init", "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to init payment: %w", err)
	}
	defer resp.Body.Close()

	var result PaymentInitResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !result.Success {
		return nil, fmt.Errorf("payment init failed")
	}

	return &result, nil
}

func (pc *PaymentClient) CheckPayment(paymentID string) (*PaymentCheckResponse, error) {
	params := map[string]string{
		"PaymentId": paymentID,
	}
	token := pc.generateToken(params)

	req := PaymentCheckRequest{
		MerchantID: pc.merchantID,
		Token:      token,
		PaymentID:  paymentID,
	}

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := pc.httpClient.Post(pc.baseURL+"/api/v1/PaymentCheck/check", "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to check payment: %w", err)
	}
	defer resp.Body.Close()

	var result PaymentCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

func (pc *PaymentClient) ConfirmPayment(paymentID string, amount int64) error {
	params := map[string]string{
		"Amount":    strconv.FormatInt(amount, 10),
		"PaymentId": paymentID,
	}
	token := pc.generateToken(params)

	reqData := map[string]interface{}{
		"merchantId": pc.merchantID,
		"token":      token,
		"paymentId":  paymentID,
		"amount":     amount,
	}

	jsonBody, err := json.Marshal(reqData)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := pc.httpClient.Post(pc.baseURL+"/api/v1/PaymentConfirm/confirm", "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to confirm payment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

func (pc *PaymentClient) CancelPayment(paymentID string, reason string) error {
	params := map[string]string{
		"PaymentId": paymentID,
	}
	token := pc.generateToken(params)

	reqData := map[string]interface{}{
		"merchantId": pc.merchantID,
		"token":      token,
		"paymentId":  paymentID,
		"reason":     reason,
	}

	jsonBody, err := json.Marshal(reqData)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := pc.httpClient.Post(pc.baseURL+"/api/v1/PaymentCancel/cancel", "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to cancel payment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
