package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tfboppong-code/joeythebrand/checkout"
)

const defaultBaseURL = "https://api.paystack.co"

// Client talks to the Paystack REST API. The secret key stays inside this
// package and is only ever sent as the Authorization header.
type Client struct {
	SecretKey   string
	CallbackURL string
	BaseURL     string
	HTTPClient  *http.Client
}

func NewClient(secretKey, callbackURL string) *Client {
	return &Client{
		SecretKey:   secretKey,
		CallbackURL: callbackURL,
		BaseURL:     defaultBaseURL,
		HTTPClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// Open initializes a transaction and returns the hosted payment page URL
// plus the transaction reference.
func (p *Client) Open(ctx context.Context, params checkout.PaymentParams) (string, string, error) {
	payload := map[string]interface{}{
		"email":    params.Email,
		"amount":   params.Amount,
		"currency": params.Currency,
	}
	if p.CallbackURL != "" {
		payload["callback_url"] = p.CallbackURL
	}

	jsonData, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", p.BaseURL+"/transaction/initialize", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to reach Paystack: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("paystack API error (%d): %s", resp.StatusCode, string(body))
	}

	var initResp initializeResponse
	if err := json.Unmarshal(body, &initResp); err != nil {
		return "", "", fmt.Errorf("failed to parse Paystack response: %v", err)
	}
	if !initResp.Status {
		return "", "", fmt.Errorf("paystack error: %s", initResp.Message)
	}
	if initResp.Data.AuthorizationURL == "" {
		return "", "", fmt.Errorf("paystack returned empty payment URL")
	}

	return initResp.Data.AuthorizationURL, initResp.Data.Reference, nil
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status          string                 `json:"status"`
		Reference       string                 `json:"reference"`
		Amount          int64                  `json:"amount"`
		Currency        string                 `json:"currency"`
		GatewayResponse string                 `json:"gateway_response"`
		PaidAt          string                 `json:"paid_at"`
		Channel         string                 `json:"channel"`
		Customer        map[string]interface{} `json:"customer"`
	} `json:"data"`
}

// Verify fetches the transaction status for a reference. A transaction whose
// status is anything but "success" is reported as an unsuccessful result,
// not an error.
func (p *Client) Verify(ctx context.Context, reference string) (checkout.VerifyResult, error) {
	endpoint := p.BaseURL + "/transaction/verify/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return checkout.VerifyResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return checkout.VerifyResult{}, fmt.Errorf("failed to reach Paystack: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return checkout.VerifyResult{}, fmt.Errorf("paystack API error (%d): %s", resp.StatusCode, string(body))
	}

	var verResp verifyResponse
	if err := json.Unmarshal(body, &verResp); err != nil {
		return checkout.VerifyResult{}, fmt.Errorf("failed to parse Paystack response: %v", err)
	}
	if !verResp.Status {
		return checkout.VerifyResult{}, fmt.Errorf("paystack error: %s", verResp.Message)
	}

	return checkout.VerifyResult{
		Success: verResp.Data.Status == "success",
		Data: map[string]interface{}{
			"reference":        verResp.Data.Reference,
			"amount":           verResp.Data.Amount,
			"currency":         verResp.Data.Currency,
			"status":           verResp.Data.Status,
			"gateway_response": verResp.Data.GatewayResponse,
			"paid_at":          verResp.Data.PaidAt,
			"channel":          verResp.Data.Channel,
		},
	}, nil
}
