package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const identityToolkitBase = "https://identitytoolkit.googleapis.com/v1"

// IdentityToolkit calls the auth provider's REST surface for the operations
// the Admin SDK does not cover: password sign-in, sign-up and password-reset
// emails.
type IdentityToolkit struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewIdentityToolkit() *IdentityToolkit {
	return &IdentityToolkit{
		APIKey:  os.Getenv("FIREBASE_WEB_API_KEY"),
		BaseURL: identityToolkitBase,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type toolkitTokenResponse struct {
	IDToken string `json:"idToken"`
	Email   string `json:"email"`
	LocalID string `json:"localId"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// SignInWithPassword exchanges email/password credentials for a provider ID
// token.
func (t *IdentityToolkit) SignInWithPassword(ctx context.Context, email, password string) (string, error) {
	return t.tokenCall(ctx, "accounts:signInWithPassword", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

// SignUp creates a new email/password account and returns its ID token.
func (t *IdentityToolkit) SignUp(ctx context.Context, email, password string) (string, error) {
	return t.tokenCall(ctx, "accounts:signUp", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

// SendPasswordReset asks the provider to email a password-reset link.
func (t *IdentityToolkit) SendPasswordReset(ctx context.Context, email string) error {
	_, err := t.call(ctx, "accounts:sendOobCode", map[string]interface{}{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	})
	return err
}

func (t *IdentityToolkit) tokenCall(ctx context.Context, endpoint string, payload map[string]interface{}) (string, error) {
	body, err := t.call(ctx, endpoint, payload)
	if err != nil {
		return "", err
	}

	var out toolkitTokenResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse identity toolkit response: %v", err)
	}
	if out.IDToken == "" {
		return "", fmt.Errorf("identity toolkit returned no token")
	}
	return out.IDToken, nil
}

func (t *IdentityToolkit) call(ctx context.Context, endpoint string, payload map[string]interface{}) ([]byte, error) {
	if t.APIKey == "" {
		return nil, fmt.Errorf("FIREBASE_WEB_API_KEY is not set")
	}

	jsonData, _ := json.Marshal(payload)
	url := fmt.Sprintf("%s/%s?key=%s", t.BaseURL, endpoint, t.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach identity toolkit: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var out toolkitTokenResponse
		if json.Unmarshal(body, &out) == nil && out.Error != nil {
			return nil, fmt.Errorf("identity toolkit error: %s", out.Error.Message)
		}
		return nil, fmt.Errorf("identity toolkit error (%d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}
