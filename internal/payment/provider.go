package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

var (
	ErrUnavailable = errors.New("payment provider is not configured")
	ErrSetupFailed = errors.New("payment setup failed")
)

// Provider issues and confirms payment intents. A token authorizes a charge
// of the exact amount it was created for; a new token must be requested
// whenever the chargeable amount changes.
type Provider interface {
	Available() bool
	CreateIntent(ctx context.Context, amount decimal.Decimal) (string, error)
	Confirm(ctx context.Context, token string) error
}

type HTTPProvider struct {
	Client    *http.Client
	BaseURL   string
	SecretKey string
}

// NewFromConfig selects the real provider when a secret key is configured
// and the null provider otherwise.
func NewFromConfig(client *http.Client, baseURL, secretKey string) Provider {
	if secretKey == "" {
		return NullProvider{}
	}
	return &HTTPProvider{Client: client, BaseURL: baseURL, SecretKey: secretKey}
}

func (p *HTTPProvider) Available() bool { return true }

type intentResponse struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

func (p *HTTPProvider) CreateIntent(ctx context.Context, amount decimal.Decimal) (string, error) {
	body, err := json.Marshal(map[string]string{
		"amount":   amount.StringFixed(2),
		"currency": "usd",
	})
	if err != nil {
		return "", fmt.Errorf("marshal intent: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/intents", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var ir intentResponse
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		return "", fmt.Errorf("decode body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if ir.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrSetupFailed, ir.Error)
		}
		return "", fmt.Errorf("%w: unexpected status %d", ErrSetupFailed, resp.StatusCode)
	}
	if ir.Token == "" {
		return "", fmt.Errorf("%w: provider returned no token", ErrSetupFailed)
	}
	return ir.Token, nil
}

func (p *HTTPProvider) Confirm(ctx context.Context, token string) error {
	url := fmt.Sprintf("%s/v1/intents/%s/confirm", p.BaseURL, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}
	var ir intentResponse
	if err := json.NewDecoder(resp.Body).Decode(&ir); err == nil && ir.Error != "" {
		// provider message goes to the user verbatim
		return errors.New(ir.Error)
	}
	return fmt.Errorf("payment declined: unexpected status %d", resp.StatusCode)
}

// NullProvider stands in when no provider credentials are configured. The
// card payment option is disabled in that mode, so these methods are not
// reachable through normal checkout flow.
type NullProvider struct{}

func (NullProvider) Available() bool { return false }

func (NullProvider) CreateIntent(context.Context, decimal.Decimal) (string, error) {
	return "", ErrUnavailable
}

func (NullProvider) Confirm(context.Context, string) error {
	return ErrUnavailable
}
