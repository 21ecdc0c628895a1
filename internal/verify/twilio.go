package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const twilioVerifyBaseURL = "https://verify.twilio.com/v2/Services"

// TwilioProvider drives the Twilio Verify REST API.
type TwilioProvider struct {
	accountSID string
	authToken  string
	serviceSID string
	baseURL    string
	client     *http.Client
}

func NewTwilioProvider(accountSID, authToken, serviceSID string) *TwilioProvider {
	return &TwilioProvider{
		accountSID: accountSID,
		authToken:  authToken,
		serviceSID: serviceSID,
		baseURL:    twilioVerifyBaseURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *TwilioProvider) Start(ctx context.Context, phone string) error {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("Channel", "sms")

	endpoint := fmt.Sprintf("%s/%s/Verifications", p.baseURL, p.serviceSID)
	_, err := p.post(ctx, endpoint, form)
	return err
}

func (p *TwilioProvider) Check(ctx context.Context, phone, code string) (bool, error) {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("Code", code)

	endpoint := fmt.Sprintf("%s/%s/VerificationCheck", p.baseURL, p.serviceSID)
	body, err := p.post(ctx, endpoint, form)
	if err != nil {
		return false, err
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return false, fmt.Errorf("verify: decode response: %w", err)
	}
	return result.Status == "approved", nil
}

func (p *TwilioProvider) post(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("verify: build request: %w", err)
	}
	req.SetBasicAuth(p.accountSID, p.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("verify: read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("verify: provider returned status %d", resp.StatusCode)
	}
	return body, nil
}
