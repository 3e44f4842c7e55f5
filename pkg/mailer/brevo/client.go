package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pesabot/pesabot-backend/pkg/logger"
)

// Client represents a Brevo transactional email client
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new Brevo client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}, nil
}

// SendOTPEmail delivers a password reset code to the recipient.
func (c *Client) SendOTPEmail(ctx context.Context, toEmail, toName, code string) error {
	// Dev mode: no API key configured, log the code instead of sending.
	if c.config.APIKey == "" {
		logger.Info("Email sending disabled, logging OTP instead", map[string]interface{}{
			"to":  toEmail,
			"otp": code,
		})
		return nil
	}

	req := SendEmailRequest{
		Sender: Contact{
			Name:  c.config.SenderName,
			Email: c.config.SenderEmail,
		},
		To: []Contact{
			{Email: toEmail, Name: toName},
		},
		Subject:     "Your password reset code",
		HTMLContent: otpEmailBody(toName, code),
	}

	resp, err := c.doRequest(ctx, "smtp/email", req)
	if err != nil {
		return err
	}

	var sendResp SendEmailResponse
	if err := json.Unmarshal(resp, &sendResp); err != nil {
		return fmt.Errorf("failed to unmarshal send response: %w", err)
	}

	logger.Info("OTP email sent", map[string]interface{}{
		"to":         toEmail,
		"message_id": sendResp.MessageID,
	})
	return nil
}

func otpEmailBody(name, code string) string {
	return fmt.Sprintf(
		`<html><body>
<p>Hello %s,</p>
<p>Your password reset code is:</p>
<h2 style="letter-spacing: 4px;">%s</h2>
<p>The code expires in a few minutes. If you did not request a reset, you can ignore this email.</p>
</body></html>`,
		name, code,
	)
}

// doRequest performs an HTTP request to the Brevo API
func (c *Client) doRequest(ctx context.Context, endpoint string, payload interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.config.BaseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("api-key", c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 300 {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
		}

		errorMsg := fmt.Sprintf("Brevo API error - Status: %d, Code: %s, Message: %s",
			resp.StatusCode, errResp.Code, errResp.Message)

		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, errorMsg)
		default:
			return nil, fmt.Errorf("%w: %s", ErrSendFailed, errorMsg)
		}
	}

	return body, nil
}
