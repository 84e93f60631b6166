// Package sms implements the outbound SMS gateway client with per-request
// HMAC request signing.
package sms

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/2706msjk-ui/gilmo/config"
	"github.com/2706msjk-ui/gilmo/pkg/utils"
)

// Wire message types. Bodies up to shortFormLimit runes go out as short-form.
const (
	TypeSMS = "SMS"
	TypeLMS = "LMS"

	shortFormLimit = 90
)

// Result is the gateway's HTTP outcome, relayed verbatim to the caller.
type Result struct {
	StatusCode  int    `json:"status_code"`
	Body        string `json:"body"`
	MessageType string `json:"message_type"`
}

type sendPayload struct {
	Messages []message `json:"messages"`
}

type message struct {
	To   string `json:"to"`
	From string `json:"from"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// Client sends messages through the gateway's batch send endpoint.
type Client struct {
	cfg    config.SMSConfig
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a gateway client from deployment configuration.
func NewClient(cfg config.SMSConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

// MessageTypeFor selects the wire type by body length in runes.
func MessageTypeFor(text string) string {
	if utf8.RuneCountInString(text) <= shortFormLimit {
		return TypeSMS
	}
	return TypeLMS
}

// Send posts one message to the gateway. The recipient is normalized to
// digits only. Any non-transport-error response is returned as the Result;
// gateway-specific success codes are not interpreted here.
func (c *Client) Send(ctx context.Context, to, text string) (*Result, error) {
	msgType := MessageTypeFor(text)
	payload := sendPayload{Messages: []message{{
		To:   utils.NormalizePhone(to),
		From: c.cfg.Sender,
		Text: text,
		Type: msgType,
	}}}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.SendURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	auth, err := authHeader(c.cfg.APIKey, c.cfg.APISecret, time.Now())
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway call: %w", err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	c.logger.Info("sms dispatched",
		zap.Int("status", resp.StatusCode),
		zap.String("type", msgType),
	)
	return &Result{StatusCode: resp.StatusCode, Body: string(respBody), MessageType: msgType}, nil
}

// authHeader builds the signed Authorization header: algorithm tag, API key,
// ISO-8601 timestamp, a fresh random salt, and the hex HMAC-SHA256 signature
// of date||salt keyed by the API secret. Salt reuse or a stale date is
// rejected gateway-side, not re-validated here.
func authHeader(apiKey, apiSecret string, now time.Time) (string, error) {
	salt, err := newSalt()
	if err != nil {
		return "", err
	}
	date := now.Format(time.RFC3339)
	mac := hmac.New(sha256.New, []byte(apiSecret))
	mac.Write([]byte(date + salt))
	signature := hex.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("HMAC-SHA256 apiKey=%s, date=%s, salt=%s, signature=%s",
		apiKey, date, salt, signature), nil
}

func newSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}
