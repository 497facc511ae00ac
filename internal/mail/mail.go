// Package mail sends outbound email through an HTTP provider.
//
// Send is synchronous and never panics: any transport problem logs a warning
// and returns false. Callers must not hold a store lock while sending.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Sender is the outbound email contract.
type Sender interface {
	// Send delivers one message. lang selects the recipient's language for
	// provider-side template hints; the body is already localized.
	Send(to, subject, body, lang string) bool
	// Enabled reports whether this sender can actually deliver.
	Enabled() bool
}

// HTTPSender posts messages to a JSON mail API.
type HTTPSender struct {
	url     string
	token   string
	from    string
	timeout time.Duration
	client  *http.Client
}

func NewHTTPSender(url, token, from string, timeoutSec int) *HTTPSender {
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	timeout := time.Duration(timeoutSec) * time.Second
	return &HTTPSender{
		url:     url,
		token:   token,
		from:    from,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSender) Enabled() bool {
	return true
}

func (s *HTTPSender) Send(to, subject, body, lang string) bool {
	payload := map[string]any{
		"from":     map[string]string{"email": s.from},
		"to":       []map[string]string{{"email": to}},
		"subject":  subject,
		"text":     body,
		"language": lang,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("mail encode failed", "to", to, "error", err)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(raw))
	if err != nil {
		slog.Warn("mail request failed", "to", to, "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Warn("mail send failed", "to", to, "error", err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		slog.Warn("mail provider rejected message", "to", to, "status", resp.StatusCode)
		return false
	}
	return true
}

// Disabled is the sender used when email credentials are absent. Sends are
// reported as failures without touching the network.
type Disabled struct{}

func (Disabled) Enabled() bool { return false }

func (Disabled) Send(to, subject, body, lang string) bool {
	slog.Debug("email disabled, dropping message", "to", to, "subject", subject)
	return false
}
