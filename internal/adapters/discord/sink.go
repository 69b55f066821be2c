package discord

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/mikey/llm-email-triage/internal/core"
	"go.uber.org/zap"
)

// maxResponseBody caps how much of an error response is kept for logging
const maxResponseBody = 4096

// webhookHosts are the hosts discordgo can deliver a webhook to
var webhookHosts = []string{"discord.com", "discordapp.com"}

// Sink executes a Discord webhook through the discordgo REST client. Each
// Send issues exactly one request: discordgo's 502 and rate limit retries
// are disabled.
type Sink struct {
	session   *discordgo.Session
	webhookID string
	token     string
	logger    *zap.Logger
}

// NewSink creates a Discord sink for a webhook URL of the form
// https://discord.com/api/webhooks/{id}/{token}. A nil client keeps the
// discordgo default.
func NewSink(webhookURL string, client *http.Client, logger *zap.Logger) (*Sink, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}

	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	if client != nil {
		session.Client = client
	}
	session.MaxRestRetries = 0
	session.ShouldRetryOnRateLimit = false

	return &Sink{
		session:   session,
		webhookID: id,
		token:     token,
		logger:    logger,
	}, nil
}

// Send executes the webhook with the payload. Any non-2xx answer, including
// 429 and 502, is returned as *core.StatusError with the response body.
func (s *Sink) Send(ctx context.Context, payload *core.Payload) error {
	params := &discordgo.WebhookParams{
		Content:   payload.Content,
		Username:  payload.Username,
		AvatarURL: payload.AvatarURL,
	}

	recorder := newResponseRecorder(s.session.Client)
	_, err := s.session.WebhookExecute(s.webhookID, s.token, false, params,
		discordgo.WithContext(ctx),
		discordgo.WithClient(recorder.client()),
		discordgo.WithRestRetries(0),
		discordgo.WithRetryOnRatelimit(false))
	if err != nil {
		if recorder.status != 0 && (recorder.status < 200 || recorder.status > 299) {
			return &core.StatusError{StatusCode: recorder.status, Body: string(recorder.body)}
		}
		return fmt.Errorf("failed to execute discord webhook: %w", err)
	}

	s.logger.Debug("Discord webhook executed", zap.String("webhook_id", s.webhookID))
	return nil
}

// responseRecorder keeps the status and body of the last response so that
// errors discordgo reports as plain strings still carry them
type responseRecorder struct {
	base   *http.Client
	status int
	body   []byte
}

func newResponseRecorder(base *http.Client) *responseRecorder {
	if base == nil {
		base = http.DefaultClient
	}
	return &responseRecorder{base: base}
}

func (r *responseRecorder) client() *http.Client {
	c := *r.base
	c.Transport = r
	return &c
}

func (r *responseRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := r.base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	resp, err := transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	r.status = resp.StatusCode
	if len(body) > maxResponseBody {
		body = body[:maxResponseBody]
	}
	r.body = body
	return resp, nil
}

// ParseWebhookURL extracts the webhook id and token from a Discord webhook
// URL. Only https URLs on a Discord host are accepted.
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid discord webhook URL: %w", err)
	}
	if u.Scheme != "https" || !isWebhookHost(u.Hostname()) {
		return "", "", fmt.Errorf("invalid discord webhook URL %q: expected an https URL on discord.com", raw)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, part := range parts {
		if part == "webhooks" && i+2 < len(parts) {
			id, token = parts[i+1], parts[i+2]
			break
		}
	}
	if id == "" || token == "" {
		return "", "", fmt.Errorf("invalid discord webhook URL %q: expected /webhooks/{id}/{token}", raw)
	}
	return id, token, nil
}

func isWebhookHost(host string) bool {
	host = strings.ToLower(host)
	for _, h := range webhookHosts {
		// ptb. and canary. subdomains serve the same API
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
