package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DefaultExcerptLength is the number of body characters quoted in a notification
const DefaultExcerptLength = 200

// NotifierOptions controls how notifications are rendered and whether they are sent
type NotifierOptions struct {
	Username      string
	AvatarURL     string
	ExcerptLength int
	// DryRun skips delivery, used when no sink destination is configured
	DryRun bool
}

// Notifier renders triage results and hands them to a sink
type Notifier struct {
	sink   Sink
	logger *zap.Logger
	opts   NotifierOptions
}

// NewNotifier creates a new notifier stage
func NewNotifier(sink Sink, logger *zap.Logger, opts NotifierOptions) *Notifier {
	if opts.ExcerptLength <= 0 {
		opts.ExcerptLength = DefaultExcerptLength
	}
	return &Notifier{
		sink:   sink,
		logger: logger,
		opts:   opts,
	}
}

// Notify delivers the triage result for one email. Delivery failures are
// logged and do not propagate.
func (n *Notifier) Notify(ctx context.Context, email *Email, category Category, summary string) {
	if n.opts.DryRun {
		n.logger.Info("Skipping notification: webhook URL not configured",
			zap.String("email_id", email.ID))
		return
	}

	if err := n.notify(ctx, email, category, summary); err != nil {
		fields := []zap.Field{zap.String("email_id", email.ID), zap.Error(err)}
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			fields = append(fields,
				zap.Int("status", statusErr.StatusCode),
				zap.String("response", statusErr.Body))
		} else {
			fields = append(fields, zap.String("response", "N/A"))
		}
		n.logger.Error("Failed to send notification", fields...)
		return
	}

	n.logger.Info("Sent notification", zap.String("email_id", email.ID))
}

func (n *Notifier) notify(ctx context.Context, email *Email, category Category, summary string) error {
	if err := n.sink.Send(ctx, n.BuildPayload(email, category, summary)); err != nil {
		return &StageError{Stage: StageNotify, Err: err}
	}
	return nil
}

// BuildPayload renders the notification for one email
func (n *Notifier) BuildPayload(email *Email, category Category, summary string) *Payload {
	return &Payload{
		Content:   n.formatContent(email, category, summary),
		Username:  n.opts.Username,
		AvatarURL: n.opts.AvatarURL,
	}
}

func (n *Notifier) formatContent(email *Email, category Category, summary string) string {
	var b strings.Builder
	b.WriteString("**New Email Alert!**\n")
	fmt.Fprintf(&b, "**Category:** `%s`\n", category)
	fmt.Fprintf(&b, "**Subject:** `%s`\n", email.Subject)
	fmt.Fprintf(&b, "**From:** `%s`\n", email.Sender)
	fmt.Fprintf(&b, "**Summary:** %s\n", summary)
	fmt.Fprintf(&b, "**Original Body (first %d chars):**\n", n.opts.ExcerptLength)
	// The ellipsis is appended whether or not the body was cut
	fmt.Fprintf(&b, "```\n%s...\n```", Excerpt(email.Body, n.opts.ExcerptLength))
	return b.String()
}

// Excerpt returns the first n characters of s
func Excerpt(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
