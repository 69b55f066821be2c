package mailbox

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
	"go.uber.org/zap"
)

const sourceName = "imap"

// IMAPSource fetches recent messages from an IMAP mailbox. Messages are
// fetched with BODY.PEEK so their \Seen flag is left untouched.
type IMAPSource struct {
	cfg     config.IMAPConfig
	options *imapclient.Options
	logger  *zap.Logger
}

// NewIMAPSource creates a new IMAP message source
func NewIMAPSource(cfg config.IMAPConfig, logger *zap.Logger) *IMAPSource {
	return NewIMAPSourceWithOptions(cfg, nil, logger)
}

// NewIMAPSourceWithOptions creates an IMAP message source with explicit
// client options, such as a TLS configuration trusting a private CA
func NewIMAPSourceWithOptions(cfg config.IMAPConfig, options *imapclient.Options, logger *zap.Logger) *IMAPSource {
	return &IMAPSource{
		cfg:     cfg,
		options: options,
		logger:  logger,
	}
}

// connect dials the server, authenticates and selects the mailbox. The
// caller must log out of the returned client.
func (s *IMAPSource) connect() (*imapclient.Client, error) {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	var (
		client *imapclient.Client
		err    error
	)
	if s.cfg.TLS {
		client, err = imapclient.DialTLS(addr, s.options)
	} else {
		client, err = imapclient.DialStartTLS(addr, s.options)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}

	if err := client.Login(s.cfg.Username, s.cfg.Password).Wait(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("login as %s: %w", s.cfg.Username, err)
	}

	if _, err := client.Select(s.cfg.Mailbox, nil).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("selecting %s: %w", s.cfg.Mailbox, err)
	}

	return client, nil
}

// Fetch returns up to the configured limit of the most recent messages,
// oldest first. Connection, login and select failures are returned as
// *core.SourceError and are not retried.
func (s *IMAPSource) Fetch(ctx context.Context) ([]*core.Email, error) {
	client, err := s.connect()
	if err != nil {
		s.logger.Error("Connection failed",
			zap.String("host", s.cfg.Host),
			zap.String("mailbox", s.cfg.Mailbox),
			zap.Error(err))
		return nil, &core.SourceError{Source: sourceName, Err: err}
	}
	defer func() { _ = client.Logout().Wait() }()

	criteria := &imap.SearchCriteria{}
	if s.cfg.UnseenOnly {
		criteria.NotFlag = []imap.Flag{imap.FlagSeen}
	}

	searchData, err := client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, &core.SourceError{Source: sourceName, Err: fmt.Errorf("searching messages: %w", err)}
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		s.logger.Info("No messages to fetch", zap.String("mailbox", s.cfg.Mailbox))
		return nil, nil
	}
	if s.cfg.Limit > 0 && len(uids) > s.cfg.Limit {
		uids = uids[len(uids)-s.cfg.Limit:]
	}

	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchCmd := client.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		Envelope:    true,
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	})
	defer fetchCmd.Close()

	var emails []*core.Email
	for {
		if err := ctx.Err(); err != nil {
			return emails, err
		}

		msg := fetchCmd.Next()
		if msg == nil {
			break
		}

		buf, err := msg.Collect()
		if err != nil {
			s.logger.Warn("Skipping unreadable message", zap.Error(err))
			continue
		}
		emails = append(emails, toEmail(buf.UID, buf.Envelope, buf.FindBodySection(bodySection)))
	}

	if err := fetchCmd.Close(); err != nil {
		return emails, &core.SourceError{Source: sourceName, Err: fmt.Errorf("fetching messages: %w", err)}
	}

	s.logger.Info("Fetched messages",
		zap.String("mailbox", s.cfg.Mailbox),
		zap.Int("count", len(emails)))
	return emails, nil
}

// toEmail builds an Email from the envelope and raw body of a fetched message
func toEmail(uid imap.UID, env *imap.Envelope, raw []byte) *core.Email {
	email := &core.Email{
		ID: fmt.Sprintf("uid-%d", uid),
	}

	if env != nil {
		if env.MessageID != "" {
			email.ID = env.MessageID
		}
		email.Subject = env.Subject
		if len(env.From) > 0 {
			email.Sender = env.From[0].Addr()
		}
	}

	if raw != nil {
		email.Body = extractText(raw)
	} else {
		email.Body = noTextContent
	}
	return email
}
