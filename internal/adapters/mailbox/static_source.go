package mailbox

import (
	"context"

	"github.com/mikey/llm-email-triage/internal/core"
)

// StaticSource serves a fixed list of emails. It stands in for a real
// mailbox in demos and tests.
type StaticSource struct {
	emails []core.Email
}

// NewStaticSource creates a source over emails. With no emails the
// built-in sample inbox is used.
func NewStaticSource(emails ...core.Email) *StaticSource {
	if len(emails) == 0 {
		emails = SampleInbox()
	}
	return &StaticSource{emails: emails}
}

// Fetch returns a fresh copy of the emails, in order
func (s *StaticSource) Fetch(_ context.Context) ([]*core.Email, error) {
	out := make([]*core.Email, len(s.emails))
	for i := range s.emails {
		email := s.emails[i]
		out[i] = &email
	}
	return out, nil
}

// SampleInbox returns the simulated messages used when no mailbox is configured
func SampleInbox() []core.Email {
	return []core.Email{
		{
			ID:      "email_001",
			Subject: "Your Order #12345 Confirmed!",
			Sender:  "noreply@onlinestore.com",
			Body:    "Hi John, your recent order #12345 has been confirmed and will be shipped soon. Items: Laptop, Mouse. Total: $1200. You will receive another email with tracking information.",
		},
		{
			ID:      "email_002",
			Subject: "Project Alpha Meeting Rescheduled",
			Sender:  "alice@workcorp.com",
			Body:    "Hello team, the Project Alpha meeting originally scheduled for Monday has been moved to Wednesday at 10 AM in Conference Room 3. Please update your calendars. Agenda will be sent separately.",
		},
		{
			ID:      "email_003",
			Subject: "Exclusive Discount Just For You!",
			Sender:  "marketing@coolgadgets.com",
			Body:    "Don't miss out on our limited-time offer! Get 20% off all smartphones this week. Use code SAVE20 at checkout. Shop now!",
		},
		{
			ID:      "email_004",
			Subject: "New Photo Album from Sarah",
			Sender:  "photos@friends.com",
			Body:    "Sarah just shared a new photo album with you: 'Summer Vacation 2025'. Click here to view the amazing pictures!",
		},
		{
			ID:      "email_005",
			Subject: "Your Account Security Alert",
			Sender:  "security@fakebank.com",
			Body:    "Urgent: We detected unusual activity on your account. Please click this link immediately to verify your identity and prevent account suspension. [malicious link]",
		},
	}
}
