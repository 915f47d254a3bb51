package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/prismatek/prismatek-ai-backend/internal/leads"
	"github.com/prismatek/prismatek-ai-backend/pkg/logging"
)

const alertSendTimeout = 10 * time.Second

// LeadAlerter emails the configured inbox whenever a lead is stored. Sends
// run off the request path; delivery failures are logged and dropped.
type LeadAlerter struct {
	sender EmailSender
	to     string
	logger *logging.Logger
}

// NewLeadAlerter creates a lead alerter. Returns nil when no sender or
// destination address is configured.
func NewLeadAlerter(sender EmailSender, to string, logger *logging.Logger) *LeadAlerter {
	if sender == nil || to == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadAlerter{sender: sender, to: to, logger: logger}
}

// LeadCaptured implements leads.Notifier.
func (a *LeadAlerter) LeadCaptured(lead leads.Lead) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), alertSendTimeout)
		defer cancel()

		msg := EmailMessage{
			To:      a.to,
			Subject: fmt.Sprintf("New lead: %s (%s)", lead.Name, lead.Company),
			Body: fmt.Sprintf(
				"A new lead was captured.\n\nName: %s\nCompany: %s\nEmail: %s\nPhone: %s\nRequirement: %s\nMessage: %s\nSubmitted: %s\n",
				lead.Name, lead.Company, lead.Email, lead.Phone, lead.Requirement, lead.Message,
				lead.SubmittedAt.Format(time.RFC3339),
			),
		}
		if err := a.sender.Send(ctx, msg); err != nil {
			a.logger.Error("lead alert email failed", "error", err, "lead_id", lead.ID)
		}
	}()
}
