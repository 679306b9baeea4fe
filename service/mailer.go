package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Auguzcht/NextGen-sub001/config"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/flowchartsman/retry"
)

// Mailer sends transactional email through the hosted mail API. When no
// API key is configured it degrades to logging the message.
type Mailer struct {
	cfg    config.MailConfig
	client *http.Client
}

// NewMailer builds a mailer with a bounded request timeout.
func NewMailer(cfg config.MailConfig) *Mailer {
	return &Mailer{
		cfg:    cfg,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type mailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one message. Failures are retried with backoff before
// being reported; callers treat mail errors as non-fatal.
func (m *Mailer) Send(ctx context.Context, to, subject, html string) error {
	if to == "" {
		return fmt.Errorf("empty recipient")
	}

	if m.cfg.APIKey == "" {
		utils.LogInfo(map[string]interface{}{
			"to":      to,
			"subject": subject,
		}, "mail api key not configured, logging message instead")
		return nil
	}

	body, err := json.Marshal(mailRequest{
		From:    fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.FromEmail),
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}

	retrier := retry.NewRetrier(5, 100*time.Millisecond, time.Second)
	err = retrier.RunContext(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.APIBase+"/emails", bytes.NewReader(body))
		if err != nil {
			return retry.Stop(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)

		resp, err := m.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("mail api returned %d", resp.StatusCode)
		}
		if resp.StatusCode >= 300 {
			return retry.Stop(fmt.Errorf("mail api rejected request: %d", resp.StatusCode))
		}
		return nil
	})
	if err != nil {
		utils.LogError(err, map[string]interface{}{"to": to, "subject": subject}, "mail send failed")
		return err
	}

	utils.LogInfo(map[string]interface{}{"to": to, "subject": subject}, "mail sent")
	return nil
}

// SendAccountApproved notifies a user their account was approved.
func (m *Mailer) SendAccountApproved(ctx context.Context, to, username string) error {
	subject := "Your NextGen Ministry account has been approved"
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your account has been approved. You can now sign in to the NextGen admin portal.</p>", username)
	return m.Send(ctx, to, subject, html)
}

// SendAssignmentNotice notifies a staff member of a new service assignment.
func (m *Mailer) SendAssignmentNotice(ctx context.Context, to, staffName, serviceName, date, role string) error {
	subject := fmt.Sprintf("You are serving on %s", date)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>You have been scheduled as <b>%s</b> for <b>%s</b> on %s.</p>",
		staffName, role, serviceName, date,
	)
	return m.Send(ctx, to, subject, html)
}
