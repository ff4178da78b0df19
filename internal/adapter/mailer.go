package adapter

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/utils"
)

type sendEmailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type httpMailer struct {
	client *utils.HTTPClient
	apiKey string
	from   string
	logger *logger.Logger
}

// NewMailer returns an HTTP [Mailer] for cfg. When cfg.BaseURL is empty
// emails are written to the log instead of being sent.
func NewMailer(cfg config.Mailer, log *logger.Logger) (Mailer, error) {
	if cfg.BaseURL == "" {
		log.Warn().Str("func", "NewMailer").Msg("mailer base url is empty, emails will be logged only")
		return &logMailer{logger: log}, nil
	}

	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mailer base url: %w", err)
	}

	return &httpMailer{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout, cfg.RatePerSecond),
		apiKey: cfg.APIKey,
		from:   cfg.From,
		logger: log,
	}, nil
}

// SendEmail implements [Mailer]. It POSTs the rendered message to /emails.
func (m *httpMailer) SendEmail(ctx context.Context, to, subjectKey string, data EmailData) error {
	subject, html, err := renderEmail(subjectKey, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetAuthToken(m.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(sendEmailRequest{From: m.from, To: to, Subject: subject, HTML: html}).
		Post("/emails")
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*httpMailer.SendEmail").Str("template", subjectKey).Msg("email request failed")
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*httpMailer.SendEmail").Str("template", subjectKey).Int("status", resp.StatusCode()).Msg("email api rejected message")
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	return nil
}

// logMailer is used in development when no email API is configured.
type logMailer struct {
	logger *logger.Logger
}

func (m *logMailer) SendEmail(ctx context.Context, to, subjectKey string, data EmailData) error {
	subject, _, err := renderEmail(subjectKey, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	m.logger.Info().
		Str("func", "*logMailer.SendEmail").
		Str("to", to).
		Str("subject", subject).
		Str("link", redactLink(data.Link)).
		Msg("email not sent, mailer is not configured")

	return nil
}

// redactLink masks the token query parameter so one-time tokens never
// reach the log.
func redactLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	q := u.Query()
	if !q.Has("token") {
		return link
	}
	q.Set("token", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}
