package mail

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/internal/workers"
	"github.com/MKhiriev/go-vidshare/models"
)

// AppName appears in subjects and templates.
const AppName = "VidShare"

const sendTimeout = 2 * time.Minute

type mailer struct {
	frontendURL     string
	verificationTTL time.Duration
	resetTTL        time.Duration

	templates *Templates
	queue     JobQueue
	sender    Sender
	logger    *logger.Logger
}

// NewMailer returns a [Mailer] that renders account emails and hands them
// to queue for delivery through sender.
func NewMailer(cfg *config.StructuredConfig, queue JobQueue, sender Sender, log *logger.Logger) (Mailer, error) {
	templates, err := ParseTemplates()
	if err != nil {
		return nil, err
	}

	return &mailer{
		frontendURL:     strings.TrimRight(cfg.App.FrontendURL, "/"),
		verificationTTL: cfg.Auth.VerificationTTL,
		resetTTL:        cfg.Auth.ResetTTL,
		templates:       templates,
		queue:           queue,
		sender:          sender,
		logger:          log,
	}, nil
}

// NewSender builds the delivery chain from cfg: SMTP when a host is set,
// the log sender otherwise, wrapped in retries.
func NewSender(cfg config.Mail, log *logger.Logger) Sender {
	var base Sender
	smtpSender, err := NewSMTPSender(cfg.SMTP)
	if err != nil {
		log.Warn().Msg("SMTP_HOST is not set, emails will be logged instead of sent")
		base = NewLogSender(log)
	} else {
		base = smtpSender
	}

	return NewRetryingSender(base, cfg.RetryAttempts, cfg.RetryDelay, log)
}

func (m *mailer) SendVerification(ctx context.Context, user models.User, token string) error {
	return m.enqueue(ctx, user, TemplateVerification, "Verify your email address",
		TemplateData{Link: m.link("/verify-email", token), ExpiresIn: humanDuration(m.verificationTTL)})
}

func (m *mailer) SendPasswordReset(ctx context.Context, user models.User, token string) error {
	return m.enqueue(ctx, user, TemplateReset, "Reset your password",
		TemplateData{Link: m.link("/reset-password", token), ExpiresIn: humanDuration(m.resetTTL)})
}

func (m *mailer) SendWelcome(ctx context.Context, user models.User) error {
	return m.enqueue(ctx, user, TemplateWelcome, "Welcome to "+AppName,
		TemplateData{Link: m.link("/dashboard", "")})
}

func (m *mailer) enqueue(ctx context.Context, user models.User, name, subject string, data TemplateData) error {
	log := logger.FromContext(ctx)

	data.AppName = AppName
	data.Name = user.Name
	html, text, err := m.templates.Render(name, data)
	if err != nil {
		log.Error().Err(err).Str("func", "*mailer.enqueue").Str("template", name).Msg("failed to render email")
		return err
	}

	msg := Message{
		To:      user.Email,
		Subject: subject + " - " + AppName,
		HTML:    html,
		Text:    text,
	}
	if err = msg.Validate(); err != nil {
		return err
	}

	job := func(jobCtx context.Context) {
		sendCtx, cancel := context.WithTimeout(jobCtx, sendTimeout)
		defer cancel()

		if err := m.sender.Send(sendCtx, msg); err != nil {
			m.logger.Error().Err(err).
				Str("func", "*mailer.job").
				Str("template", name).
				Int64("user_id", user.ID).
				Msg("email was not delivered")
			return
		}
		m.logger.Debug().Str("template", name).Int64("user_id", user.ID).Msg("email delivered")
	}

	if err = m.queue.Submit(job); err != nil {
		level := log.Error()
		if errors.Is(err, workers.ErrQueueFull) {
			level = log.Warn()
		}
		level.Err(err).Str("func", "*mailer.enqueue").Str("template", name).Int64("user_id", user.ID).Msg("email dropped")
		return fmt.Errorf("%w: %w", ErrEnqueue, err)
	}

	return nil
}

func (m *mailer) link(path, token string) string {
	if token == "" {
		return m.frontendURL + path
	}
	return m.frontendURL + path + "?token=" + url.QueryEscape(token)
}
