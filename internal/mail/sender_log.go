package mail

import (
	"context"

	"github.com/MKhiriev/go-vidshare/internal/logger"
)

// logSender writes messages to the log instead of delivering them. It is
// used in development when no SMTP host is configured.
type logSender struct {
	logger *logger.Logger
}

// NewLogSender returns a [Sender] that only logs.
func NewLogSender(log *logger.Logger) Sender {
	return &logSender{logger: log}
}

func (s *logSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	s.logger.Info().
		Str("func", "*logSender.Send").
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("text", msg.Text).
		Msg("mail delivery disabled, message logged")
	return nil
}
