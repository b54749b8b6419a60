package mail

//go:generate mockgen -source=interfaces.go -destination=../mock/mail_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-vidshare/internal/workers"
	"github.com/MKhiriev/go-vidshare/models"
)

// Sender delivers one message synchronously.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer queues account emails. A returned error means the message was not
// queued; delivery failures are only logged.
type Mailer interface {
	SendVerification(ctx context.Context, user models.User, token string) error
	SendPasswordReset(ctx context.Context, user models.User, token string) error
	SendWelcome(ctx context.Context, user models.User) error
}

// JobQueue accepts background jobs. Implemented by *workers.Pool.
type JobQueue interface {
	Submit(job workers.Job) error
}
