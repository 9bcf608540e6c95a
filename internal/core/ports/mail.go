package ports

import "context"

// MailJob is a single outbound message waiting for delivery.
type MailJob struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer sends one message over the underlying transport. Implementations
// must acquire the transport connection per call and release it on success
// and failure alike.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// MailQueue accepts messages for asynchronous, best-effort delivery.
type MailQueue interface {
	Enqueue(job MailJob)
}
