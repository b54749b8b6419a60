// Package mail renders and delivers account emails: verification, password
// reset and welcome messages.
//
// Delivery is layered. A [Sender] talks to the transport (SMTP, or the log in
// development); [NewRetryingSender] wraps it with exponential backoff for
// transient failures; the [Mailer] renders templates and hands each message
// to a bounded worker pool so requests never wait on SMTP.
package mail
