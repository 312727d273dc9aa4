package notification

import (
	"context"
	"crypto/tls"
	"fmt"

	"invoicing/config"
	"invoicing/domain/notification"

	"gopkg.in/gomail.v2"
)

// ReferenceHeader carries the resource id in outgoing e-mails; the mail
// provider's delivery webhook echoes it back.
const ReferenceHeader = "X-Notification-Reference"

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPDriver sends plain text e-mails through an SMTP relay.
type SMTPDriver struct {
	sender mailSender
	from   string
}

func NewSMTPDriver(cfg config.SMTPConfig, from string) *SMTPDriver {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.TLSConfig = &tls.Config{
		ServerName:         cfg.Host,
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // local relays only
	}

	return &SMTPDriver{sender: dialer, from: from}
}

func (d *SMTPDriver) Name() string { return "smtp" }

// Send dials per message; gomail does not accept a context, so ctx is only
// checked before dialing.
func (d *SMTPDriver) Send(ctx context.Context, msg notification.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := d.sender.DialAndSend(d.buildMessage(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (d *SMTPDriver) buildMessage(msg notification.Message) *gomail.Message {
	m := gomail.NewMessage(
		gomail.SetCharset("UTF-8"),
		gomail.SetEncoding(gomail.Base64),
	)
	m.SetHeader("From", d.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader(ReferenceHeader, msg.Reference)
	m.SetBody("text/plain", msg.Body)
	return m
}

var _ notification.Driver = (*SMTPDriver)(nil)
