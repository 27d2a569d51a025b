package externals

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

type Mailer interface {
	SendMail(ctx context.Context, to string, subject string, htmlBody string) error
}

type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(host string, port int, username string, password string, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
	}
}

func (mailer *SMTPMailer) SendMail(ctx context.Context, to string, subject string, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: Escapenote <%s>\r\n", mailer.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	err := smtp.SendMail(mailer.addr, mailer.auth, mailer.from, []string{to}, []byte(msg.String()))
	if err != nil {
		return fmt.Errorf("error sending mail to %s: %w", to, err)
	}
	return nil
}

func VerificationCodeMail(code string) (string, string) {
	return "Your Escapenote verification code",
		fmt.Sprintf("Your Escapenote verification code is <strong>%s</strong>.", code)
}

func TemporaryPasswordMail(password string) (string, string) {
	return "Your Escapenote temporary password",
		fmt.Sprintf("Your Escapenote temporary password is <strong>%s</strong>. Change it after logging in.", password)
}
