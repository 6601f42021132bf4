package delivery

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"

	"gigup_backend/internal/logger"
	"gigup_backend/internal/models"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	// ResetURL - страница фронтенда, токен добавляется параметром token
	ResetURL string
}

// Sender - отправка готового письма, в production это *gomail.Dialer
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPDeliverer struct {
	cfg    SMTPConfig
	sender Sender
}

var verificationTemplate = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>GigUp</h2>
    <p>Hi {{.Name}}, your verification code is:</p>
    <div style="font-size: 24px; font-weight: bold; letter-spacing: 2px;">{{.Code}}</div>
    <p>The code is valid for 24 hours.</p>
  </div>
</body>
</html>`))

var resetTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>GigUp password reset</h2>
    <p>Hi {{.Name}}, someone requested a password reset for your account.</p>
    {{if .Link}}<p><a href="{{.Link}}">Reset your password</a></p>{{end}}
    <p>Reset token: <b>{{.Code}}</b></p>
    <p>The token is valid for 1 hour. If you did not request it, ignore this email.</p>
  </div>
</body>
</html>`))

func NewSMTPDeliverer(cfg SMTPConfig) *SMTPDeliverer {
	return &SMTPDeliverer{
		cfg:    cfg,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// NewSMTPDelivererWithSender - для тестов и альтернативных транспортов
func NewSMTPDelivererWithSender(cfg SMTPConfig, sender Sender) *SMTPDeliverer {
	return &SMTPDeliverer{cfg: cfg, sender: sender}
}

func (d *SMTPDeliverer) Deliver(ctx context.Context, user *models.User, code string, t models.VerificationType) error {
	if user.Email == "" {
		return fmt.Errorf("user %s has no email", user.ID)
	}

	msg, err := d.buildMessage(user, code, t)
	if err != nil {
		return err
	}

	if err := d.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	logger.CtxInfo(ctx, "Verification email sent", "user_id", user.ID, "type", string(t))
	return nil
}

func (d *SMTPDeliverer) buildMessage(user *models.User, code string, t models.VerificationType) (*gomail.Message, error) {
	data := struct {
		Name string
		Code string
		Link string
	}{Name: user.Name, Code: code}

	subject := "[GigUp] Verify your email"
	tpl := verificationTemplate
	if t == models.VerificationTypePasswordReset {
		subject = "[GigUp] Password reset"
		tpl = resetTemplate
		if d.cfg.ResetURL != "" {
			data.Link = d.cfg.ResetURL + "?token=" + url.QueryEscape(code)
		}
	}

	var body bytes.Buffer
	if err := tpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("render email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", d.cfg.FromEmail, d.cfg.FromName)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())
	return m, nil
}
