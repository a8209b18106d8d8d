package email

import (
	"fmt"

	"servihub_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{
		dialer: gomail.NewDialer(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUsername,
			cfg.Email.SMTPPassword,
		),
		fromEmail: cfg.Email.FromEmail,
		fromName:  cfg.Email.FromName,
	}
}

func (p *SMTPProvider) SendBanNotice(to, reason string) error {
	body := "Sua conta foi suspensa pela administração."
	if reason != "" {
		body += "\n\nMotivo: " + reason
	}
	return p.send(to, "Conta suspensa", body)
}

func (p *SMTPProvider) SendVerificationDecision(to string, approved bool, notes string) error {
	subject := "Verificação de perfil aprovada"
	body := "Parabéns! Seu perfil foi verificado e agora exibe o selo de confiança."
	if !approved {
		subject = "Verificação de perfil recusada"
		body = "Sua solicitação de verificação foi recusada."
		if notes != "" {
			body += "\n\nObservações: " + notes
		}
	}
	return p.send(to, subject, body)
}

func (p *SMTPProvider) Close() error {
	// gomail открывает соединение на каждую отправку
	return nil
}

func (p *SMTPProvider) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.fromEmail, p.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
