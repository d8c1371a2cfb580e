package email

import (
	"context"
	"fmt"
	"net/smtp"

	"viewtech-backend/internal/config"
)

// ContactResponseData is everything needed to email an admin's reply back to
// the person who submitted the contact form.
type ContactResponseData struct {
	ToEmail      string
	ToName       string
	Subject      string
	ResponseText string
}

type EmailService interface {
	SendContactResponse(ctx context.Context, data ContactResponseData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(cfg config.SMTPConfig) EmailService {
	return &smtpEmailService{
		smtpAddr: cfg.Host + ":" + cfg.Port,
		smtpFrom: cfg.From,
	}
}

func (s *smtpEmailService) SendContactResponse(ctx context.Context, data ContactResponseData) error {
	subject := "Re: " + data.Subject

	body := fmt.Sprintf(`Hello %s,

Thank you for contacting ViewTech. Regarding your inquiry "%s":

%s

Best regards,
The ViewTech Team`, data.ToName, data.Subject, data.ResponseText)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, data.ToEmail, subject, body))

	return smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{data.ToEmail}, msg)
}
