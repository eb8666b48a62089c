package mailer

import (
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"ssb-connect-backend/config"
)

// Send отправляет письмо. Ошибка только логируется: уведомления
// не должны влиять на исход основной операции.
func Send(to, subject, body string) {
	cfg := config.App
	if cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
		config.Logger.Debug("mail not configured, skipping", zap.String("to", to))
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.MailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		config.Logger.Error("failed to send mail",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return
	}

	config.Logger.Info("mail sent", zap.String("to", to), zap.String("subject", subject))
}
