package mail

import (
	"fmt"
	"time"

	"ExamAssistant/internal/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender отправляет захваченное содержимое на почту через SMTP с SSL.
type Sender struct {
	cfg    config.EmailConfig
	logger *zap.SugaredLogger
}

func NewSender(cfg config.EmailConfig, logger *zap.SugaredLogger) *Sender {
	return &Sender{cfg: cfg, logger: logger}
}

// Enabled включена ли отправка почты.
func (s *Sender) Enabled() bool { return s.cfg.Enabled }

// ValidateConfig проверяет, что все поля для отправки заполнены.
func (s *Sender) ValidateConfig() error {
	if s.cfg.SMTPServer == "" || s.cfg.SMTPPort == 0 {
		return fmt.Errorf("smtp server or port not configured")
	}
	if s.cfg.SenderEmail == "" || s.cfg.SenderPassword == "" {
		return fmt.Errorf("sender email or password not configured")
	}
	if s.cfg.ReceiverEmail == "" {
		return fmt.Errorf("receiver email not configured")
	}
	return nil
}

// SendScreenshot письмо со скриншотом во вложении и результатом анализа в теле.
func (s *Sender) SendScreenshot(imagePath, analysis string, capturedAt time.Time) error {
	body := "Скриншот экрана от " + capturedAt.Format("2006-01-02 15:04:05") + "\n"
	if analysis != "" {
		body += "\nРезультат анализа:\n" + analysis + "\n"
	}

	m := s.newMessage("Скриншот экрана - "+capturedAt.Format("2006-01-02 15:04:05"), body)
	m.Attach(imagePath)
	return s.send(m)
}

// SendClipboard письмо с текстом буфера обмена и результатом анализа.
func (s *Sender) SendClipboard(text, analysis string, capturedAt time.Time) error {
	body := "Содержимое буфера обмена от " + capturedAt.Format("2006-01-02 15:04:05") + ":\n\n" + text + "\n"
	if analysis != "" {
		body += "\nРезультат анализа:\n" + analysis + "\n"
	}

	m := s.newMessage("Буфер обмена - "+capturedAt.Format("2006-01-02 15:04:05"), body)
	return s.send(m)
}

// SendTest проверочное письмо на старте, чтобы сразу увидеть проблемы с SMTP.
func (s *Sender) SendTest() error {
	m := s.newMessage("Проверка отправки почты", "Если вы читаете это письмо, отправка почты настроена корректно.")
	return s.send(m)
}

func (s *Sender) newMessage(subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SenderEmail)
	m.SetHeader("To", s.cfg.ReceiverEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}

func (s *Sender) send(m *gomail.Message) error {
	if err := s.ValidateConfig(); err != nil {
		return err
	}
	d := gomail.NewDialer(s.cfg.SMTPServer, s.cfg.SMTPPort, s.cfg.SenderEmail, s.cfg.SenderPassword)
	d.SSL = true
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	s.logger.Infow("Email sent", "to", s.cfg.ReceiverEmail)
	return nil
}
