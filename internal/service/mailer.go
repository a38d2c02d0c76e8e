package service

import (
	"fmt"
	"net/smtp"

	"github.com/user/mediashelf/internal/config"
)

// Mailer 邮件服务（密码重置验证码）
type Mailer struct {
	config *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{config: cfg}
}

// SendResetCode 发送密码重置验证码，有效期三分钟
func (s *Mailer) SendResetCode(to, code string) error {
	if s.config.EmailHost == "" || s.config.EmailUser == "" {
		return fmt.Errorf("邮件服务未配置")
	}

	subject := fmt.Sprintf("%s 密码重置验证码", s.config.SiteName)
	body := fmt.Sprintf("您的密码重置验证码是：%s\r\n\r\n验证码三分钟内有效，请勿泄露给他人。", code)
	msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		to, s.config.EmailUser, subject, body))

	addr := s.config.EmailHost + ":" + s.config.EmailPort
	auth := smtp.PlainAuth("", s.config.EmailUser, s.config.EmailPass, s.config.EmailHost)
	return smtp.SendMail(addr, auth, s.config.EmailUser, []string{to}, msg)
}
