package pkg

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件账号
	Password string // SMTP 授权码
	From     string // 显示的发件人
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password).DialAndSend(m)
}

// EmailCodeHTML 验证码邮件正文
func EmailCodeHTML(action, code string, ttl time.Duration) string {
	return fmt.Sprintf(
		`<p>您好，</p><p>您正在 Group Hub 进行 <b>%s</b> 操作，验证码：<b style="font-size:18px;">%s</b></p><p>验证码 %d 分钟内有效，请勿转发他人。若非本人操作请忽略本邮件。</p>`,
		action, code, int(ttl.Minutes()))
}
