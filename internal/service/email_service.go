package service

import (
	"errors"

	"Group_Hub/internal/pkg"
	"Group_Hub/internal/repository/redis"
)

type EmailService struct {
	emailCfg pkg.SMTPConfig
	rds      *redis.EmailRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{emailCfg: cfg, rds: &redis.EmailRepository{}}
}

// SendCode 发送验证码。先写 pending 键，邮件发出后再转 confirmed，
// 避免"邮件没发出去但验证码已生效"的窗口。
func (s *EmailService) SendCode(scope, email string) error {
	if scope != redis.ScopeRegister && scope != redis.ScopeReset {
		return errors.New("invalid scope")
	}

	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err = s.rds.SetCodePending(scope, email, code); err != nil {
		return err
	}

	subject := "注册验证码"
	title := "注册验证"
	if scope == redis.ScopeReset {
		subject = "密码重置验证码"
		title = "重置密码"
	}
	html := pkg.EmailCodeHTML(title, code, redis.DefaultEmailCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, subject, html); err != nil {
		return err
	}

	if err = s.rds.ConfirmCode(scope, email); err != nil {
		// 确认失败时清掉 pending 键
		_ = s.rds.DeleteCodePending(scope, email)
		return err
	}
	return nil
}

// VerifyCode 校验验证码并一次性删除
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.rds.GetEmailCode(scope, email)
	if err != nil {
		// 不存在或已过期
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err = s.rds.DeleteEmailCode(scope, email); err != nil {
		return false, err
	}
	return true, nil
}
