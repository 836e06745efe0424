package service

import (
	"e_learn_backend/internal/config"
	"e_learn_backend/pkg/logger"
	"fmt"
	"net/smtp"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Mailer 邮件传输接口
type Mailer interface {
	Send(to, subject, body string) error
}

// LogMailer 仅记录日志，开发环境和测试用
type LogMailer struct{}

func (m *LogMailer) Send(to, subject, body string) error {
	logger.Log.Info("--- Sending Email (LogMailer) ---",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}

// SmtpMailer 通过 net/smtp 外发
type SmtpMailer struct {
	Cfg *config.SMTPConfig
}

func (m *SmtpMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.Cfg.Host, m.Cfg.Port)

	msg := "From: " + m.Cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n"

	var auth smtp.Auth
	if m.Cfg.User != "" {
		auth = smtp.PlainAuth("", m.Cfg.User, m.Cfg.Pass, m.Cfg.Host)
	}

	return smtp.SendMail(addr, auth, m.Cfg.From, []string{to}, []byte(msg))
}

type mailTask struct {
	To      string
	Subject string
	Body    string
}

// MailService 有界队列 + 后台worker的异步邮件投递。
// Enqueue 不阻塞请求线程；投递失败重试若干次后记日志丢弃，绝不回传给调用方。
type MailService struct {
	mailer     Mailer
	queue      chan mailTask
	maxRetries int
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

func NewMailService(cfg *config.Config) *MailService {
	var mailer Mailer
	if cfg.SMTP.Enabled {
		mailer = &SmtpMailer{Cfg: &cfg.SMTP}
	} else {
		mailer = &LogMailer{}
	}
	return newMailServiceWithMailer(mailer, cfg.Mail.QueueSize, cfg.Mail.Workers, cfg.Mail.MaxRetries)
}

func newMailServiceWithMailer(mailer Mailer, queueSize, workers, maxRetries int) *MailService {
	s := &MailService{
		mailer:     mailer,
		queue:      make(chan mailTask, queueSize),
		maxRetries: maxRetries,
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// Enqueue 投递任务入队。队列满时丢弃并告警，不阻塞也不报错。
func (s *MailService) Enqueue(to, subject, body string) {
	select {
	case s.queue <- mailTask{To: to, Subject: subject, Body: body}:
	default:
		logger.Log.Warn("mail queue saturated, dropping message",
			zap.String("to", to),
			zap.String("subject", subject))
	}
}

func (s *MailService) worker() {
	defer s.wg.Done()
	for task := range s.queue {
		s.deliver(task)
	}
}

func (s *MailService) deliver(task mailTask) {
	backoff := time.Second
	for attempt := 1; ; attempt++ {
		err := s.mailer.Send(task.To, task.Subject, task.Body)
		if err == nil {
			return
		}
		if attempt >= s.maxRetries {
			logger.Log.Error("mail delivery failed, giving up",
				zap.String("to", task.To),
				zap.String("subject", task.Subject),
				zap.Int("attempts", attempt),
				zap.Error(err))
			return
		}
		logger.Log.Warn("mail delivery failed, will retry",
			zap.String("to", task.To),
			zap.Int("attempt", attempt),
			zap.Error(err))
		time.Sleep(backoff)
		backoff *= 2
	}
}

// Stop 关闭队列并等待在途邮件投递完成
func (s *MailService) Stop() {
	s.closeOnce.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}
