package service

import (
	"e_learn_backend/internal/config"
	"e_learn_backend/internal/repository"
	"e_learn_backend/pkg/logger"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// ReminderService 每日定时给连续多日未登录的活跃用户发提醒邮件
type ReminderService struct {
	UserRepo    *repository.UserRepository
	MailService *MailService
	Cfg         *config.Config
	scheduler   *gocron.Scheduler
}

func NewReminderService(userRepo *repository.UserRepository, mailService *MailService, cfg *config.Config) *ReminderService {
	return &ReminderService{
		UserRepo:    userRepo,
		MailService: mailService,
		Cfg:         cfg,
		scheduler:   gocron.NewScheduler(time.Local),
	}
}

// Start 注册每日任务并异步启动调度器
func (s *ReminderService) Start() error {
	at := fmt.Sprintf("%02d:00", s.Cfg.Reminder.Hour)
	_, err := s.scheduler.Every(1).Day().At(at).Do(s.SweepInactiveUsers)
	if err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

func (s *ReminderService) Stop() {
	s.scheduler.Stop()
}

// SweepInactiveUsers 找出超过 inactive_days 未登录的用户并入队提醒邮件
func (s *ReminderService) SweepInactiveUsers() {
	cutoff := time.Now().AddDate(0, 0, -s.Cfg.Reminder.InactiveDays)
	users, err := s.UserRepo.FindInactiveSince(cutoff)
	if err != nil {
		logger.Log.Error("inactive user sweep failed", zap.Error(err))
		return
	}

	for _, user := range users {
		body := reminderEmailBody(user.Username, s.Cfg.Server.BaseURL)
		s.MailService.Enqueue(user.Email, "We Miss You", body)
	}

	if len(users) > 0 {
		logger.Log.Info("reminder emails enqueued", zap.Int("count", len(users)))
	}
}
