package service

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"e_learn_backend/internal/config"
	"e_learn_backend/internal/model"
	appLogger "e_learn_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	appLogger.Log = zap.NewNop()
	os.Exit(m.Run())
}

var testDBSeq uint64

// newTestDB 每个测试一个独立的内存库，TranslateError 与生产配置一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddUint64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// sqlite 内存库串行化写入，避免并发测试里出现 SQLITE_BUSY
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Image{},
		&model.Content{},
		&model.UserContent{},
		&model.ActivationToken{},
		&model.Comment{},
		&model.VocabularyEntry{},
		&model.Question{},
		&model.Option{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:    "8080",
			Mode:    "debug",
			BaseURL: "http://localhost:8080",
		},
		JWT: config.JWTConfig{
			Secret:     "test-secret-test-secret-test-secret",
			ExpireTime: time.Hour,
		},
		Mail: config.MailConfig{
			QueueSize:  16,
			Workers:    1,
			MaxRetries: 2,
		},
		Activation: config.ActivationConfig{
			TokenTTLMinutes: 10,
		},
		Storage: config.StorageConfig{
			Type:      "local",
			LocalPath: "./testdata_uploads",
		},
	}
}
