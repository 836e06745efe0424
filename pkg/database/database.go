package database

import (
	"e_learn_backend/internal/config"
	"e_learn_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true, // 唯一索引冲突统一映射为 gorm.ErrDuplicatedKey
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = Migrate(db)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedContents(db)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
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
}

// seedContents 内容目录为空时插入示例内容，方便首次启动演示
func seedContents(db *gorm.DB) {
	var count int64
	db.Model(&model.Content{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Content{
		{Title: "The Lost Umbrella", Level: model.LevelBeginner, ContentType: model.ContentStory,
			Body: "Tom left his umbrella on the bus..."},
		{Title: "Present Simple", Level: model.LevelBeginner, ContentType: model.ContentGrammar,
			Body: "We use the present simple for habits and facts..."},
		{Title: "A Trip to the Mountains", Level: model.LevelElementary, ContentType: model.ContentStory,
			Body: "Last summer Anna and her brother packed their bags..."},
		{Title: "Past Continuous", Level: model.LevelIntermediate, ContentType: model.ContentGrammar,
			Body: "The past continuous describes an action in progress..."},
	}
	for _, c := range defaults {
		db.Create(&c)
	}
}
