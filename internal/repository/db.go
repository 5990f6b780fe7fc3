package repository

import (
	"fmt"

	"github.com/user/animew/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接并自动建表
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// 自动迁移，唯一索引（用户邮箱/用户名、番剧标题、历史和追番的组合键）由模型标签声明
	if err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Anime{},
		&model.Episode{},
		&model.Comment{},
		&model.History{},
		&model.WatchList{},
	); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// Repositories 仓库集合
type Repositories struct {
	DB        *gorm.DB
	User      *UserRepository
	Profile   *ProfileRepository
	Anime     *AnimeRepository
	Episode   *EpisodeRepository
	Comment   *CommentRepository
	History   *HistoryRepository
	WatchList *WatchListRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:        db,
		User:      NewUserRepository(db),
		Profile:   NewProfileRepository(db),
		Anime:     NewAnimeRepository(db),
		Episode:   NewEpisodeRepository(db),
		Comment:   NewCommentRepository(db),
		History:   NewHistoryRepository(db),
		WatchList: NewWatchListRepository(db),
	}
}
