package model

import (
	"time"

	"github.com/lib/pq"
)

// Comment 番剧评论
type Comment struct {
	ID        int       `json:"id" db:"id"`
	AuthorID  int       `json:"authorId" db:"author_id" gorm:"index"`
	AnimeID   int       `json:"animeId" db:"anime_id" gorm:"index"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"index"`
	Author    *User     `json:"author,omitempty"` // 关联查询时填充
	Anime     *Anime    `json:"anime,omitempty"`
}

// History 观看历史
// OwnerID 是持有者标识：已登录用户为其十进制 ID，游客为 UUID。
// 同一持有者对同一番剧只有一条记录，剧集号按集合语义存放。
type History struct {
	ID             int           `json:"id" db:"id"`
	OwnerID        string        `json:"userId" db:"owner_id" gorm:"uniqueIndex:idx_history_owner_anime"`
	AnimeID        int           `json:"animeId" db:"anime_id" gorm:"uniqueIndex:idx_history_owner_anime"`
	Episodes       pq.Int64Array `json:"episodes" db:"episodes" gorm:"type:integer[]"`
	WatchedMinutes int           `json:"watchedMinutes" db:"watched_minutes"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`
	Anime          *Anime        `json:"anime,omitempty"`
}

// WatchList 追番列表，每个 (用户, 番剧) 只允许一条
type WatchList struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"userId" db:"user_id" gorm:"uniqueIndex:idx_watchlist_user_anime"`
	AnimeID   int       `json:"animeId" db:"anime_id" gorm:"uniqueIndex:idx_watchlist_user_anime"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Anime     *Anime    `json:"anime,omitempty"`
}
