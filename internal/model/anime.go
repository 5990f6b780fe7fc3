package model

import (
	"time"

	"github.com/lib/pq"
)

// 番剧类型
const (
	TypeSeries = "Series"
	TypeOVA    = "OVA"
)

// Anime 番剧模型
type Anime struct {
	ID           int            `json:"id" db:"id"`
	Title        string         `json:"title" db:"title" gorm:"unique"`
	Type         string         `json:"type" db:"type"`
	ImageURL     string         `json:"imageUrl" db:"image_url"`
	Description  string         `json:"description" db:"description"`
	ReleaseDate  time.Time      `json:"releaseDate" db:"release_date" gorm:"type:date;index"`
	EpisodeCount int            `json:"episodeCount" db:"episode_count"`
	Rating       float64        `json:"rating" db:"rating" gorm:"index"`
	Genres       pq.StringArray `json:"genres" db:"genres" gorm:"type:text[]"`
	Episodes     []Episode      `json:"episodes,omitempty"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"-" db:"updated_at"`
}

// Episode 剧集模型
type Episode struct {
	ID            int       `json:"id" db:"id"`
	AnimeID       int       `json:"animeId" db:"anime_id" gorm:"index"`
	Title         string    `json:"title" db:"title"`
	VideoURL      string    `json:"videoUrl" db:"video_url"`
	EpisodeNumber int       `json:"episodeNumber" db:"episode_number"`
	CreatedAt     time.Time `json:"-" db:"created_at"`
}
