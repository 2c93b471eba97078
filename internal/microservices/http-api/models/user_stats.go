package models

import "time"

// UserStats holds the per-user activity counters behind the profile page
// and the leaderboard.
type UserStats struct {
	UserID           string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	CommentsCount    int64     `gorm:"default:0;not null" json:"comments_count"`
	LikesGiven       int64     `gorm:"default:0;not null" json:"likes_given"`
	LikesReceived    int64     `gorm:"default:0;not null" json:"likes_received"`
	ChaptersRead     int64     `gorm:"default:0;not null" json:"chapters_read"`
	ReadingStreak    int64     `gorm:"default:0;not null" json:"reading_streak"`
	TotalReadingTime int64     `gorm:"default:0;not null" json:"total_reading_time"` // minutes
	LastActiveDate   time.Time `json:"last_active_date"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserStats) TableName() string {
	return "user_stats"
}

// ReadingProgress records that a user read a chapter of a manhwa.
type ReadingProgress struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_chapter" json:"user_id"`
	ManhwaID   int64     `gorm:"not null;uniqueIndex:idx_progress_user_chapter" json:"manhwa_id"`
	ChapterID  int64     `gorm:"not null;uniqueIndex:idx_progress_user_chapter" json:"chapter_id"`
	Progress   int       `gorm:"default:100;not null" json:"progress"` // percent
	LastReadAt time.Time `gorm:"not null" json:"last_read_at"`
}

func (ReadingProgress) TableName() string {
	return "reading_progress"
}
