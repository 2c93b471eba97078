package models

import "time"

const (
	NotificationCommentReply = "comment_reply"
	NotificationLike         = "like"
)

type Notification struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Type         string    `gorm:"not null" json:"type"` // comment_reply, like
	FromUserID   string    `gorm:"type:uuid;not null" json:"from_user_id"`
	FromUsername string    `gorm:"not null" json:"from_username"`
	CommentID    int64     `json:"comment_id"`
	ManhwaID     int64     `json:"manhwa_id"`
	ChapterID    int64     `json:"chapter_id"`
	Message      string    `json:"message"`
	Read         bool      `gorm:"default:false" json:"read"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
