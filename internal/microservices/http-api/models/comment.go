package models

import "time"

type Comment struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ManhwaID  int64  `json:"manhwa_id" gorm:"not null;index:idx_comments_target"`
	ChapterID int64  `json:"chapter_id" gorm:"not null;index:idx_comments_target"`
	UserID    string `json:"user_id" gorm:"type:uuid;not null;index"`
	// Username is the author identity snapshot taken at creation time.
	// It is never re-resolved against the users table.
	Username  string     `json:"username" gorm:"not null"`
	Content   string     `json:"content" gorm:"not null;type:text"`
	ParentID  *int64     `json:"parent_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	// UpdatedAt stays NULL until the first edit; clients render an
	// "edited" marker from its presence. autoUpdateTime is disabled so
	// gorm's UpdatedAt convention cannot fill it during Create.
	UpdatedAt *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime:false"`
}

func (Comment) TableName() string {
	return "comments"
}
