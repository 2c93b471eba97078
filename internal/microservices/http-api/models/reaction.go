package models

import "time"

const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Reaction is a single user's like/dislike vote on a comment.
// At most one row exists per (comment_id, user_id).
type Reaction struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CommentID int64     `json:"comment_id" gorm:"not null;uniqueIndex:idx_reactions_comment_user"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reactions_comment_user"`
	Type      string    `json:"type" gorm:"not null;check:type IN ('like','dislike')"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Reaction) TableName() string {
	return "comment_reactions"
}

// ValidReactionType reports whether t is one of the supported reaction types.
func ValidReactionType(t string) bool {
	return t == ReactionLike || t == ReactionDislike
}
