package dto

import (
	"time"

	"manhwahub/internal/microservices/http-api/models"
	"manhwahub/internal/microservices/http-api/repository"
)

// CreateCommentDTO for creating a comment or a reply
type CreateCommentDTO struct {
	Content  string `json:"content" binding:"required,min=1,max=5000"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// UpdateCommentDTO for updating a comment
type UpdateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// ReactDTO for reacting to a comment
type ReactDTO struct {
	Type string `json:"type" binding:"required,oneof=like dislike"`
}

// ThreadResponse is a comment annotated with live reaction counts and its
// nested replies.
type ThreadResponse struct {
	ID        int64             `json:"id"`
	ManhwaID  int64             `json:"manhwa_id"`
	ChapterID int64             `json:"chapter_id"`
	UserID    string            `json:"user_id"`
	Username  string            `json:"username"`
	Content   string            `json:"content"`
	ParentID  *int64            `json:"parent_id,omitempty"`
	Likes     int64             `json:"likes"`
	Dislikes  int64             `json:"dislikes"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt *time.Time        `json:"updated_at,omitempty"`
	Replies   []*ThreadResponse `json:"replies"`
}

// FromModelToThreadResponse converts a Comment model plus its reaction
// counts into a ThreadResponse node with an empty reply list.
func FromModelToThreadResponse(comment *models.Comment, counts repository.ReactionCounts) *ThreadResponse {
	return &ThreadResponse{
		ID:        comment.ID,
		ManhwaID:  comment.ManhwaID,
		ChapterID: comment.ChapterID,
		UserID:    comment.UserID,
		Username:  comment.Username,
		Content:   comment.Content,
		ParentID:  comment.ParentID,
		Likes:     counts.Likes,
		Dislikes:  counts.Dislikes,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Replies:   []*ThreadResponse{},
	}
}

// PaginatedCommentResponse for returning a user's comment history
type PaginatedCommentResponse struct {
	Data       []models.Comment `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedCommentResponse creates a paginated comment response
func NewPaginatedCommentResponse(data []models.Comment, total, page, pageSize int) *PaginatedCommentResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedCommentResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
