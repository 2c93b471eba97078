package repository

import (
	"manhwahub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// ReactionCounts is the aggregate like/dislike tally for one comment.
type ReactionCounts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

type ReactionRepository interface {
	GetByCommentAndUser(commentID int64, userID string) (*models.Reaction, error)
	Create(reaction *models.Reaction) error
	Update(reaction *models.Reaction) error
	Delete(commentID int64, userID string) error
	CountsFor(commentID int64) (ReactionCounts, error)
	CountsForComments(commentIDs []int64) (map[int64]ReactionCounts, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// GetByCommentAndUser retrieves a user's reaction on a specific comment
func (r *reactionRepository) GetByCommentAndUser(commentID int64, userID string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// Create a new reaction
func (r *reactionRepository) Create(reaction *models.Reaction) error {
	return r.db.Create(reaction).Error
}

// Update an existing reaction (like <-> dislike switch)
func (r *reactionRepository) Update(reaction *models.Reaction) error {
	return r.db.Save(reaction).Error
}

// Delete removes a user's reaction from a comment (toggle off)
func (r *reactionRepository) Delete(commentID int64, userID string) error {
	result := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.Reaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountsFor tallies likes and dislikes for a single comment
func (r *reactionRepository) CountsFor(commentID int64) (ReactionCounts, error) {
	counts, err := r.CountsForComments([]int64{commentID})
	if err != nil {
		return ReactionCounts{}, err
	}
	return counts[commentID], nil
}

// CountsForComments tallies likes and dislikes for a set of comments with a
// single GROUP BY query. Comments with no reactions are absent from the map.
func (r *reactionRepository) CountsForComments(commentIDs []int64) (map[int64]ReactionCounts, error) {
	counts := make(map[int64]ReactionCounts, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CommentID int64
		Type      string
		Total     int64
	}

	err := r.db.Model(&models.Reaction{}).
		Select("comment_id, type, COUNT(*) as total").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		c := counts[row.CommentID]
		switch row.Type {
		case models.ReactionLike:
			c.Likes = row.Total
		case models.ReactionDislike:
			c.Dislikes = row.Total
		}
		counts[row.CommentID] = c
	}
	return counts, nil
}
