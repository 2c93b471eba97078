package repository

import (
	"manhwahub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(commentID int64) error
	GetByID(commentID int64) (*models.Comment, error)
	ListByTarget(manhwaID int64, chapterID *int64) ([]models.Comment, error)
	ListByUser(userID string, page, pageSize int) ([]models.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Update an existing comment
func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete removes a comment, its direct replies and every reaction pointing
// at any of them, in one transaction. Only direct children are cascaded;
// replies-of-replies become orphans and are dropped at read time.
func (r *commentRepository) Delete(commentID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var replyIDs []int64
		if err := tx.Model(&models.Comment{}).Where("parent_id = ?", commentID).Pluck("id", &replyIDs).Error; err != nil {
			return err
		}

		targets := append(replyIDs, commentID)
		if err := tx.Where("comment_id IN ?", targets).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}

		if err := tx.Where("parent_id = ?", commentID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Comment{}, commentID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(commentID int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, "id = ?", commentID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByTarget retrieves all comments for a manhwa, optionally narrowed to
// one chapter. Returned flat and newest first; tree assembly happens in the
// service layer.
func (r *commentRepository) ListByTarget(manhwaID int64, chapterID *int64) ([]models.Comment, error) {
	var comments []models.Comment

	query := r.db.Where("manhwa_id = ?", manhwaID)
	if chapterID != nil {
		query = query.Where("chapter_id = ?", *chapterID)
	}

	err := query.Order("created_at DESC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListByUser retrieves all comments by a specific user with pagination
func (r *commentRepository) ListByUser(userID string, page, pageSize int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	if err := r.db.Model(&models.Comment{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error

	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
