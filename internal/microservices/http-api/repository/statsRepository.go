package repository

import (
	"manhwahub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type UserStatsRepository interface {
	GetByUser(userID string) (*models.UserStats, error)
	Create(stats *models.UserStats) error
	Save(stats *models.UserStats) error
	GetProgress(userID string, manhwaID, chapterID int64) (*models.ReadingProgress, error)
	CreateProgress(progress *models.ReadingProgress) error
	SaveProgress(progress *models.ReadingProgress) error
	ListProgress(userID string, manhwaID int64) ([]models.ReadingProgress, error)
}

type userStatsRepository struct {
	db *gorm.DB
}

func NewUserStatsRepository(db *gorm.DB) UserStatsRepository {
	return &userStatsRepository{db: db}
}

func (r *userStatsRepository) GetByUser(userID string) (*models.UserStats, error) {
	var stats models.UserStats
	if err := r.db.First(&stats, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *userStatsRepository) Create(stats *models.UserStats) error {
	return r.db.Create(stats).Error
}

func (r *userStatsRepository) Save(stats *models.UserStats) error {
	return r.db.Save(stats).Error
}

func (r *userStatsRepository) GetProgress(userID string, manhwaID, chapterID int64) (*models.ReadingProgress, error) {
	var progress models.ReadingProgress
	err := r.db.Where("user_id = ? AND manhwa_id = ? AND chapter_id = ?", userID, manhwaID, chapterID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *userStatsRepository) CreateProgress(progress *models.ReadingProgress) error {
	return r.db.Create(progress).Error
}

func (r *userStatsRepository) SaveProgress(progress *models.ReadingProgress) error {
	return r.db.Save(progress).Error
}

// ListProgress retrieves a user's reading progress for a manhwa, most
// recently read chapters first
func (r *userStatsRepository) ListProgress(userID string, manhwaID int64) ([]models.ReadingProgress, error) {
	var progress []models.ReadingProgress
	err := r.db.Where("user_id = ? AND manhwa_id = ?", userID, manhwaID).
		Order("chapter_id DESC").
		Find(&progress).Error
	return progress, err
}
