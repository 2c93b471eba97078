package service

import (
	"context"
	"errors"
	"time"

	"manhwahub/internal/microservices/http-api/models"
	"manhwahub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type UserStatsService interface {
	GetStats(userID string) (*models.UserStats, error)
	IncrementComments(userID string) error
	IncrementLikesGiven(userID string) error
	IncrementLikesReceived(userID string) error
	MarkChapterRead(userID string, manhwaID, chapterID int64) error
	AddReadingTime(userID string, minutes int64) error
	GetReadingProgress(userID string, manhwaID int64) ([]models.ReadingProgress, error)
	Leaderboard(ctx context.Context, metric string, limit int) ([]repository.LeaderboardEntry, error)
}

type userStatsService struct {
	statsRepo       repository.UserStatsRepository
	leaderboardRepo repository.LeaderboardRepository
}

func NewUserStatsService(statsRepo repository.UserStatsRepository, leaderboardRepo repository.LeaderboardRepository) UserStatsService {
	return &userStatsService{
		statsRepo:       statsRepo,
		leaderboardRepo: leaderboardRepo,
	}
}

// GetStats returns the user's stats row, creating a zeroed one on first use.
func (s *userStatsService) GetStats(userID string) (*models.UserStats, error) {
	stats, err := s.statsRepo.GetByUser(userID)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	stats = &models.UserStats{
		UserID:         userID,
		LastActiveDate: time.Now(),
	}
	if err := s.statsRepo.Create(stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *userStatsService) IncrementComments(userID string) error {
	stats, err := s.GetStats(userID)
	if err != nil {
		return err
	}
	stats.CommentsCount++
	stats.LastActiveDate = time.Now()
	return s.statsRepo.Save(stats)
}

func (s *userStatsService) IncrementLikesGiven(userID string) error {
	stats, err := s.GetStats(userID)
	if err != nil {
		return err
	}
	stats.LikesGiven++
	stats.LastActiveDate = time.Now()
	return s.statsRepo.Save(stats)
}

func (s *userStatsService) IncrementLikesReceived(userID string) error {
	stats, err := s.GetStats(userID)
	if err != nil {
		return err
	}
	stats.LikesReceived++
	return s.statsRepo.Save(stats)
}

// MarkChapterRead records a finished chapter. Re-reading a chapter only
// refreshes its timestamp; chapters_read and the streak move on first read.
func (s *userStatsService) MarkChapterRead(userID string, manhwaID, chapterID int64) error {
	stats, err := s.GetStats(userID)
	if err != nil {
		return err
	}

	existing, err := s.statsRepo.GetProgress(userID, manhwaID, chapterID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now()
	if existing != nil {
		existing.LastReadAt = now
		if err := s.statsRepo.SaveProgress(existing); err != nil {
			return err
		}
	} else {
		progress := &models.ReadingProgress{
			UserID:     userID,
			ManhwaID:   manhwaID,
			ChapterID:  chapterID,
			Progress:   100,
			LastReadAt: now,
		}
		if err := s.statsRepo.CreateProgress(progress); err != nil {
			return err
		}
		stats.ChaptersRead++
		stats.ReadingStreak = nextStreak(stats.ReadingStreak, stats.LastActiveDate, now)
	}

	stats.LastActiveDate = now
	return s.statsRepo.Save(stats)
}

// nextStreak advances the daily reading streak: same day leaves it alone,
// the following day extends it, any gap resets it to 1.
func nextStreak(streak int64, lastActive, now time.Time) int64 {
	daysDiff := daysBetween(lastActive, now)
	switch {
	case daysDiff == 0:
		if streak == 0 {
			return 1
		}
		return streak
	case daysDiff == 1:
		return streak + 1
	default:
		return 1
	}
}

func daysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(toDay.Sub(fromDay).Hours() / 24)
}

func (s *userStatsService) AddReadingTime(userID string, minutes int64) error {
	stats, err := s.GetStats(userID)
	if err != nil {
		return err
	}
	stats.TotalReadingTime += minutes
	stats.LastActiveDate = time.Now()
	return s.statsRepo.Save(stats)
}

func (s *userStatsService) GetReadingProgress(userID string, manhwaID int64) ([]models.ReadingProgress, error) {
	return s.statsRepo.ListProgress(userID, manhwaID)
}

func (s *userStatsService) Leaderboard(ctx context.Context, metric string, limit int) ([]repository.LeaderboardEntry, error) {
	return s.leaderboardRepo.Top(ctx, metric, limit)
}
