package service

import (
	"testing"
	"time"

	"manhwahub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newTestStatsService() (UserStatsService, *MockUserStatsRepository, *MockLeaderboardRepository) {
	statsRepo := new(MockUserStatsRepository)
	leaderboardRepo := new(MockLeaderboardRepository)
	return NewUserStatsService(statsRepo, leaderboardRepo), statsRepo, leaderboardRepo
}

func TestNextStreak(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 10, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		streak     int64
		lastActive time.Time
		now        time.Time
		want       int64
	}{
		{"SameDayUnchanged", 4, day(10), day(10), 4},
		{"SameDayLaterHourUnchanged", 4, day(10), day(10).Add(8 * time.Hour), 4},
		{"FirstEverReadStartsAtOne", 0, day(10), day(10), 1},
		{"NextDayExtends", 4, day(10), day(11), 5},
		{"NextDayAcrossMidnight", 4, day(10).Add(13 * time.Hour), day(11).Add(-9 * time.Hour), 5},
		{"TwoDayGapResets", 4, day(10), day(12), 1},
		{"LongGapResets", 30, day(1), day(25), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextStreak(tt.streak, tt.lastActive, tt.now))
		})
	}
}

func TestGetStats_CreatesRowOnFirstUse(t *testing.T) {
	svc, statsRepo, _ := newTestStatsService()

	statsRepo.On("GetByUser", "user-1").Return(nil, gorm.ErrRecordNotFound)
	statsRepo.On("Create", mock.MatchedBy(func(s *models.UserStats) bool {
		return s.UserID == "user-1" && s.CommentsCount == 0
	})).Return(nil)

	stats, err := svc.GetStats("user-1")

	assert.NoError(t, err)
	assert.Equal(t, "user-1", stats.UserID)
	statsRepo.AssertExpectations(t)
}

func TestIncrementComments(t *testing.T) {
	svc, statsRepo, _ := newTestStatsService()

	existing := &models.UserStats{UserID: "user-1", CommentsCount: 2}
	statsRepo.On("GetByUser", "user-1").Return(existing, nil)
	statsRepo.On("Save", mock.MatchedBy(func(s *models.UserStats) bool {
		return s.CommentsCount == 3
	})).Return(nil)

	err := svc.IncrementComments("user-1")

	assert.NoError(t, err)
	statsRepo.AssertExpectations(t)
}

func TestMarkChapterRead_FirstReadMovesCountersAndStreak(t *testing.T) {
	svc, statsRepo, _ := newTestStatsService()

	yesterday := time.Now().Add(-24 * time.Hour)
	existing := &models.UserStats{UserID: "user-1", ChaptersRead: 10, ReadingStreak: 3, LastActiveDate: yesterday}
	statsRepo.On("GetByUser", "user-1").Return(existing, nil)
	statsRepo.On("GetProgress", "user-1", int64(7), int64(3)).Return(nil, gorm.ErrRecordNotFound)
	statsRepo.On("CreateProgress", mock.MatchedBy(func(p *models.ReadingProgress) bool {
		return p.UserID == "user-1" && p.ManhwaID == 7 && p.ChapterID == 3
	})).Return(nil)
	statsRepo.On("Save", mock.MatchedBy(func(s *models.UserStats) bool {
		return s.ChaptersRead == 11 && s.ReadingStreak == 4
	})).Return(nil)

	err := svc.MarkChapterRead("user-1", 7, 3)

	assert.NoError(t, err)
	statsRepo.AssertExpectations(t)
}

func TestMarkChapterRead_RereadOnlyRefreshesTimestamp(t *testing.T) {
	svc, statsRepo, _ := newTestStatsService()

	existing := &models.UserStats{UserID: "user-1", ChaptersRead: 10, ReadingStreak: 3, LastActiveDate: time.Now()}
	progress := &models.ReadingProgress{ID: 1, UserID: "user-1", ManhwaID: 7, ChapterID: 3, LastReadAt: time.Now().Add(-time.Hour)}
	statsRepo.On("GetByUser", "user-1").Return(existing, nil)
	statsRepo.On("GetProgress", "user-1", int64(7), int64(3)).Return(progress, nil)
	statsRepo.On("SaveProgress", mock.AnythingOfType("*models.ReadingProgress")).Return(nil)
	statsRepo.On("Save", mock.MatchedBy(func(s *models.UserStats) bool {
		return s.ChaptersRead == 10 && s.ReadingStreak == 3
	})).Return(nil)

	err := svc.MarkChapterRead("user-1", 7, 3)

	assert.NoError(t, err)
	statsRepo.AssertNotCalled(t, "CreateProgress", mock.Anything)
}

func TestAddReadingTime(t *testing.T) {
	svc, statsRepo, _ := newTestStatsService()

	existing := &models.UserStats{UserID: "user-1", TotalReadingTime: 100}
	statsRepo.On("GetByUser", "user-1").Return(existing, nil)
	statsRepo.On("Save", mock.MatchedBy(func(s *models.UserStats) bool {
		return s.TotalReadingTime == 130
	})).Return(nil)

	err := svc.AddReadingTime("user-1", 30)

	assert.NoError(t, err)
	statsRepo.AssertExpectations(t)
}
