package service

import (
	"context"

	"manhwahub/internal/microservices/http-api/models"
	"manhwahub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(commentID int64) error {
	args := m.Called(commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(commentID int64) (*models.Comment, error) {
	args := m.Called(commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByTarget(manhwaID int64, chapterID *int64) ([]models.Comment, error) {
	args := m.Called(manhwaID, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByUser(userID string, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) GetByCommentAndUser(commentID int64, userID string) (*models.Reaction, error) {
	args := m.Called(commentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *MockReactionRepository) Create(reaction *models.Reaction) error {
	args := m.Called(reaction)
	return args.Error(0)
}

func (m *MockReactionRepository) Update(reaction *models.Reaction) error {
	args := m.Called(reaction)
	return args.Error(0)
}

func (m *MockReactionRepository) Delete(commentID int64, userID string) error {
	args := m.Called(commentID, userID)
	return args.Error(0)
}

func (m *MockReactionRepository) CountsFor(commentID int64) (repository.ReactionCounts, error) {
	args := m.Called(commentID)
	return args.Get(0).(repository.ReactionCounts), args.Error(1)
}

func (m *MockReactionRepository) CountsForComments(commentIDs []int64) (map[int64]repository.ReactionCounts, error) {
	args := m.Called(commentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]repository.ReactionCounts), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) NotifyReply(ctx context.Context, parent, reply *models.Comment) {
	m.Called(ctx, parent, reply)
}

func (m *MockNotificationService) NotifyLike(ctx context.Context, comment *models.Comment, fromUserID, fromUsername string) {
	m.Called(ctx, comment, fromUserID, fromUsername)
}

func (m *MockNotificationService) GetAll(ctx context.Context, userID string) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationService) GetUnread(ctx context.Context, userID string) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID string, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationService) Delete(ctx context.Context, userID string, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) ClearAll(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationService) Subscribe(fn NotificationSubscriber) {
	m.Called(fn)
}

type MockUserStatsService struct {
	mock.Mock
}

func (m *MockUserStatsService) GetStats(userID string) (*models.UserStats, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserStats), args.Error(1)
}

func (m *MockUserStatsService) IncrementComments(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserStatsService) IncrementLikesGiven(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserStatsService) IncrementLikesReceived(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserStatsService) MarkChapterRead(userID string, manhwaID, chapterID int64) error {
	args := m.Called(userID, manhwaID, chapterID)
	return args.Error(0)
}

func (m *MockUserStatsService) AddReadingTime(userID string, minutes int64) error {
	args := m.Called(userID, minutes)
	return args.Error(0)
}

func (m *MockUserStatsService) GetReadingProgress(userID string, manhwaID int64) ([]models.ReadingProgress, error) {
	args := m.Called(userID, manhwaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReadingProgress), args.Error(1)
}

func (m *MockUserStatsService) Leaderboard(ctx context.Context, metric string, limit int) ([]repository.LeaderboardEntry, error) {
	args := m.Called(ctx, metric, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LeaderboardEntry), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, notificationID int64) (*models.Notification, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetUnreadByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, notificationID int64) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, notificationID int64) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func (m *MockNotificationRepository) ClearByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockUserStatsRepository struct {
	mock.Mock
}

func (m *MockUserStatsRepository) GetByUser(userID string) (*models.UserStats, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserStats), args.Error(1)
}

func (m *MockUserStatsRepository) Create(stats *models.UserStats) error {
	args := m.Called(stats)
	return args.Error(0)
}

func (m *MockUserStatsRepository) Save(stats *models.UserStats) error {
	args := m.Called(stats)
	return args.Error(0)
}

func (m *MockUserStatsRepository) GetProgress(userID string, manhwaID, chapterID int64) (*models.ReadingProgress, error) {
	args := m.Called(userID, manhwaID, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingProgress), args.Error(1)
}

func (m *MockUserStatsRepository) CreateProgress(progress *models.ReadingProgress) error {
	args := m.Called(progress)
	return args.Error(0)
}

func (m *MockUserStatsRepository) SaveProgress(progress *models.ReadingProgress) error {
	args := m.Called(progress)
	return args.Error(0)
}

func (m *MockUserStatsRepository) ListProgress(userID string, manhwaID int64) ([]models.ReadingProgress, error) {
	args := m.Called(userID, manhwaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReadingProgress), args.Error(1)
}

type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) Top(ctx context.Context, metric string, limit int) ([]repository.LeaderboardEntry, error) {
	args := m.Called(ctx, metric, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LeaderboardEntry), args.Error(1)
}
