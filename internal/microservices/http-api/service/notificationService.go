package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"manhwahub/internal/microservices/http-api/models"
	"manhwahub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationSubscriber is invoked after a notification has been stored.
type NotificationSubscriber func(models.Notification)

type NotificationService interface {
	// Emitter hooks - fire-and-forget, called by the comment facade.
	NotifyReply(ctx context.Context, parent, reply *models.Comment)
	NotifyLike(ctx context.Context, comment *models.Comment, fromUserID, fromUsername string)

	GetAll(ctx context.Context, userID string) ([]models.Notification, error)
	GetUnread(ctx context.Context, userID string) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, userID string, notificationID int64) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string, notificationID int64) error
	ClearAll(ctx context.Context, userID string) error

	Subscribe(fn NotificationSubscriber)
}

type notificationService struct {
	repo   repository.NotificationRepository
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers []NotificationSubscriber
}

func NewNotificationService(repo repository.NotificationRepository, logger *slog.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

// Subscribe registers a callback invoked after every stored notification.
func (s *notificationService) Subscribe(fn NotificationSubscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// NotifyReply emits a comment_reply notification to the parent comment's
// author. Self-replies never notify. Failures are logged, never returned.
func (s *notificationService) NotifyReply(ctx context.Context, parent, reply *models.Comment) {
	if parent.UserID == reply.UserID {
		return
	}

	s.emit(ctx, &models.Notification{
		UserID:       parent.UserID,
		Type:         models.NotificationCommentReply,
		FromUserID:   reply.UserID,
		FromUsername: reply.Username,
		CommentID:    reply.ID,
		ManhwaID:     reply.ManhwaID,
		ChapterID:    reply.ChapterID,
		Message:      fmt.Sprintf("replied to your comment: %q", previewOf(reply.Content)),
	})
}

// NotifyLike emits a like notification to the comment's author. Liking your
// own comment never notifies. Failures are logged, never returned.
func (s *notificationService) NotifyLike(ctx context.Context, comment *models.Comment, fromUserID, fromUsername string) {
	if comment.UserID == fromUserID {
		return
	}

	s.emit(ctx, &models.Notification{
		UserID:       comment.UserID,
		Type:         models.NotificationLike,
		FromUserID:   fromUserID,
		FromUsername: fromUsername,
		CommentID:    comment.ID,
		ManhwaID:     comment.ManhwaID,
		ChapterID:    comment.ChapterID,
		Message:      fmt.Sprintf("liked your comment: %q", previewOf(comment.Content)),
	})
}

func (s *notificationService) emit(ctx context.Context, notification *models.Notification) {
	if err := s.repo.Create(ctx, notification); err != nil {
		s.logger.Warn("notification_emit_failed",
			"type", notification.Type,
			"user_id", notification.UserID,
			"error", err,
		)
		return
	}

	s.mu.RLock()
	subscribers := s.subscribers
	s.mu.RUnlock()
	for _, fn := range subscribers {
		fn(*notification)
	}
}

func (s *notificationService) GetAll(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *notificationService) GetUnread(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.repo.GetUnreadByUser(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID string, notificationID int64) error {
	if err := s.ownedBy(ctx, userID, notificationID); err != nil {
		return err
	}
	return s.repo.MarkAsRead(ctx, notificationID)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) Delete(ctx context.Context, userID string, notificationID int64) error {
	if err := s.ownedBy(ctx, userID, notificationID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, notificationID)
}

func (s *notificationService) ClearAll(ctx context.Context, userID string) error {
	return s.repo.ClearByUser(ctx, userID)
}

// ownedBy verifies the notification exists and belongs to userID. A
// notification owned by someone else reports not-found rather than
// forbidden so ids cannot be probed.
func (s *notificationService) ownedBy(ctx context.Context, userID string, notificationID int64) error {
	notification, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if notification.UserID != userID {
		return ErrNotificationNotFound
	}
	return nil
}
