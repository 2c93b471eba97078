package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"manhwahub/internal/microservices/http-api/dto"
	"manhwahub/internal/microservices/http-api/models"
	"manhwahub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrEmptyContent     = errors.New("comment content is empty")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("you are not the author of this comment")
	ErrParentNotFound   = errors.New("parent comment not found")
	ErrInvalidReaction  = errors.New("invalid reaction type")
)

type CommentService interface {
	ListComments(manhwaID int64, chapterID *int64) ([]*dto.ThreadResponse, error)
	CreateComment(manhwaID, chapterID int64, userID, username, content string, parentID *int64) (*models.Comment, error)
	UpdateComment(commentID int64, userID, content string) (*models.Comment, error)
	DeleteComment(commentID int64, userID string) error
	ModerateDeleteComment(commentID int64) error
	React(commentID int64, userID, username, reactionType string) error
	GetUserReaction(commentID int64, userID string) (string, error)
	GetUserComments(userID string, page, pageSize int) (*dto.PaginatedCommentResponse, error)
}

type commentService struct {
	commentRepo  repository.CommentRepository
	reactionRepo repository.ReactionRepository
	cache        *repository.ReactionCache
	notifier     NotificationService
	stats        UserStatsService
	logger       *slog.Logger
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reactionRepo repository.ReactionRepository,
	cache *repository.ReactionCache,
	notifier NotificationService,
	stats UserStatsService,
	logger *slog.Logger,
) CommentService {
	return &commentService{
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
		cache:        cache,
		notifier:     notifier,
		stats:        stats,
		logger:       logger,
	}
}

// ListComments returns the reply trees for a manhwa, optionally narrowed to
// one chapter. Reaction counts come from the cache where possible and fall
// back to the ledger for the rest.
func (s *commentService) ListComments(manhwaID int64, chapterID *int64) ([]*dto.ThreadResponse, error) {
	ctx := context.Background()

	comments, err := s.commentRepo.ListByTarget(manhwaID, chapterID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}

	counts, missing, err := s.cache.GetMany(ctx, ids)
	if err != nil {
		// cache trouble never fails a listing
		s.logger.Warn("reaction_cache_read_failed", "error", err)
		counts = map[int64]repository.ReactionCounts{}
		missing = ids
	}

	if len(missing) > 0 {
		fresh, err := s.reactionRepo.CountsForComments(missing)
		if err != nil {
			return nil, err
		}
		for id, c := range fresh {
			counts[id] = c
		}
		if err := s.cache.SetMany(ctx, fresh, missing); err != nil {
			s.logger.Warn("reaction_cache_write_failed", "error", err)
		}
	}

	return BuildThreads(comments, counts), nil
}

// CreateComment stores a new comment or reply. The author identity is
// snapshotted onto the record. Replying to another user's comment emits a
// comment_reply notification; emission failures never fail the create.
func (s *commentService) CreateComment(manhwaID, chapterID int64, userID, username, content string, parentID *int64) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	var parent *models.Comment
	if parentID != nil {
		var err error
		parent, err = s.commentRepo.GetByID(*parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
	}

	comment := &models.Comment{
		ManhwaID:  manhwaID,
		ChapterID: chapterID,
		UserID:    userID,
		Username:  username,
		Content:   content,
		ParentID:  parentID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	if err := s.stats.IncrementComments(userID); err != nil {
		s.logger.Warn("stats_increment_failed", "user_id", userID, "error", err)
	}

	if parent != nil {
		s.notifier.NotifyReply(context.Background(), parent, comment)
	}

	return comment, nil
}

// UpdateComment edits a comment's content. Only the author may edit; the
// edit timestamp is set on first and every subsequent edit.
func (s *commentService) UpdateComment(commentID int64, userID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if comment.UserID != userID {
		return nil, ErrNotCommentAuthor
	}

	now := time.Now()
	comment.Content = content
	comment.UpdatedAt = &now
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes a comment authored by userID, cascading to its
// direct replies and all reactions on the removed comments.
func (s *commentService) DeleteComment(commentID int64, userID string) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != userID {
		return ErrNotCommentAuthor
	}

	return s.deleteWithCache(commentID)
}

// ModerateDeleteComment removes any comment regardless of author. Route
// access is restricted to moderators.
func (s *commentService) ModerateDeleteComment(commentID int64) error {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return s.deleteWithCache(commentID)
}

func (s *commentService) deleteWithCache(commentID int64) error {
	if err := s.commentRepo.Delete(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if err := s.cache.Invalidate(context.Background(), commentID); err != nil {
		s.logger.Warn("reaction_cache_invalidate_failed", "comment_id", commentID, "error", err)
	}
	return nil
}

// React applies one user's like/dislike to a comment. Re-submitting the
// same type removes the reaction; submitting the other type switches it.
// A transition into an active like on someone else's comment emits a like
// notification.
func (s *commentService) React(commentID int64, userID, username, reactionType string) error {
	if !models.ValidReactionType(reactionType) {
		return ErrInvalidReaction
	}

	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	existing, err := s.reactionRepo.GetByCommentAndUser(commentID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	freshLike := existing == nil && reactionType == models.ReactionLike
	switchedToLike := existing != nil && existing.Type != models.ReactionLike && reactionType == models.ReactionLike

	switch {
	case existing == nil:
		reaction := &models.Reaction{
			CommentID: commentID,
			UserID:    userID,
			Type:      reactionType,
		}
		if err := s.reactionRepo.Create(reaction); err != nil {
			return err
		}
	case existing.Type == reactionType:
		// toggle off
		if err := s.reactionRepo.Delete(commentID, userID); err != nil {
			return err
		}
	default:
		existing.Type = reactionType
		if err := s.reactionRepo.Update(existing); err != nil {
			return err
		}
	}

	if err := s.cache.Invalidate(context.Background(), commentID); err != nil {
		s.logger.Warn("reaction_cache_invalidate_failed", "comment_id", commentID, "error", err)
	}

	if freshLike {
		if err := s.stats.IncrementLikesGiven(userID); err != nil {
			s.logger.Warn("stats_increment_failed", "user_id", userID, "error", err)
		}
	}

	if (freshLike || switchedToLike) && comment.UserID != userID {
		if err := s.stats.IncrementLikesReceived(comment.UserID); err != nil {
			s.logger.Warn("stats_increment_failed", "user_id", comment.UserID, "error", err)
		}
		s.notifier.NotifyLike(context.Background(), comment, userID, username)
	}

	return nil
}

// GetUserReaction returns the user's current reaction type on a comment,
// or the empty string when there is none. Used by the UI to highlight the
// active button.
func (s *commentService) GetUserReaction(commentID int64, userID string) (string, error) {
	reaction, err := s.reactionRepo.GetByCommentAndUser(commentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return reaction.Type, nil
}

// GetUserComments retrieves all comments by a user with pagination
func (s *commentService) GetUserComments(userID string, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	comments, total, err := s.commentRepo.ListByUser(userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginatedCommentResponse(comments, int(total), page, pageSize), nil
}
