package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LeaderboardEntry is one ranked row of the community leaderboard.
type LeaderboardEntry struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	Score         int64  `json:"score"`
	ChaptersRead  int64  `json:"chapters_read"`
	CommentsCount int64  `json:"comments_count"`
	LikesReceived int64  `json:"likes_received"`
	ReadingStreak int64  `json:"reading_streak"`
	Rank          int    `json:"rank"`
}

type LeaderboardRepository interface {
	Top(ctx context.Context, metric string, limit int) ([]LeaderboardEntry, error)
}

// leaderboardRepository runs its ranking query directly over the pgx pool;
// the sort column changes per request and a raw query keeps it a single
// round trip over user_stats joined with users.
type leaderboardRepository struct {
	pool *pgxpool.Pool
}

func NewLeaderboardRepository(pool *pgxpool.Pool) LeaderboardRepository {
	return &leaderboardRepository{pool: pool}
}

// metric name -> user_stats column. Serves as a whitelist; the column is
// interpolated into the query and must never come from user input directly.
var leaderboardColumns = map[string]string{
	"chapters": "chapters_read",
	"comments": "comments_count",
	"likes":    "likes_received",
	"streak":   "reading_streak",
}

func (r *leaderboardRepository) Top(ctx context.Context, metric string, limit int) ([]LeaderboardEntry, error) {
	column, ok := leaderboardColumns[metric]
	if !ok {
		return nil, fmt.Errorf("unknown leaderboard metric: %s", metric)
	}

	query := fmt.Sprintf(`
		SELECT s.user_id, u.username, s.%s AS score,
		       s.chapters_read, s.comments_count, s.likes_received, s.reading_streak
		FROM user_stats s
		JOIN users u ON u.id = s.user_id
		ORDER BY score DESC, u.username ASC
		LIMIT $1`, column)

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard query failed: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Score,
			&e.ChaptersRead, &e.CommentsCount, &e.LikesReceived, &e.ReadingStreak); err != nil {
			return nil, err
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
