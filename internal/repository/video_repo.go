package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goroti11/trutube-sub003/internal/model"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

const videoColumns = `
	id, user_id, creator_id, universe_id, sub_universe_id, title, duration,
	is_short, is_premium, view_count, like_count, comment_count, avg_watch_time,
	quality_score, authenticity_score, created_at, updated_at`

func scanVideo(row pgx.Row) (model.Video, error) {
	var v model.Video
	err := row.Scan(
		&v.ID, &v.UserID, &v.CreatorID, &v.UniverseID, &v.SubUniverseID,
		&v.Title, &v.Duration, &v.IsShort, &v.IsPremium,
		&v.ViewCount, &v.LikeCount, &v.CommentCount, &v.AvgWatchTime,
		&v.QualityScore, &v.AuthenticityScore, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

// ListCandidates returns visible videos for feed generation, newest first.
// Audience and universe filtering stays in the feed service; this only
// excludes masked content.
func (r *VideoRepo) ListCandidates(ctx context.Context, limit int) ([]model.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE is_masked = false
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// FindByID returns a single video by ID.
func (r *VideoRepo) FindByID(ctx context.Context, videoID string) (*model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	v, err := scanVideo(r.pool.QueryRow(ctx, query, videoID))
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateAggregateScores persists the cached quality and authenticity scores
// computed by the validation worker.
func (r *VideoRepo) UpdateAggregateScores(ctx context.Context, videoID string, quality, authenticity float64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE videos
		SET quality_score = $1, authenticity_score = $2, updated_at = NOW()
		WHERE id = $3`,
		quality, authenticity, videoID)
	return err
}

// IncrementSuspiciousPatterns bumps the lifetime suspicious-pattern counter
// for a video and returns the new value.
func (r *VideoRepo) IncrementSuspiciousPatterns(ctx context.Context, videoID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		UPDATE videos
		SET suspicious_patterns = suspicious_patterns + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING suspicious_patterns`, videoID).Scan(&count)
	return count, err
}

// GetSuspiciousPatterns returns the lifetime suspicious-pattern counter.
func (r *VideoRepo) GetSuspiciousPatterns(ctx context.Context, videoID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT suspicious_patterns FROM videos WHERE id = $1`, videoID).Scan(&count)
	return count, err
}
