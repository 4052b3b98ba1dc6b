package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goroti11/trutube-sub003/internal/model"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

const sessionColumns = `
	id, video_id, user_id, session_start, session_end, watch_time_seconds,
	interactions_count, device_fingerprint, ip_hash, is_validated, trust_score`

// Create inserts a new watch session at playback start.
func (r *SessionRepo) Create(ctx context.Context, s *model.WatchSession) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO watch_sessions
			(id, video_id, user_id, session_start, watch_time_seconds,
			 interactions_count, device_fingerprint, ip_hash, is_validated, trust_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.VideoID, s.UserID, s.SessionStart, s.WatchTimeSeconds,
		s.InteractionsCount, s.DeviceFingerprint, s.IPHash, s.IsValidated, s.TrustScore)
	return err
}

// UpdateProgress records a periodic progress report from the player.
func (r *SessionRepo) UpdateProgress(ctx context.Context, sessionID string, watchTimeSeconds float64, interactionsCount int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE watch_sessions
		SET watch_time_seconds = $1, interactions_count = $2
		WHERE id = $3 AND session_end IS NULL`,
		watchTimeSeconds, interactionsCount, sessionID)
	return err
}

// Close marks a session ended with its final counters and session trust.
// Returns pgx.ErrNoRows for an unknown session ID.
func (r *SessionRepo) Close(ctx context.Context, sessionID string, watchTimeSeconds float64, interactionsCount int, trustScore float64, endedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE watch_sessions
		SET watch_time_seconds = $1, interactions_count = $2,
		    trust_score = $3, session_end = $4
		WHERE id = $5`,
		watchTimeSeconds, interactionsCount, trustScore, endedAt, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// FindByID returns a single session.
func (r *SessionRepo) FindByID(ctx context.Context, sessionID string) (*model.WatchSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM watch_sessions WHERE id = $1`

	var s model.WatchSession
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(
		&s.ID, &s.VideoID, &s.UserID, &s.SessionStart, &s.SessionEnd,
		&s.WatchTimeSeconds, &s.InteractionsCount, &s.DeviceFingerprint,
		&s.IPHash, &s.IsValidated, &s.TrustScore,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListRecentByUser returns the user's most recent sessions, newest first.
// The suspicious-pattern detector expects this ordering.
func (r *SessionRepo) ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.WatchSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM watch_sessions
		WHERE user_id = $1
		ORDER BY session_start DESC
		LIMIT $2`

	return r.querySessions(ctx, query, userID, limit)
}

// ListClosedUnvalidated returns ended sessions awaiting validation, oldest
// first so the backlog drains in order.
func (r *SessionRepo) ListClosedUnvalidated(ctx context.Context, limit int) ([]model.WatchSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM watch_sessions
		WHERE session_end IS NOT NULL AND validated_at IS NULL
		ORDER BY session_end ASC
		LIMIT $1`

	return r.querySessions(ctx, query, limit)
}

// MarkValidated records the validation verdict and final trust score.
func (r *SessionRepo) MarkValidated(ctx context.Context, sessionID string, isValidated bool, trustScore float64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE watch_sessions
		SET is_validated = $1, trust_score = $2, validated_at = NOW()
		WHERE id = $3`,
		isValidated, trustScore, sessionID)
	return err
}

// ListValidatedByVideo returns validated sessions for a video, for the
// quality scorer's completion-rate term.
func (r *SessionRepo) ListValidatedByVideo(ctx context.Context, videoID string, limit int) ([]model.WatchSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM watch_sessions
		WHERE video_id = $1 AND is_validated = true
		ORDER BY session_start DESC
		LIMIT $2`

	return r.querySessions(ctx, query, videoID, limit)
}

// CountViews returns total and validated session counts for a video.
func (r *SessionRepo) CountViews(ctx context.Context, videoID string) (total, validated int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_validated)
		FROM watch_sessions
		WHERE video_id = $1`, videoID).Scan(&total, &validated)
	return total, validated, err
}

func (r *SessionRepo) querySessions(ctx context.Context, query string, args ...interface{}) ([]model.WatchSession, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.WatchSession
	for rows.Next() {
		var s model.WatchSession
		err := rows.Scan(
			&s.ID, &s.VideoID, &s.UserID, &s.SessionStart, &s.SessionEnd,
			&s.WatchTimeSeconds, &s.InteractionsCount, &s.DeviceFingerprint,
			&s.IPHash, &s.IsValidated, &s.TrustScore,
		)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
