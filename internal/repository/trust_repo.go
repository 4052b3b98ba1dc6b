package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goroti11/trutube-sub003/internal/model"
)

// ErrVersionConflict is returned when an optimistic-concurrency write loses
// the race; callers should re-read and retry.
var ErrVersionConflict = errors.New("trust record version conflict")

type TrustRepo struct {
	pool *pgxpool.Pool
}

func NewTrustRepo(pool *pgxpool.Pool) *TrustRepo {
	return &TrustRepo{pool: pool}
}

// GetOrDefault returns the user's trust record, or a fresh zero-valued one
// (version 0) if the user has no record yet. Account age is derived from
// the user row so the age bonus never depends on stale stored values.
func (r *TrustRepo) GetOrDefault(ctx context.Context, userID string) (*model.UserTrustScore, error) {
	query := `
		SELECT t.user_id, t.overall_trust, t.view_authenticity, t.report_accuracy,
		       t.engagement_quality,
		       EXTRACT(DAY FROM NOW() - u.created_at)::int AS account_age_days,
		       t.verified_actions_count, t.suspicious_actions_count,
		       t.updated_at, t.version
		FROM user_trust_scores t
		JOIN users u ON u.id = t.user_id
		WHERE t.user_id = $1`

	var t model.UserTrustScore
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&t.UserID, &t.OverallTrust, &t.ViewAuthenticity, &t.ReportAccuracy,
		&t.EngagementQuality, &t.AccountAgeDays,
		&t.VerifiedActionsCount, &t.SuspiciousActionsCount,
		&t.UpdatedAt, &t.Version,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		var ageDays int
		err = r.pool.QueryRow(ctx,
			`SELECT EXTRACT(DAY FROM NOW() - created_at)::int FROM users WHERE id = $1`,
			userID).Scan(&ageDays)
		if err != nil {
			return nil, err
		}
		return &model.UserTrustScore{UserID: userID, AccountAgeDays: ageDays}, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Save writes an updated trust record using compare-and-swap on the version
// column. A version-0 record is inserted; existing records only update when
// the stored version still matches the snapshot the caller read. This is
// the single-writer-per-user discipline the trust updater requires.
func (r *TrustRepo) Save(ctx context.Context, t *model.UserTrustScore) error {
	if t.Version == 0 {
		tag, err := r.pool.Exec(ctx, `
			INSERT INTO user_trust_scores
				(user_id, overall_trust, view_authenticity, report_accuracy,
				 engagement_quality, verified_actions_count, suspicious_actions_count,
				 updated_at, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)
			ON CONFLICT (user_id) DO NOTHING`,
			t.UserID, t.OverallTrust, t.ViewAuthenticity, t.ReportAccuracy,
			t.EngagementQuality, t.VerifiedActionsCount, t.SuspiciousActionsCount,
			t.UpdatedAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrVersionConflict
		}
		return nil
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE user_trust_scores
		SET overall_trust = $1, view_authenticity = $2, report_accuracy = $3,
		    engagement_quality = $4, verified_actions_count = $5,
		    suspicious_actions_count = $6, updated_at = $7, version = version + 1
		WHERE user_id = $8 AND version = $9`,
		t.OverallTrust, t.ViewAuthenticity, t.ReportAccuracy,
		t.EngagementQuality, t.VerifiedActionsCount, t.SuspiciousActionsCount,
		t.UpdatedAt, t.UserID, t.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	return nil
}
