package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goroti11/trutube-sub003/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `
	id, username, display_name, user_status, subscriber_count, is_verified,
	trust_score, created_at, updated_at`

// FindByID returns a single user by ID.
func (r *UserRepo) FindByID(ctx context.Context, userID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u model.User
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&u.ID, &u.Username, &u.DisplayName, &u.UserStatus, &u.SubscriberCount,
		&u.IsVerified, &u.TrustScore, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByIDs returns users keyed by ID for a batch of IDs. Missing IDs are
// simply absent from the map; the feed generator drops their videos.
func (r *UserRepo) FindByIDs(ctx context.Context, userIDs []string) (map[string]model.User, error) {
	if len(userIDs) == 0 {
		return map[string]model.User{}, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make(map[string]model.User, len(userIDs))
	for rows.Next() {
		var u model.User
		err := rows.Scan(
			&u.ID, &u.Username, &u.DisplayName, &u.UserStatus, &u.SubscriberCount,
			&u.IsVerified, &u.TrustScore, &u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users[u.ID] = u
	}
	return users, rows.Err()
}

// GetPreferences returns the user's universe preferences, or empty sets if
// none are stored.
func (r *UserRepo) GetPreferences(ctx context.Context, userID string) (*model.UserPreferences, error) {
	query := `
		SELECT user_id, universe_ids, sub_universe_ids, updated_at
		FROM user_preferences
		WHERE user_id = $1`

	var p model.UserPreferences
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.UniverseIDs, &p.SubUniverseIDs, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetSubscriptions returns the IDs of creators the user subscribes to.
func (r *UserRepo) GetSubscriptions(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT creator_id
		FROM subscriptions
		WHERE user_id = $1 AND status = 'active'`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creatorIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		creatorIDs = append(creatorIDs, id)
	}
	return creatorIDs, rows.Err()
}
