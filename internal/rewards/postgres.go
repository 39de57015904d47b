package rewards

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores rewards state and the audit stream in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get fetches the user's rewards state.
func (r *PostgresRepository) Get(ctx context.Context, fid int64) (State, error) {
	row := r.db.QueryRow(ctx, `SELECT fid, total_points, tier, last_reward_at, updated_at
        FROM user_rewards WHERE fid = $1`, fid)
	return scanRewards(row)
}

// Add credits an award atomically: the state row is locked (created on first
// award), points are added, the tier is derived from the new total, and the
// audit record is appended in the same transaction.
func (r *PostgresRepository) Add(ctx context.Context, award Award) (State, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return State{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var total int
	err = tx.QueryRow(ctx, `SELECT total_points FROM user_rewards WHERE fid = $1 FOR UPDATE`, award.FID).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, err := tx.Exec(ctx, `INSERT INTO user_rewards (fid, total_points, tier, updated_at)
            VALUES ($1, 0, $2, $3)`, award.FID, TierBronze, award.EarnedAt.UTC()); err != nil {
			return State{}, err
		}
		total = 0
	} else if err != nil {
		return State{}, err
	}

	newTotal := total + award.PointsEarned
	tier := TierFromPoints(newTotal)

	if _, err := tx.Exec(ctx, `UPDATE user_rewards SET
            total_points = $2, tier = $3, last_reward_at = $4, updated_at = $4
        WHERE fid = $1`, award.FID, newTotal, tier, award.EarnedAt.UTC()); err != nil {
		return State{}, err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO reward_history (id, fid, points_earned, streak_at_time, multiplier, earned_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), award.FID, award.PointsEarned, award.StreakAtTime, award.Multiplier, award.EarnedAt.UTC()); err != nil {
		return State{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return State{}, err
	}

	at := award.EarnedAt.UTC()
	return State{
		FID:          award.FID,
		TotalPoints:  newTotal,
		Tier:         tier,
		LastRewardAt: &at,
		UpdatedAt:    at,
	}, nil
}

// TotalAwarded sums points across all users for the stats endpoint.
func (r *PostgresRepository) TotalAwarded(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(total_points), 0) FROM user_rewards`).Scan(&total)
	return total, err
}

func scanRewards(row pgx.Row) (State, error) {
	var s State
	var last *time.Time
	err := row.Scan(&s.FID, &s.TotalPoints, &s.Tier, &last, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, err
	}
	if last != nil {
		utc := last.UTC()
		s.LastRewardAt = &utc
	}
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
