package checkin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores check-in state and history in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const stateColumns = `fid, last_checkin, streak_count, total_checkins,
        COALESCE(username, ''), COALESCE(display_name, ''), COALESCE(pfp_url, ''), created_at, updated_at`

// GetState fetches the user's check-in state.
func (r *PostgresRepository) GetState(ctx context.Context, fid int64) (State, error) {
	row := r.db.QueryRow(ctx, `SELECT `+stateColumns+` FROM users_checkins WHERE fid = $1`, fid)
	return scanState(row)
}

// Apply credits one check-in atomically: the state row is locked, the
// conditional compare on last_checkin is enforced, the history record is
// inserted and total_checkins is recomputed from the history table inside the
// same transaction.
func (r *PostgresRepository) Apply(ctx context.Context, credit Credit) (State, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return State{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var stored *time.Time
	err = tx.QueryRow(ctx, `SELECT last_checkin FROM users_checkins WHERE fid = $1 FOR UPDATE`, credit.FID).Scan(&stored)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if credit.ExpectedLastCheckin != nil {
			return State{}, ErrConflict
		}
		// Two concurrent first-ever check-ins both see no row to lock; the
		// loser of the insert race is a conflict, not a storage failure.
		if _, err := tx.Exec(ctx, `INSERT INTO users_checkins (fid, streak_count, total_checkins, created_at, updated_at)
            VALUES ($1, 0, 0, $2, $2)`, credit.FID, credit.CheckedInAt.UTC()); err != nil {
			if isUniqueViolation(err) {
				return State{}, ErrConflict
			}
			return State{}, err
		}
	case err != nil:
		return State{}, err
	default:
		if !sameInstant(stored, credit.ExpectedLastCheckin) {
			return State{}, ErrConflict
		}
	}

	if _, err := tx.Exec(ctx, `INSERT INTO checkin_history (id, fid, checked_in_at, streak_at_time)
        VALUES ($1, $2, $3, $4)`, uuid.New(), credit.FID, credit.CheckedInAt.UTC(), credit.NewStreak); err != nil {
		return State{}, err
	}

	// total_checkins follows the history table, never a free-standing increment.
	if _, err := tx.Exec(ctx, `UPDATE users_checkins SET
            last_checkin = $2,
            streak_count = $3,
            total_checkins = (SELECT COUNT(*) FROM checkin_history WHERE fid = $1),
            username = COALESCE(NULLIF($4, ''), username),
            display_name = COALESCE(NULLIF($5, ''), display_name),
            pfp_url = COALESCE(NULLIF($6, ''), pfp_url),
            updated_at = $2
        WHERE fid = $1`,
		credit.FID, credit.CheckedInAt.UTC(), credit.NewStreak,
		credit.Profile.Username, credit.Profile.DisplayName, credit.Profile.AvatarURL); err != nil {
		return State{}, err
	}

	row := tx.QueryRow(ctx, `SELECT `+stateColumns+` FROM users_checkins WHERE fid = $1`, credit.FID)
	state, err := scanState(row)
	if err != nil {
		return State{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return State{}, err
	}
	return state, nil
}

// CountSince counts history records at or after the given instant.
func (r *PostgresRepository) CountSince(ctx context.Context, fid int64, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM checkin_history WHERE fid = $1 AND checked_in_at >= $2`,
		fid, since.UTC()).Scan(&count)
	return count, err
}

// History returns history records at or after the given instant, newest first.
func (r *PostgresRepository) History(ctx context.Context, fid int64, since time.Time) ([]HistoryRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT id, fid, checked_in_at, streak_at_time
        FROM checkin_history WHERE fid = $1 AND checked_in_at >= $2
        ORDER BY checked_in_at DESC`, fid, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRecord
	for rows.Next() {
		var record HistoryRecord
		var id uuid.UUID
		if err := rows.Scan(&id, &record.FID, &record.CheckedInAt, &record.StreakAtTime); err != nil {
			return nil, err
		}
		record.ID = id.String()
		record.CheckedInAt = record.CheckedInAt.UTC()
		out = append(out, record)
	}
	return out, rows.Err()
}

// GlobalCounts reports platform-wide totals for the stats endpoint.
func (r *PostgresRepository) GlobalCounts(ctx context.Context) (int, int, int, error) {
	var users, checkins, active int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users_checkins`).Scan(&users); err != nil {
		return 0, 0, 0, err
	}
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM checkin_history`).Scan(&checkins); err != nil {
		return 0, 0, 0, err
	}
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users_checkins WHERE streak_count > 0`).Scan(&active); err != nil {
		return 0, 0, 0, err
	}
	return users, checkins, active, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanState(row pgx.Row) (State, error) {
	var s State
	var last *time.Time
	err := row.Scan(&s.FID, &last, &s.StreakCount, &s.TotalCheckins,
		&s.Profile.Username, &s.Profile.DisplayName, &s.Profile.AvatarURL, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, err
	}
	if last != nil {
		utc := last.UTC()
		s.LastCheckin = &utc
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
