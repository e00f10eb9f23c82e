package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/UK-Mindset/mind-set/internal"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same repository
// methods run inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStorage struct {
	pool   *pgxpool.Pool
	q      querier
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, q: pool, logger: logger}, nil
}

func (p *PostgresStorage) InTx(ctx context.Context, fn func(Store) error) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		p.logger.Errorf("failed to begin transaction: %v", err)
		return err
	}
	defer tx.Rollback(ctx)

	txStore := &PostgresStorage{pool: p.pool, q: tx, logger: p.logger}
	if err := fn(txStore); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (p *PostgresStorage) Close() {
	p.pool.Close()
}

// --- UserRepository ---
func (p *PostgresStorage) FindUser(ctx context.Context, userID int64) (*internal.User, error) {
	row := p.q.QueryRow(ctx, `SELECT user_id, token, name FROM users WHERE user_id = $1`, userID)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Token, &u.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user does not exist", internal.ErrNotFound)
		}
		p.logger.Errorf("failed to query user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStorage) FindUserByToken(ctx context.Context, token string) (*internal.User, error) {
	row := p.q.QueryRow(ctx, `SELECT user_id, token, name FROM users WHERE token = $1`, token)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Token, &u.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user does not exist", internal.ErrNotFound)
		}
		p.logger.Errorf("failed to query user by token: %v", err)
		return nil, err
	}
	return &u, nil
}

// --- MoodRepository ---
func (p *PostgresStorage) FindMood(ctx context.Context, moodID int64) (*internal.Mood, error) {
	row := p.q.QueryRow(ctx, `SELECT mood_id, user_id, mood_category, mood_situation, mood_title, mood_reason, mood_date, created_at FROM moods WHERE mood_id = $1`, moodID)
	var m internal.Mood
	if err := row.Scan(&m.ID, &m.UserID, &m.Category, &m.Situation, &m.Title, &m.Reason, &m.Date, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: mood does not exist", internal.ErrNotFound)
		}
		p.logger.Errorf("failed to query mood: %v", err)
		return nil, err
	}
	return &m, nil
}

func (p *PostgresStorage) SaveMood(ctx context.Context, mood *internal.Mood) error {
	row := p.q.QueryRow(ctx, `INSERT INTO moods (user_id, mood_category, mood_situation, mood_title, mood_reason, mood_date, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING mood_id`,
		mood.UserID, mood.Category, mood.Situation, mood.Title, mood.Reason, mood.Date, mood.CreatedAt)
	if err := row.Scan(&mood.ID); err != nil {
		p.logger.Errorf("failed to insert mood: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) UpdateMood(ctx context.Context, mood *internal.Mood) error {
	tag, err := p.q.Exec(ctx, `UPDATE moods SET mood_title = $1, mood_reason = $2 WHERE mood_id = $3`,
		mood.Title, mood.Reason, mood.ID)
	if err != nil {
		p.logger.Errorf("failed to update mood: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: mood does not exist", internal.ErrNotFound)
	}
	return nil
}

func (p *PostgresStorage) DeleteMood(ctx context.Context, moodID int64) error {
	tag, err := p.q.Exec(ctx, `DELETE FROM moods WHERE mood_id = $1`, moodID)
	if err != nil {
		p.logger.Errorf("failed to delete mood: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: mood does not exist", internal.ErrNotFound)
	}
	return nil
}

func (p *PostgresStorage) ListMoods(ctx context.Context, userID int64) ([]internal.Mood, error) {
	rows, err := p.q.Query(ctx, `SELECT mood_id, user_id, mood_category, mood_situation, mood_title, mood_reason, mood_date, created_at FROM moods WHERE user_id = $1 ORDER BY mood_date DESC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query moods: %v", err)
		return nil, err
	}
	defer rows.Close()

	var moods []internal.Mood
	for rows.Next() {
		var m internal.Mood
		if err := rows.Scan(&m.ID, &m.UserID, &m.Category, &m.Situation, &m.Title, &m.Reason, &m.Date, &m.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan mood: %v", err)
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}

// --- Compile-time assertions ---
var _ Store = (*PostgresStorage)(nil)
