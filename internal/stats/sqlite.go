package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore stores records in the player_stats table.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

const selectRecord = `SELECT games_played, wins, current_streak, max_streak,
	dist_1, dist_2, dist_3, dist_4, dist_5, dist_6
	FROM player_stats WHERE player_id=?`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner, playerID string) (Record, error) {
	r := Record{PlayerID: playerID}
	d := &r.Distribution
	err := row.Scan(&r.GamesPlayed, &r.Wins, &r.CurrentStreak, &r.MaxStreak,
		&d[0], &d[1], &d[2], &d[3], &d[4], &d[5])
	if errors.Is(err, sql.ErrNoRows) {
		return Record{PlayerID: playerID}, ErrNotFound
	}
	return r, err
}

func (s *sqliteStore) Get(ctx context.Context, playerID string) (Record, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx, selectRecord, playerID), playerID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Record{}, fmt.Errorf("get stats: %w", err)
	}
	return r, err
}

func (s *sqliteStore) Record(ctx context.Context, playerID string, won bool, guesses int) (Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, err
	}
	defer func() { _ = tx.Rollback() }()

	r, err := scanRecord(tx.QueryRowContext(ctx, selectRecord, playerID), playerID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Record{}, fmt.Errorf("read stats: %w", err)
	}
	r.Apply(won, guesses)

	if err := writeRecord(ctx, tx, r); err != nil {
		return Record{}, err
	}
	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("commit stats: %w", err)
	}
	return r, nil
}

func (s *sqliteStore) Move(ctx context.Context, fromID, toID string) error {
	if fromID == "" || fromID == toID {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	from, err := scanRecord(tx.QueryRowContext(ctx, selectRecord, fromID), fromID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}
	to, err := scanRecord(tx.QueryRowContext(ctx, selectRecord, toID), toID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("read stats: %w", err)
	}

	if err := writeRecord(ctx, tx, Combine(to, from)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM player_stats WHERE player_id=?`, fromID); err != nil {
		return fmt.Errorf("move stats: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit stats: %w", err)
	}
	return nil
}

func writeRecord(ctx context.Context, tx *sql.Tx, r Record) error {
	d := r.Distribution
	_, err := tx.ExecContext(ctx, `
		INSERT INTO player_stats (player_id, games_played, wins, current_streak, max_streak,
			dist_1, dist_2, dist_3, dist_4, dist_5, dist_6, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(player_id) DO UPDATE SET
			games_played=excluded.games_played, wins=excluded.wins,
			current_streak=excluded.current_streak, max_streak=excluded.max_streak,
			dist_1=excluded.dist_1, dist_2=excluded.dist_2, dist_3=excluded.dist_3,
			dist_4=excluded.dist_4, dist_5=excluded.dist_5, dist_6=excluded.dist_6,
			updated_at=excluded.updated_at`,
		r.PlayerID, r.GamesPlayed, r.Wins, r.CurrentStreak, r.MaxStreak,
		d[0], d[1], d[2], d[3], d[4], d[5], time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}
