package daily

import (
	"context"
	"database/sql"
	"fmt"
)

// Result is one player's finished daily game.
type Result struct {
	PlayerID  string `json:"playerId"`
	Date      string `json:"date"`
	WordIndex int    `json:"wordIndex"`
	Guesses   int    `json:"guesses"`
	Won       bool   `json:"won"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Store persists daily results in the daily_results table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether the player has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, playerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE player_id=? AND date=?`,
		playerID, date,
	).Scan(&cnt)
	if err != nil {
		return false, fmt.Errorf("daily played: %w", err)
	}
	return cnt > 0, nil
}

// InsertResult records r. A second result for the same player and date is
// ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(player_id, date, word_index, guesses, won, elapsed_ms)
		 VALUES(?,?,?,?,?,?)`, r.PlayerID, r.Date, r.WordIndex, r.Guesses, r.Won, r.ElapsedMs,
	)
	if err != nil {
		return fmt.Errorf("daily insert: %w", err)
	}
	return nil
}

// Reassign moves fromID's results to toID. Where both have a result for
// the same date, toID's result is kept and fromID's is dropped.
func (s *Store) Reassign(ctx context.Context, fromID, toID string) error {
	if fromID == "" || fromID == toID {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE OR IGNORE daily_results SET player_id=? WHERE player_id=?`, toID, fromID,
	); err != nil {
		return fmt.Errorf("daily reassign: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_results WHERE player_id=?`, fromID); err != nil {
		return fmt.Errorf("daily reassign: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("daily reassign: %w", err)
	}
	return nil
}

// LBRow is one leaderboard entry.
type LBRow struct {
	PlayerID  string `json:"playerId"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Leaderboard returns winners for date ordered by guesses, then time.
// limit <= 0 means 20.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, guesses, elapsed_ms
		 FROM daily_results
		 WHERE date=? AND won=1
		 ORDER BY guesses ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("daily leaderboard: %w", err)
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.PlayerID, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
