// Package stats keeps per-player game statistics: games played, wins,
// streaks and the guess distribution of wins.
package stats

import (
	"context"
	"errors"

	"github.com/robalobadob/wordle-engine/internal/game"
)

// ErrNotFound is returned by Get for a player with no recorded games.
var ErrNotFound = errors.New("stats not found")

// Record is one player's statistics.
type Record struct {
	PlayerID      string               `json:"playerId"`
	GamesPlayed   int                  `json:"gamesPlayed"`
	Wins          int                  `json:"wins"`
	CurrentStreak int                  `json:"currentStreak"`
	MaxStreak     int                  `json:"maxStreak"`
	Distribution  [game.MaxGuesses]int `json:"distribution"` // wins by guesses used, index 0 = 1 guess
}

// Apply folds one finished game into r. guesses is only used for wins and
// is clamped to 1..MaxGuesses.
func (r *Record) Apply(won bool, guesses int) {
	r.GamesPlayed++
	if !won {
		r.CurrentStreak = 0
		return
	}
	r.Wins++
	r.CurrentStreak++
	if r.CurrentStreak > r.MaxStreak {
		r.MaxStreak = r.CurrentStreak
	}
	switch {
	case guesses < 1:
		guesses = 1
	case guesses > game.MaxGuesses:
		guesses = game.MaxGuesses
	}
	r.Distribution[guesses-1]++
}

// Combine folds two records of the same person into one. later holds the
// more recent games, so its streak continues earlier's only when later has
// not lost yet.
func Combine(earlier, later Record) Record {
	out := Record{
		PlayerID:      earlier.PlayerID,
		GamesPlayed:   earlier.GamesPlayed + later.GamesPlayed,
		Wins:          earlier.Wins + later.Wins,
		CurrentStreak: later.CurrentStreak,
		MaxStreak:     max(earlier.MaxStreak, later.MaxStreak),
	}
	if later.CurrentStreak == later.GamesPlayed {
		out.CurrentStreak += earlier.CurrentStreak
	}
	out.MaxStreak = max(out.MaxStreak, out.CurrentStreak)
	for i := range out.Distribution {
		out.Distribution[i] = earlier.Distribution[i] + later.Distribution[i]
	}
	return out
}

// WinRate is the percentage of games won, rounded down.
func (r Record) WinRate() int {
	if r.GamesPlayed == 0 {
		return 0
	}
	return r.Wins * 100 / r.GamesPlayed
}

// Store persists records.
type Store interface {
	// Get returns the player's record or ErrNotFound.
	Get(ctx context.Context, playerID string) (Record, error)

	// Record applies one finished game and returns the updated record.
	Record(ctx context.Context, playerID string, won bool, guesses int) (Record, error)

	// Move folds fromID's record into toID's, treating fromID's games as
	// the more recent, and removes fromID. A missing fromID is a no-op.
	Move(ctx context.Context, fromID, toID string) error
}

// FromOutcome converts a finished session's outcome into Record arguments.
func FromOutcome(o game.Outcome) (won bool, guesses int) {
	return o.Status == game.StatusWon, o.GuessesUsed
}
