// internal/game/session.go
//
// Session is the state machine for a single game.
// Responsibilities:
//   - Buffer letter/backspace input into the pending row.
//   - Validate and score submitted guesses.
//   - Merge feedback into the keyboard hints.
//   - Track state transitions: in_progress → won | lost.
//
// Notes:
//   - A Session is owned by one caller at a time and is not synchronised.
//   - Every mutating method checks its own precondition before touching
//     state, so a rejected move never leaves a partial update behind.
//   - Targets come from a WordSource outside this package.

package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session holds the state of one game.
type Session struct {
	id        string
	target    string
	rows      []Row
	pending   []byte
	hints     KeyboardHints
	status    Status
	startedAt time.Time
	validator WordValidator
}

// NewSession starts a game for target. A nil validator accepts every
// well-formed guess.
func NewSession(target string, validator WordValidator) (*Session, error) {
	s := &Session{validator: validator}
	if err := s.Start(target); err != nil {
		return nil, err
	}
	return s, nil
}

// NewRandomSession starts a game with a target drawn from src.
func NewRandomSession(src WordSource, validator WordValidator) (*Session, error) {
	return NewSession(src.RandomWord(), validator)
}

// Start resets the session to a fresh game for target under a new ID.
// The session is left untouched if target is not a WordLength A–Z word.
func (s *Session) Start(target string) error {
	t, err := normalizeWord(target)
	if err != nil {
		return err
	}
	s.id = uuid.NewString()
	s.target = t
	s.rows = make([]Row, 0, MaxGuesses)
	s.pending = make([]byte, 0, WordLength)
	s.hints = KeyboardHints{}
	s.status = StatusInProgress
	s.startedAt = time.Now().UTC()
	return nil
}

// Clone returns an independent copy sharing only the validator.
func (s *Session) Clone() *Session {
	c := *s
	c.rows = make([]Row, len(s.rows), MaxGuesses)
	for i, r := range s.rows {
		c.rows[i] = cloneRow(r)
	}
	c.pending = append(make([]byte, 0, WordLength), s.pending...)
	c.hints = s.hints.Clone()
	return &c
}

// SetValidator replaces the word validator, e.g. after loading from a store.
func (s *Session) SetValidator(v WordValidator) { s.validator = v }

// InputLetter appends ch to the pending row. Lowercase letters are accepted
// and stored upper-cased.
func (s *Session) InputLetter(ch rune) error {
	if s.status.Terminal() {
		return fmt.Errorf("%w: game is %s", ErrInvalidTransition, s.status)
	}
	if len(s.pending) >= WordLength {
		return fmt.Errorf("%w: row is full", ErrInvalidTransition)
	}
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	if ch < 'A' || ch > 'Z' {
		return fmt.Errorf("%w: %q is not a letter", ErrInvalidTransition, ch)
	}
	s.pending = append(s.pending, byte(ch))
	return nil
}

// InputBackspace removes the last pending letter.
func (s *Session) InputBackspace() error {
	if s.status.Terminal() {
		return fmt.Errorf("%w: game is %s", ErrInvalidTransition, s.status)
	}
	if len(s.pending) == 0 {
		return fmt.Errorf("%w: nothing to delete", ErrInvalidTransition)
	}
	s.pending = s.pending[:len(s.pending)-1]
	return nil
}

// SubmitGuess scores the pending row against the target.
//
// Validation rules:
//   - Game must be in progress.
//   - Pending row must be full (ErrIncompleteGuess).
//   - The validator must accept the word (ErrNotInWordList); the pending
//     row is kept so the player can edit it.
//
// State transitions:
//   - Guess equals target → won.
//   - Else MaxGuesses rows used → lost.
//   - Else the pending row is cleared for the next attempt.
func (s *Session) SubmitGuess() (Row, error) {
	if s.status.Terminal() {
		return Row{}, fmt.Errorf("%w: game is %s", ErrInvalidTransition, s.status)
	}
	if len(s.pending) < WordLength {
		return Row{}, ErrIncompleteGuess
	}
	guess := string(s.pending)
	if s.validator != nil && !s.validator.IsValidWord(guess) {
		return Row{}, fmt.Errorf("%w: %s", ErrNotInWordList, guess)
	}
	row, err := s.accept(guess)
	if err != nil {
		return Row{}, err
	}
	return cloneRow(row), nil
}

// accept scores guess and applies the result. Callers have already gated.
func (s *Session) accept(guess string) (Row, error) {
	states, err := Score(guess, s.target)
	if err != nil {
		// Lengths are guarded above; reaching here is a logic fault.
		return Row{}, fmt.Errorf("score %s: %w", guess, err)
	}
	row := Row{Guess: guess, States: states}
	s.rows = append(s.rows, row)
	s.hints.Merge(guess, states)

	switch {
	case guess == s.target:
		s.status = StatusWon
	case len(s.rows) >= MaxGuesses:
		s.status = StatusLost
	default:
		s.pending = s.pending[:0]
	}
	return row, nil
}

// HandleKey routes a named key the way a keyboard would: a single letter is
// typed, BACKSPACE deletes and ENTER submits. The row is returned only when
// a guess was accepted.
func (s *Session) HandleKey(key string) (*Row, error) {
	k := strings.ToUpper(strings.TrimSpace(key))
	switch {
	case k == "ENTER":
		row, err := s.SubmitGuess()
		if err != nil {
			return nil, err
		}
		return &row, nil
	case isBackspace(k):
		return nil, s.InputBackspace()
	case len(k) == 1:
		return nil, s.InputLetter(rune(k[0]))
	}
	return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidTransition, key)
}

// CanAccept reports whether HandleKey(key) would pass its gating checks.
// Word list membership is not consulted.
func (s *Session) CanAccept(key string) bool {
	if s.status.Terminal() {
		return false
	}
	k := strings.ToUpper(strings.TrimSpace(key))
	switch {
	case k == "ENTER":
		return len(s.pending) == WordLength
	case isBackspace(k):
		return len(s.pending) > 0
	case len(k) == 1:
		return k[0] >= 'A' && k[0] <= 'Z' && len(s.pending) < WordLength
	}
	return false
}

func isBackspace(k string) bool {
	return k == "BACKSPACE" || k == "BACK" || k == "DEL"
}

// ID returns the session identifier assigned by Start.
func (s *Session) ID() string { return s.id }

// Target returns the secret word. Renderers should only reveal it through
// Outcome.
func (s *Session) Target() string { return s.target }

// Status returns the current lifecycle state.
func (s *Session) Status() Status { return s.status }

// StartedAt returns when the current game began (UTC).
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Pending returns the letters typed into the current row.
func (s *Session) Pending() string { return string(s.pending) }

// Rows returns a copy of the submitted rows in order.
func (s *Session) Rows() []Row {
	out := make([]Row, len(s.rows))
	for i, r := range s.rows {
		out[i] = cloneRow(r)
	}
	return out
}

// Hints returns a copy of the keyboard hints.
func (s *Session) Hints() KeyboardHints { return s.hints.Clone() }

// Outcome describes a finished game.
type Outcome struct {
	Status      Status `json:"status"`
	GuessesUsed int    `json:"guessesUsed,omitempty"` // set when won
	Target      string `json:"target,omitempty"`      // set when lost
}

// Outcome returns the result once the game is over; ok is false while it
// is still in progress.
func (s *Session) Outcome() (o Outcome, ok bool) {
	switch s.status {
	case StatusWon:
		return Outcome{Status: StatusWon, GuessesUsed: len(s.rows)}, true
	case StatusLost:
		return Outcome{Status: StatusLost, Target: s.target}, true
	}
	return Outcome{}, false
}

// Snapshot is the read-only view handed to renderers after every move.
type Snapshot struct {
	ID      string                 `json:"id"`
	Status  Status                 `json:"status"`
	Rows    []Row                  `json:"rows"`
	Pending string                 `json:"pending"`
	Hints   map[string]LetterState `json:"hints"`
	Outcome *Outcome               `json:"outcome,omitempty"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:      s.id,
		Status:  s.status,
		Rows:    s.Rows(),
		Pending: s.Pending(),
		Hints:   s.hints.AsStrings(),
	}
	if o, ok := s.Outcome(); ok {
		snap.Outcome = &o
	}
	return snap
}

func cloneRow(r Row) Row {
	states := make([]LetterState, len(r.States))
	copy(states, r.States)
	return Row{Guess: r.Guess, States: states}
}

// normalizeWord upper-cases w and checks it is WordLength letters.
func normalizeWord(w string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(w))
	if len(t) != WordLength || !isUpperAlpha(t) {
		return "", fmt.Errorf("%w: %q is not a %d-letter word", ErrInvalidInput, w, WordLength)
	}
	return t, nil
}
