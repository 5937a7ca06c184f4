package game

import (
	"fmt"
	"time"
)

// State is the persistable form of a Session. Hints and row states are
// derived data and are rebuilt by Restore, so only guesses are stored.
type State struct {
	ID        string    `json:"id"`
	Target    string    `json:"target"`
	Guesses   []string  `json:"guesses"`
	Pending   string    `json:"pending"`
	StartedAt time.Time `json:"startedAt"`
}

// State exports the session for storage.
func (s *Session) State() State {
	guesses := make([]string, len(s.rows))
	for i, r := range s.rows {
		guesses[i] = r.Guess
	}
	return State{
		ID:        s.id,
		Target:    s.target,
		Guesses:   guesses,
		Pending:   string(s.pending),
		StartedAt: s.startedAt,
	}
}

// Restore rebuilds a session by replaying st.Guesses against st.Target.
// Guesses are not re-checked against the validator: they were accepted
// when first played.
func Restore(st State, validator WordValidator) (*Session, error) {
	target, err := normalizeWord(st.Target)
	if err != nil {
		return nil, err
	}
	if len(st.Guesses) > MaxGuesses {
		return nil, fmt.Errorf("%w: %d guesses stored", ErrInvalidInput, len(st.Guesses))
	}
	s := &Session{
		id:        st.ID,
		target:    target,
		rows:      make([]Row, 0, MaxGuesses),
		pending:   make([]byte, 0, WordLength),
		hints:     KeyboardHints{},
		status:    StatusInProgress,
		startedAt: st.StartedAt,
		validator: validator,
	}
	for _, g := range st.Guesses {
		if s.status.Terminal() {
			return nil, fmt.Errorf("%w: guess %q after game end", ErrInvalidInput, g)
		}
		guess, err := normalizeWord(g)
		if err != nil {
			return nil, err
		}
		s.pending = append(s.pending[:0], guess...)
		if _, err := s.accept(guess); err != nil {
			return nil, err
		}
	}
	if s.status.Terminal() {
		return s, nil
	}
	s.pending = s.pending[:0]
	for _, ch := range st.Pending {
		if err := s.InputLetter(ch); err != nil {
			return nil, fmt.Errorf("%w: pending %q", ErrInvalidInput, st.Pending)
		}
	}
	return s, nil
}
