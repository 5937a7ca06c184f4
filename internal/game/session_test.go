package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWords = WordValidatorFunc(func(w string) bool {
	switch w {
	case "CRATE", "TRACE", "CRANE", "OCCUR", "SLATE", "PIGMY", "BLUNT", "HOUSE", "WORLD", "DOING", "SPEED":
		return true
	}
	return false
})

func newTestSession(t *testing.T, target string) *Session {
	t.Helper()
	s, err := NewSession(target, testWords)
	require.NoError(t, err)
	return s
}

func typeWord(t *testing.T, s *Session, w string) {
	t.Helper()
	for _, ch := range w {
		require.NoError(t, s.InputLetter(ch))
	}
}

func play(t *testing.T, s *Session, w string) Row {
	t.Helper()
	typeWord(t, s, w)
	row, err := s.SubmitGuess()
	require.NoError(t, err)
	return row
}

func TestNewSession(t *testing.T) {
	t.Run("starts fresh and in progress", func(t *testing.T) {
		s := newTestSession(t, "crate")

		assert.NotEmpty(t, s.ID())
		assert.Equal(t, "CRATE", s.Target())
		assert.Equal(t, StatusInProgress, s.Status())
		assert.Empty(t, s.Rows())
		assert.Empty(t, s.Pending())
		assert.Empty(t, s.Hints())
		assert.False(t, s.StartedAt().IsZero())
	})

	t.Run("rejects malformed targets", func(t *testing.T) {
		for _, target := range []string{"", "CRAT", "CRATES", "CR4TE"} {
			_, err := NewSession(target, nil)
			assert.ErrorIs(t, err, ErrInvalidInput, target)
		}
	})

	t.Run("random session draws from the source", func(t *testing.T) {
		s, err := NewRandomSession(fixedSource("HOUSE"), nil)
		require.NoError(t, err)
		assert.Equal(t, "HOUSE", s.Target())
	})
}

type fixedSource string

func (f fixedSource) RandomWord() string { return string(f) }

func TestSession_Start(t *testing.T) {
	t.Run("resets an existing game", func(t *testing.T) {
		// Given: a game with a row and pending letters
		s := newTestSession(t, "CRATE")
		play(t, s, "SLATE")
		typeWord(t, s, "CR")
		oldID := s.ID()

		// When: starting again
		require.NoError(t, s.Start("HOUSE"))

		// Then: everything is fresh
		assert.NotEqual(t, oldID, s.ID())
		assert.Equal(t, "HOUSE", s.Target())
		assert.Empty(t, s.Rows())
		assert.Empty(t, s.Pending())
		assert.Empty(t, s.Hints())
		assert.Equal(t, StatusInProgress, s.Status())
	})

	t.Run("bad target leaves the game untouched", func(t *testing.T) {
		s := newTestSession(t, "CRATE")
		play(t, s, "SLATE")
		id := s.ID()

		err := s.Start("NOPE")

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, id, s.ID())
		assert.Equal(t, "CRATE", s.Target())
		assert.Len(t, s.Rows(), 1)
	})
}

func TestSession_InputLetter(t *testing.T) {
	t.Run("appends and upper-cases", func(t *testing.T) {
		s := newTestSession(t, "CRATE")

		require.NoError(t, s.InputLetter('c'))
		require.NoError(t, s.InputLetter('R'))

		assert.Equal(t, "CR", s.Pending())
	})

	t.Run("rejects a sixth letter", func(t *testing.T) {
		// Given: a full row
		s := newTestSession(t, "CRATE")
		typeWord(t, s, "CRANE")

		// When: typing another letter
		err := s.InputLetter('X')

		// Then: it is an invalid transition and the row is unchanged
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, "CRANE", s.Pending())
	})

	t.Run("rejects non-letters", func(t *testing.T) {
		s := newTestSession(t, "CRATE")
		for _, ch := range []rune{'1', ' ', 'é', '['} {
			assert.ErrorIs(t, s.InputLetter(ch), ErrInvalidTransition)
		}
		assert.Empty(t, s.Pending())
	})
}

func TestSession_InputBackspace(t *testing.T) {
	s := newTestSession(t, "CRATE")

	// Given: an empty row, backspace is rejected
	assert.ErrorIs(t, s.InputBackspace(), ErrInvalidTransition)

	// When: letters are typed and one is deleted
	typeWord(t, s, "CRA")
	require.NoError(t, s.InputBackspace())

	// Then: the last letter is gone
	assert.Equal(t, "CR", s.Pending())
}

func TestSession_SubmitGuess(t *testing.T) {
	t.Run("incomplete guess", func(t *testing.T) {
		s := newTestSession(t, "CRATE")
		typeWord(t, s, "CRA")

		_, err := s.SubmitGuess()

		assert.ErrorIs(t, err, ErrIncompleteGuess)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, "CRA", s.Pending())
		assert.Empty(t, s.Rows())
	})

	t.Run("not in word list leaves state unchanged", func(t *testing.T) {
		// Given: one accepted row and an unknown word typed
		s := newTestSession(t, "CRATE")
		play(t, s, "SLATE")
		rowsBefore, hintsBefore := s.Rows(), s.Hints()
		typeWord(t, s, "XYLYL")

		// When: submitting
		_, err := s.SubmitGuess()

		// Then: rejected without mutation
		assert.ErrorIs(t, err, ErrNotInWordList)
		assert.Equal(t, rowsBefore, s.Rows())
		assert.Equal(t, hintsBefore, s.Hints())
		assert.Equal(t, "XYLYL", s.Pending())
		assert.Equal(t, StatusInProgress, s.Status())
	})

	t.Run("accepted guess is scored and clears the row", func(t *testing.T) {
		s := newTestSession(t, "CRATE")

		row := play(t, s, "TRACE")

		assert.Equal(t, Row{Guess: "TRACE", States: []LetterState{P, C, C, P, C}}, row)
		assert.Equal(t, []Row{row}, s.Rows())
		assert.Empty(t, s.Pending())
		assert.Equal(t, StatusInProgress, s.Status())
		assert.Equal(t, KeyboardHints{'T': P, 'R': C, 'A': C, 'C': P, 'E': C}, s.Hints())
	})

	t.Run("nil validator accepts any word", func(t *testing.T) {
		s, err := NewSession("CRATE", nil)
		require.NoError(t, err)

		row := play(t, s, "QQQQQ")
		assert.Equal(t, []LetterState{A, A, A, A, A}, row.States)
	})

	t.Run("returned row is a copy", func(t *testing.T) {
		s := newTestSession(t, "CRATE")
		row := play(t, s, "TRACE")

		row.States[0] = C

		assert.Equal(t, P, s.Rows()[0].States[0])
	})
}

func TestSession_Win(t *testing.T) {
	t.Run("first row", func(t *testing.T) {
		s := newTestSession(t, "CRATE")

		row := play(t, s, "CRATE")

		assert.True(t, AllCorrect(row.States))
		assert.Equal(t, StatusWon, s.Status())
		o, ok := s.Outcome()
		require.True(t, ok)
		assert.Equal(t, Outcome{Status: StatusWon, GuessesUsed: 1}, o)
	})

	t.Run("final allowed row", func(t *testing.T) {
		// Given: five misses
		s := newTestSession(t, "CRATE")
		for _, w := range []string{"SLATE", "PIGMY", "BLUNT", "HOUSE", "WORLD"} {
			play(t, s, w)
		}
		require.Equal(t, StatusInProgress, s.Status())

		// When: the sixth guess is the target
		play(t, s, "CRATE")

		// Then: won, not lost
		assert.Equal(t, StatusWon, s.Status())
		o, ok := s.Outcome()
		require.True(t, ok)
		assert.Equal(t, 6, o.GuessesUsed)
		assert.Empty(t, o.Target)
	})
}

func TestSession_Loss(t *testing.T) {
	// Given: six incorrect guesses
	s := newTestSession(t, "CRATE")
	for _, w := range []string{"SLATE", "PIGMY", "BLUNT", "HOUSE", "WORLD", "DOING"} {
		play(t, s, w)
	}

	// Then: the game is lost and the target is revealed
	assert.Equal(t, StatusLost, s.Status())
	o, ok := s.Outcome()
	require.True(t, ok)
	assert.Equal(t, Outcome{Status: StatusLost, Target: "CRATE"}, o)
	assert.Len(t, s.Rows(), MaxGuesses)

	// When: trying to keep playing
	before := s.Snapshot()
	assert.ErrorIs(t, s.InputLetter('A'), ErrInvalidTransition)
	assert.ErrorIs(t, s.InputBackspace(), ErrInvalidTransition)
	_, err := s.SubmitGuess()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Then: nothing changed
	assert.Equal(t, before, s.Snapshot())
}

func TestSession_AfterWinIsAbsorbing(t *testing.T) {
	s := newTestSession(t, "CRATE")
	play(t, s, "CRATE")
	before := s.Snapshot()

	assert.ErrorIs(t, s.InputLetter('A'), ErrInvalidTransition)
	_, err := s.HandleKey("ENTER")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, StatusWon, s.Status())
}

func TestSession_HintsAreMonotonic(t *testing.T) {
	// Given: C found in the right place
	s := newTestSession(t, "CRATE")
	play(t, s, "CRANE")
	require.Equal(t, C, s.Hints()['C'])

	// When: a later guess has C present at one spot and absent at another
	row := play(t, s, "OCCUR")
	require.Equal(t, []LetterState{A, P, A, A, P}, row.States)

	// Then: C stays correct
	assert.Equal(t, C, s.Hints()['C'])
	assert.Equal(t, C, s.Hints()['R'])
	assert.Equal(t, A, s.Hints()['O'])
}

func TestSession_HandleKey(t *testing.T) {
	s := newTestSession(t, "CRATE")

	for _, k := range []string{"t", "R", "a", "c", "X", "backspace", "E"} {
		row, err := s.HandleKey(k)
		require.NoError(t, err, k)
		require.Nil(t, row)
	}
	require.Equal(t, "TRACE", s.Pending())

	row, err := s.HandleKey("Enter")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "TRACE", row.Guess)

	_, err = s.HandleKey("F5")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = s.HandleKey("ENTER")
	assert.ErrorIs(t, err, ErrIncompleteGuess)
}

func TestSession_CanAccept(t *testing.T) {
	s := newTestSession(t, "CRATE")

	assert.True(t, s.CanAccept("a"))
	assert.False(t, s.CanAccept("BACKSPACE"))
	assert.False(t, s.CanAccept("ENTER"))
	assert.False(t, s.CanAccept("1"))
	assert.False(t, s.CanAccept("TAB"))

	typeWord(t, s, "CRATE")
	assert.False(t, s.CanAccept("A"))
	assert.True(t, s.CanAccept("DEL"))
	assert.True(t, s.CanAccept("enter"))

	_, err := s.SubmitGuess()
	require.NoError(t, err)
	for _, k := range []string{"A", "BACKSPACE", "ENTER"} {
		assert.False(t, s.CanAccept(k), k)
	}
}

func TestSession_Snapshot(t *testing.T) {
	s := newTestSession(t, "CRATE")
	play(t, s, "TRACE")
	typeWord(t, s, "CR")

	snap := s.Snapshot()

	assert.Equal(t, s.ID(), snap.ID)
	assert.Equal(t, StatusInProgress, snap.Status)
	assert.Equal(t, "CR", snap.Pending)
	assert.Len(t, snap.Rows, 1)
	assert.Equal(t, C, snap.Hints["R"])
	assert.Nil(t, snap.Outcome)
}

func TestSession_Clone(t *testing.T) {
	s := newTestSession(t, "CRATE")
	play(t, s, "TRACE")
	typeWord(t, s, "SL")

	c := s.Clone()
	assert.Equal(t, s.Snapshot(), c.Snapshot())

	// When: the clone moves on
	typeWord(t, c, "ATE")
	_, err := c.SubmitGuess()
	require.NoError(t, err)

	// Then: the source session is untouched
	assert.Len(t, s.Rows(), 1)
	assert.Equal(t, "SL", s.Pending())
	assert.Equal(t, StatePresent, s.Hints()['T'])
	assert.Len(t, c.Rows(), 2)
	assert.Equal(t, s.ID(), c.ID())
}

func TestRestore(t *testing.T) {
	t.Run("round trips an in-progress game", func(t *testing.T) {
		// Given: a game with two rows and pending letters
		s := newTestSession(t, "CRATE")
		play(t, s, "SLATE")
		play(t, s, "TRACE")
		typeWord(t, s, "CR")

		// When: exporting and restoring
		got, err := Restore(s.State(), testWords)

		// Then: the restored game looks identical
		require.NoError(t, err)
		assert.Equal(t, s.Snapshot(), got.Snapshot())
		assert.Equal(t, s.StartedAt(), got.StartedAt())
	})

	t.Run("round trips a finished game", func(t *testing.T) {
		s := newTestSession(t, "CRATE")
		play(t, s, "SLATE")
		play(t, s, "CRATE")

		got, err := Restore(s.State(), testWords)

		require.NoError(t, err)
		assert.Equal(t, StatusWon, got.Status())
		assert.Equal(t, s.Snapshot(), got.Snapshot())
	})

	t.Run("rejects guesses after the game ended", func(t *testing.T) {
		_, err := Restore(State{Target: "CRATE", Guesses: []string{"CRATE", "SLATE"}}, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects too many guesses", func(t *testing.T) {
		g := []string{"SLATE", "SLATE", "SLATE", "SLATE", "SLATE", "SLATE", "SLATE"}
		_, err := Restore(State{Target: "CRATE", Guesses: g}, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects malformed pending", func(t *testing.T) {
		_, err := Restore(State{Target: "CRATE", Pending: "CR4"}, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
