package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	C = StateCorrect
	P = StatePresent
	A = StateAbsent
)

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		target string
		want   []LetterState
	}{
		{"all correct", "CRATE", "CRATE", []LetterState{C, C, C, C, C}},
		{"all absent", "PIGMY", "CRATE", []LetterState{A, A, A, A, A}},
		{"anagram", "TRACE", "CRATE", []LetterState{P, C, C, P, C}},
		{"exact matches claim first", "AABB", "ABAB", []LetterState{C, P, P, C}},
		{"duplicates bounded by target", "SPEED", "ERASE", []LetterState{P, A, P, P, A}},
		{"excess copies absent", "EEEEE", "ERASE", []LetterState{C, A, A, A, C}},
		{"double letter both present", "LLAMA", "HELLO", []LetterState{P, P, A, A, A}},
		{"correct then present of same letter", "ABBEY", "KEBAB", []LetterState{P, P, C, P, A}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: scoring the guess
			got, err := Score(tt.guess, tt.target)

			// Then: states match position by position
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScore_InvalidInput(t *testing.T) {
	tests := []struct {
		name, guess, target string
	}{
		{"length mismatch", "CRAT", "CRATE"},
		{"empty", "", ""},
		{"lowercase guess", "crate", "CRATE"},
		{"digit in target", "CRATE", "CR4TE"},
		{"punctuation", "CR-TE", "CRATE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.guess, tt.target)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, got)
		})
	}
}

func TestScore_Idempotent(t *testing.T) {
	first, err := Score("SPEED", "ERASE")
	require.NoError(t, err)

	second, err := Score("SPEED", "ERASE")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScore_LetterCountNeverExceedsTarget(t *testing.T) {
	// Given: random words over a small alphabet so duplicates are common
	rng := rand.New(rand.NewSource(42))
	word := func() string {
		b := make([]byte, WordLength)
		for i := range b {
			b[i] = "ABCDE"[rng.Intn(5)]
		}
		return string(b)
	}

	for n := 0; n < 2000; n++ {
		guess, target := word(), word()

		// When: scoring
		states, err := Score(guess, target)
		require.NoError(t, err)

		// Then: correct+present per letter is bounded by the target's count
		var inTarget, marked [26]int
		for i := 0; i < len(target); i++ {
			inTarget[target[i]-'A']++
		}
		for i, s := range states {
			if s == StateCorrect {
				require.Equal(t, target[i], guess[i], "correct must be an exact match: %s vs %s", guess, target)
			}
			if s != StateAbsent {
				marked[guess[i]-'A']++
			}
		}
		for l := 0; l < 26; l++ {
			require.LessOrEqual(t, marked[l], inTarget[l], "%s vs %s letter %c", guess, target, 'A'+l)
		}

		// Then: every exact match is reported correct
		for i := range guess {
			if guess[i] == target[i] {
				require.Equal(t, StateCorrect, states[i])
			}
		}
	}
}

func TestKeyboardHints_Merge(t *testing.T) {
	t.Run("highest state within one guess wins", func(t *testing.T) {
		// Given: a letter that is absent at one position and correct at another
		h := KeyboardHints{}

		// When: merging
		h.Merge("AAB", []LetterState{A, C, P})

		// Then: the best state is kept
		assert.Equal(t, C, h['A'])
		assert.Equal(t, P, h['B'])
	})

	t.Run("order within a guess does not matter", func(t *testing.T) {
		h := KeyboardHints{}
		h.Merge("AAB", []LetterState{C, A, A})

		assert.Equal(t, C, h['A'])
		assert.Equal(t, A, h['B'])
	})

	t.Run("never downgrades", func(t *testing.T) {
		// Given: hints with a correct and a present letter
		h := KeyboardHints{'A': C, 'B': P}

		// When: a later guess reports them worse
		h.Merge("AB", []LetterState{A, A})

		// Then: hints are unchanged
		assert.Equal(t, C, h['A'])
		assert.Equal(t, P, h['B'])
	})

	t.Run("upgrades", func(t *testing.T) {
		h := KeyboardHints{'A': A, 'B': P}
		h.Merge("AB", []LetterState{P, C})

		assert.Equal(t, P, h['A'])
		assert.Equal(t, C, h['B'])
	})
}

func TestAllCorrect(t *testing.T) {
	assert.True(t, AllCorrect([]LetterState{C, C, C}))
	assert.False(t, AllCorrect([]LetterState{C, P, C}))
	assert.False(t, AllCorrect(nil))
}
