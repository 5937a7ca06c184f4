package printer

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-engine/internal/game"
)

func TestMain(m *testing.M) {
	// plain text so output can be compared
	color.NoColor = true
	os.Exit(m.Run())
}

// scored builds a row the way a session would.
func scored(t *testing.T, guess, target string) game.Row {
	t.Helper()
	states, err := game.Score(guess, target)
	require.NoError(t, err)
	return game.Row{Guess: guess, States: states}
}

func TestRow(t *testing.T) {
	var buf bytes.Buffer

	Row(&buf, scored(t, "TRACE", "CRATE"))

	assert.Equal(t, " T  R  A  C  E \n", buf.String())
}

func TestBoard(t *testing.T) {
	t.Run("in progress pads to six rows", func(t *testing.T) {
		var buf bytes.Buffer
		Board(&buf, game.Snapshot{
			Status:  game.StatusInProgress,
			Rows:    []game.Row{{Guess: "SLATE", States: make([]game.LetterState, 5)}},
			Pending: "CR",
		})

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, game.MaxGuesses)
		assert.Equal(t, " C  R  _  _  _ ", lines[1])
		assert.Equal(t, " _  _  _  _  _ ", lines[5])
	})

	t.Run("finished shows only rows", func(t *testing.T) {
		var buf bytes.Buffer
		Board(&buf, game.Snapshot{
			Status: game.StatusWon,
			Rows:   []game.Row{{Guess: "CRATE"}},
		})

		assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	})
}

func TestKeyboard(t *testing.T) {
	var buf bytes.Buffer

	Keyboard(&buf, map[string]game.LetterState{"Q": game.StateAbsent})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], " Q  W "))
	assert.True(t, strings.HasPrefix(lines[2], "   Z "))
}

func TestOutcome(t *testing.T) {
	var buf bytes.Buffer

	Outcome(&buf, game.Outcome{Status: game.StatusWon, GuessesUsed: 3})
	Outcome(&buf, game.Outcome{Status: game.StatusLost, Target: "CRATE"})
	Outcome(&buf, game.Outcome{Status: game.StatusInProgress})

	assert.Equal(t, "✓ Solved in 3/6\n✗ Out of guesses. The word was CRATE\n", buf.String())
}

func TestShare(t *testing.T) {
	rows := []game.Row{
		scored(t, "TRACE", "CRATE"),
		scored(t, "CRATE", "CRATE"),
	}

	assert.Equal(t, "🟨🟩🟩🟨🟩\n🟩🟩🟩🟩🟩\n", Share(rows))
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		err := Error("Test Error", "This is a test error", nil)
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
	})

	t.Run("returns error with title for multiple suggestions", func(t *testing.T) {
		err := Error("Test Error", "Explanation", []string{"First option", "Second option"})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
	})
}
