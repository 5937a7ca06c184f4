package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/robalobadob/wordle-engine/internal/game"
)

var (
	// Color definitions
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)

	// Tiles
	correctTile = color.New(color.BgGreen, color.FgBlack, color.Bold)
	presentTile = color.New(color.BgYellow, color.FgBlack, color.Bold)
	absentTile  = color.New(color.BgHiBlack, color.FgWhite)
	unknownTile = color.New(color.FgWhite)
)

var keyboardRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

func tile(c *color.Color, ch byte) string {
	return c.Sprintf(" %c ", ch)
}

func tileColor(st game.LetterState) *color.Color {
	switch st {
	case game.StateCorrect:
		return correctTile
	case game.StatePresent:
		return presentTile
	case game.StateAbsent:
		return absentTile
	}
	return unknownTile
}

// Row writes one scored guess as coloured tiles.
func Row(w io.Writer, r game.Row) {
	var b strings.Builder
	for i := 0; i < len(r.Guess); i++ {
		var st game.LetterState
		if i < len(r.States) {
			st = r.States[i]
		}
		b.WriteString(tile(tileColor(st), r.Guess[i]))
	}
	fmt.Fprintln(w, b.String())
}

// Board writes every submitted row, then the pending row, then blank rows
// up to MaxGuesses while the game is running.
func Board(w io.Writer, snap game.Snapshot) {
	for _, r := range snap.Rows {
		Row(w, r)
	}
	if snap.Status != game.StatusInProgress {
		return
	}
	blank := game.MaxGuesses - len(snap.Rows)
	if blank > 0 {
		pending := snap.Pending + strings.Repeat("_", game.WordLength-len(snap.Pending))
		Row(w, game.Row{Guess: pending})
		blank--
	}
	for ; blank > 0; blank-- {
		Row(w, game.Row{Guess: strings.Repeat("_", game.WordLength)})
	}
}

// Keyboard writes the three keyboard rows coloured by the best known state.
func Keyboard(w io.Writer, hints map[string]game.LetterState) {
	for i, row := range keyboardRows {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", i))
		for j := 0; j < len(row); j++ {
			b.WriteString(tile(tileColor(hints[string(row[j])]), row[j]))
		}
		fmt.Fprintln(w, b.String())
	}
}

// Outcome writes the end-of-game message.
func Outcome(w io.Writer, o game.Outcome) {
	switch o.Status {
	case game.StatusWon:
		green.Fprintf(w, "✓ Solved in %d/%d\n", o.GuessesUsed, game.MaxGuesses)
	case game.StatusLost:
		red.Fprintf(w, "✗ Out of guesses. The word was %s\n", o.Target)
	}
}

// Share renders rows as the familiar emoji grid.
func Share(rows []game.Row) string {
	var b strings.Builder
	for _, r := range rows {
		for _, st := range r.States {
			switch st {
			case game.StateCorrect:
				b.WriteString("🟩")
			case game.StatePresent:
				b.WriteString("🟨")
			default:
				b.WriteString("⬛")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Success prints a success message in green with a checkmark prefix
func Success(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "✓ %s", fmt.Sprintf(format, a...))
}

// Warning prints a warning message in yellow with a warning emoji prefix
func Warning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "⚠️  %s", fmt.Sprintf(format, a...))
}

// Error prints a formatted error with title, explanation and suggestions to
// stderr and returns a simple error for Cobra.
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(os.Stderr, "%s\n\n", title)
	if explanation != "" {
		fmt.Fprintf(os.Stderr, "%s\n", explanation)
	}

	if len(suggestions) > 0 {
		fmt.Fprintf(os.Stderr, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(os.Stderr, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(os.Stderr, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	// Return simple error for Cobra (won't be printed due to SilenceErrors)
	return fmt.Errorf("%s", title)
}
