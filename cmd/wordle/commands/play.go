package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-engine/internal/game"
	"github.com/robalobadob/wordle-engine/internal/printer"
)

var (
	playAnswer string
	playShare  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Long: `Play reads one guess per line from standard input and prints the
scored row and the keyboard after each accepted guess.

Type :quit to give up.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playAnswer, "answer", "", "fixed answer instead of a random one")
	playCmd.Flags().BoolVar(&playShare, "share", false, "print the emoji grid when the game ends")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	list, err := loadWords()
	if err != nil {
		return printer.Error("Failed to load word lists", err.Error(), []string{"Check the --answers and --allowed files"})
	}

	var sess *game.Session
	if playAnswer != "" {
		sess, err = game.NewSession(playAnswer, list)
	} else {
		sess, err = game.NewRandomSession(list, list)
	}
	if err != nil {
		return printer.Error("Cannot start game", err.Error(), []string{"The answer must be five letters A-Z"})
	}

	return playLoop(cmd.InOrStdin(), cmd.OutOrStdout(), sess, playShare)
}

// playLoop drives sess from lines of in until the game ends, input runs
// out or the player types :quit.
func playLoop(in io.Reader, out io.Writer, sess *game.Session, share bool) error {
	fmt.Fprintf(out, "Guess the %d-letter word in %d tries.\n", game.WordLength, game.MaxGuesses)

	sc := bufio.NewScanner(in)
	for !sess.Status().Terminal() {
		fmt.Fprintf(out, "%d/%d> ", len(sess.Rows())+1, game.MaxGuesses)
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q":
			fmt.Fprintf(out, "\nThe word was %s\n", sess.Target())
			return nil
		}

		if _, err := submitLine(sess, line); err != nil {
			printer.Warning(out, "%s\n", describe(err))
			continue
		}
		snap := sess.Snapshot()
		printer.Board(out, snap)
		printer.Keyboard(out, snap.Hints)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if o, ok := sess.Outcome(); ok {
		printer.Outcome(out, o)
		if share {
			fmt.Fprint(out, printer.Share(sess.Rows()))
		}
	}
	return nil
}

// submitLine types word into an empty pending row and submits it. The
// pending row is emptied again on rejection.
func submitLine(sess *game.Session, word string) (game.Row, error) {
	if len(word) != game.WordLength {
		return game.Row{}, fmt.Errorf("%w: %q", game.ErrInvalidInput, word)
	}
	reset := func() {
		for sess.Pending() != "" {
			if sess.InputBackspace() != nil {
				return
			}
		}
	}
	reset()
	for _, ch := range word {
		if err := sess.InputLetter(ch); err != nil {
			reset()
			return game.Row{}, err
		}
	}
	row, err := sess.SubmitGuess()
	if err != nil {
		reset()
	}
	return row, err
}

func describe(err error) string {
	switch {
	case errors.Is(err, game.ErrNotInWordList):
		return "Not in word list"
	case errors.Is(err, game.ErrInvalidInput), errors.Is(err, game.ErrIncompleteGuess):
		return fmt.Sprintf("Enter a %d-letter word", game.WordLength)
	case errors.Is(err, game.ErrInvalidTransition):
		return "Letters A-Z only"
	}
	return err.Error()
}
