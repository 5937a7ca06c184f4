package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle-engine/internal/game"
	"github.com/robalobadob/wordle-engine/internal/printer"
)

var scoreOutput string

// scoreResult is what `wordle score` prints in json and yaml mode.
type scoreResult struct {
	Guess  string             `json:"guess" yaml:"guess"`
	Target string             `json:"target" yaml:"target"`
	States []game.LetterState `json:"states" yaml:"states"`
	Solved bool               `json:"solved" yaml:"solved"`
}

var scoreCmd = &cobra.Command{
	Use:   "score GUESS TARGET",
	Short: "Score one guess against a target",
	Long: `Score prints the feedback for GUESS against TARGET. Both words must
have the same length and contain only letters; no word list is consulted.

Examples:
  wordle score trace crate
  wordle score speed erase -o json`,
	Args: cobra.ExactArgs(2),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreOutput, "output", "o", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	guess := strings.ToUpper(strings.TrimSpace(args[0]))
	target := strings.ToUpper(strings.TrimSpace(args[1]))

	states, err := game.Score(guess, target)
	if err != nil {
		return printer.Error("Cannot score guess", err.Error(), []string{"Use two words of equal length, letters A-Z only"})
	}
	res := scoreResult{Guess: guess, Target: target, States: states, Solved: game.AllCorrect(states)}

	out := cmd.OutOrStdout()
	switch scoreOutput {
	case "text":
		printer.Row(out, game.Row{Guess: guess, States: states})
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return printer.Error(fmt.Sprintf("Unknown output format %q", scoreOutput), "", []string{"Use -o text, -o json or -o yaml"})
	}
	return nil
}
