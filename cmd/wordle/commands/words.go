package commands

import (
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-engine/internal/printer"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Show word list sizes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := loadWords()
		if err != nil {
			return printer.Error("Failed to load word lists", err.Error(), []string{"Check the --answers and --allowed files"})
		}
		a, g := list.Stats()
		printer.Success(cmd.OutOrStdout(), "%d answers, %d allowed guesses\n", a, g)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(wordsCmd)
}
