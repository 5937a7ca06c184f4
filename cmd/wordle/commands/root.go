package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-engine/internal/words"
)

var (
	answersFile string
	allowedFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wordle",
	Short: "Wordle - guess the five-letter word in six tries",
	Long: `Wordle plays the five-letter word game in the terminal, scores single
guesses, and serves the game over HTTP and WebSocket for browser clients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	// Errors are printed with colour by the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&answersFile, "answers", "", "answers word list (one word per line)")
	rootCmd.PersistentFlags().StringVar(&allowedFile, "allowed", "", "allowed guesses word list (one word per line)")
}

// loadWords reads the lists named by --answers/--allowed, else the embedded ones.
func loadWords() (*words.List, error) {
	return words.Load(answersFile, allowedFile)
}
