// internal/game/score.go
//
// Two-pass scoring of a guess against a target.
// Inputs are uppercase A–Z and of equal length; anything else is
// ErrInvalidInput so the scorer is safe to call on its own.

package game

import "fmt"

// Score implements the standard Wordle two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as correct and claim that letter instance.
//
// Pass 2:
//   - Walk the remaining positions left to right: if the letter still has an
//     unclaimed occurrence in the target, mark present and claim it;
//     otherwise leave absent.
//
// Exact matches always claim their count first, so a letter is never
// reported correct+present more times than the target contains it.
func Score(guess, target string) ([]LetterState, error) {
	if err := checkPair(guess, target); err != nil {
		return nil, err
	}

	n := len(guess)
	res := make([]LetterState, n)

	// Letter frequency of the target (A–Z).
	var counts [26]int
	for i := 0; i < n; i++ {
		counts[idx(target[i])]++
	}

	// First pass: exact matches.
	for i := 0; i < n; i++ {
		res[i] = StateAbsent
		if guess[i] == target[i] {
			res[i] = StateCorrect
			counts[idx(guess[i])]--
		}
	}

	// Second pass: presents from what is left.
	for i := 0; i < n; i++ {
		if res[i] == StateCorrect {
			continue
		}
		j := idx(guess[i])
		if counts[j] > 0 {
			res[i] = StatePresent
			counts[j]--
		}
	}
	return res, nil
}

func checkPair(guess, target string) error {
	if len(guess) == 0 || len(guess) != len(target) {
		return fmt.Errorf("%w: guess has %d letters, target has %d", ErrInvalidInput, len(guess), len(target))
	}
	if !isUpperAlpha(guess) {
		return fmt.Errorf("%w: guess %q is not A-Z", ErrInvalidInput, guess)
	}
	if !isUpperAlpha(target) {
		return fmt.Errorf("%w: target is not A-Z", ErrInvalidInput)
	}
	return nil
}

// idx maps an uppercase ASCII letter to 0..25.
func idx(b byte) int { return int(b - 'A') }

// isUpperAlpha checks that a string consists only of A–Z.
func isUpperAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
