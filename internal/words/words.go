// internal/words/words.go
//
// Word list management for game sessions.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to the
//     embedded defaults in the assets package.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Act as game.WordSource (RandomWord) and game.WordValidator (IsValidWord).
//
// Word Lists:
//   - "answers": canonical targets (exactly 5 letters A–Z).
//   - "allowed": valid guesses (always includes answers).
//
// Load behaviour:
//  1. answersPath and allowedPath both set: answers from the first, allowed
//     guesses from the second.
//  2. Only allowedPath set: that file is used for both.
//  3. Neither set: embedded defaults.
//
// Lines are trimmed and upper-cased; blank lines, '#' comments and words
// that are not game.WordLength letters are skipped.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordle-engine/assets"
	"github.com/robalobadob/wordle-engine/internal/game"
)

// ErrNoAnswers is returned when loading leaves the answers list empty.
var ErrNoAnswers = errors.New("words: answers list is empty")

// List is an immutable pair of word lists. It is safe for concurrent use.
type List struct {
	answers    []string
	answersSet map[string]struct{}
	allowedSet map[string]struct{} // answers ∪ guesses
}

// New builds a List from raw word slices.
func New(answers, allowed []string) (*List, error) {
	ans := normalize(answers)
	if len(ans) == 0 {
		return nil, ErrNoAnswers
	}
	l := &List{
		answers:    ans,
		answersSet: toSet(ans),
		allowedSet: toSet(ans),
	}
	for _, w := range normalize(allowed) {
		l.allowedSet[w] = struct{}{}
	}
	return l, nil
}

// Load reads the lists per the rules in the package comment.
func Load(answersPath, allowedPath string) (*List, error) {
	var ansList, allowList []string
	var err error

	switch {
	// Case 1: both lists provided
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	// Case 2: only allowed file provided → use for both
	case allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	// Case 3: fallback to embedded defaults
	default:
		return Embedded()
	}
	return New(ansList, allowList)
}

// Embedded returns the lists compiled into the binary.
func Embedded() (*List, error) {
	ans, err := assets.AnswersList()
	if err != nil {
		return nil, fmt.Errorf("embedded answers: %w", err)
	}
	all, err := assets.AllowedList()
	if err != nil {
		return nil, fmt.Errorf("embedded allowed: %w", err)
	}
	return New(ans, all)
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// normalize keeps only WordLength A–Z words, de-duplicated, in order.
func normalize(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, w := range in {
		w = strings.ToUpper(strings.TrimSpace(w))
		if len(w) != game.WordLength || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// RandomWord returns a cryptographically random answer.
func (l *List) RandomWord() string {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[nBig.Int64()]
}

// IsValidWord reports whether w is an accepted guess (answers ∪ guesses).
func (l *List) IsValidWord(w string) bool {
	_, ok := l.allowedSet[strings.ToUpper(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *List) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToUpper(w)]
	return ok
}

// Answers returns a copy of the answers in load order.
func (l *List) Answers() []string {
	out := make([]string, len(l.answers))
	copy(out, l.answers)
	return out
}

// AnswerAt returns the i-th answer; used for deterministic daily words.
func (l *List) AnswerAt(i int) string { return l.answers[i%len(l.answers)] }

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}

var (
	_ game.WordSource    = (*List)(nil)
	_ game.WordValidator = (*List)(nil)
)
