// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - LetterState: per-letter result of a guess (correct/present/absent).
//   - Row: a submitted guess paired with its states.
//   - KeyboardHints: best-known state per letter across a session.
//   - Status: session lifecycle (in_progress → won | lost).

package game

const (
	// WordLength is the number of letters in every target and guess.
	WordLength = 5
	// MaxGuesses is the number of rows a player gets.
	MaxGuesses = 6
)

// LetterState represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the target at this position.
//   - "present": letter is in the target at another, unclaimed position.
//   - "absent":  no unclaimed occurrence of the letter remains in the target.
type LetterState string

const (
	StateCorrect LetterState = "correct"
	StatePresent LetterState = "present"
	StateAbsent  LetterState = "absent"
)

// Priority orders states for hint merging: correct > present > absent.
// Unknown values rank below absent.
func (s LetterState) Priority() int {
	switch s {
	case StateCorrect:
		return 3
	case StatePresent:
		return 2
	case StateAbsent:
		return 1
	default:
		return 0
	}
}

// Row is one submitted guess and its feedback, index-aligned.
type Row struct {
	Guess  string        `json:"guess"`
	States []LetterState `json:"states"`
}

// Status is the coarse lifecycle state of a session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Terminal reports whether no further moves are accepted.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// KeyboardHints maps an uppercase letter to the best state observed for it.
type KeyboardHints map[byte]LetterState

// Merge folds one scored guess into the hints. For each letter the highest
// priority state across all of its positions wins, and an existing hint is
// never downgraded.
func (h KeyboardHints) Merge(guess string, states []LetterState) {
	for i := 0; i < len(guess) && i < len(states); i++ {
		ch := guess[i]
		if states[i].Priority() > h[ch].Priority() {
			h[ch] = states[i]
		}
	}
}

// Clone returns an independent copy.
func (h KeyboardHints) Clone() KeyboardHints {
	out := make(KeyboardHints, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// AsStrings keys the hints by one-letter strings, which is what JSON
// encoders and renderers want.
func (h KeyboardHints) AsStrings() map[string]LetterState {
	out := make(map[string]LetterState, len(h))
	for k, v := range h {
		out[string(k)] = v
	}
	return out
}

// AllCorrect reports whether every state is StateCorrect.
func AllCorrect(states []LetterState) bool {
	if len(states) == 0 {
		return false
	}
	for _, s := range states {
		if s != StateCorrect {
			return false
		}
	}
	return true
}

// WordSource supplies targets for new sessions.
type WordSource interface {
	RandomWord() string
}

// WordValidator decides whether a full guess is an accepted dictionary word.
type WordValidator interface {
	IsValidWord(candidate string) bool
}

// WordValidatorFunc adapts a plain function to WordValidator.
type WordValidatorFunc func(candidate string) bool

// IsValidWord calls f(candidate).
func (f WordValidatorFunc) IsValidWord(candidate string) bool { return f(candidate) }
