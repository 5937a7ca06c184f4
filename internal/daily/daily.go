// Package daily picks one deterministic target per UTC day and records
// daily results for the leaderboard.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Answers is the subset of words.List the daily source needs.
type Answers interface {
	Answers() []string
	AnswerAt(i int) string
}

// Source is a game.WordSource that returns the same word all day.
type Source struct {
	List Answers
	Salt string
	Now  func() time.Time // defaults to time.Now
}

// Today returns the date key, word index and word for the current day.
func (s Source) Today() (date string, idx int, word string) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	t := now()
	idx = WordIndex(t, s.Salt, len(s.List.Answers()))
	return DateKey(t), idx, s.List.AnswerAt(idx)
}

// RandomWord implements game.WordSource.
func (s Source) RandomWord() string {
	_, _, w := s.Today()
	return w
}
