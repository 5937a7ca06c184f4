// Package assets embeds the default word lists so the server and CLI run
// without any files configured.
package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// ReadLines returns the non-empty, non-comment lines of r, trimmed and
// upper-cased.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}

func readEmbedded(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

func AnswersList() ([]string, error) {
	return readEmbedded("answers.txt")
}

func AllowedList() ([]string, error) {
	return readEmbedded("allowed.txt")
}
