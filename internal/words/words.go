// internal/words/words.go
//
// Word sources for new games.
//
// Responsibilities:
//   - Load the word list from a file or fall back to the embedded default.
//   - Supply words through the Source interface: Random (crypto random pick)
//     and Daily (deterministic per UTC date, see daily.go).
//
// Word list rules:
//   • One word per line, blank lines and # comments ignored.
//   • Words are lowercased; entries with non-letters are dropped.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"unicode"

	"github.com/robalobadob/hangman/assets"
)

// ErrEmptyList is returned when no usable word could be loaded.
var ErrEmptyList = errors.New("words: word list is empty")

// Source hands out the secret word for a new game.
type Source interface {
	Next() (string, error)
}

// Load reads the list at path, or the embedded default when path is empty.
func Load(path string) ([]string, error) {
	var lines []string
	if path == "" {
		list, err := assets.WordList()
		if err != nil {
			return nil, err
		}
		lines = list
	} else {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read word list: %w", err)
		}
		lines = assets.ParseLines(string(b))
	}

	out := make([]string, 0, len(lines))
	for _, w := range lines {
		if isWord(w) {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyList
	}
	return out, nil
}

// isWord reports whether s is made of letters only.
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Random picks a cryptographically random word from a fixed list.
type Random struct {
	list []string
}

// NewRandom returns a Random source over list.
func NewRandom(list []string) (*Random, error) {
	if len(list) == 0 {
		return nil, ErrEmptyList
	}
	return &Random{list: append([]string(nil), list...)}, nil
}

func (r *Random) Next() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(r.list))))
	if err != nil {
		return "", fmt.Errorf("pick word: %w", err)
	}
	return r.list[n.Int64()], nil
}

// Fixed always returns the same word. Useful for tests and demos.
type Fixed string

func (f Fixed) Next() (string, error) { return string(f), nil }
