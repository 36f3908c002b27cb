package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed words.txt migrations/*.sql
var FS embed.FS

// ParseLines splits s into lowercase entries, skipping blanks and # comments.
func ParseLines(s string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.ToLower(line))
	}
	return out
}

// WordList returns the embedded default word list.
func WordList() ([]string, error) {
	b, err := FS.ReadFile("words.txt")
	if err != nil {
		return nil, err
	}
	return ParseLines(string(b)), nil
}

// Migrations returns the embedded SQL migrations rooted at their directory.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "migrations")
}
