// Package dataset loads and shuffles line-oriented training corpora.
//
// A corpus file holds one document per line; leading and trailing whitespace
// is trimmed and blank lines are skipped.
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/rand"
)

// Load reads a corpus file, one trimmed document per non-blank line.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	var docs []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			docs = append(docs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return docs, nil
}

// Shuffle permutes docs in place using rng.
func Shuffle(docs []string, rng *rand.Rand) {
	rng.Shuffle(len(docs), func(i, j int) {
		docs[i], docs[j] = docs[j], docs[i]
	})
}
