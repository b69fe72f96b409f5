// Package titles reads the newline-delimited list of movie titles fed to the
// collector.
package titles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoTitles is returned when the input holds no usable title.
var ErrNoTitles = errors.New("no movie titles supplied")

// Read returns the non-empty, trimmed lines of r in input order. Lines of any
// length are accepted and duplicates are kept.
func Read(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, errors.New("titles: nil reader")
	}
	reader := bufio.NewReader(r)
	var out []string
	for {
		line, err := reader.ReadString('\n')
		if title := strings.TrimSpace(line); title != "" {
			out = append(out, title)
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read titles: %w", err)
		}
	}
}

// Require returns ErrNoTitles for an empty list.
func Require(list []string) error {
	if len(list) == 0 {
		return ErrNoTitles
	}
	return nil
}
