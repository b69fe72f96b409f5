package stats

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// Entry is one name with its occurrence count.
type Entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Counter counts occurrences per name and remembers the order in which names
// were first seen. That order breaks ties in rankings and survives JSON
// round-trips because keys are written in insertion order.
type Counter struct {
	order  []string
	counts map[string]int
}

// Inc adds one occurrence of name.
func (c *Counter) Inc(name string) {
	c.add(name, 1)
}

func (c *Counter) add(name string, n int) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name] += n
}

// Count returns the occurrences recorded for name.
func (c *Counter) Count(name string) int {
	return c.counts[name]
}

// Entries returns all names in first-insertion order.
func (c *Counter) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, Entry{Name: name, Count: c.counts[name]})
	}
	return out
}

// Top returns at most n entries ordered by count descending.
func (c *Counter) Top(n int) []Entry {
	return c.ranked(n, func(a, b Entry) bool { return a.Count > b.Count })
}

// Bottom returns at most n entries ordered by count ascending.
func (c *Counter) Bottom(n int) []Entry {
	return c.ranked(n, func(a, b Entry) bool { return a.Count < b.Count })
}

func (c *Counter) ranked(n int, less func(a, b Entry) bool) []Entry {
	entries := c.Entries()
	sort.SliceStable(entries, func(i, j int) bool { return less(entries[i], entries[j]) })
	if n < 0 {
		n = 0
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}

// MarshalJSON writes the counter as an object with keys in insertion order.
func (c Counter) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", c.counts[name])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of name to positive count, preserving key order.
func (c *Counter) UnmarshalJSON(data []byte) error {
	*c = Counter{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("counter must be a JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("counter key %v is not a string", tok)
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("counter %q: %w", name, err)
		}
		if count <= 0 {
			return fmt.Errorf("counter %q: count must be positive, got %d", name, count)
		}
		if _, dup := c.counts[name]; dup {
			return fmt.Errorf("counter %q: duplicate key", name)
		}
		c.add(name, count)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
