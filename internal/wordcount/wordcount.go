// Package wordcount builds word-frequency tables from text lines.
//
// Conventions: lines are split on Unicode whitespace; leading and
// trailing punctuation and symbol runes are stripped unless disabled;
// case is preserved unless folding is enabled. Report rows are ordered
// by descending count, ties broken lexicographically.
package wordcount

import (
	"sort"
	"strings"
	"unicode"

	"textmetrics/internal/model"
)

// Row is one word and its occurrence count.
type Row struct {
	Word  string
	Count int
}

// Counter tallies word occurrences.
type Counter struct {
	opts    model.WordCountOptions
	counts  map[string]int
	total   int
	skipped []model.LineError
}

// New returns an empty counter with the given tokenization options.
func New(opts model.WordCountOptions) *Counter {
	return &Counter{
		opts:   opts,
		counts: make(map[string]int),
	}
}

// Add tokenizes one input line and updates the counts. Tokens that are
// empty after punctuation stripping are recorded as skipped.
func (c *Counter) Add(line model.Line) error {
	for _, token := range strings.Fields(line.Text) {
		word := c.normalize(token)
		if word == "" {
			c.skipped = append(c.skipped, model.LineError{Line: line.Num, Text: token})
			continue
		}
		c.counts[word]++
		c.total++
	}
	return nil
}

// Rows returns the frequency table sorted by descending count, ties
// broken lexicographically.
func (c *Counter) Rows() []Row {
	rows := make([]Row, 0, len(c.counts))
	for word, count := range c.counts {
		rows = append(rows, Row{Word: word, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].Word < rows[j].Word
		}
		return rows[i].Count > rows[j].Count
	})
	return rows
}

// Total returns the number of counted tokens.
func (c *Counter) Total() int {
	return c.total
}

// Skipped returns the tokens dropped by normalization, in input order.
func (c *Counter) Skipped() []model.LineError {
	return c.skipped
}

func (c *Counter) normalize(token string) string {
	word := token
	if !c.opts.KeepPunct {
		word = strings.TrimFunc(word, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
	}
	if c.opts.Lowercase {
		word = strings.ToLower(word)
	}
	return word
}
