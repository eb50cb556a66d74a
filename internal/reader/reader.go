// Package reader streams input files line by line.
package reader

import (
	"bufio"
	"fmt"
	"os"

	"textmetrics/internal/model"
)

// EachLine opens the file at path and passes every raw line to fn in
// order, with 1-based line numbers. The file handle is closed on all
// paths. A missing or unreadable file is returned as an error before
// fn is ever called.
func EachLine(path string, fn func(model.Line) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	num := 0
	for scanner.Scan() {
		num++
		if err := fn(model.Line{Num: num, Text: scanner.Text()}); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
