// Package numconv converts integer input lines to binary and
// hexadecimal representations.
//
// Conventions: non-negative values print with minimal digits and no
// prefix; negative values print as fixed-width two's complement at the
// configured bit width (hex uses width/4 lowercase digits). A negative
// value that does not fit the width is a recoverable error, not a
// silent wrap.
package numconv

import (
	"fmt"
	"strconv"
	"strings"

	"textmetrics/internal/model"
)

// Conversion is one converted input value. Index is 1-based over the
// valid values, in input order.
type Conversion struct {
	Index  int
	Value  int64
	Binary string
	Hex    string
}

// Converter parses integers and renders their base conversions.
type Converter struct {
	bits    int
	rows    []Conversion
	invalid []model.LineError
}

// New returns a converter for the given two's-complement width.
func New(opts model.ConvertOptions) (*Converter, error) {
	switch opts.Bits {
	case 8, 16, 32, 64:
	default:
		return nil, fmt.Errorf("bits must be 8, 16, 32 or 64, got %d", opts.Bits)
	}
	return &Converter{bits: opts.Bits}, nil
}

// Add parses one input line. Non-integer lines and negatives that do
// not fit the configured width are recorded as invalid.
func (c *Converter) Add(line model.Line) error {
	text := strings.TrimSpace(line.Text)
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		c.invalid = append(c.invalid, model.LineError{Line: line.Num, Text: line.Text})
		return nil
	}
	binary, err := FormatBinary(value, c.bits)
	if err != nil {
		c.invalid = append(c.invalid, model.LineError{Line: line.Num, Text: line.Text})
		return nil
	}
	hex, err := FormatHex(value, c.bits)
	if err != nil {
		c.invalid = append(c.invalid, model.LineError{Line: line.Num, Text: line.Text})
		return nil
	}
	c.rows = append(c.rows, Conversion{
		Index:  len(c.rows) + 1,
		Value:  value,
		Binary: binary,
		Hex:    hex,
	})
	return nil
}

// Rows returns the conversions in input order.
func (c *Converter) Rows() []Conversion {
	return c.rows
}

// Invalid returns the lines that failed to parse or fit, in input order.
func (c *Converter) Invalid() []model.LineError {
	return c.invalid
}

// Count returns the number of converted values so far.
func (c *Converter) Count() int {
	return len(c.rows)
}

// FormatBinary renders value in base 2. Negatives use two's complement
// padded to bits digits.
func FormatBinary(value int64, bits int) (string, error) {
	if value >= 0 {
		return strconv.FormatInt(value, 2), nil
	}
	u, err := twosComplement(value, bits)
	if err != nil {
		return "", err
	}
	return pad(strconv.FormatUint(u, 2), bits), nil
}

// FormatHex renders value in lowercase base 16 without a prefix.
// Negatives use two's complement padded to bits/4 digits.
func FormatHex(value int64, bits int) (string, error) {
	if value >= 0 {
		return strconv.FormatInt(value, 16), nil
	}
	u, err := twosComplement(value, bits)
	if err != nil {
		return "", err
	}
	return pad(strconv.FormatUint(u, 16), bits/4), nil
}

func twosComplement(value int64, bits int) (uint64, error) {
	if bits < 64 && value < -(int64(1)<<(bits-1)) {
		return 0, fmt.Errorf("value %d does not fit in %d bits", value, bits)
	}
	mask := ^uint64(0)
	if bits < 64 {
		mask = (uint64(1) << bits) - 1
	}
	return uint64(value) & mask, nil
}

func pad(digits string, width int) string {
	if len(digits) >= width {
		return digits
	}
	return strings.Repeat("0", width-len(digits)) + digits
}
