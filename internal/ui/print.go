// Package ui renders generated passphrases for terminal output.
//
// It knows nothing about randomness or word lists; it only formats what the
// generator produced. Labels get a little ANSI styling on interactive
// terminals and plain text everywhere else.
package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mkarhu/diceware/internal/passphrase"
)

// ANSI escape codes for label styling.
const (
	reset = "\x1b[0m"
	bold  = "\x1b[1m"
)

// Printer writes passphrases and grids to an output stream.
type Printer struct {
	out       io.Writer
	separator string
	color     bool
}

// NewPrinter creates a Printer.
//
// Parameters:
//   - out: the destination stream
//   - separator: string placed between words of a single passphrase
//   - color: whether to apply ANSI styling (enable only on a TTY)
func NewPrinter(out io.Writer, separator string, color bool) *Printer {
	return &Printer{out: out, separator: separator, color: color}
}

// Passphrase prints one generated passphrase.
//
// When substitutions were applied a second line shows the variant with
// special characters; the plain line always shows the unmodified words.
func (p *Printer) Passphrase(pp passphrase.Passphrase, specials int) {
	fmt.Fprintf(p.out, "%s: %s\n", p.label("passphrase   "), strings.Join(pp.Words, p.separator))
	if specials > 0 {
		fmt.Fprintf(p.out, "%s: %s\n", p.label("with specials"), strings.Join(pp.WithSpecials, p.separator))
	}
}

// Grid prints a grid of passphrase rows, one row per line, every word padded
// to the grid's longest word so the columns line up.
//
// When substitutions were applied the substituted rows are shown; otherwise
// the plain rows.
func (p *Printer) Grid(g passphrase.Grid, specials int) {
	for _, row := range g.Rows {
		words := row.Words
		if specials > 0 {
			words = row.WithSpecials
		}
		padded := make([]string, len(words))
		for i, w := range words {
			padded[i] = pad(w, g.MaxWordLen)
		}
		fmt.Fprintln(p.out, strings.Join(padded, " "))
	}
}

// label styles a line label when color is on.
func (p *Printer) label(s string) string {
	if !p.color {
		return s
	}
	return bold + s + reset
}

// pad left-justifies w in a field of width runes.
func pad(w string, width int) string {
	n := utf8.RuneCountInString(w)
	if n >= width {
		return w
	}
	return w + strings.Repeat(" ", width-n)
}
