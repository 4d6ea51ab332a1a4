// Package passphrase assembles Diceware passphrases: uniform word selection
// from a validated list, bounded special-character substitution, and the grid
// mode that generates several independent rows at once.
package passphrase

import (
	"unicode/utf8"

	"github.com/mkarhu/diceware/internal/entropy"
	"github.com/mkarhu/diceware/internal/wordlist"
)

// SpecialChars is the substitution alphabet: 26 symbols and 10 digits.
// Substitution draws index with entropy.Uniform over len(specialRunes), so
// the alphabet and the draw bound cannot drift apart.
const SpecialChars = `~!#$%^&*()-=+[]\{}:;"'<>?/0123456789`

var specialRunes = []rune(SpecialChars)

// Passphrase is one generated row of words.
//
// WithSpecials carries the same words after substitution. When no
// substitutions were requested it aliases Words unchanged.
type Passphrase struct {
	Words        []string
	WithSpecials []string
}

// Grid is a set of independently generated passphrase rows plus the longest
// plain-word length across all rows, used for column alignment on output.
type Grid struct {
	Rows       []Passphrase
	MaxWordLen int
}

// Generator draws passphrases from a word list using an entropy source.
//
// The source is owned exclusively by the Generator for the duration of a
// generation request; grid rows reuse it sequentially.
type Generator struct {
	list wordlist.List
	src  entropy.Source
}

// NewGenerator creates a Generator over a validated word list.
//
// The list must already hold exactly wordlist.Size entries; NewGenerator
// panics otherwise, since an unvalidated list reaching this layer is a
// programming error, not a runtime condition.
func NewGenerator(list wordlist.List, src entropy.Source) *Generator {
	if len(list) != wordlist.Size {
		panic("passphrase: word list must be validated before use")
	}
	return &Generator{list: list, src: src}
}

// Generate produces one passphrase of the given word count, applying the
// given number of special-character substitution rounds.
//
// Words are drawn independently and uniformly with replacement. Each
// substitution round draws a (word, position, character) triple uniformly and
// overwrites one rune; rounds may land on the same position, in which case
// the last write wins, so the result differs from the plain words in at most
// `specials` positions.
//
// Parameters:
//   - words: number of words to draw, >= 1
//   - specials: number of substitution rounds, >= 0
//
// Returns the passphrase, or the entropy source's error unchanged. On error
// nothing partial is returned.
func (g *Generator) Generate(words, specials int) (Passphrase, error) {
	if words < 1 || specials < 0 {
		panic("passphrase: parameters must be validated by the caller")
	}

	selected := make([]string, words)
	for i := range selected {
		idx, err := entropy.Uniform(g.src, len(g.list))
		if err != nil {
			return Passphrase{}, err
		}
		selected[i] = g.list[idx]
	}

	if specials == 0 {
		return Passphrase{Words: selected, WithSpecials: selected}, nil
	}

	// Substitution works on rune slices: word lists are not all ASCII, and
	// a substitution replaces one code point regardless of its byte width.
	split := make([][]rune, words)
	for i, w := range selected {
		split[i] = []rune(w)
	}

	for round := 0; round < specials; round++ {
		i, err := entropy.Uniform(g.src, words)
		if err != nil {
			return Passphrase{}, err
		}
		j, err := entropy.Uniform(g.src, len(split[i]))
		if err != nil {
			return Passphrase{}, err
		}
		k, err := entropy.Uniform(g.src, len(specialRunes))
		if err != nil {
			return Passphrase{}, err
		}
		split[i][j] = specialRunes[k]
	}

	withSpecials := make([]string, words)
	for i, rs := range split {
		withSpecials[i] = string(rs)
	}
	return Passphrase{Words: selected, WithSpecials: withSpecials}, nil
}

// GenerateGrid produces a grid of `words` independent rows, each itself a
// passphrase of `words` words with `specials` substitution rounds.
//
// MaxWordLen is measured in runes over the plain (pre-substitution) words;
// substitution never changes a word's length.
func (g *Generator) GenerateGrid(words, specials int) (Grid, error) {
	grid := Grid{Rows: make([]Passphrase, 0, words)}
	for row := 0; row < words; row++ {
		p, err := g.Generate(words, specials)
		if err != nil {
			return Grid{}, err
		}
		grid.Rows = append(grid.Rows, p)
		for _, w := range p.Words {
			if n := utf8.RuneCountInString(w); n > grid.MaxWordLen {
				grid.MaxWordLen = n
			}
		}
	}
	return grid, nil
}
