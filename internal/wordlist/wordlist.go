// Package wordlist defines the Diceware word list model: parsing, validation,
// and the registry of downloadable lists per language.
//
// A valid list has exactly 7776 entries, one per combination of five dice
// rolls. Anything else is rejected outright; a truncated or padded list would
// silently change the entropy of every passphrase drawn from it.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
)

// Size is the number of entries in a valid Diceware word list (6^5).
const Size = 7776

// ErrInvalidFormat indicates the input did not yield exactly Size words.
var ErrInvalidFormat = errors.New("wordlist: invalid word list format")

// List is an ordered Diceware word list, indexed 0..Size-1.
type List []string

// Parse reads a Diceware word list from r.
//
// Only lines matching the Diceware format are kept: five decimal digits, one
// whitespace character, then the word. The six-character roll prefix is
// stripped and surrounding whitespace trimmed. Everything else (headers, PGP
// armor, blank lines) is ignored.
//
// Parameters:
//   - r: the raw word list text
//
// Returns the parsed list, or an error wrapping ErrInvalidFormat if the
// filtered line count is not exactly Size.
func Parse(r io.Reader) (List, error) {
	list := make(List, 0, Size)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !hasRollPrefix(line) {
			continue
		}
		word := strings.TrimSpace(line[6:])
		if word == "" {
			continue
		}
		list = append(list, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wordlist: reading word list: %w", err)
	}

	if len(list) != Size {
		return nil, fmt.Errorf("%w: got %d words, want %d", ErrInvalidFormat, len(list), Size)
	}
	return list, nil
}

// hasRollPrefix reports whether line starts with five decimal digits followed
// by one whitespace character.
func hasRollPrefix(line string) bool {
	if len(line) < 6 {
		return false
	}
	for i := 0; i < 5; i++ {
		if line[i] < '0' || line[i] > '9' {
			return false
		}
	}
	return unicode.IsSpace(rune(line[5]))
}

// urls maps a language tag to the canonical remote location of its word list.
var urls = map[string]string{
	"en": "http://world.std.com/~reinhold/diceware.wordlist.asc",
	"fi": "http://users.ics.aalto.fi/kaip/noppaware/noppaware.txt",
	"it": "https://raw.github.com/taringamberini/diceware_word_list_it-IT/" +
		"master/diceware/wordlist/word_list_diceware_it-IT-1.0.11.txt",
	"nl": "http://theworld.com/~reinhold/DicewareDutch.txt",
	"se": "http://x42.com/diceware/diceware-sv.txt",
	"tr": "http://dicewaretr.110mb.com/diceware_tr.txt",
}

// URL returns the remote word list location for a language tag.
func URL(lang string) (string, bool) {
	u, ok := urls[lang]
	return u, ok
}

// Supported reports whether a language tag has a known word list.
func Supported(lang string) bool {
	_, ok := urls[lang]
	return ok
}

// Languages returns the supported language tags in sorted order.
func Languages() []string {
	tags := make([]string, 0, len(urls))
	for tag := range urls {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
