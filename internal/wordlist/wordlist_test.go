package wordlist

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// validInput builds a synthetic word list with the given number of entries in
// the five-digits-plus-whitespace Diceware format.
func validInput(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "%05d word%d\n", i, i)
	}
	return sb.String()
}

func TestParse(t *testing.T) {
	list, err := Parse(strings.NewReader(validInput(Size)))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(list) != Size {
		t.Fatalf("Parse() returned %d words, want %d", len(list), Size)
	}
	if list[0] != "word0" {
		t.Errorf("list[0] = %q, want %q", list[0], "word0")
	}
	if list[Size-1] != fmt.Sprintf("word%d", Size-1) {
		t.Errorf("list[%d] = %q, want %q", Size-1, list[Size-1], fmt.Sprintf("word%d", Size-1))
	}
}

func TestParseIgnoresNonMatchingLines(t *testing.T) {
	// Interleave the kinds of noise found in real downloads: PGP armor,
	// blank lines, comments, short lines.
	var sb strings.Builder
	sb.WriteString("-----BEGIN PGP SIGNED MESSAGE-----\n")
	sb.WriteString("Hash: SHA1\n")
	sb.WriteString("\n")
	sb.WriteString(validInput(Size))
	sb.WriteString("-----BEGIN PGP SIGNATURE-----\n")
	sb.WriteString("abc\n")
	sb.WriteString("12345\n") // five digits but no whitespace or word

	list, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(list) != Size {
		t.Fatalf("Parse() returned %d words, want %d", len(list), Size)
	}
}

func TestParseTabSeparator(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < Size; i++ {
		fmt.Fprintf(&sb, "%05d\tword%d\n", i, i)
	}
	list, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if list[7] != "word7" {
		t.Errorf("list[7] = %q, want %q", list[7], "word7")
	}
}

func TestParseWrongCount(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"empty", 0},
		{"far too short", 100},
		{"one short", Size - 1},
		{"one long", Size + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(validInput(tt.n)))
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Parse() error = %v, want ErrInvalidFormat", err)
			}
		})
	}
}

func TestHasRollPrefix(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"11111 abacus", true},
		{"66666\tzoom", true},
		{"1111a word", false},
		{"11111word", false},
		{"1111", false},
		{"", false},
		{"# comment", false},
	}
	for _, tt := range tests {
		if got := hasRollPrefix(tt.line); got != tt.want {
			t.Errorf("hasRollPrefix(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	if len(langs) == 0 {
		t.Fatal("Languages() returned no languages")
	}
	for i := 1; i < len(langs); i++ {
		if langs[i-1] >= langs[i] {
			t.Fatalf("Languages() not sorted: %v", langs)
		}
	}
	for _, lang := range langs {
		if !Supported(lang) {
			t.Errorf("Supported(%q) = false for listed language", lang)
		}
		if u, ok := URL(lang); !ok || u == "" {
			t.Errorf("URL(%q) = %q, %v; want non-empty URL", lang, u, ok)
		}
	}
	if Supported("xx") {
		t.Error("Supported(\"xx\") = true, want false")
	}
}
