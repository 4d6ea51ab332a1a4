// Package entropy provides bit-level access to randomness sources and
// bias-free mapping of raw bits onto bounded integer ranges.
//
// All random decisions in the generator go through a Source. A Source hands
// out one bit at a time, least-significant bit of each underlying byte first,
// refilling its one-byte buffer transparently when it runs dry. Two
// implementations exist: System, backed by the operating system CSPRNG, and
// Buffer, a deterministic source for tests.
package entropy

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// Errors returned by entropy sources.
var (
	// ErrUnavailable indicates the system randomness facility could not be
	// read. Generation cannot proceed without it; there is no fallback.
	ErrUnavailable = errors.New("entropy: system randomness unavailable")

	// ErrExhausted indicates a fixed-size Buffer source ran out of bytes.
	ErrExhausted = errors.New("entropy: buffer source exhausted")
)

// Source supplies unpredictable bits on demand.
//
// Bits are delivered in a fixed, deterministic order: the least-significant
// bit of each underlying byte is consumed first. A Source buffers at most one
// byte internally and is not safe for concurrent use; each generation request
// owns its source exclusively.
type Source interface {
	// Bit returns the next bit (0 or 1).
	Bit() (uint64, error)
}

// System is a Source backed by crypto/rand.
//
// It reads one byte at a time from the operating system CSPRNG and serves it
// out bit by bit. The read may block while the OS entropy pool warms up; that
// is acceptable backpressure, not an error.
type System struct {
	cur  byte
	left uint8
}

// NewSystem creates a Source backed by the operating system CSPRNG.
func NewSystem() *System {
	return &System{}
}

// Bit returns the next bit from the system randomness facility.
//
// Returns an error wrapping ErrUnavailable if the facility cannot be read.
func (s *System) Bit() (uint64, error) {
	if s.left == 0 {
		var b [1]byte
		if _, err := rand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		s.cur = b[0]
		s.left = 8
	}
	bit := uint64(s.cur & 1)
	s.cur >>= 1
	s.left--
	return bit, nil
}

// Buffer is a deterministic Source fed from a fixed byte slice.
//
// It consumes bytes in order, least-significant bit first, and returns
// ErrExhausted once all bits have been served. It also counts the bits it
// hands out, which lets tests verify exactly how much entropy an operation
// consumed.
type Buffer struct {
	data []byte
	cur  byte
	left uint8
	pos  int
	read int
}

// NewBuffer creates a deterministic Source serving the bits of data.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Bit returns the next buffered bit, or ErrExhausted when none remain.
func (b *Buffer) Bit() (uint64, error) {
	if b.left == 0 {
		if b.pos >= len(b.data) {
			return 0, ErrExhausted
		}
		b.cur = b.data[b.pos]
		b.pos++
		b.left = 8
	}
	bit := uint64(b.cur & 1)
	b.cur >>= 1
	b.left--
	b.read++
	return bit, nil
}

// BitsRead reports how many bits have been consumed from the buffer.
func (b *Buffer) BitsRead() int {
	return b.read
}
