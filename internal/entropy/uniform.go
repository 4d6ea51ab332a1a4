package entropy

import "math/bits"

// ReadBits consumes exactly count bits from src and assembles them into an
// unsigned integer, first bit consumed in the least-significant position.
//
// count must be in [0, 64]; ReadBits panics otherwise. count == 0 returns 0
// without touching the source.
//
// Parameters:
//   - src: the entropy source to consume from
//   - count: the number of bits to read
//
// Returns the assembled value, or the source's error unchanged.
func ReadBits(src Source, count int) (uint64, error) {
	if count < 0 || count > 64 {
		panic("entropy: ReadBits count out of range")
	}
	var v uint64
	for i := 0; i < count; i++ {
		bit, err := src.Bit()
		if err != nil {
			return 0, err
		}
		v |= bit << i
	}
	return v, nil
}

// Uniform returns an integer drawn uniformly from [0, n).
//
// It draws the minimum number of bits covering the range and rejects any
// value >= n, redrawing until one lands in range. Rejection keeps every value
// exactly equally likely; modulo reduction would bias low values whenever n
// is not a power of two. n == 1 returns 0 without consuming any entropy.
//
// Uniform panics if n < 1; callers validate their parameters before reaching
// this layer.
//
// Parameters:
//   - src: the entropy source to consume from
//   - n: the exclusive upper bound, n >= 1
//
// Returns a value in [0, n), or the source's error unchanged.
func Uniform(src Source, n int) (int, error) {
	if n < 1 {
		panic("entropy: Uniform requires n >= 1")
	}
	if n == 1 {
		return 0, nil
	}
	width := bits.Len(uint(n - 1))
	for {
		v, err := ReadBits(src, width)
		if err != nil {
			return 0, err
		}
		if v < uint64(n) {
			return int(v), nil
		}
	}
}
