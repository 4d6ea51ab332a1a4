package entropy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkarhu/diceware/internal/entropy"
)

// TestReadBitsGolden pins the exact LSB-first assembly against known byte
// feeds.
func TestReadBitsGolden(t *testing.T) {
	cases := []struct {
		name  string
		data  []byte
		count int
		want  uint64
	}{
		{"ThreeBitsOfFive", []byte{0b00000101}, 3, 5},
		{"WholeByte", []byte{0xA7}, 8, 0xA7},
		{"ZeroBits", []byte{0xFF}, 0, 0},
		{"SingleBit", []byte{0b00000001}, 1, 1},
		{"TwoBytesLittleEndian", []byte{0x34, 0x12}, 16, 0x1234},
		{"SixtyFourBits", []byte{1, 0, 0, 0, 0, 0, 0, 0x80}, 64, 1 | 1<<63},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := entropy.NewBuffer(tc.data)
			got, err := entropy.ReadBits(src, tc.count)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.count, src.BitsRead())
		})
	}
}

func TestReadBitsPanicsOnBadCount(t *testing.T) {
	require.Panics(t, func() {
		_, _ = entropy.ReadBits(entropy.NewBuffer(nil), -1)
	})
	require.Panics(t, func() {
		_, _ = entropy.ReadBits(entropy.NewBuffer(nil), 65)
	})
}

// TestUniformDegenerateRange verifies that a range of one is answered without
// touching the source at all.
func TestUniformDegenerateRange(t *testing.T) {
	src := entropy.NewBuffer(nil)

	v, err := entropy.Uniform(src, 1)
	require.NoError(t, err)
	require.Equal(t, 0, v)
	require.Equal(t, 0, src.BitsRead())
}

// TestUniformRejectsOutOfRange drives Uniform with a crafted feed so the
// first draw lands outside [0, n) and must be rejected.
//
// With n = 3 each draw is 2 bits. The byte 0b00000011 serves 1,1 first
// (value 3, rejected) and 0,0 next (value 0, accepted).
func TestUniformRejectsOutOfRange(t *testing.T) {
	src := entropy.NewBuffer([]byte{0b00000011})

	v, err := entropy.Uniform(src, 3)
	require.NoError(t, err)
	require.Equal(t, 0, v)
	require.Equal(t, 4, src.BitsRead())
}

// TestUniformDeterministic verifies reproducibility: the same byte feed
// always dictates the same draws.
func TestUniformDeterministic(t *testing.T) {
	feed := []byte{0x9C, 0x3B, 0xE1, 0x07, 0x52}

	first := drawAll(t, entropy.NewBuffer(feed), 6, 5)
	second := drawAll(t, entropy.NewBuffer(feed), 6, 5)
	require.Equal(t, first, second)
}

func drawAll(t *testing.T, src entropy.Source, n, count int) []int {
	t.Helper()
	out := make([]int, count)
	for i := range out {
		v, err := entropy.Uniform(src, n)
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func TestUniformPanicsOnBadBound(t *testing.T) {
	require.Panics(t, func() {
		_, _ = entropy.Uniform(entropy.NewBuffer(nil), 0)
	})
}

// TestUniformInRange checks the hard bound: no draw is ever outside [0, n),
// power-of-two bounds and odd bounds alike.
func TestUniformInRange(t *testing.T) {
	src := entropy.NewSystem()

	for _, n := range []int{1, 2, 3, 5, 6, 7, 8, 36, 100, 7776} {
		for i := 0; i < 2000; i++ {
			v, err := entropy.Uniform(src, n)
			if err != nil {
				t.Fatalf("Uniform(src, %d) error: %v", n, err)
			}
			if v < 0 || v >= n {
				t.Fatalf("Uniform(src, %d) = %d, out of range", n, v)
			}
		}
	}
}

// TestUniformDistribution runs a chi-squared test against the uniform
// distribution for a handful of bounds. The thresholds are the 99.9th
// percentile of the chi-squared distribution with n-1 degrees of freedom, so
// a healthy source fails each subtest with probability 0.001.
func TestUniformDistribution(t *testing.T) {
	cases := []struct {
		n         int
		samples   int
		threshold float64 // chi-squared critical value, p = 0.999, df = n-1
	}{
		{2, 40000, 10.83},
		{6, 60000, 20.52},
		{36, 72000, 66.62},
	}
	for _, tc := range cases {
		src := entropy.NewSystem()
		counts := make([]int, tc.n)
		for i := 0; i < tc.samples; i++ {
			v, err := entropy.Uniform(src, tc.n)
			if err != nil {
				t.Fatalf("Uniform(src, %d) error: %v", tc.n, err)
			}
			counts[v]++
		}

		expected := float64(tc.samples) / float64(tc.n)
		var chi2 float64
		for _, c := range counts {
			d := float64(c) - expected
			chi2 += d * d / expected
		}
		if chi2 > tc.threshold {
			t.Errorf("Uniform(src, %d): chi-squared = %.2f, threshold %.2f (counts %v)",
				tc.n, chi2, tc.threshold, counts)
		}
	}
}
