package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want bool
	}{
		{"one", 1, true},
		{"two", 2, true},
		{"large power", 1 << 20, true},
		{"zero", 0, false},
		{"negative", -4, false},
		{"odd", 3, false},
		{"even non-power", 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPowerOfTwo(tt.n))
		})
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{5, 8},
		{1023, 1024},
		{1024, 1024},
		{1025, 2048},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NextPowerOfTwo(tt.n), "NextPowerOfTwo(%d)", tt.n)
	}
}

func TestLog2(t *testing.T) {
	for exp := 0; exp <= 20; exp++ {
		assert.Equal(t, exp, Log2(1<<exp))
	}
}

func TestBitReverseTable(t *testing.T) {
	t.Run("size 8", func(t *testing.T) {
		want := []int{0, 4, 2, 6, 1, 5, 3, 7}
		assert.Equal(t, want, BitReverseTable(8))
	})

	t.Run("involution", func(t *testing.T) {
		// Applying the permutation twice must restore the identity.
		const n = 256
		table := BitReverseTable(n)
		for i := range n {
			assert.Equal(t, i, table[table[i]])
		}
	})

	t.Run("is a permutation", func(t *testing.T) {
		const n = 64
		table := BitReverseTable(n)
		seen := make(map[int]bool, n)
		for _, v := range table {
			assert.False(t, seen[v], "duplicate index %d", v)
			seen[v] = true
		}
	})
}
