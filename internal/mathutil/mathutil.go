// Package mathutil provides small numeric helpers shared by the DSP engines.
package mathutil

import "math/bits"

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two greater than or equal to n.
// Returns 1 for n <= 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Log2 returns the base-2 logarithm of n. n must be a positive power of two.
func Log2(n int) int {
	return bits.Len(uint(n)) - 1
}

// BitReverseTable returns the bit-reversal permutation for a transform of
// size n, where n is a power of two. table[i] holds the index obtained by
// reversing the low Log2(n) bits of i.
func BitReverseTable(n int) []int {
	table := make([]int, n)
	shift := 64 - uint(Log2(n))
	for i := range n {
		table[i] = int(bits.Reverse64(uint64(i)) >> shift)
	}
	return table
}
