package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapInc returns (i+1) mod n for n > 0, and 0 otherwise.
// Negative i restarts from 0.
func WrapInc[T constraints.Integer](i, n T) T {
	if n <= 0 || i < 0 {
		return 0
	}
	i++
	if i >= n {
		return 0
	}
	return i
}
