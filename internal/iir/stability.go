package iir

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// ErrUnstable marks denominators rejected by the stability check.
var ErrUnstable = errors.New("iir: unstable filter")

// stabilityMargin keeps poles strictly inside the unit circle. A pole at
// radius 1-1e-9 or beyond is rejected; marginally stable filters drift
// under coefficient quantization.
const stabilityMargin = 1e-9

// Poles returns the roots of the denominator polynomial
// 1 + a[0] z^-1 + ... + a[n-1] z^-n as eigenvalues of its companion
// matrix. The slice excludes the implied unity coefficient.
func Poles(a []float64) ([]complex128, error) {
	n := len(a)
	if n == 0 {
		return nil, nil
	}
	companion := mat.NewDense(n, n, nil)
	for j, ak := range a {
		companion.Set(0, j, -ak)
	}
	for i := 1; i < n; i++ {
		companion.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return nil, fmt.Errorf("iir: eigenvalue factorization failed")
	}
	return eig.Values(nil), nil
}

// CheckStability returns an error when any pole of the denominator lies on
// or outside the unit circle, including the stability margin.
func CheckStability(a []float64) error {
	poles, err := Poles(a)
	if err != nil {
		return err
	}
	for _, p := range poles {
		if r := cmplx.Abs(p); r >= 1-stabilityMargin {
			return fmt.Errorf("%w: pole radius %.12f", ErrUnstable, r)
		}
	}
	return nil
}
