package math

import "math/big"

// Fixed-point exponentiation.
//
// The reference weighted-pool formulas need base^exp for fractional
// exponents, rounded toward the pool's favor. Results feed irreversible
// transfers that independent parties re-execute, so the computation has to
// be bit-identical everywhere: no math.Pow, no float64 anywhere on this
// path. base^exp is computed as e^(exp*ln(base)) entirely over big.Int at
// 10^36 internal precision, with fixed iteration counts, then biased down
// or up by a relative error margin so that
//
//	PowDown(b, e) <= b^e <= PowUp(b, e)
//
// holds for all inputs in range.

const (
	lnSeriesTerms  = 81 // odd powers of t, t <= 1/3
	expSeriesTerms = 40
)

var (
	// one36 is 1.0 at the 10^36 internal precision.
	one36 = new(big.Int).Exp(big.NewInt(10), big.NewInt(36), nil)
	two36 = new(big.Int).Mul(one36, big.NewInt(2))

	// ln(2) * 10^36, truncated.
	ln2X36, _ = new(big.Int).SetString("693147180559945309417232121458176568", 10)

	// Exponent bounds for exp36: above the max the result cannot fit the
	// 256-bit range; below the min it rounds to zero at 18 decimals.
	maxNaturalExponent36 = new(big.Int).Mul(big.NewInt(130), one36)
	minNaturalExponent36 = new(big.Int).Mul(big.NewInt(-42), one36)

	// Relative error bound of the series evaluation, in units of 10^-18.
	powMaxRelativeError = big.NewInt(10000)
)

// Pow is the default exponentiation, rounding down. It is used by the swap
// and invariant formulas.
func Pow(base, exp *big.Int) (*big.Int, error) {
	return PowDown(base, exp)
}

// PowDown returns a lower bound on base^exp.
func PowDown(base, exp *big.Int) (*big.Int, error) {
	raw, done, err := powRaw(base, exp)
	if err != nil || done {
		return raw, err
	}
	margin, err := powMargin(raw)
	if err != nil {
		return nil, err
	}
	if raw.Cmp(margin) <= 0 {
		return big.NewInt(0), nil
	}
	return raw.Sub(raw, margin), nil
}

// PowUp returns an upper bound on base^exp.
func PowUp(base, exp *big.Int) (*big.Int, error) {
	raw, done, err := powRaw(base, exp)
	if err != nil || done {
		return raw, err
	}
	margin, err := powMargin(raw)
	if err != nil {
		return nil, err
	}
	raw.Add(raw, margin)
	if raw.Cmp(maxUint256) > 0 {
		return nil, ErrAmountOutOfRange
	}
	return raw, nil
}

func powMargin(raw *big.Int) (*big.Int, error) {
	m, err := MulUp(raw, powMaxRelativeError)
	if err != nil {
		return nil, err
	}
	return m.Add(m, oneInt), nil
}

// powRaw returns base^exp at 18 decimals, truncated. done reports the exact
// edge cases (exp == 0, base == 0) that must not be widened by the error
// margin.
func powRaw(base, exp *big.Int) (*big.Int, bool, error) {
	if err := checkRange(base, exp); err != nil {
		return nil, false, err
	}
	if exp.Sign() == 0 {
		return new(big.Int).Set(ONE), true, nil
	}
	if base.Sign() == 0 {
		return big.NewInt(0), true, nil
	}

	logX := ln36(new(big.Int).Mul(base, ONE))

	// y = exp * ln(base), still at 10^36.
	y := new(big.Int).Mul(logX, exp)
	y.Quo(y, ONE)

	if y.Cmp(minNaturalExponent36) < 0 {
		return big.NewInt(0), false, nil
	}
	if y.Cmp(maxNaturalExponent36) > 0 {
		return nil, false, ErrAmountOutOfRange
	}

	r := exp36(y)
	r.Quo(r, ONE)
	if r.Cmp(maxUint256) > 0 {
		return nil, false, ErrAmountOutOfRange
	}
	return r, false, nil
}

// ln36 returns ln(x) at 10^36 precision for x > 0 at 10^36 precision. The
// argument is reduced to [1, 2) by powers of two, then
// ln(m) = 2*atanh((m-1)/(m+1)) is evaluated with t <= 1/3, so the series
// converges well past 36 decimals within lnSeriesTerms.
func ln36(x *big.Int) *big.Int {
	m := new(big.Int).Set(x)
	k := int64(0)
	for m.Cmp(two36) >= 0 {
		m.Rsh(m, 1)
		k++
	}
	for m.Cmp(one36) < 0 {
		m.Lsh(m, 1)
		k--
	}

	// t = (m-1)/(m+1) in [0, 1/3)
	num := new(big.Int).Sub(m, one36)
	num.Mul(num, one36)
	den := new(big.Int).Add(m, one36)
	t := num.Quo(num, den)

	t2 := new(big.Int).Mul(t, t)
	t2.Quo(t2, one36)

	sum := new(big.Int).Set(t)
	term := new(big.Int).Set(t)
	for i := int64(3); i <= lnSeriesTerms; i += 2 {
		term.Mul(term, t2)
		term.Quo(term, one36)
		sum.Add(sum, new(big.Int).Quo(term, big.NewInt(i)))
	}
	sum.Lsh(sum, 1)

	shift := new(big.Int).Mul(big.NewInt(k), ln2X36)
	return sum.Add(sum, shift)
}

// exp36 returns e^y at 10^36 precision for y within the natural-exponent
// bounds. y is reduced by multiples of ln(2) so the Taylor series runs on a
// remainder below 0.7.
func exp36(y *big.Int) *big.Int {
	neg := y.Sign() < 0
	abs := new(big.Int).Abs(y)

	n := new(big.Int).Quo(abs, ln2X36)
	r := new(big.Int).Mul(n, ln2X36)
	r.Sub(abs, r)

	sum := new(big.Int).Set(one36)
	term := new(big.Int).Set(one36)
	for i := int64(1); i <= expSeriesTerms; i++ {
		term.Mul(term, r)
		term.Quo(term, one36)
		term.Quo(term, big.NewInt(i))
		sum.Add(sum, term)
	}
	sum.Lsh(sum, uint(n.Uint64()))

	if !neg {
		return sum
	}
	inv := new(big.Int).Mul(one36, one36)
	return inv.Quo(inv, sum)
}
