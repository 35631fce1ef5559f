package math

import "math/big"

// All pool quantities (balances, weights, fees, BPT amounts) are unsigned
// 18-decimal fixed-point values: the integer 1_000_000_000_000_000_000
// represents 1.0. Values live in the 256-bit range of the on-chain
// representation; anything outside it is rejected with ErrAmountOutOfRange
// instead of wrapping.
//
// Rounding direction is an economic choice, not a style one: "down" is used
// wherever the result flows out of the pool, "up" wherever it flows in, so
// rounding dust always accrues to the pool.

// ONE is 1.0 in 18-decimal fixed point.
var ONE = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

var (
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	oneInt     = big.NewInt(1)
)

func checkRange(values ...*big.Int) error {
	for _, v := range values {
		if v == nil || v.Sign() < 0 || v.Cmp(maxUint256) > 0 {
			return ErrAmountOutOfRange
		}
	}
	return nil
}

// MulDown returns floor(a*b / ONE).
func MulDown(a, b *big.Int) (*big.Int, error) {
	if err := checkRange(a, b); err != nil {
		return nil, err
	}
	prod := new(big.Int).Mul(a, b)
	if prod.Cmp(maxUint256) > 0 {
		return nil, ErrAmountOutOfRange
	}
	return prod.Div(prod, ONE), nil
}

// MulUp returns ceil(a*b / ONE), or zero when either operand is zero.
func MulUp(a, b *big.Int) (*big.Int, error) {
	if err := checkRange(a, b); err != nil {
		return nil, err
	}
	if a.Sign() == 0 || b.Sign() == 0 {
		return big.NewInt(0), nil
	}
	prod := new(big.Int).Mul(a, b)
	prod.Add(prod, ONE)
	prod.Sub(prod, oneInt)
	if prod.Cmp(maxUint256) > 0 {
		return nil, ErrAmountOutOfRange
	}
	return prod.Div(prod, ONE), nil
}

// DivDown returns floor(a*ONE / b).
func DivDown(a, b *big.Int) (*big.Int, error) {
	if err := checkRange(a, b); err != nil {
		return nil, err
	}
	if b.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	num := new(big.Int).Mul(a, ONE)
	if num.Cmp(maxUint256) > 0 {
		return nil, ErrAmountOutOfRange
	}
	return num.Div(num, b), nil
}

// DivUp returns ceil(a*ONE / b), or zero when a is zero.
func DivUp(a, b *big.Int) (*big.Int, error) {
	if err := checkRange(a, b); err != nil {
		return nil, err
	}
	if b.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	if a.Sign() == 0 {
		return big.NewInt(0), nil
	}
	num := new(big.Int).Mul(a, ONE)
	num.Add(num, b)
	num.Sub(num, oneInt)
	if num.Cmp(maxUint256) > 0 {
		return nil, ErrAmountOutOfRange
	}
	return num.Div(num, b), nil
}

// Complement returns ONE - x for x in [0, ONE].
func Complement(x *big.Int) (*big.Int, error) {
	if err := checkRange(x); err != nil {
		return nil, err
	}
	if x.Cmp(ONE) > 0 {
		return nil, ErrComplementOverflow
	}
	return new(big.Int).Sub(ONE, x), nil
}

// ClampedSub returns a - b floored at zero. The floor is policy: a taxable
// excess below the proportional share is zero, never negative.
func ClampedSub(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Sub(a, b)
}

// CheckedSub returns a - b, or ErrInsufficientBalance when b exceeds a.
func CheckedSub(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, ErrInsufficientBalance
	}
	return new(big.Int).Sub(a, b), nil
}
