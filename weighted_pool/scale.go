package weightedpool

import (
	"fmt"
	"math/big"
)

// The core math runs on 18-decimal fixed point regardless of mint decimals.
// Native amounts are lifted on the way in and floored on the way out, so
// scaling dust stays in the pool.

// ScaleTo18 lifts a native token amount to 18-decimal fixed point.
func ScaleTo18(amount *big.Int, decimals uint8) *big.Int {
	if decimals >= 18 {
		factor := pow10(int64(decimals) - 18)
		return new(big.Int).Quo(amount, factor)
	}
	return new(big.Int).Mul(amount, pow10(18-int64(decimals)))
}

// ScaleFrom18 truncates an 18-decimal fixed-point amount back to native
// token units.
func ScaleFrom18(amount *big.Int, decimals uint8) *big.Int {
	if decimals >= 18 {
		return new(big.Int).Mul(amount, pow10(int64(decimals)-18))
	}
	return new(big.Int).Quo(amount, pow10(18-int64(decimals)))
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

// toUint64 converts a native amount into an instruction field. Amounts that
// do not fit uint64 are rejected rather than truncated; an amount still in
// 18-decimal fixed point fails here.
func toUint64(amount *big.Int) (uint64, error) {
	if amount == nil || amount.Sign() < 0 || amount.BitLen() > 64 {
		return 0, fmt.Errorf("amount %s overflows uint64", amount)
	}
	return amount.Uint64(), nil
}
