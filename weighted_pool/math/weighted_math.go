package math

import "math/big"

// Weighted-pool pricing. Every function here is a pure computation over
// fixed-point snapshots: the caller supplies balances, weights and amounts,
// and consumes plain values. Nothing is persisted and no account state is
// touched. Weights are expected to sum to exactly ONE by construction
// upstream; the math layer does not re-check that.

// CalculateInvariant computes the weighted product invariant
//
//	V = Π balances[i] ^ weights[i]
//
// rounding down at every step so the invariant is never overstated.
func CalculateInvariant(balances, weights []*big.Int) (*big.Int, error) {
	if len(balances) == 0 || len(balances) != len(weights) {
		return nil, ErrLengthMismatch
	}
	inv := new(big.Int).Set(ONE)
	for i := range balances {
		p, err := Pow(balances[i], weights[i])
		if err != nil {
			return nil, err
		}
		if inv, err = MulDown(inv, p); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

// CalcOutGivenIn prices an exact-in two-token swap:
//
//	aO = bO * (1 - (bI / (bI + aI*(1-fee)))^(wI/wO))
//
// All roundings favor the pool, so the trader never receives more than the
// closed form allows.
func CalcOutGivenIn(balanceIn, weightIn, balanceOut, weightOut, amountIn, swapFee *big.Int) (*big.Int, error) {
	feeComplement, err := Complement(swapFee)
	if err != nil {
		return nil, err
	}
	amountInAfterFee, err := MulDown(amountIn, feeComplement)
	if err != nil {
		return nil, err
	}
	newBalanceIn := new(big.Int).Add(balanceIn, amountInAfterFee)

	base, err := DivDown(balanceIn, newBalanceIn)
	if err != nil {
		return nil, err
	}
	if weightOut.Sign() == 0 {
		return nil, ErrZeroWeight
	}
	exponent, err := DivDown(weightIn, weightOut)
	if err != nil {
		return nil, err
	}
	power, err := Pow(base, exponent)
	if err != nil {
		return nil, err
	}
	powerComplement, err := Complement(power)
	if err != nil {
		return nil, err
	}
	return MulDown(balanceOut, powerComplement)
}

// CalcInGivenOut prices an exact-out two-token swap:
//
//	aI = bI * ((bO / (bO - aO))^(wO/wI) - 1) / (1-fee)
//
// The fee division rounds up so the pool never receives less than its due.
func CalcInGivenOut(balanceIn, weightIn, balanceOut, weightOut, amountOut, swapFee *big.Int) (*big.Int, error) {
	if amountOut.Sign() == 0 {
		return big.NewInt(0), nil
	}
	denom, err := CheckedSub(balanceOut, amountOut)
	if err != nil {
		return nil, err
	}
	base, err := DivDown(balanceOut, denom)
	if err != nil {
		return nil, err
	}
	if weightIn.Sign() == 0 {
		return nil, ErrZeroWeight
	}
	exponent, err := DivDown(weightOut, weightIn)
	if err != nil {
		return nil, err
	}
	power, err := Pow(base, exponent)
	if err != nil {
		return nil, err
	}
	if power.Cmp(ONE) < 0 {
		return nil, ErrInvalidTrade
	}
	ratio := new(big.Int).Sub(power, ONE)
	amountInWithoutFee, err := MulDown(balanceIn, ratio)
	if err != nil {
		return nil, err
	}
	feeComplement, err := Complement(swapFee)
	if err != nil {
		return nil, err
	}
	return DivUp(amountInWithoutFee, feeComplement)
}

// CalcBptOutGivenExactTokensIn returns the BPT minted for an exact-amounts
// join. Deposits above the weighted-mean balance ratio are taxed on the
// excess only; proportional deposits pay no swap fee.
func CalcBptOutGivenExactTokensIn(balances, weights, amountsIn []*big.Int, totalBpt, swapFee *big.Int) (*big.Int, error) {
	n := len(balances)
	if n == 0 || n != len(weights) || n != len(amountsIn) {
		return nil, ErrLengthMismatch
	}

	// First pass: weighted arithmetic mean of the balance ratios, fees
	// included.
	ratiosWithFees := make([]*big.Int, n)
	invariantRatioWithFees := big.NewInt(0)
	for i := 0; i < n; i++ {
		newBalance := new(big.Int).Add(balances[i], amountsIn[i])
		ratio, err := DivDown(newBalance, balances[i])
		if err != nil {
			return nil, err
		}
		ratiosWithFees[i] = ratio
		weighted, err := MulDown(ratio, weights[i])
		if err != nil {
			return nil, err
		}
		invariantRatioWithFees.Add(invariantRatioWithFees, weighted)
	}

	feeComplement, err := Complement(swapFee)
	if err != nil {
		return nil, err
	}

	// Second pass: collect the fee on each disproportionate deposit, then
	// fold the post-fee balance ratios into the invariant ratio.
	invariantRatio := new(big.Int).Set(ONE)
	for i := 0; i < n; i++ {
		amountInAfterFee := amountsIn[i]
		if ratiosWithFees[i].Cmp(invariantRatioWithFees) > 0 {
			nonTaxable, err := MulDown(balances[i], ClampedSub(invariantRatioWithFees, ONE))
			if err != nil {
				return nil, err
			}
			taxable := ClampedSub(amountsIn[i], nonTaxable)
			taxed, err := MulDown(taxable, feeComplement)
			if err != nil {
				return nil, err
			}
			amountInAfterFee = new(big.Int).Add(nonTaxable, taxed)
		}
		newBalance := new(big.Int).Add(balances[i], amountInAfterFee)
		balanceRatio, err := DivDown(newBalance, balances[i])
		if err != nil {
			return nil, err
		}
		p, err := Pow(balanceRatio, weights[i])
		if err != nil {
			return nil, err
		}
		if invariantRatio, err = MulDown(invariantRatio, p); err != nil {
			return nil, err
		}
	}

	if invariantRatio.Cmp(ONE) <= 0 {
		// No value created. Callers reject on zero via their slippage guard.
		return big.NewInt(0), nil
	}
	return MulDown(totalBpt, new(big.Int).Sub(invariantRatio, ONE))
}

// CalcTokenInGivenExactBptOut returns the single-token deposit required to
// mint exactly bptOut. The exponentiation rounds up and every step favors
// the pool.
func CalcTokenInGivenExactBptOut(balanceIn, weightIn, bptOut, totalBpt, swapFee *big.Int) (*big.Int, error) {
	if totalBpt.Sign() == 0 {
		return nil, ErrZeroSupply
	}
	newSupply := new(big.Int).Add(totalBpt, bptOut)
	invariantRatio, err := DivUp(newSupply, totalBpt)
	if err != nil {
		return nil, err
	}
	if weightIn.Sign() == 0 {
		return nil, ErrZeroWeight
	}
	exponent, err := DivDown(ONE, weightIn)
	if err != nil {
		return nil, err
	}
	p, err := PowUp(invariantRatio, exponent)
	if err != nil {
		return nil, err
	}
	newBalanceIn, err := MulUp(balanceIn, p)
	if err != nil {
		return nil, err
	}
	amountInWithoutFee := ClampedSub(newBalanceIn, balanceIn)

	nonTaxable, err := MulUp(balanceIn, ClampedSub(invariantRatio, ONE))
	if err != nil {
		return nil, err
	}
	taxable := ClampedSub(amountInWithoutFee, nonTaxable)

	feeComplement, err := Complement(swapFee)
	if err != nil {
		return nil, err
	}
	taxed, err := DivUp(taxable, feeComplement)
	if err != nil {
		return nil, err
	}
	return nonTaxable.Add(nonTaxable, taxed), nil
}

// CalcTokensOutGivenExactBptIn returns the proportional amounts released by
// burning bptIn. The exit fee is charged once against the BPT, never per
// token.
func CalcTokensOutGivenExactBptIn(balances []*big.Int, bptIn, totalBpt, exitFee *big.Int) ([]*big.Int, error) {
	if len(balances) == 0 {
		return nil, ErrLengthMismatch
	}
	if totalBpt.Sign() == 0 {
		return nil, ErrZeroSupply
	}
	feeComplement, err := Complement(exitFee)
	if err != nil {
		return nil, err
	}
	bptToBurn, err := MulUp(bptIn, feeComplement)
	if err != nil {
		return nil, err
	}
	bptRatio, err := DivDown(bptToBurn, totalBpt)
	if err != nil {
		return nil, err
	}
	amountsOut := make([]*big.Int, len(balances))
	for i := range balances {
		if amountsOut[i], err = MulDown(balances[i], bptRatio); err != nil {
			return nil, err
		}
	}
	return amountsOut, nil
}

// CalcTokenOutGivenExactBptIn returns the single-token withdrawal released
// by burning exactly bptIn, taxing the part that exceeds the proportional
// exit share.
func CalcTokenOutGivenExactBptIn(balanceOut, weightOut, bptIn, totalBpt, swapFee *big.Int) (*big.Int, error) {
	if totalBpt.Sign() == 0 {
		return nil, ErrZeroSupply
	}
	burnRatio, err := DivDown(bptIn, totalBpt)
	if err != nil {
		return nil, err
	}
	invariantRatio, err := Complement(burnRatio)
	if err != nil {
		return nil, err
	}
	if weightOut.Sign() == 0 {
		return nil, ErrZeroWeight
	}
	exponent, err := DivDown(ONE, weightOut)
	if err != nil {
		return nil, err
	}
	p, err := PowDown(invariantRatio, exponent)
	if err != nil {
		return nil, err
	}
	newBalanceOut, err := MulDown(balanceOut, p)
	if err != nil {
		return nil, err
	}
	amountOutBeforeFee := ClampedSub(balanceOut, newBalanceOut)

	exitShare, err := Complement(invariantRatio)
	if err != nil {
		return nil, err
	}
	nonTaxable, err := MulDown(balanceOut, exitShare)
	if err != nil {
		return nil, err
	}
	taxable := ClampedSub(amountOutBeforeFee, nonTaxable)

	feeComplement, err := Complement(swapFee)
	if err != nil {
		return nil, err
	}
	taxed, err := MulDown(taxable, feeComplement)
	if err != nil {
		return nil, err
	}
	return nonTaxable.Add(nonTaxable, taxed), nil
}

// CalcBptInGivenExactTokensOut returns the BPT burned for an exact-amounts
// exit. Withdrawals whose balance ratio falls below the weighted mean are
// taxed on the excess, with the fee division rounded up; the mirror of the
// join formula, biased against the exiting party.
func CalcBptInGivenExactTokensOut(balances, weights, amountsOut []*big.Int, totalBpt, swapFee *big.Int) (*big.Int, error) {
	n := len(balances)
	if n == 0 || n != len(weights) || n != len(amountsOut) {
		return nil, ErrLengthMismatch
	}

	// First pass: weighted mean of the balance ratios without fees.
	ratiosWithoutFees := make([]*big.Int, n)
	invariantRatioWithoutFees := big.NewInt(0)
	for i := 0; i < n; i++ {
		remaining, err := CheckedSub(balances[i], amountsOut[i])
		if err != nil {
			return nil, err
		}
		ratio, err := DivDown(remaining, balances[i])
		if err != nil {
			return nil, err
		}
		ratiosWithoutFees[i] = ratio
		weighted, err := MulDown(ratio, weights[i])
		if err != nil {
			return nil, err
		}
		invariantRatioWithoutFees.Add(invariantRatioWithoutFees, weighted)
	}

	feeComplement, err := Complement(swapFee)
	if err != nil {
		return nil, err
	}

	// Second pass: gross up each disproportionate withdrawal by the fee,
	// then fold the post-fee balance ratios.
	invariantRatio := new(big.Int).Set(ONE)
	for i := 0; i < n; i++ {
		amountOutWithFee := amountsOut[i]
		if ratiosWithoutFees[i].Cmp(invariantRatioWithoutFees) < 0 {
			meanShare, err := Complement(invariantRatioWithoutFees)
			if err != nil {
				return nil, err
			}
			nonTaxable, err := MulDown(balances[i], meanShare)
			if err != nil {
				return nil, err
			}
			taxable := ClampedSub(amountsOut[i], nonTaxable)
			taxed, err := DivUp(taxable, feeComplement)
			if err != nil {
				return nil, err
			}
			amountOutWithFee = new(big.Int).Add(nonTaxable, taxed)
		}
		remaining, err := CheckedSub(balances[i], amountOutWithFee)
		if err != nil {
			return nil, err
		}
		balanceRatio, err := DivDown(remaining, balances[i])
		if err != nil {
			return nil, err
		}
		p, err := Pow(balanceRatio, weights[i])
		if err != nil {
			return nil, err
		}
		if invariantRatio, err = MulDown(invariantRatio, p); err != nil {
			return nil, err
		}
	}

	if invariantRatio.Cmp(ONE) >= 0 {
		// No value withdrawn.
		return big.NewInt(0), nil
	}
	burnShare, err := Complement(invariantRatio)
	if err != nil {
		return nil, err
	}
	return MulUp(totalBpt, burnShare)
}
