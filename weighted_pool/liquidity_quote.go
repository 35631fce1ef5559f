package weightedpool

import (
	"fmt"
	"math/big"

	"github.com/symmetric-fi/symmetric-go/weighted_pool/math"
)

// Liquidity quotes are pure like SwapQuote: the caller supplies pool token
// snapshots, the LP supply in native LP units, and the fee. Amounts cross
// the 18-decimal boundary here, never inside the math package.

type JoinQuoteResult struct {
	AmountsIn []*big.Int
	BptOut    *big.Int
	MinBptOut *big.Int
}

// JoinQuote prices an exact-amounts-in join.
func JoinQuote(
	tokens []PoolToken,
	amountsIn []*big.Int,
	totalBpt *big.Int,
	swapFee *big.Int,
	slippageBps uint64,
) (*JoinQuoteResult, error) {
	if len(tokens) != len(amountsIn) {
		return nil, fmt.Errorf("tokens and amountsIn length mismatch")
	}

	balances, weights := poolVectors(tokens)
	amountsInFp := make([]*big.Int, len(amountsIn))
	for i, amount := range amountsIn {
		amountsInFp[i] = ScaleTo18(amount, tokens[i].Decimals)
	}

	bptOutFp, err := math.CalcBptOutGivenExactTokensIn(
		balances, weights, amountsInFp,
		ScaleTo18(totalBpt, LpTokenDecimals),
		swapFee,
	)
	if err != nil {
		return nil, err
	}
	bptOut := ScaleFrom18(bptOutFp, LpTokenDecimals)

	return &JoinQuoteResult{
		AmountsIn: amountsIn,
		BptOut:    bptOut,
		MinBptOut: GetMinAmountWithSlippage(bptOut, slippageBps),
	}, nil
}

type SingleTokenJoinQuoteResult struct {
	BptOut      *big.Int
	AmountIn    *big.Int
	MaxAmountIn *big.Int
}

// SingleTokenJoinQuote prices the one-token deposit that mints exactly
// bptOut. Slippage pads the required input upward.
func SingleTokenJoinQuote(
	token PoolToken,
	bptOut *big.Int,
	totalBpt *big.Int,
	swapFee *big.Int,
	slippageBps uint64,
) (*SingleTokenJoinQuoteResult, error) {
	amountInFp, err := math.CalcTokenInGivenExactBptOut(
		ScaleTo18(token.Balance, token.Decimals),
		token.Weight,
		ScaleTo18(bptOut, LpTokenDecimals),
		ScaleTo18(totalBpt, LpTokenDecimals),
		swapFee,
	)
	if err != nil {
		return nil, err
	}
	amountIn := ScaleFrom18(amountInFp, token.Decimals)

	return &SingleTokenJoinQuoteResult{
		BptOut:      bptOut,
		AmountIn:    amountIn,
		MaxAmountIn: GetMaxAmountWithSlippage(amountIn, slippageBps),
	}, nil
}

type ExitQuoteResult struct {
	BptIn         *big.Int
	AmountsOut    []*big.Int
	MinAmountsOut []*big.Int
}

// ExitQuote prices a proportional exit burning bptIn, with the exit fee
// charged once against the BPT.
func ExitQuote(
	tokens []PoolToken,
	bptIn *big.Int,
	totalBpt *big.Int,
	exitFee *big.Int,
	slippageBps uint64,
) (*ExitQuoteResult, error) {
	balances, _ := poolVectors(tokens)

	amountsOutFp, err := math.CalcTokensOutGivenExactBptIn(
		balances,
		ScaleTo18(bptIn, LpTokenDecimals),
		ScaleTo18(totalBpt, LpTokenDecimals),
		exitFee,
	)
	if err != nil {
		return nil, err
	}

	amountsOut := make([]*big.Int, len(tokens))
	minAmountsOut := make([]*big.Int, len(tokens))
	for i, outFp := range amountsOutFp {
		amountsOut[i] = ScaleFrom18(outFp, tokens[i].Decimals)
		minAmountsOut[i] = GetMinAmountWithSlippage(amountsOut[i], slippageBps)
	}

	return &ExitQuoteResult{
		BptIn:         bptIn,
		AmountsOut:    amountsOut,
		MinAmountsOut: minAmountsOut,
	}, nil
}

type SingleTokenExitQuoteResult struct {
	BptIn        *big.Int
	AmountOut    *big.Int
	MinAmountOut *big.Int
}

// SingleTokenExitQuote prices the one-token withdrawal released by burning
// exactly bptIn.
func SingleTokenExitQuote(
	token PoolToken,
	bptIn *big.Int,
	totalBpt *big.Int,
	swapFee *big.Int,
	slippageBps uint64,
) (*SingleTokenExitQuoteResult, error) {
	amountOutFp, err := math.CalcTokenOutGivenExactBptIn(
		ScaleTo18(token.Balance, token.Decimals),
		token.Weight,
		ScaleTo18(bptIn, LpTokenDecimals),
		ScaleTo18(totalBpt, LpTokenDecimals),
		swapFee,
	)
	if err != nil {
		return nil, err
	}
	amountOut := ScaleFrom18(amountOutFp, token.Decimals)

	return &SingleTokenExitQuoteResult{
		BptIn:        bptIn,
		AmountOut:    amountOut,
		MinAmountOut: GetMinAmountWithSlippage(amountOut, slippageBps),
	}, nil
}

type ExitExactTokensQuoteResult struct {
	AmountsOut []*big.Int
	BptIn      *big.Int
	MaxBptIn   *big.Int
}

// ExitExactTokensQuote prices the BPT burned by an exact-amounts-out exit.
// Slippage pads the burned BPT upward.
func ExitExactTokensQuote(
	tokens []PoolToken,
	amountsOut []*big.Int,
	totalBpt *big.Int,
	swapFee *big.Int,
	slippageBps uint64,
) (*ExitExactTokensQuoteResult, error) {
	if len(tokens) != len(amountsOut) {
		return nil, fmt.Errorf("tokens and amountsOut length mismatch")
	}

	balances, weights := poolVectors(tokens)
	amountsOutFp := make([]*big.Int, len(amountsOut))
	for i, amount := range amountsOut {
		amountsOutFp[i] = ScaleTo18(amount, tokens[i].Decimals)
	}

	bptInFp, err := math.CalcBptInGivenExactTokensOut(
		balances, weights, amountsOutFp,
		ScaleTo18(totalBpt, LpTokenDecimals),
		swapFee,
	)
	if err != nil {
		return nil, err
	}
	// round the burn up to native units against the exiting party
	bptIn := ScaleFrom18(bptInFp, LpTokenDecimals)
	if ScaleTo18(bptIn, LpTokenDecimals).Cmp(bptInFp) < 0 {
		bptIn.Add(bptIn, big.NewInt(1))
	}

	return &ExitExactTokensQuoteResult{
		AmountsOut: amountsOut,
		BptIn:      bptIn,
		MaxBptIn:   GetMaxAmountWithSlippage(bptIn, slippageBps),
	}, nil
}

func poolVectors(tokens []PoolToken) (balances, weights []*big.Int) {
	balances = make([]*big.Int, len(tokens))
	weights = make([]*big.Int, len(tokens))
	for i, token := range tokens {
		balances[i] = ScaleTo18(token.Balance, token.Decimals)
		weights[i] = token.Weight
	}
	return balances, weights
}
