package weightedpool

import (
	"context"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	solanago "github.com/symmetric-fi/symmetric-go/solana"
	"github.com/symmetric-fi/symmetric-go/weighted_pool/math"
)

// GetQuoteResult
type GetQuoteResult struct {
	SwapInAmount     *big.Int
	SwapOutAmount    *big.Int
	MinSwapOutAmount *big.Int
	Fee              *big.Int // charged on the input token, native units
	PriceImpact      decimal.Decimal
}

// SwapQuote prices an exact-in swap against a pool snapshot. Pure: the
// caller supplies balances, weights and the fee; nothing is fetched.
func SwapQuote(
	tokenIn PoolToken,
	tokenOut PoolToken,
	amountIn *big.Int,
	swapFee *big.Int,
	slippageBps uint64,
) (*GetQuoteResult, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, fmt.Errorf("amountIn must be greater than 0")
	}

	amountInFp := ScaleTo18(amountIn, tokenIn.Decimals)

	amountOutFp, err := math.CalcOutGivenIn(
		ScaleTo18(tokenIn.Balance, tokenIn.Decimals),
		tokenIn.Weight,
		ScaleTo18(tokenOut.Balance, tokenOut.Decimals),
		tokenOut.Weight,
		amountInFp,
		swapFee,
	)
	if err != nil {
		return nil, err
	}
	amountOut := ScaleFrom18(amountOutFp, tokenOut.Decimals)

	feeFp, err := math.MulUp(amountInFp, swapFee)
	if err != nil {
		return nil, err
	}

	priceImpact, err := GetPriceImpact(tokenIn, tokenOut, amountIn, amountOut)
	if err != nil {
		return nil, err
	}

	return &GetQuoteResult{
		SwapInAmount:     amountIn,
		SwapOutAmount:    amountOut,
		MinSwapOutAmount: GetMinAmountWithSlippage(amountOut, slippageBps),
		Fee:              ScaleFrom18(feeFp, tokenIn.Decimals),
		PriceImpact:      priceImpact,
	}, nil
}

func (m *WeightedPool) SwapQuote(
	ctx context.Context,
	pool *Pool,
	tokenIn PoolToken,
	tokenOut PoolToken,
	amountIn *big.Int,
	swapFee *big.Int,
	slippageBps uint64,
) (*GetQuoteResult, error) {
	return SwapQuoteFromChain(ctx, m.rpcClient, pool, tokenIn, tokenOut, amountIn, swapFee, slippageBps)
}

// SwapQuoteFromChain fills the snapshot balances and decimals from the pool
// vault accounts, then delegates to the pure quote.
func SwapQuoteFromChain(
	ctx context.Context,
	rpcClient *rpc.Client,
	pool *Pool,
	tokenIn PoolToken,
	tokenOut PoolToken,
	amountIn *big.Int,
	swapFee *big.Int,
	slippageBps uint64,
) (*GetQuoteResult, error) {
	tokens, err := solanago.GetMultipleToken(ctx, rpcClient, tokenIn.Mint, tokenOut.Mint)
	if err != nil {
		return nil, err
	}
	if tokens[0] == nil || tokens[1] == nil {
		return nil, fmt.Errorf("tokenIn or tokenOut mint error")
	}
	tokenIn.Decimals = tokens[0].Decimals
	tokenOut.Decimals = tokens[1].Decimals

	balances, err := GetPoolTokenBalances(ctx, rpcClient, pool, []solana.PublicKey{tokenIn.Mint, tokenOut.Mint})
	if err != nil {
		return nil, err
	}
	tokenIn.Balance = balances[0]
	tokenOut.Balance = balances[1]

	return SwapQuote(tokenIn, tokenOut, amountIn, swapFee, slippageBps)
}

// GetMinAmountWithSlippage
func GetMinAmountWithSlippage(amount *big.Int, slippageBps uint64) *big.Int {
	if slippageBps > 0 {
		slippageFactor := decimal.NewFromInt(10000).Sub(decimal.NewFromInt(int64(slippageBps)))
		denominator := decimal.NewFromInt(10000)

		minAmountOut := decimal.NewFromBigInt(amount, 0).Mul(slippageFactor).Div(denominator)
		amount = minAmountOut.BigInt()
	}
	return amount
}

// GetMaxAmountWithSlippage pads an input requirement upward, the mirror of
// GetMinAmountWithSlippage for exact-out quotes.
func GetMaxAmountWithSlippage(amount *big.Int, slippageBps uint64) *big.Int {
	if slippageBps > 0 {
		slippageFactor := decimal.NewFromInt(10000).Add(decimal.NewFromInt(int64(slippageBps)))
		denominator := decimal.NewFromInt(10000)

		maxAmountIn := decimal.NewFromBigInt(amount, 0).Mul(slippageFactor).DivRound(denominator, 0)
		amount = maxAmountIn.BigInt()
	}
	return amount
}

// GetPriceImpact
// abs(execution_price - spot_price) / spot_price * 100%
func GetPriceImpact(
	tokenIn PoolToken,
	tokenOut PoolToken,
	amountIn *big.Int,
	amountOut *big.Int,
) (decimal.Decimal, error) {
	if amountIn.Sign() == 0 {
		return decimal.Zero, nil
	}
	if amountOut.Sign() == 0 {
		return decimal.Decimal{}, fmt.Errorf("amountOut must be greater than 0")
	}

	// spot price of out per in: (balanceOut/weightOut) / (balanceIn/weightIn)
	balanceIn := decimal.NewFromBigInt(tokenIn.Balance, 0).Shift(-int32(tokenIn.Decimals))
	balanceOut := decimal.NewFromBigInt(tokenOut.Balance, 0).Shift(-int32(tokenOut.Decimals))
	weightIn := decimal.NewFromBigInt(tokenIn.Weight, -18)
	weightOut := decimal.NewFromBigInt(tokenOut.Weight, -18)

	spotPrice := balanceOut.DivRound(weightOut, 19).DivRound(balanceIn.DivRound(weightIn, 19), 19)

	executionPrice := decimal.NewFromBigInt(amountOut, 0).Shift(-int32(tokenOut.Decimals)).
		DivRound(decimal.NewFromBigInt(amountIn, 0).Shift(-int32(tokenIn.Decimals)), 19)

	diff := spotPrice.Sub(executionPrice).Abs()
	return diff.Div(spotPrice).Mul(decimal.NewFromInt(100)), nil
}
