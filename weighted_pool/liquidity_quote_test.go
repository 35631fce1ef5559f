package weightedpool

import (
	"math/big"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func testPool() []PoolToken {
	return []PoolToken{
		{
			Mint:     solana.NewWallet().PublicKey(),
			Balance:  big.NewInt(100_000_000), // 100 at 6 decimals
			Weight:   fp("0.5"),
			Decimals: 6,
		},
		{
			Mint:     solana.NewWallet().PublicKey(),
			Balance:  big.NewInt(100_000_000_000), // 100 at 9 decimals
			Weight:   fp("0.5"),
			Decimals: 9,
		},
	}
}

var testTotalBpt = big.NewInt(100_000_000_000) // 100 LP tokens at 9 decimals

func TestJoinQuoteProportional(t *testing.T) {
	tokens := testPool()
	amountsIn := []*big.Int{big.NewInt(10_000_000), big.NewInt(10_000_000_000)}

	quote, err := JoinQuote(tokens, amountsIn, testTotalBpt, fp("0.001"), 250)
	if err != nil {
		t.Fatalf("JoinQuote: %v", err)
	}

	// 10% more of everything mints just under 10% more supply
	if quote.BptOut.Cmp(big.NewInt(9_990_000_000)) < 0 ||
		quote.BptOut.Cmp(big.NewInt(10_000_000_000)) > 0 {
		t.Errorf("bptOut = %s, want just below 10e9", quote.BptOut)
	}

	wantMin := GetMinAmountWithSlippage(quote.BptOut, 250)
	if quote.MinBptOut.Cmp(wantMin) != 0 {
		t.Errorf("min bptOut = %s, want %s", quote.MinBptOut, wantMin)
	}
}

func TestJoinQuoteLengthMismatch(t *testing.T) {
	tokens := testPool()
	if _, err := JoinQuote(tokens, []*big.Int{big.NewInt(1)}, testTotalBpt, fp("0.001"), 0); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestSingleTokenJoinQuote(t *testing.T) {
	tokens := testPool()

	quote, err := SingleTokenJoinQuote(tokens[0], big.NewInt(10_000_000_000), testTotalBpt, big.NewInt(0), 250)
	if err != nil {
		t.Fatalf("SingleTokenJoinQuote: %v", err)
	}

	// 100 * (1.1^2 - 1) = 21 of the 6-decimals token
	if quote.AmountIn.Cmp(big.NewInt(20_990_000)) < 0 ||
		quote.AmountIn.Cmp(big.NewInt(21_010_000)) > 0 {
		t.Errorf("amountIn = %s, want ~21e6", quote.AmountIn)
	}

	wantMax := GetMaxAmountWithSlippage(quote.AmountIn, 250)
	if quote.MaxAmountIn.Cmp(wantMax) != 0 {
		t.Errorf("max amountIn = %s, want %s", quote.MaxAmountIn, wantMax)
	}
}

func TestExitQuoteProportional(t *testing.T) {
	tokens := testPool()
	tokens[0].Balance = big.NewInt(50_000_000)
	tokens[1].Balance = big.NewInt(50_000_000_000)

	quote, err := ExitQuote(tokens, big.NewInt(10_000_000_000), testTotalBpt, fp("0.1"), 0)
	if err != nil {
		t.Fatalf("ExitQuote: %v", err)
	}

	// 10% of supply burned, 10% exit fee: 4.5 of each token
	if quote.AmountsOut[0].Cmp(big.NewInt(4_500_000)) != 0 {
		t.Errorf("amountsOut[0] = %s, want 4.5e6", quote.AmountsOut[0])
	}
	if quote.AmountsOut[1].Cmp(big.NewInt(4_500_000_000)) != 0 {
		t.Errorf("amountsOut[1] = %s, want 4.5e9", quote.AmountsOut[1])
	}
}

func TestSingleTokenExitQuote(t *testing.T) {
	tokens := testPool()

	quote, err := SingleTokenExitQuote(tokens[0], big.NewInt(10_000_000_000), testTotalBpt, big.NewInt(0), 0)
	if err != nil {
		t.Fatalf("SingleTokenExitQuote: %v", err)
	}

	// 100 * (1 - 0.9^2) = 19 of the 6-decimals token
	if quote.AmountOut.Cmp(big.NewInt(18_990_000)) < 0 ||
		quote.AmountOut.Cmp(big.NewInt(19_010_000)) > 0 {
		t.Errorf("amountOut = %s, want ~19e6", quote.AmountOut)
	}
}

func TestExitExactTokensQuote(t *testing.T) {
	tokens := testPool()
	tokens[0].Balance = big.NewInt(50_000_000)
	tokens[1].Balance = big.NewInt(50_000_000_000)

	amountsOut := []*big.Int{big.NewInt(10_000_000), big.NewInt(0)}
	quote, err := ExitExactTokensQuote(tokens, amountsOut, testTotalBpt, fp("0.001"), 250)
	if err != nil {
		t.Fatalf("ExitExactTokensQuote: %v", err)
	}

	// one-sided withdrawal of 20% of a 50/50 pool burns ~10.56% of supply
	if quote.BptIn.Cmp(big.NewInt(10_500_000_000)) < 0 ||
		quote.BptIn.Cmp(big.NewInt(10_600_000_000)) > 0 {
		t.Errorf("bptIn = %s, want ~10.56e9", quote.BptIn)
	}
	if quote.MaxBptIn.Cmp(quote.BptIn) < 0 {
		t.Errorf("maxBptIn = %s below bptIn = %s", quote.MaxBptIn, quote.BptIn)
	}
}

func TestExitExactTokensQuoteLengthMismatch(t *testing.T) {
	tokens := testPool()
	if _, err := ExitExactTokensQuote(tokens, []*big.Int{big.NewInt(1)}, testTotalBpt, fp("0.001"), 0); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
