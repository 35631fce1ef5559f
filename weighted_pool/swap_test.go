package weightedpool

import (
	"context"
	"math/big"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func testPoolFixture() *Pool {
	return &Pool{
		PoolState: &PoolState{
			Vault:  solana.NewWallet().PublicKey(),
			LpMint: solana.NewWallet().PublicKey(),
		},
		Address: solana.NewWallet().PublicKey(),
	}
}

func TestSwapInstructionRejectsOversizedAmounts(t *testing.T) {
	pool := testPoolFixture()
	owner := solana.NewWallet().PublicKey()
	mintIn := solana.NewWallet().PublicKey()
	mintOut := solana.NewWallet().PublicKey()

	// an amount left in 18-decimal fixed point does not fit uint64
	huge := new(big.Int).Lsh(big.NewInt(1), 65)

	if _, err := SwapInstruction(context.Background(), nil, owner, owner, pool,
		mintIn, mintOut, huge, big.NewInt(0)); err == nil {
		t.Fatal("expected error for amountIn above uint64")
	}
	if _, err := SwapInstruction(context.Background(), nil, owner, owner, pool,
		mintIn, mintOut, big.NewInt(1), huge); err == nil {
		t.Fatal("expected error for minimumAmountOut above uint64")
	}
}
