package weightedpool

import (
	"context"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	solanago "github.com/symmetric-fi/symmetric-go/solana"
)

// SwapInstruction assembles the instruction list for an exact-in swap:
// user ATA preparation, SOL wrapping when a side is WSOL, the program swap,
// and WSOL unwinding.
func SwapInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	payer solana.PublicKey,
	owner solana.PublicKey,
	pool *Pool,
	tokenInMint solana.PublicKey,
	tokenOutMint solana.PublicKey,
	amountIn *big.Int,
	minimumAmountOut *big.Int,
) ([]solana.Instruction, error) {
	if amountIn.Cmp(big.NewInt(0)) <= 0 {
		return nil, fmt.Errorf("amountIn must be greater than 0")
	}
	amountInNative, err := toUint64(amountIn)
	if err != nil {
		return nil, err
	}
	minimumAmountOutNative, err := toUint64(minimumAmountOut)
	if err != nil {
		return nil, err
	}

	var instructions []solana.Instruction

	inputTokenAccount, err := solanago.PrepareTokenATA(ctx, rpcClient, owner, tokenInMint, payer, &instructions)
	if err != nil {
		return nil, err
	}

	outputTokenAccount, err := solanago.PrepareTokenATA(ctx, rpcClient, owner, tokenOutMint, payer, &instructions)
	if err != nil {
		return nil, err
	}

	if tokenInMint.Equals(solana.WrappedSol) {
		// wrap SOL by transferring lamports into the WSOL ATA
		wrapSOLIx := system.NewTransferInstruction(
			amountInNative,
			owner,
			inputTokenAccount,
		).Build()
		// sync the WSOL account to update its balance
		syncNativeIx := token.NewSyncNativeInstruction(
			inputTokenAccount,
		).Build()
		instructions = append(instructions, wrapSOLIx, syncNativeIx)
	}

	inputVaultAccount, err := DerivePoolTokenAccount(pool.Address, tokenInMint)
	if err != nil {
		return nil, err
	}
	outputVaultAccount, err := DerivePoolTokenAccount(pool.Address, tokenOutMint)
	if err != nil {
		return nil, err
	}

	swapIx, err := NewSwapInstruction(
		// Params:
		SwapParameters{
			AmountIn:         amountInNative,
			MinimumAmountOut: minimumAmountOutNative,
		},
		// Accounts:
		pool.Address,
		inputVaultAccount,
		outputVaultAccount,
		inputTokenAccount,
		outputTokenAccount,
		owner,
		solana.TokenProgramID,
	)
	if err != nil {
		return nil, err
	}
	instructions = append(instructions, swapIx)

	switch {
	case tokenInMint.Equals(solana.WrappedSol):
		unwrapIx := token.NewCloseAccountInstruction(
			inputTokenAccount,
			owner,
			owner,
			[]solana.PublicKey{},
		).Build()
		instructions = append(instructions, unwrapIx)
	case tokenOutMint.Equals(solana.WrappedSol):
		unwrapIx := token.NewCloseAccountInstruction(
			outputTokenAccount,
			owner,
			owner,
			[]solana.PublicKey{},
		).Build()
		instructions = append(instructions, unwrapIx)
	}

	return instructions, nil
}

func (m *WeightedPool) Swap(
	ctx context.Context,
	payer *solana.Wallet,
	owner *solana.Wallet,
	pool *Pool,
	tokenInMint solana.PublicKey,
	tokenOutMint solana.PublicKey,
	amountIn *big.Int,
	minimumAmountOut *big.Int,
) (string, error) {
	instructions, err := SwapInstruction(
		ctx,
		m.rpcClient,
		payer.PublicKey(),
		owner.PublicKey(),
		pool,
		tokenInMint,
		tokenOutMint,
		amountIn,
		minimumAmountOut,
	)
	if err != nil {
		return "", err
	}

	sig, err := solanago.SendTransaction(ctx,
		m.rpcClient,
		m.wsClient,
		instructions,
		payer.PublicKey(),
		func(key solana.PublicKey) *solana.PrivateKey {
			switch {
			case key.Equals(payer.PublicKey()):
				return &payer.PrivateKey
			case key.Equals(owner.PublicKey()):
				return &owner.PrivateKey
			default:
				return nil
			}
		},
	)
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}
