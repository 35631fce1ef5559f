package weightedpool

import (
	"context"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	solanago "github.com/symmetric-fi/symmetric-go/solana"
)

// poolTokenAccountMetas builds the trailing account list shared by the
// liquidity instructions: pool vault account then user token account, per
// mint, in pool token order.
func poolTokenAccountMetas(
	ctx context.Context,
	rpcClient *rpc.Client,
	pool *Pool,
	owner solana.PublicKey,
	payer solana.PublicKey,
	mints []solana.PublicKey,
	instructions *[]solana.Instruction,
) ([]*solana.AccountMeta, error) {
	var metas []*solana.AccountMeta
	for _, mint := range mints {
		vaultAccount, err := DerivePoolTokenAccount(pool.Address, mint)
		if err != nil {
			return nil, err
		}

		userAccount, err := solanago.PrepareTokenATA(ctx, rpcClient, owner, mint, payer, instructions)
		if err != nil {
			return nil, err
		}

		metas = append(metas,
			solana.NewAccountMeta(vaultAccount, true, false),
			solana.NewAccountMeta(userAccount, true, false),
		)
	}
	return metas, nil
}

// AddLiquidityInstruction assembles the instruction list for an
// exact-amounts-in join minting at least minimumBptOut.
func AddLiquidityInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	payer solana.PublicKey,
	owner solana.PublicKey,
	pool *Pool,
	mints []solana.PublicKey,
	maxAmountsIn []*big.Int,
	minimumBptOut *big.Int,
) ([]solana.Instruction, error) {
	if len(mints) == 0 || len(mints) != len(maxAmountsIn) {
		return nil, fmt.Errorf("mints and maxAmountsIn length mismatch")
	}

	amounts := make([]uint64, len(maxAmountsIn))
	for i, amount := range maxAmountsIn {
		native, err := toUint64(amount)
		if err != nil {
			return nil, err
		}
		amounts[i] = native
	}
	minimumBptOutNative, err := toUint64(minimumBptOut)
	if err != nil {
		return nil, err
	}

	var instructions []solana.Instruction

	userLpAccount, err := solanago.PrepareTokenATA(ctx, rpcClient, owner, pool.LpMint, payer, &instructions)
	if err != nil {
		return nil, err
	}

	tokenAccounts, err := poolTokenAccountMetas(ctx, rpcClient, pool, owner, payer, mints, &instructions)
	if err != nil {
		return nil, err
	}

	addIx, err := NewAddLiquidityInstruction(
		// Params:
		AddLiquidityParameters{
			MaxAmountsIn:  amounts,
			MinimumBptOut: minimumBptOutNative,
		},
		// Accounts:
		pool.Address,
		pool.LpMint,
		userLpAccount,
		owner,
		solana.TokenProgramID,
		tokenAccounts,
	)
	if err != nil {
		return nil, err
	}

	return append(instructions, addIx), nil
}

func (m *WeightedPool) AddLiquidity(
	ctx context.Context,
	payer *solana.Wallet,
	owner *solana.Wallet,
	pool *Pool,
	mints []solana.PublicKey,
	maxAmountsIn []*big.Int,
	minimumBptOut *big.Int,
) (string, error) {
	instructions, err := AddLiquidityInstruction(
		ctx,
		m.rpcClient,
		payer.PublicKey(),
		owner.PublicKey(),
		pool,
		mints,
		maxAmountsIn,
		minimumBptOut,
	)
	if err != nil {
		return "", err
	}
	return m.sendLiquidityTransaction(ctx, payer, owner, instructions)
}

// RemoveLiquidityInstruction assembles the instruction list for a
// proportional exit burning bptIn.
func RemoveLiquidityInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	payer solana.PublicKey,
	owner solana.PublicKey,
	pool *Pool,
	mints []solana.PublicKey,
	bptIn *big.Int,
	minimumAmountsOut []*big.Int,
) ([]solana.Instruction, error) {
	if len(mints) == 0 || len(mints) != len(minimumAmountsOut) {
		return nil, fmt.Errorf("mints and minimumAmountsOut length mismatch")
	}
	if bptIn.Cmp(big.NewInt(0)) <= 0 {
		return nil, fmt.Errorf("bptIn must be greater than 0")
	}

	bptInNative, err := toUint64(bptIn)
	if err != nil {
		return nil, err
	}
	amounts := make([]uint64, len(minimumAmountsOut))
	for i, amount := range minimumAmountsOut {
		native, err := toUint64(amount)
		if err != nil {
			return nil, err
		}
		amounts[i] = native
	}

	var instructions []solana.Instruction

	userLpAccount, err := solanago.PrepareTokenATA(ctx, rpcClient, owner, pool.LpMint, payer, &instructions)
	if err != nil {
		return nil, err
	}

	tokenAccounts, err := poolTokenAccountMetas(ctx, rpcClient, pool, owner, payer, mints, &instructions)
	if err != nil {
		return nil, err
	}

	removeIx, err := NewRemoveLiquidityInstruction(
		// Params:
		RemoveLiquidityParameters{
			BptIn:             bptInNative,
			MinimumAmountsOut: amounts,
		},
		// Accounts:
		pool.Address,
		pool.LpMint,
		userLpAccount,
		owner,
		solana.TokenProgramID,
		tokenAccounts,
	)
	if err != nil {
		return nil, err
	}

	return append(instructions, removeIx), nil
}

func (m *WeightedPool) RemoveLiquidity(
	ctx context.Context,
	payer *solana.Wallet,
	owner *solana.Wallet,
	pool *Pool,
	mints []solana.PublicKey,
	bptIn *big.Int,
	minimumAmountsOut []*big.Int,
) (string, error) {
	instructions, err := RemoveLiquidityInstruction(
		ctx,
		m.rpcClient,
		payer.PublicKey(),
		owner.PublicKey(),
		pool,
		mints,
		bptIn,
		minimumAmountsOut,
	)
	if err != nil {
		return "", err
	}
	return m.sendLiquidityTransaction(ctx, payer, owner, instructions)
}

func (m *WeightedPool) sendLiquidityTransaction(
	ctx context.Context,
	payer *solana.Wallet,
	owner *solana.Wallet,
	instructions []solana.Instruction,
) (string, error) {
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
