package weightedpool

import (
	"context"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	solanago "github.com/symmetric-fi/symmetric-go/solana"
	"github.com/symmetric-fi/symmetric-go/u128"
)

func (m *WeightedPool) GetPool(ctx context.Context, vault solana.PublicKey) (*Pool, error) {
	return GetPool(ctx, m.rpcClient, vault)
}

// GetPool fetches and decodes the pool state registered for a vault.
func GetPool(
	ctx context.Context,
	rpcClient *rpc.Client,
	vault solana.PublicKey,
) (*Pool, error) {
	poolAddress, err := DerivePoolStatePDA(vault)
	if err != nil {
		return nil, err
	}

	out, err := solanago.GetAccountInfo(ctx, rpcClient, poolAddress)
	if err != nil {
		if err == rpc.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	state, err := ParsePoolState(out.Value.Data.GetBinary())
	if err != nil {
		return nil, err
	}
	return &Pool{state, poolAddress}, nil
}

func (m *WeightedPool) GetPools(ctx context.Context) (map[solana.PublicKey]*Pool, error) {
	return GetPools(ctx, m.rpcClient)
}

// GetPools scans the program for every pool state, keyed by vault.
func GetPools(
	ctx context.Context,
	rpcClient *rpc.Client,
) (map[solana.PublicKey]*Pool, error) {
	opt := solanago.GenProgramAccountFilter(AccountKeyPoolState, nil)

	outs, err := rpcClient.GetProgramAccountsWithOpts(ctx, ProgramID, opt)
	if err != nil {
		if err == rpc.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	data := make(map[solana.PublicKey]*Pool)
	for _, out := range outs {
		state, err := ParsePoolState(out.Account.Data.GetBinary())
		if err != nil {
			return nil, err
		}
		data[state.Vault] = &Pool{state, out.Pubkey}
	}
	return data, nil
}

func (m *WeightedPool) IsPoolExist(ctx context.Context, vault solana.PublicKey) (bool, error) {
	pool, err := GetPool(ctx, m.rpcClient, vault)
	if err != nil {
		return false, err
	}
	return pool != nil, nil
}

// GetPoolTokenBalances reads the pool vault account balance of every mint,
// in pool token order.
func GetPoolTokenBalances(
	ctx context.Context,
	rpcClient *rpc.Client,
	pool *Pool,
	mints []solana.PublicKey,
) ([]*big.Int, error) {
	vaultAccounts := make([]solana.PublicKey, len(mints))
	for i, mint := range mints {
		account, err := DerivePoolTokenAccount(pool.Address, mint)
		if err != nil {
			return nil, err
		}
		vaultAccounts[i] = account
	}

	accounts, err := solanago.GetMultipleTokenAccount(ctx, rpcClient, vaultAccounts...)
	if err != nil {
		return nil, err
	}

	balances := make([]*big.Int, len(mints))
	for i, account := range accounts {
		if account == nil {
			return nil, fmt.Errorf("pool token account for %s not found", mints[i])
		}
		balances[i] = new(big.Int).SetUint64(account.Amount)
	}
	return balances, nil
}

// CreatePoolInstruction builds the initialize instruction for a new pool
// bound to vault.
func CreatePoolInstruction(
	vault solana.PublicKey,
	payer solana.PublicKey,
	initialWeight *big.Int,
) ([]solana.Instruction, solana.PublicKey, error) {
	poolAddress, err := DerivePoolStatePDA(vault)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	lpMint, err := DeriveLpMintPDA(poolAddress)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	weight, err := u128.FromBig(initialWeight)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	createIx, err := NewInitializeInstruction(
		// Params:
		InitializeParameters{
			Vault:         vault,
			InitialWeight: weight,
		},
		// Accounts:
		vault,
		poolAddress,
		lpMint,
		payer,
		solana.TokenProgramID,
	)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	return []solana.Instruction{createIx}, poolAddress, nil
}

func (m *WeightedPool) CreatePool(
	ctx context.Context,
	payer *solana.Wallet,
	vault solana.PublicKey,
	initialWeight *big.Int,
) (string, solana.PublicKey, error) {
	instructions, poolAddress, err := CreatePoolInstruction(vault, payer.PublicKey(), initialWeight)
	if err != nil {
		return "", solana.PublicKey{}, err
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
			default:
				return nil
			}
		},
	)
	if err != nil {
		return "", solana.PublicKey{}, err
	}
	return sig.String(), poolAddress, nil
}
