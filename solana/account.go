package solana

import (
	"context"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

type AccountState uint8

const (
	AccountStateUninitialized AccountState = 0
	AccountStateInitialized   AccountState = 1
	AccountStateFrozen        AccountState = 2
)

// Account is a decoded SPL token account. Pool vaults and user ATAs both
// decode through it; quotes read Amount.
type Account struct {
	Address solana.PublicKey

	// Mint associated with the account
	Mint solana.PublicKey

	// Owner of the account
	Owner solana.PublicKey

	// Number of tokens the account holds
	Amount uint64

	// Authority that can transfer tokens from the account
	Delegate *solana.PublicKey

	// Number of tokens the delegate is authorized to transfer
	DelegatedAmount uint64

	IsInitialized bool
	IsFrozen      bool

	// True if the account holds wrapped SOL
	IsNative bool

	// Rent-exempt reserve that must stay in a native account until close
	RentExemptReserve *uint64

	// Optional authority to close the account
	CloseAuthority *solana.PublicKey
}

// tokenAccountLayout is the on-chain byte layout of an SPL token account.
type tokenAccountLayout struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       uint32
	Delegate             *solana.PublicKey
	State                uint8
	IsNativeOption       uint32
	IsNative             *uint64
	DelegatedAmount      uint64
	CloseAuthorityOption uint32
	CloseAuthority       *solana.PublicKey
}

type AccountLayout struct {
}

func (l *AccountLayout) Decode(data []byte) (*Account, error) {
	rawAccount := &tokenAccountLayout{}
	if err := binary.NewBinDecoder(data).Decode(rawAccount); err != nil {
		return nil, err
	}
	return &Account{
		Mint:   rawAccount.Mint,
		Owner:  rawAccount.Owner,
		Amount: rawAccount.Amount,
		Delegate: func() *solana.PublicKey {
			if rawAccount.DelegateOption > 0 {
				return rawAccount.Delegate
			}
			return nil
		}(),
		DelegatedAmount: rawAccount.DelegatedAmount,
		IsInitialized:   AccountState(rawAccount.State) != AccountStateUninitialized,
		IsFrozen:        AccountState(rawAccount.State) == AccountStateFrozen,
		IsNative:        rawAccount.IsNativeOption > 0,
		RentExemptReserve: func() *uint64 {
			if rawAccount.IsNativeOption > 0 {
				return rawAccount.IsNative
			}
			return nil
		}(),
		CloseAuthority: func() *solana.PublicKey {
			if rawAccount.CloseAuthorityOption > 0 {
				return rawAccount.CloseAuthority
			}
			return nil
		}(),
	}, nil
}

// GetMultipleTokenAccount fetches and decodes token accounts in one RPC
// round trip. Missing accounts come back as nil entries.
func GetMultipleTokenAccount(ctx context.Context, rpcClient *rpc.Client, accounts ...solana.PublicKey) ([]*Account, error) {
	outs, err := GetMultipleAccountInfo(ctx, rpcClient, accounts)
	if err != nil {
		return nil, err
	}
	list := make([]*Account, len(outs.Value))
	for i, out := range outs.Value {
		if out == nil {
			continue
		}
		account, err := new(AccountLayout).Decode(out.Data.GetBinary())
		if err != nil {
			return nil, err
		}
		account.Address = accounts[i]
		list[i] = account
	}
	return list, nil
}
