package vault

import (
	"bytes"
	"context"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	solanago "github.com/symmetric-fi/symmetric-go/solana"
)

// AccountKeyVaultState is the anchor account name of the vault state.
const AccountKeyVaultState = "VaultState"

// VaultState mirrors the on-chain vault state account.
type VaultState struct {
	Owner     solana.PublicKey
	PoolCount uint64
}

// ParseVaultState decodes a vault state account, rejecting accounts whose
// discriminator names another type.
func ParseVaultState(data []byte) (*VaultState, error) {
	disc := solanago.AccountDiscriminator(AccountKeyVaultState)
	if len(data) < 8 || !bytes.Equal(data[:8], disc) {
		return nil, fmt.Errorf("not a %s account", AccountKeyVaultState)
	}
	state := &VaultState{}
	if err := binary.NewBorshDecoder(data[8:]).Decode(state); err != nil {
		return nil, err
	}
	return state, nil
}

func (v *Vault) GetVaultState(ctx context.Context, owner solana.PublicKey) (*VaultState, error) {
	return GetVaultState(ctx, v.rpcClient, owner)
}

// GetVaultState fetches and decodes the vault state for an owner.
func GetVaultState(
	ctx context.Context,
	rpcClient *rpc.Client,
	owner solana.PublicKey,
) (*VaultState, error) {
	vaultState, err := DeriveVaultStatePDA(owner)
	if err != nil {
		return nil, err
	}

	out, err := solanago.GetAccountInfo(ctx, rpcClient, vaultState)
	if err != nil {
		if err == rpc.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	return ParseVaultState(out.Value.Data.GetBinary())
}
