package weightedpool

import (
	"bytes"
	"fmt"
	"math/big"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	solanago "github.com/symmetric-fi/symmetric-go/solana"
)

// AccountKeyPoolState is the anchor account name of the pool state.
const AccountKeyPoolState = "PoolState"

// PoolState mirrors the on-chain pool state account.
type PoolState struct {
	Vault       solana.PublicKey
	LpMint      solana.PublicKey
	TotalWeight binary.Uint128
}

type Pool struct {
	*PoolState
	Address solana.PublicKey
}

// PoolToken is a snapshot of one pool side used by the quote layer. Balance
// is in native mint units; Weight is 18-decimal fixed point, and weights
// across the pool sum to 1.0.
type PoolToken struct {
	Mint     solana.PublicKey
	Balance  *big.Int
	Weight   *big.Int
	Decimals uint8
}

// ParsePoolState decodes a pool state account, rejecting accounts whose
// discriminator names another type.
func ParsePoolState(data []byte) (*PoolState, error) {
	disc := solanago.AccountDiscriminator(AccountKeyPoolState)
	if len(data) < 8 || !bytes.Equal(data[:8], disc) {
		return nil, fmt.Errorf("not a %s account", AccountKeyPoolState)
	}
	state := &PoolState{}
	if err := binary.NewBorshDecoder(data[8:]).Decode(state); err != nil {
		return nil, err
	}
	return state, nil
}
