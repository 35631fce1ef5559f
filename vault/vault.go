package vault

import (
	"context"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	solanago "github.com/symmetric-fi/symmetric-go/solana"
)

// ProgramID is the vault program address.
var ProgramID = solana.MustPublicKeyFromBase58("CsSfsxZcni7DTeLvxTvzbFsLa3PdvyQCKmakzmXeM2fz")

type Vault struct {
	rpcClient *rpc.Client
	wsClient  *ws.Client
	owner     *solana.Wallet
}

func NewVault(
	rpcClient *rpc.Client,
	opts ...Option,
) *Vault {
	v := &Vault{
		rpcClient: rpcClient,
	}
	for _, fn := range opts {
		fn(v)
	}
	return v
}

type Option func(*Vault)

func WithOwner(owner *solana.Wallet) Option {
	return func(v *Vault) {
		v.owner = owner
	}
}

// WithWSClient enables send-and-confirm on the client's mutating methods.
func WithWSClient(wsClient *ws.Client) Option {
	return func(v *Vault) {
		v.wsClient = wsClient
	}
}

// Initialize creates the vault state for payer with a zero pool count.
func (v *Vault) Initialize(ctx context.Context, payer *solana.Wallet) (string, solana.PublicKey, error) {
	vaultState, err := DeriveVaultStatePDA(payer.PublicKey())
	if err != nil {
		return "", solana.PublicKey{}, err
	}

	initIx, err := NewInitializeInstruction(
		// Params:
		InitializeParameters{Owner: payer.PublicKey()},
		// Accounts:
		vaultState,
		payer.PublicKey(),
	)
	if err != nil {
		return "", solana.PublicKey{}, err
	}

	sig, err := v.send(ctx, payer, []solana.Instruction{initIx})
	if err != nil {
		return "", solana.PublicKey{}, err
	}
	return sig, vaultState, nil
}

// RegisterPool bumps the vault's pool count; the owner must sign.
func (v *Vault) RegisterPool(ctx context.Context, owner *solana.Wallet) (string, error) {
	vaultState, err := DeriveVaultStatePDA(owner.PublicKey())
	if err != nil {
		return "", err
	}

	registerIx, err := NewRegisterPoolInstruction(vaultState, owner.PublicKey())
	if err != nil {
		return "", err
	}

	return v.send(ctx, owner, []solana.Instruction{registerIx})
}

// Deposit moves tokens from the owner's ATA into the vault state's ATA.
func (v *Vault) Deposit(
	ctx context.Context,
	owner *solana.Wallet,
	mint solana.PublicKey,
	decimals uint8,
	amount *big.Int,
) (string, error) {
	vaultState, err := DeriveVaultStatePDA(owner.PublicKey())
	if err != nil {
		return "", err
	}

	instructions, err := solanago.TransferInstruction(
		ctx,
		v.rpcClient,
		owner.PublicKey(),
		owner.PublicKey(),
		vaultState,
		mint,
		decimals,
		amount,
	)
	if err != nil {
		return "", err
	}

	return v.send(ctx, owner, instructions)
}

func (v *Vault) send(ctx context.Context, payer *solana.Wallet, instructions []solana.Instruction) (string, error) {
	sig, err := solanago.SendTransaction(ctx,
		v.rpcClient,
		v.wsClient,
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
		return "", err
	}
	return sig.String(), nil
}
