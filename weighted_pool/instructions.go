package weightedpool

import (
	"bytes"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	solanago "github.com/symmetric-fi/symmetric-go/solana"
)

// Anchor instruction builders. Data is the 8-byte method discriminator
// followed by the borsh-encoded parameters; account order matches the
// program's Accounts structs.

type InitializeParameters struct {
	Vault         solana.PublicKey
	InitialWeight binary.Uint128
}

type SwapParameters struct {
	AmountIn         uint64
	MinimumAmountOut uint64
}

type AddLiquidityParameters struct {
	MaxAmountsIn  []uint64
	MinimumBptOut uint64
}

type RemoveLiquidityParameters struct {
	BptIn             uint64
	MinimumAmountsOut []uint64
}

func encodeInstruction(name string, params interface{}, accounts solana.AccountMetaSlice) (solana.Instruction, error) {
	data := solanago.InstructionDiscriminator(name)
	if params != nil {
		buf := new(bytes.Buffer)
		if err := binary.NewBorshEncoder(buf).Encode(params); err != nil {
			return nil, err
		}
		data = append(data, buf.Bytes()...)
	}
	return solana.NewInstruction(ProgramID, accounts, data), nil
}

// NewInitializeInstruction creates the pool state and LP mint for a vault.
func NewInitializeInstruction(
	params InitializeParameters,
	vault solana.PublicKey,
	poolState solana.PublicKey,
	lpMint solana.PublicKey,
	payer solana.PublicKey,
	tokenProgram solana.PublicKey,
) (solana.Instruction, error) {
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(vault, false, false),
		solana.NewAccountMeta(poolState, true, false),
		solana.NewAccountMeta(lpMint, true, false),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(tokenProgram, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}
	return encodeInstruction("initialize", params, accounts)
}

// NewSwapInstruction trades an exact input amount between two pool tokens.
func NewSwapInstruction(
	params SwapParameters,
	poolState solana.PublicKey,
	inputVaultAccount solana.PublicKey,
	outputVaultAccount solana.PublicKey,
	inputTokenAccount solana.PublicKey,
	outputTokenAccount solana.PublicKey,
	owner solana.PublicKey,
	tokenProgram solana.PublicKey,
) (solana.Instruction, error) {
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(poolState, false, false),
		solana.NewAccountMeta(inputVaultAccount, true, false),
		solana.NewAccountMeta(outputVaultAccount, true, false),
		solana.NewAccountMeta(inputTokenAccount, true, false),
		solana.NewAccountMeta(outputTokenAccount, true, false),
		solana.NewAccountMeta(owner, false, true),
		solana.NewAccountMeta(tokenProgram, false, false),
	}
	return encodeInstruction("swap", params, accounts)
}

// NewAddLiquidityInstruction deposits up to MaxAmountsIn of every pool token
// and mints at least MinimumBptOut. tokenAccounts alternates pool vault
// account and user token account per pool token, in pool token order.
func NewAddLiquidityInstruction(
	params AddLiquidityParameters,
	poolState solana.PublicKey,
	lpMint solana.PublicKey,
	userLpAccount solana.PublicKey,
	owner solana.PublicKey,
	tokenProgram solana.PublicKey,
	tokenAccounts []*solana.AccountMeta,
) (solana.Instruction, error) {
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(poolState, false, false),
		solana.NewAccountMeta(lpMint, true, false),
		solana.NewAccountMeta(userLpAccount, true, false),
		solana.NewAccountMeta(owner, false, true),
		solana.NewAccountMeta(tokenProgram, false, false),
	}
	accounts = append(accounts, tokenAccounts...)
	return encodeInstruction("add_liquidity", params, accounts)
}

// NewRemoveLiquidityInstruction burns BptIn and releases at least
// MinimumAmountsOut of every pool token. tokenAccounts alternates pool vault
// account and user token account per pool token, in pool token order.
func NewRemoveLiquidityInstruction(
	params RemoveLiquidityParameters,
	poolState solana.PublicKey,
	lpMint solana.PublicKey,
	userLpAccount solana.PublicKey,
	owner solana.PublicKey,
	tokenProgram solana.PublicKey,
	tokenAccounts []*solana.AccountMeta,
) (solana.Instruction, error) {
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(poolState, false, false),
		solana.NewAccountMeta(lpMint, true, false),
		solana.NewAccountMeta(userLpAccount, true, false),
		solana.NewAccountMeta(owner, false, true),
		solana.NewAccountMeta(tokenProgram, false, false),
	}
	accounts = append(accounts, tokenAccounts...)
	return encodeInstruction("remove_liquidity", params, accounts)
}
