package vault

import (
	"bytes"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	solanago "github.com/symmetric-fi/symmetric-go/solana"
)

type InitializeParameters struct {
	Owner solana.PublicKey
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

// NewInitializeInstruction creates the vault state with a zero pool count.
func NewInitializeInstruction(
	params InitializeParameters,
	vaultState solana.PublicKey,
	payer solana.PublicKey,
) (solana.Instruction, error) {
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(vaultState, true, false),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}
	return encodeInstruction("initialize", params, accounts)
}

// NewRegisterPoolInstruction bumps the pool count; owner must match the
// vault state's owner.
func NewRegisterPoolInstruction(
	vaultState solana.PublicKey,
	owner solana.PublicKey,
) (solana.Instruction, error) {
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(vaultState, true, false),
		solana.NewAccountMeta(owner, false, true),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}
	return encodeInstruction("register_pool", nil, accounts)
}
