package solana

import (
	"context"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// TransferInstruction moves amount of mint from sender to receiver through
// their ATAs, creating the receiver's when missing. The sender's account is
// only derived: it must already exist and hold the funds, so an instruction
// creating it would be wasted.
func TransferInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	payer solana.PublicKey,
	sender solana.PublicKey,
	receiver solana.PublicKey,
	mint solana.PublicKey,
	decimals uint8,
	amount *big.Int,
) ([]solana.Instruction, error) {
	if amount == nil || amount.Sign() <= 0 || amount.BitLen() > 64 {
		return nil, fmt.Errorf("amount %s does not fit a token transfer", amount)
	}

	sendTokenAccount, _, err := solana.FindAssociatedTokenAddress(sender, mint)
	if err != nil {
		return nil, err
	}

	var instructions []solana.Instruction
	receiveTokenAccount, err := PrepareTokenATA(ctx, rpcClient, receiver, mint, payer, &instructions)
	if err != nil {
		return nil, err
	}

	transferIx := token.NewTransferCheckedInstruction(
		amount.Uint64(),
		decimals,
		sendTokenAccount,
		mint,
		receiveTokenAccount,
		sender,
		[]solana.PublicKey{},
	).Build()

	return append(instructions, transferIx), nil
}
