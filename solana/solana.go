package solana

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	sendandconfirmtransaction "github.com/gagliardetto/solana-go/rpc/sendAndConfirmTransaction"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

// Filter narrows a program-account scan to accounts whose bytes at Offset
// match Owner.
type Filter struct {
	Owner  solana.PublicKey
	Offset uint64
}

func GetAccountInfo(ctx context.Context, rpcClient *rpc.Client, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	return rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{Commitment: rpc.CommitmentFinalized})
}

func GetMultipleAccountInfo(ctx context.Context, rpcClient *rpc.Client, accounts []solana.PublicKey) (*rpc.GetMultipleAccountsResult, error) {
	return rpcClient.GetMultipleAccountsWithOpts(ctx, accounts, &rpc.GetMultipleAccountsOpts{Commitment: rpc.CommitmentFinalized, Encoding: solana.EncodingBase64})
}

func GetLatestBlockhash(ctx context.Context, rpcClient *rpc.Client) (solana.Hash, error) {
	recent, err := rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, err
	}
	return recent.Value.Blockhash, nil
}

// GenProgramAccountFilter builds getProgramAccounts options that match the
// anchor account discriminator of name, optionally narrowed by filter.
func GenProgramAccountFilter(name string, filter *Filter) *rpc.GetProgramAccountsOpts {
	opt := &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentFinalized,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  AccountDiscriminator(name),
				},
			},
		},
	}
	if filter == nil {
		return opt
	}

	opt.Filters = append(opt.Filters, rpc.RPCFilter{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: filter.Offset,
			Bytes:  filter.Owner[:],
		},
	})
	return opt
}

// SendTransaction signs, sends and waits for finalized confirmation.
func SendTransaction(
	ctx context.Context,
	rpcClient *rpc.Client,
	wsClient *ws.Client,
	instructions []solana.Instruction,
	payer solana.PublicKey,
	signers func(key solana.PublicKey) *solana.PrivateKey,
) (solana.Signature, error) {
	blockhash, err := GetLatestBlockhash(ctx, rpcClient)
	if err != nil {
		return solana.Signature{}, err
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return solana.Signature{}, err
	}

	if _, err = tx.Sign(signers); err != nil {
		return solana.Signature{}, err
	}

	sig, err := rpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: rpc.CommitmentFinalized,
		},
	)
	if err != nil {
		return solana.Signature{}, err
	}

	if _, err = sendandconfirmtransaction.WaitForConfirmation(ctx, wsClient, sig, nil); err != nil {
		return solana.Signature{}, err
	}
	return sig, nil
}
