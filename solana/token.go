package solana

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// Token is a decoded SPL mint plus the program that owns it.
type Token struct {
	token.Mint
	Owner solana.PublicKey
}

type TokenLayout struct {
}

func (l *TokenLayout) Decode(data []byte) (*Token, error) {
	mint := token.Mint{}

	if err := mint.Decode(data); err != nil {
		return nil, err
	}
	return &Token{Mint: mint}, nil
}

// GetMultipleToken fetches and decodes mints in one RPC round trip. Missing
// mints come back as nil entries.
func GetMultipleToken(ctx context.Context, rpcClient *rpc.Client, tokens ...solana.PublicKey) ([]*Token, error) {
	outs, err := GetMultipleAccountInfo(ctx, rpcClient, tokens)
	if err != nil {
		return nil, err
	}
	list := make([]*Token, len(outs.Value))
	for i, out := range outs.Value {
		if out == nil {
			continue
		}

		token, err := new(TokenLayout).Decode(out.Data.GetBinary())
		if err != nil {
			return nil, err
		}
		token.Owner = out.Owner

		list[i] = token
	}
	return list, nil
}
