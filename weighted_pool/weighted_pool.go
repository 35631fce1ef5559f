package weightedpool

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

// ProgramID is the weighted-pool program address.
var ProgramID = solana.MustPublicKeyFromBase58("DD3HQQHjNnAKqq9eX7RyNW84hnRyBMrzsoc8AxkuvNzZ")

// LpTokenDecimals is the decimals of every pool LP mint the program creates.
const LpTokenDecimals = uint8(9)

type WeightedPool struct {
	rpcClient   *rpc.Client
	wsClient    *ws.Client
	poolCreator *solana.Wallet
}

func NewWeightedPool(
	rpcClient *rpc.Client,
	opts ...Option,
) *WeightedPool {
	m := &WeightedPool{
		rpcClient: rpcClient,
	}
	for _, fn := range opts {
		fn(m)
	}
	return m
}

type Option func(*WeightedPool)

func WithCreator(poolCreator *solana.Wallet) Option {
	return func(m *WeightedPool) {
		m.poolCreator = poolCreator
	}
}

// WithWSClient enables send-and-confirm on the client's mutating methods.
func WithWSClient(wsClient *ws.Client) Option {
	return func(m *WeightedPool) {
		m.wsClient = wsClient
	}
}
