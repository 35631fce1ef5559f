package symmetric

import (
	"github.com/symmetric-fi/symmetric-go/vault"
	weightedpool "github.com/symmetric-fi/symmetric-go/weighted_pool"
)

// NewWeightedPoolClient creates a new weighted-pool client.
//
// Example:
//
// pools, _ := NewWeightedPoolClient(rpcClient, weightedpool.WithWSClient(wsClient))
//
// pools.SwapQuote(ctx, pool, tokenIn, tokenOut, amountIn, swapFee, 250)
//
// pools.Swap(ctx, payer, owner, pool, tokenInMint, tokenOutMint, amountIn, minOut)
var NewWeightedPoolClient = weightedpool.NewWeightedPool

// NewVaultClient creates a new vault client.
//
// Example:
//
// vaults := NewVaultClient(rpcClient, vault.WithOwner(ownerWallet))
//
// vaults.Initialize(ctx, ownerWallet)
//
// vaults.RegisterPool(ctx, ownerWallet)
var NewVaultClient = vault.NewVault
