package symmetric

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	sendandconfirmtransaction "github.com/gagliardetto/solana-go/rpc/sendAndConfirmTransaction"
	"github.com/gagliardetto/solana-go/rpc/ws"
	solanago "github.com/symmetric-fi/symmetric-go/solana"
	"github.com/symmetric-fi/symmetric-go/vault"
	weightedpool "github.com/symmetric-fi/symmetric-go/weighted_pool"
	"github.com/tidwall/gjson"
)

func testInit() (*rpc.Client, *ws.Client, *context.Context, *context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	wsClient, err := ws.Connect(ctx, rpc.DevNet_WS)
	if err != nil {
		cancel()
		return nil, nil, nil, nil, err
	}

	rpcClient := rpc.New(rpc.DevNet_RPC)

	return rpcClient, wsClient, &ctx, &cancel, nil
}

func testBalance(ctx context.Context, rpcClient *rpc.Client, wallet solana.PublicKey) (uint64, error) {
	ctx1, cancel1 := context.WithTimeout(ctx, time.Second*5)
	defer cancel1()
	balanceResult, err := rpcClient.GetBalance(ctx1, wallet, rpc.CommitmentFinalized)
	if err != nil {
		return 0, err
	}
	lamports := balanceResult.Value
	sol := float64(lamports) / 1e9 // 1 SOL = 1e9 lamports

	fmt.Printf("wallet address:%v \t sol holdings:%v \n", wallet, sol)
	return lamports, nil
}

func testMintBalance(ctx context.Context, rpcClient *rpc.Client, wallet, mint solana.PublicKey) (uint64, error) {
	ctx1, cancel1 := context.WithTimeout(ctx, time.Second*5)
	defer cancel1()
	resp, err := rpcClient.GetTokenAccountsByOwner(ctx1, wallet, &rpc.GetTokenAccountsConfig{
		ProgramId: &solana.TokenProgramID,
	}, &rpc.GetTokenAccountsOpts{
		Encoding:   solana.EncodingJSONParsed,
		Commitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return 0, err
	}

	mintBalance := make(map[string]uint64)
	for _, v := range resp.Value {
		m := gjson.GetBytes(v.Account.Data.GetRawJSON(), "parsed.info.mint").String()
		amount := gjson.GetBytes(v.Account.Data.GetRawJSON(), "parsed.info.tokenAmount.amount").Uint()
		if amount == 0 || m == "" {
			continue
		}
		mintBalance[m] = amount
	}

	fmt.Printf("wallet address:%v \t mint:%v \t holdings:%v \n", wallet, mint, mintBalance[mint.String()])
	return mintBalance[mint.String()], nil
}

func testTransferSOL(ctx context.Context,
	rpcClient *rpc.Client,
	wsClient *ws.Client,
	from *solana.Wallet,
	to solana.PublicKey,
	amountIn uint64,
) (string, error) {

	if amountIn < 5000 {
		return "", fmt.Errorf("amountIn < 5000")
	}

	amountIn -= 5000
	transferix := system.NewTransferInstruction(
		amountIn,
		from.PublicKey(),
		to,
	).Build()

	blockhash, err := solanago.GetLatestBlockhash(ctx, rpcClient)
	if err != nil {
		return "", err
	}

	tx, err := solana.NewTransaction([]solana.Instruction{transferix}, blockhash, solana.TransactionPayer(from.PublicKey()))
	if err != nil {
		return "", err
	}

	if _, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		switch {
		case key.Equals(from.PublicKey()):
			return &from.PrivateKey
		default:
			return nil
		}
	}); err != nil {
		return "", err
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
		return "", err
	}

	if _, err = sendandconfirmtransaction.WaitForConfirmation(ctx, wsClient, sig, nil); err != nil {
		return "", err
	}
	return sig.String(), nil
}

func TestWeightedPool(t *testing.T) {
	payerKey := os.Getenv("SYMMETRIC_PAYER_KEY")
	if payerKey == "" {
		t.Skip("SYMMETRIC_PAYER_KEY not set; skipping devnet test")
	}

	// init
	rpcClient, wsClient, pctx, cancel, err := testInit()
	if err != nil {
		t.Fatal("testInit() fail", err)
	}
	ctx := *pctx
	defer (*cancel)()

	// payer account, sol > 2
	payer := &solana.Wallet{PrivateKey: solana.MustPrivateKeyFromBase58(payerKey)}

	{
		fmt.Println("wallet address:", payer.PublicKey())
		if _, err := testBalance(ctx, rpcClient, payer.PublicKey()); err != nil {
			t.Fatal("testBalance() fail", err)
		}
	}

	vaults := NewVaultClient(rpcClient, vault.WithOwner(payer), vault.WithWSClient(wsClient))

	var vaultState solana.PublicKey
	{
		fmt.Println("initialize vault")
		ctx1, cancel1 := context.WithTimeout(ctx, time.Second*30)
		defer cancel1()
		sig, state, err := vaults.Initialize(ctx1, payer)
		if err != nil {
			t.Fatal("vaults.Initialize() fail", err)
		}
		vaultState = state
		fmt.Println("initialize success sig:", sig, "vaultState:", vaultState)
	}

	pools := NewWeightedPoolClient(rpcClient, weightedpool.WithCreator(payer), weightedpool.WithWSClient(wsClient))

	var pool *weightedpool.Pool
	{
		fmt.Println("create pool")
		ctx1, cancel1 := context.WithTimeout(ctx, time.Second*30)
		defer cancel1()
		initialWeight := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
		sig, poolAddress, err := pools.CreatePool(ctx1, payer, vaultState, initialWeight)
		if err != nil {
			t.Fatal("pools.CreatePool() fail", err)
		}
		fmt.Println("create pool success sig:", sig, "pool:", poolAddress)
	}

	{
		fmt.Println("register pool")
		ctx1, cancel1 := context.WithTimeout(ctx, time.Second*30)
		defer cancel1()
		sig, err := vaults.RegisterPool(ctx1, payer)
		if err != nil {
			t.Fatal("vaults.RegisterPool() fail", err)
		}
		fmt.Println("register pool success sig:", sig)
	}

	{
		fmt.Println("fetch pool")
		ctx1, cancel1 := context.WithTimeout(ctx, time.Second*30)
		defer cancel1()
		pool, err = pools.GetPool(ctx1, vaultState)
		if err != nil {
			t.Fatal("pools.GetPool() fail", err)
		}
		if pool == nil {
			t.Fatal("pool not found after create")
		}
		fmt.Println("pool vault:", pool.Vault, "lp mint:", pool.LpMint)
	}

	{
		exist, err := pools.IsPoolExist(ctx, vaultState)
		if err != nil {
			t.Fatal("pools.IsPoolExist() fail", err)
		}
		if !exist {
			t.Fatal("pool should exist")
		}
	}

	{
		if _, err := testMintBalance(ctx, rpcClient, payer.PublicKey(), pool.LpMint); err != nil {
			t.Fatal("testMintBalance() fail", err)
		}
	}
}
