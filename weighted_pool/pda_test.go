package weightedpool

import (
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestDerivePoolStatePDA(t *testing.T) {
	vaultA := solana.NewWallet().PublicKey()
	vaultB := solana.NewWallet().PublicKey()

	first, err := DerivePoolStatePDA(vaultA)
	if err != nil {
		t.Fatalf("DerivePoolStatePDA: %v", err)
	}
	second, err := DerivePoolStatePDA(vaultA)
	if err != nil {
		t.Fatalf("DerivePoolStatePDA: %v", err)
	}
	if !first.Equals(second) {
		t.Errorf("derivation not deterministic: %s != %s", first, second)
	}

	other, err := DerivePoolStatePDA(vaultB)
	if err != nil {
		t.Fatalf("DerivePoolStatePDA: %v", err)
	}
	if first.Equals(other) {
		t.Errorf("different vaults derived the same pool state %s", first)
	}
}

func TestDeriveLpMintPDA(t *testing.T) {
	vault := solana.NewWallet().PublicKey()

	poolState, err := DerivePoolStatePDA(vault)
	if err != nil {
		t.Fatalf("DerivePoolStatePDA: %v", err)
	}
	lpMint, err := DeriveLpMintPDA(poolState)
	if err != nil {
		t.Fatalf("DeriveLpMintPDA: %v", err)
	}
	if lpMint.Equals(poolState) {
		t.Errorf("lp mint equals pool state %s", lpMint)
	}

	again, err := DeriveLpMintPDA(poolState)
	if err != nil {
		t.Fatalf("DeriveLpMintPDA: %v", err)
	}
	if !lpMint.Equals(again) {
		t.Errorf("derivation not deterministic: %s != %s", lpMint, again)
	}
}

func TestDerivePoolTokenAccount(t *testing.T) {
	poolState := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()

	accountA, err := DerivePoolTokenAccount(poolState, mintA)
	if err != nil {
		t.Fatalf("DerivePoolTokenAccount: %v", err)
	}
	accountB, err := DerivePoolTokenAccount(poolState, mintB)
	if err != nil {
		t.Fatalf("DerivePoolTokenAccount: %v", err)
	}
	if accountA.Equals(accountB) {
		t.Errorf("different mints derived the same vault account %s", accountA)
	}
}
