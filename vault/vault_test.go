package vault

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/gagliardetto/solana-go"
	solanago "github.com/symmetric-fi/symmetric-go/solana"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex: %v", err)
	}
	return b
}

func TestParseVaultState(t *testing.T) {
	owner := solana.NewWallet().PublicKey()

	data := solanago.AccountDiscriminator(AccountKeyVaultState)
	data = append(data, owner.Bytes()...)
	count := make([]byte, 8)
	binary.LittleEndian.PutUint64(count, 42)
	data = append(data, count...)

	state, err := ParseVaultState(data)
	if err != nil {
		t.Fatalf("ParseVaultState: %v", err)
	}
	if !state.Owner.Equals(owner) {
		t.Errorf("owner = %s, want %s", state.Owner, owner)
	}
	if state.PoolCount != 42 {
		t.Errorf("pool count = %d, want 42", state.PoolCount)
	}
}

func TestParseVaultStateRejectsForeignAccount(t *testing.T) {
	data := solanago.AccountDiscriminator("PoolState")
	data = append(data, make([]byte, 40)...)

	if _, err := ParseVaultState(data); err == nil {
		t.Fatal("expected discriminator mismatch error")
	}
	if _, err := ParseVaultState(nil); err == nil {
		t.Fatal("expected error for empty data")
	}
}

func TestDeriveVaultStatePDA(t *testing.T) {
	owner := solana.NewWallet().PublicKey()

	first, err := DeriveVaultStatePDA(owner)
	if err != nil {
		t.Fatalf("DeriveVaultStatePDA: %v", err)
	}
	second, err := DeriveVaultStatePDA(owner)
	if err != nil {
		t.Fatalf("DeriveVaultStatePDA: %v", err)
	}
	if !first.Equals(second) {
		t.Errorf("pda not deterministic: %s vs %s", first, second)
	}

	other, err := DeriveVaultStatePDA(solana.NewWallet().PublicKey())
	if err != nil {
		t.Fatalf("DeriveVaultStatePDA: %v", err)
	}
	if first.Equals(other) {
		t.Error("different owners derived the same vault state")
	}
}

func TestInitializeInstructionEncoding(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	payer := solana.NewWallet().PublicKey()
	vaultState, err := DeriveVaultStatePDA(owner)
	if err != nil {
		t.Fatalf("DeriveVaultStatePDA: %v", err)
	}

	ix, err := NewInitializeInstruction(InitializeParameters{Owner: owner}, vaultState, payer)
	if err != nil {
		t.Fatalf("NewInitializeInstruction: %v", err)
	}

	if !ix.ProgramID().Equals(ProgramID) {
		t.Errorf("program = %s, want %s", ix.ProgramID(), ProgramID)
	}

	data, err := ix.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if !bytes.Equal(data[:8], mustHex(t, "afaf6d1f0d989bed")) {
		t.Errorf("discriminator = %x", data[:8])
	}
	if len(data) != 8+32 {
		t.Fatalf("data length = %d, want 40", len(data))
	}
	if !bytes.Equal(data[8:], owner.Bytes()) {
		t.Errorf("owner bytes = %x", data[8:])
	}

	accounts := ix.Accounts()
	if len(accounts) != 3 {
		t.Fatalf("accounts = %d, want 3", len(accounts))
	}
	if !accounts[0].IsWritable || accounts[0].IsSigner {
		t.Errorf("vault state meta = %+v, want writable non-signer", accounts[0])
	}
	if !accounts[1].IsWritable || !accounts[1].IsSigner {
		t.Errorf("payer meta = %+v, want writable signer", accounts[1])
	}
	if !accounts[2].PublicKey.Equals(solana.SystemProgramID) {
		t.Errorf("accounts[2] = %s, want system program", accounts[2].PublicKey)
	}
}

func TestRegisterPoolInstructionEncoding(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	vaultState, err := DeriveVaultStatePDA(owner)
	if err != nil {
		t.Fatalf("DeriveVaultStatePDA: %v", err)
	}

	ix, err := NewRegisterPoolInstruction(vaultState, owner)
	if err != nil {
		t.Fatalf("NewRegisterPoolInstruction: %v", err)
	}

	data, err := ix.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if len(data) != 8 {
		t.Fatalf("data length = %d, want 8", len(data))
	}
	if !bytes.Equal(data, mustHex(t, "55e5722f4b91a664")) {
		t.Errorf("discriminator = %x", data)
	}

	accounts := ix.Accounts()
	if len(accounts) != 3 {
		t.Fatalf("accounts = %d, want 3", len(accounts))
	}
	if accounts[1].IsWritable || !accounts[1].IsSigner {
		t.Errorf("owner meta = %+v, want read-only signer", accounts[1])
	}
}
