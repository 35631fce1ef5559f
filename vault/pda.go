package vault

import "github.com/gagliardetto/solana-go"

// DeriveVaultStatePDA derives the vault state address for an owner.
func DeriveVaultStatePDA(owner solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{[]byte("vault-state"), owner.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}
