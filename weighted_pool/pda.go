package weightedpool

import (
	"github.com/gagliardetto/solana-go"
)

// DerivePoolStatePDA derives the pool state address for a vault.
func DerivePoolStatePDA(vault solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{[]byte("pool-state"), vault.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveLpMintPDA derives the LP mint address for a pool state.
func DeriveLpMintPDA(poolState solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{[]byte("lp-mint"), poolState.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DerivePoolTokenAccount derives the pool-owned token account that holds one
// side of the pool, the ATA of the pool state PDA.
func DerivePoolTokenAccount(poolState, tokenMint solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := solana.FindAssociatedTokenAddress(poolState, tokenMint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return address, nil
}
