package solana

import "crypto/sha256"

// AccountDiscriminator returns the 8-byte anchor discriminator that prefixes
// every account of the named type.
func AccountDiscriminator(name string) []byte {
	return discriminator("account:" + name)
}

// InstructionDiscriminator returns the 8-byte anchor discriminator that
// prefixes the data of the named instruction.
func InstructionDiscriminator(name string) []byte {
	return discriminator("global:" + name)
}

func discriminator(preimage string) []byte {
	hash := sha256.Sum256([]byte(preimage))
	out := make([]byte, 8)
	copy(out, hash[:8])
	return out
}
