// Package crypto implements the two hash functions the prover pipeline
// relies on: Ethereum-compatible Keccak256 for MPT-node linking, and the
// algebraic hash H (Poseidon over the BN254 scalar field) for everything
// inside the circuit -- commitments, nullifiers, and burn-address derivation.
package crypto

import (
	"github.com/Shivannsh/DarkMint/pkg/core/types"
	"golang.org/x/crypto/sha3"
)

// Keccak256 calculates the Keccak-256 hash of the given data. This is the
// sole hash used for MPT-node linking: every layer of an account proof is
// tied to the layer below it by containment of this digest.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash calculates Keccak-256 and returns it as a types.Hash.
func Keccak256Hash(data ...[]byte) types.Hash {
	return types.BytesToHash(Keccak256(data...))
}
