// Package burn derives the deterministic artifacts tied to a burn: the
// address an EOA-less burn transaction targets, the one-time nullifier
// that prevents a note from being redeemed twice, and the balance
// representation (clear or salted) committed into a proof.
package burn

import (
	"math/big"

	"github.com/Shivannsh/DarkMint/pkg/core/types"
	"github.com/Shivannsh/DarkMint/pkg/crypto"
)

// SecurityParameter is the number of trailing bytes of keccak(burn_address)
// that the LAST circuit requires the account leaf's prefix to end with.
const SecurityParameter = 20

// DeriveAddress computes the burn address for a secret preimage: the first
// 20 bytes of H(preimage, preimage), serialized big-endian. No one holds a
// private key for this address; its only purpose is to be a detectable,
// unspendable destination for a plain ETH transfer.
func DeriveAddress(preimage *big.Int) types.Address {
	h := crypto.PoseidonHash(nil, preimage, preimage)
	b := crypto.FieldToBytes(h)
	return types.BytesToAddress(b[:SecurityParameter])
}

// DeriveNullifier computes H(preimage, 0). Revealing the nullifier lets a
// verifier contract reject a second proof for the same preimage without
// learning the preimage itself.
func DeriveNullifier(preimage *big.Int) *big.Int {
	return crypto.PoseidonHash(nil, preimage, big.NewInt(0))
}

// ProcessBalance returns H(balance, salt) when encrypted is true, or the
// balance verbatim otherwise. The encrypted path hides the note's amount
// behind a salt only the owner knows; the plaintext path reveals it.
func ProcessBalance(balance, salt *big.Int, encrypted bool) *big.Int {
	if encrypted {
		return crypto.PoseidonHash(nil, balance, salt)
	}
	return new(big.Int).Set(balance)
}
