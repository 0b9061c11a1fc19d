package prover

import (
	"encoding/binary"
	"math/big"

	"github.com/Shivannsh/DarkMint/pkg/crypto"
)

// PublicValues is everything the core commits to the zkVM host output
// stream: the structured leaf values first, then the path-proof array.
// Downstream, an on-chain verifier consumes this exact layout.
type PublicValues struct {
	BurnPreimage     *big.Int
	CommitUpper      *big.Int
	EncryptedBalance *big.Int
	Nullifier        *big.Int
	Encrypted        bool

	PathUpper []*big.Int
	PathLower []*big.Int
	RootProof *big.Int
}

// Encode serializes the public values struct followed by the path-proof
// blob, in the exact field order and width the external interface
// specifies: an ABI-style tuple of (bytes, uint32, uint32, uint32, bool),
// then be_u32(N) || pp_1..pp_N || be_u32(M) || lc_1..lc_M || root_proof?.
func (pv PublicValues) Encode() []byte {
	var out []byte

	preimageBytes := crypto.FieldToBytes(pv.BurnPreimage)
	out = appendU32(out, uint32(len(preimageBytes)))
	out = append(out, preimageBytes...)

	out = appendU32(out, crypto.FieldToU32(pv.CommitUpper))
	out = appendU32(out, crypto.FieldToU32(pv.EncryptedBalance))
	out = appendU32(out, crypto.FieldToU32(pv.Nullifier))
	out = append(out, boolByte(pv.Encrypted))

	n := len(pv.PathUpper)
	out = appendU32(out, uint32(n))
	for _, pp := range pv.PathUpper {
		out = appendU32(out, crypto.FieldToU32(pp))
	}

	m := len(pv.PathLower)
	out = appendU32(out, uint32(m))
	for _, lc := range pv.PathLower {
		out = appendU32(out, crypto.FieldToU32(lc))
	}

	if pv.RootProof != nil {
		out = appendU32(out, crypto.FieldToU32(pv.RootProof))
	}

	return out
}

func appendU32(b []byte, v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return append(b, buf[:]...)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
