package ethrpc

import (
	"math/big"

	"github.com/Shivannsh/DarkMint/pkg/circuit"
	"github.com/Shivannsh/DarkMint/pkg/core/types"
	"github.com/Shivannsh/DarkMint/pkg/prover"
)

// ToWitness assembles a prover.Witness from a live eth_getProof response
// plus the caller-supplied private material (preimage, salt, encryption
// flag) the node never sees. account_proof arrives from the node leaf-last
// (the same convention the circuit package expects), so no reordering is
// needed here.
func ToWitness(ap AccountProof, preimage, salt *big.Int, encrypted bool, stateRoot types.Hash) prover.Witness {
	leaf := ap.AccountProof[len(ap.AccountProof)-1]
	account := circuit.Account{
		Nonce:       ap.Nonce,
		Balance:     ap.Balance,
		StorageRoot: ap.StorageHash,
		CodeHash:    ap.CodeHash,
	}
	accountRLP, err := account.EncodeRLP()
	if err != nil {
		// A malformed account from a live node is not something the caller
		// can fix by retrying with different witness bytes; surface it as
		// an obviously-invalid prefix so RunLast reports InvalidLeafStructure
		// instead of panicking on a nil accountRLP.
		return prover.Witness{
			Preimage:     preimage,
			Account:      account,
			AccountProof: ap.AccountProof,
			StateRoot:    stateRoot,
			Salt:         salt,
			Encrypted:    encrypted,
		}
	}

	idx := indexOf(leaf, accountRLP)
	var prefix []byte
	if idx >= 0 {
		prefix = leaf[:idx]
	}

	return prover.Witness{
		Preimage:            preimage,
		LowerLayerPrefix:    prefix,
		LowerLayerPrefixLen: uint32(len(prefix)),
		Account:             account,
		AccountProof:        ap.AccountProof,
		StateRoot:           stateRoot,
		Salt:                salt,
		Encrypted:           encrypted,
	}
}

func indexOf(haystack, needle []byte) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
