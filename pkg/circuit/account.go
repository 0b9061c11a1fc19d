// Package circuit implements the two arithmetic circuits the prover chains
// together: LAST (the account-leaf circuit) and PATH (applied once per
// non-leaf MPT layer, and once more for root closure). Both are pure,
// side-effect-free functions over witness bytes -- no I/O, no panics on
// valid input, single-threaded, matching the zkVM guest execution model
// they run under.
package circuit

import (
	"math/big"

	"github.com/Shivannsh/DarkMint/pkg/core/types"
	"github.com/Shivannsh/DarkMint/pkg/rlp"
)

// Account is the decoded Ethereum account leaf: nonce, balance, and the two
// 32-byte roots every account leaf carries.
type Account struct {
	Nonce        uint64
	Balance      *big.Int
	StorageRoot  types.Hash
	CodeHash     types.Hash
}

// accountRLP mirrors Account's field order for encoding -- a 4-element RLP
// list with minimal integer encoding. StorageRoot/CodeHash are carried as
// []byte rather than fixed arrays because the generic encoder treats a
// byte array as a string either way, but []byte avoids a reflect copy.
type accountRLP struct {
	Nonce       uint64
	Balance     *big.Int
	StorageRoot []byte
	CodeHash    []byte
}

// EncodeRLP serializes the account exactly as Ethereum's account leaf
// payload: a 4-list of (nonce, balance, storageRoot, codeHash), integers
// minimally encoded. Byte-equality with the real proof node is required,
// so this must reproduce Ethereum's canonical encoding exactly.
func (a Account) EncodeRLP() ([]byte, error) {
	balance := a.Balance
	if balance == nil {
		balance = new(big.Int)
	}
	return rlp.EncodeToBytes(accountRLP{
		Nonce:       a.Nonce,
		Balance:     balance,
		StorageRoot: a.StorageRoot.Bytes(),
		CodeHash:    a.CodeHash.Bytes(),
	})
}

// DecodeAccountRLP is the reference decoder used to check round-trip
// fidelity: it must recover exactly (nonce, balance, storageRoot, codeHash)
// from the bytes EncodeRLP produced.
func DecodeAccountRLP(b []byte) (Account, error) {
	var dec accountRLP
	if err := rlp.DecodeBytes(b, &dec); err != nil {
		return Account{}, err
	}
	balance := dec.Balance
	if balance == nil {
		balance = new(big.Int)
	}
	return Account{
		Nonce:       dec.Nonce,
		Balance:     balance,
		StorageRoot: types.BytesToHash(dec.StorageRoot),
		CodeHash:    types.BytesToHash(dec.CodeHash),
	}, nil
}
