package circuit

import (
	"math/big"

	"github.com/Shivannsh/DarkMint/pkg/burn"
	"github.com/Shivannsh/DarkMint/pkg/core/types"
	"github.com/Shivannsh/DarkMint/pkg/crypto"
)

// rlpLongStringTag is the RLP prefix byte for a string whose length is
// encoded in exactly one length-byte: 0x80 + 56. It is only canonical for
// payload lengths in 56..255 -- a single length byte cannot address a
// shorter (short-string range) or longer (needs lenOfLen > 1) payload.
const rlpLongStringTag = 0x80 + 56

// LastInputs is the witness the account-leaf circuit consumes.
type LastInputs struct {
	Preimage            *big.Int
	LowerLayerPrefix    []byte
	LowerLayerPrefixLen uint32
	Account             Account
	Salt                *big.Int
	Encrypted           bool
	// AccountProof is the proof chain exactly as supplied by the host: the
	// state root end first, the account leaf last.
	AccountProof [][]byte
	StateRoot    types.Hash
}

// LastOutputs are the three public values the account-leaf circuit emits.
type LastOutputs struct {
	CommitUpper      *big.Int
	EncryptedBalance *big.Int
	Nullifier        *big.Int
}

// RunLast verifies that the witness account is genuinely embedded in the
// leaf node of a burn address's account proof, and emits the leaf
// commitment, the (possibly encrypted) balance, and the nullifier.
//
// The leaf is the only place the Ethereum address is cryptographically
// visible (via the Keccak preimage baked into the trie path), so the
// binding between burn address and account data must happen here. Above
// the leaf only content-hash substring containment is checked, which PATH
// handles.
func RunLast(in LastInputs) (LastOutputs, error) {
	if len(in.AccountProof) < 2 {
		return LastOutputs{}, ErrChainTooShort
	}

	accountRLP, err := in.Account.EncodeRLP()
	if err != nil {
		return LastOutputs{}, ErrInvalidLeafStructure
	}
	if len(accountRLP) < 56 || len(accountRLP) > 255 {
		// Open question (a) in the design notes: reject out-of-range
		// lengths explicitly rather than emit a framing byte that would
		// silently mis-encode.
		return LastOutputs{}, ErrInvalidLeafStructure
	}

	leaf := in.AccountProof[len(in.AccountProof)-1]
	embedIdx := indexOf(leaf, accountRLP)
	if embedIdx < 0 {
		return LastOutputs{}, ErrInvalidLeafStructure
	}
	embedPrefix := leaf[:embedIdx]

	if int(in.LowerLayerPrefixLen) > len(in.LowerLayerPrefix) {
		return LastOutputs{}, ErrInvalidLeafStructure
	}
	suppliedPrefix := in.LowerLayerPrefix[:in.LowerLayerPrefixLen]
	if !bytesEqual(suppliedPrefix, embedPrefix) {
		return LastOutputs{}, ErrPrefixMismatch
	}

	burnAddr := burn.DeriveAddress(in.Preimage)
	addrHash := crypto.Keccak256(burnAddr.Bytes())
	expectedTail := make([]byte, 0, burn.SecurityParameter+2)
	expectedTail = append(expectedTail, addrHash[len(addrHash)-burn.SecurityParameter:]...)
	expectedTail = append(expectedTail, rlpLongStringTag, byte(len(accountRLP)))

	if len(embedPrefix) < len(expectedTail) || !bytesEqual(embedPrefix[len(embedPrefix)-len(expectedTail):], expectedTail) {
		return LastOutputs{}, ErrPrefixMismatch
	}

	upperLayer := make([]byte, 0, len(suppliedPrefix)+len(accountRLP))
	upperLayer = append(upperLayer, suppliedPrefix...)
	upperLayer = append(upperLayer, accountRLP...)

	head := upperLayer
	if len(head) > 32 {
		head = head[:32]
	}
	u := crypto.PoseidonHash(nil, crypto.BytesToField(head), big.NewInt(int64(len(upperLayer))))
	commitUpper := crypto.PoseidonHash(nil, u, in.Salt)

	balance := in.Account.Balance
	if balance == nil {
		balance = new(big.Int)
	}
	encryptedBalance := burn.ProcessBalance(balance, in.Salt, in.Encrypted)
	nullifier := burn.DeriveNullifier(in.Preimage)

	return LastOutputs{
		CommitUpper:      commitUpper,
		EncryptedBalance: encryptedBalance,
		Nullifier:        nullifier,
	}, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return containsAt(a, b, 0)
}
