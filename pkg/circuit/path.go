package circuit

import (
	"math/big"

	"github.com/Shivannsh/DarkMint/pkg/crypto"
)

// PathInputs is the witness the PATH circuit consumes for one hop of the
// account proof (or the final root-closure invocation).
type PathInputs struct {
	IsTop      bool
	UpperLayer []byte
	LowerLayer []byte
	Salt       *big.Int
}

// PathOutputs are the paired commitments PATH emits for a hop.
type PathOutputs struct {
	CommitUpper *big.Int
	CommitLower *big.Int
}

// commitLayer computes H(H(bytes_to_field(layer_head), len(layer)), salt),
// the commitment shape shared by both the lower and upper (non-top) sides
// of a PATH hop.
func commitLayer(layer []byte, salt *big.Int) *big.Int {
	head := layer
	if len(head) > 32 {
		head = head[:32]
	}
	h := crypto.PoseidonHash(nil, crypto.BytesToField(head), big.NewInt(int64(len(layer))))
	return crypto.PoseidonHash(nil, h, salt)
}

// RunPath verifies the containment relationship between one MPT layer and
// its parent and emits the paired commitments.
//
// When is_top is false, keccak(lower) must be a substring of upper;
// absence fails ContainmentMissing. When is_top is true, upper is the
// orchestrator's placeholder buffer and containment must NOT succeed
// (UnexpectedContainment if it somehow does); the real binding to the
// block's state root happens separately, in the orchestrator's root-hash
// equality check, and commit_upper additionally mixes in
// bytes_to_field(keccak(lower)) so a verifier can re-derive the
// transition from the root.
func RunPath(in PathInputs) (PathOutputs, error) {
	commitLower := commitLayer(in.LowerLayer, in.Salt)
	baseUpper := commitLayer(in.UpperLayer, in.Salt)

	keccakLower := crypto.Keccak256(in.LowerLayer)
	found := contains(in.UpperLayer, keccakLower)

	if !in.IsTop {
		if !found {
			return PathOutputs{}, ErrContainmentMissing
		}
		return PathOutputs{CommitUpper: baseUpper, CommitLower: commitLower}, nil
	}

	if found {
		return PathOutputs{}, ErrUnexpectedContainment
	}
	commitUpper := crypto.PoseidonHash(nil, baseUpper, crypto.BytesToField(keccakLower))
	return PathOutputs{CommitUpper: commitUpper, CommitLower: commitLower}, nil
}
