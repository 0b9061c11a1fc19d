package circuit

import "errors"

// Error taxonomy for the LAST and PATH circuits. Every error here is fatal
// to the current proof attempt: there is no partial output and no retry
// inside the circuit layer. The host may retry the whole pipeline with a
// different block or proof.
var (
	// ErrInvalidLeafStructure is returned when account_rlp cannot be found
	// as a contiguous substring of the leaf node.
	ErrInvalidLeafStructure = errors.New("circuit: account RLP not found in leaf node")

	// ErrPrefixMismatch is returned when the leaf's prefix does not end
	// with keccak(burn_address)[-20:] followed by the two RLP framing
	// bytes.
	ErrPrefixMismatch = errors.New("circuit: leaf prefix does not bind burn address")

	// ErrChainTooShort is returned when the account proof has fewer than
	// two layers.
	ErrChainTooShort = errors.New("circuit: account proof chain has fewer than 2 layers")

	// ErrContainmentMissing is returned when, for a non-top PATH hop,
	// keccak(lower) is not a substring of upper.
	ErrContainmentMissing = errors.New("circuit: keccak(lower) not contained in upper layer")

	// ErrStateRootMismatch is returned when the top layer's Keccak image
	// does not equal the supplied state root.
	ErrStateRootMismatch = errors.New("circuit: top layer hash does not match state root")

	// ErrUnexpectedContainment is returned when a top PATH invocation
	// finds keccak(lower) inside the (placeholder) upper layer, which
	// should never happen by construction.
	ErrUnexpectedContainment = errors.New("circuit: unexpected containment in top-layer invocation")
)
