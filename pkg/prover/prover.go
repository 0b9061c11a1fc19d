// Package prover orchestrates the circuit package into the full burn-to-
// mint proof pipeline: one LAST invocation at the account leaf, one PATH
// invocation per non-leaf hop, and a final PATH invocation that closes the
// chain against the block's state root.
package prover

import (
	"math/big"

	"github.com/Shivannsh/DarkMint/pkg/circuit"
	"github.com/Shivannsh/DarkMint/pkg/core/types"
	"github.com/Shivannsh/DarkMint/pkg/crypto"
)

// rootPlaceholderSize is the size of the orchestrator-supplied zero buffer
// fed as the "upper layer" to the root-closure PATH invocation. It exceeds
// 32 bytes so a keccak digest can never spuriously appear inside it.
const rootPlaceholderSize = 136

// Witness is the full per-burn input the orchestrator consumes, matching
// the host-to-core input stream field-for-field.
type Witness struct {
	Preimage            *big.Int
	LowerLayerPrefix    []byte
	LowerLayerPrefixLen uint32
	Account             circuit.Account
	AccountProof        [][]byte // host order: state-root end first, leaf last
	StateRoot           types.Hash
	Salt                *big.Int
	Encrypted           bool
}

// HopCommitment pairs the commitments produced at one non-leaf hop.
type HopCommitment struct {
	CommitUpper *big.Int
	CommitLower *big.Int
}

// Result is everything the orchestrator produces for one successful proof:
// the LAST outputs, the per-hop PATH commitments (leaf-to-root order), and
// the final root-closure commitment.
type Result struct {
	Last       circuit.LastOutputs
	PathHops   []HopCommitment
	RootProof  *big.Int
	PublicVals PublicValues
}

// Run executes the full pipeline for one witness: LAST first, then PATH
// once per non-leaf hop (bottom to top), then root closure. Any failure
// aborts immediately with no partial output, matching a zkVM guest that
// cannot emit a proof for a rejected witness.
func Run(w Witness) (Result, error) {
	lastOut, err := circuit.RunLast(circuit.LastInputs{
		Preimage:            w.Preimage,
		LowerLayerPrefix:    w.LowerLayerPrefix,
		LowerLayerPrefixLen: w.LowerLayerPrefixLen,
		Account:             w.Account,
		Salt:                w.Salt,
		Encrypted:           w.Encrypted,
		AccountProof:        w.AccountProof,
		StateRoot:           w.StateRoot,
	})
	if err != nil {
		return Result{}, err
	}

	// Reverse so layer[0] is the leaf, matching the orchestrator contract:
	// the host hands the chain state-root-end first, leaf last.
	layers := make([][]byte, len(w.AccountProof))
	for i, l := range w.AccountProof {
		layers[len(w.AccountProof)-1-i] = l
	}

	hops := make([]HopCommitment, 0, len(layers)-1)
	for i := 0; i < len(layers)-1; i++ {
		if !keccakContained(layers[i], layers[i+1]) {
			return Result{}, circuit.ErrContainmentMissing
		}
		out, err := circuit.RunPath(circuit.PathInputs{
			IsTop:      false,
			UpperLayer: layers[i+1],
			LowerLayer: layers[i],
			Salt:       w.Salt,
		})
		if err != nil {
			return Result{}, err
		}
		hops = append(hops, HopCommitment{CommitUpper: out.CommitUpper, CommitLower: out.CommitLower})
	}

	top := layers[len(layers)-1]
	if crypto.Keccak256Hash(top) != w.StateRoot {
		return Result{}, circuit.ErrStateRootMismatch
	}
	rootOut, err := circuit.RunPath(circuit.PathInputs{
		IsTop:      true,
		UpperLayer: make([]byte, rootPlaceholderSize),
		LowerLayer: top,
		Salt:       w.Salt,
	})
	if err != nil {
		return Result{}, err
	}

	pathUpper := make([]*big.Int, len(hops))
	pathLower := make([]*big.Int, len(hops))
	for i, h := range hops {
		pathUpper[i] = h.CommitUpper
		pathLower[i] = h.CommitLower
	}

	return Result{
		Last:      lastOut,
		PathHops:  hops,
		RootProof: rootOut.CommitUpper,
		PublicVals: PublicValues{
			BurnPreimage:     w.Preimage,
			CommitUpper:      lastOut.CommitUpper,
			EncryptedBalance: lastOut.EncryptedBalance,
			Nullifier:        lastOut.Nullifier,
			Encrypted:        w.Encrypted,
			PathUpper:        pathUpper,
			PathLower:        pathLower,
			RootProof:        rootOut.CommitUpper,
		},
	}, nil
}

func keccakContained(lower, upper []byte) bool {
	digest := crypto.Keccak256(lower)
	if len(digest) > len(upper) {
		return false
	}
	for i := 0; i+len(digest) <= len(upper); i++ {
		match := true
		for j := range digest {
			if upper[i+j] != digest[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
