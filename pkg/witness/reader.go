// Package witness reads the host-to-core input stream into the structures
// the prover package consumes. The wire format is fixed-order and
// length-prefixed throughout; this package's only job is bounds-checked
// parsing, never cryptographic verification.
package witness

import (
	"encoding/binary"
	"math/big"

	"github.com/Shivannsh/DarkMint/pkg/circuit"
	"github.com/Shivannsh/DarkMint/pkg/core/types"
	"github.com/Shivannsh/DarkMint/pkg/prover"
)

// maxLengthPrefix bounds any single length-prefixed field so a corrupt or
// adversarial stream cannot force an unbounded allocation.
const maxLengthPrefix = 1 << 20

// cursor is a bounds-checked reader over an in-memory byte stream. It never
// panics: every read either succeeds or returns ErrMalformedInput.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || n > maxLengthPrefix || c.pos+n > len(c.data) {
		return nil, ErrMalformedInput
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) readU32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *cursor) readU64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (c *cursor) readU128() (*big.Int, error) {
	b, err := c.take(16)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

func (c *cursor) readHash() (types.Hash, error) {
	b, err := c.take(types.HashLength)
	if err != nil {
		return types.Hash{}, err
	}
	return types.BytesToHash(b), nil
}

func (c *cursor) readByte() (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// readLengthPrefixed reads a u32 length followed by that many bytes.
func (c *cursor) readLengthPrefixed() ([]byte, error) {
	n, err := c.readU32()
	if err != nil {
		return nil, err
	}
	return c.take(int(n))
}

// Read parses the fixed-order host-to-core input stream described in the
// external interfaces section into a prover.Witness. account_proof arrives
// bottom-to-top (leaf first); it is reversed here so the returned witness
// matches the orchestrator's own convention of state-root end first, leaf
// last, mirroring how LAST indexes account_proof[last] as the leaf and
// account_proof[0] as the layer adjacent to state_root.
func Read(data []byte) (prover.Witness, error) {
	c := newCursor(data)

	preimageBytes, err := c.readLengthPrefixed()
	if err != nil {
		return prover.Witness{}, err
	}
	if len(preimageBytes) > 32 {
		return prover.Witness{}, ErrMalformedInput
	}
	preimage := new(big.Int).SetBytes(preimageBytes)

	prefixLen, err := c.readU32()
	if err != nil {
		return prover.Witness{}, err
	}
	prefix, err := c.readLengthPrefixed()
	if err != nil {
		return prover.Witness{}, err
	}
	if int(prefixLen) > len(prefix) {
		return prover.Witness{}, ErrMalformedInput
	}

	nonce, err := c.readU64()
	if err != nil {
		return prover.Witness{}, err
	}
	balance, err := c.readU128()
	if err != nil {
		return prover.Witness{}, err
	}
	storageHash, err := c.readHash()
	if err != nil {
		return prover.Witness{}, err
	}
	codeHash, err := c.readHash()
	if err != nil {
		return prover.Witness{}, err
	}

	proofLen, err := c.readU32()
	if err != nil {
		return prover.Witness{}, err
	}
	if proofLen > maxLengthPrefix {
		return prover.Witness{}, ErrMalformedInput
	}
	bottomUp := make([][]byte, proofLen)
	for i := range bottomUp {
		layer, err := c.readLengthPrefixed()
		if err != nil {
			return prover.Witness{}, err
		}
		bottomUp[i] = layer
	}
	accountProof := make([][]byte, len(bottomUp))
	for i, layer := range bottomUp {
		accountProof[len(bottomUp)-1-i] = layer
	}

	stateRoot, err := c.readHash()
	if err != nil {
		return prover.Witness{}, err
	}

	saltU32, err := c.readU32()
	if err != nil {
		return prover.Witness{}, err
	}
	salt := new(big.Int).SetUint64(uint64(saltU32))

	encryptedByte, err := c.readByte()
	if err != nil {
		return prover.Witness{}, err
	}
	if encryptedByte > 1 {
		return prover.Witness{}, ErrMalformedInput
	}

	return prover.Witness{
		Preimage:            preimage,
		LowerLayerPrefix:    prefix,
		LowerLayerPrefixLen: prefixLen,
		Account: circuit.Account{
			Nonce:       nonce,
			Balance:     balance,
			StorageRoot: storageHash,
			CodeHash:    codeHash,
		},
		AccountProof: accountProof,
		StateRoot:    stateRoot,
		Salt:         salt,
		Encrypted:    encryptedByte == 1,
	}, nil
}
