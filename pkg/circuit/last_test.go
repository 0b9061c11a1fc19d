package circuit

import (
	"errors"
	"math/big"
	"testing"

	"github.com/Shivannsh/DarkMint/pkg/burn"
	"github.com/Shivannsh/DarkMint/pkg/core/types"
	"github.com/Shivannsh/DarkMint/pkg/crypto"
)

// buildLastInputs constructs a minimally valid LAST witness: an account
// whose RLP encoding is long enough to need the long-string RLP tag (56 to
// 255 bytes), embedded behind a prefix that correctly binds the burn
// address derived from preimage.
func buildLastInputs(t *testing.T, preimage *big.Int) LastInputs {
	t.Helper()

	account := Account{
		Nonce:       7,
		Balance:     big.NewInt(1_000_000_000_000_000_000),
		StorageRoot: types.HexToHash("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		CodeHash:    types.HexToHash("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"),
	}
	accountRLP, err := account.EncodeRLP()
	if err != nil {
		t.Fatalf("EncodeRLP failed: %v", err)
	}
	if len(accountRLP) < 56 || len(accountRLP) > 255 {
		t.Fatalf("test fixture account RLP length %d out of the long-string range", len(accountRLP))
	}

	burnAddr := burn.DeriveAddress(preimage)
	addrHash := crypto.Keccak256(burnAddr.Bytes())
	tail := append(append([]byte{}, addrHash[len(addrHash)-burn.SecurityParameter:]...), rlpLongStringTag, byte(len(accountRLP)))

	leadIn := []byte{0xf8, 0x91} // arbitrary leaf-node list framing bytes preceding the path segment
	prefix := append(append([]byte{}, leadIn...), tail...)

	leaf := append(append([]byte{}, prefix...), accountRLP...)

	return LastInputs{
		Preimage:            preimage,
		LowerLayerPrefix:    prefix,
		LowerLayerPrefixLen: uint32(len(prefix)),
		Account:             account,
		Salt:                big.NewInt(789),
		Encrypted:           false,
		AccountProof:        [][]byte{[]byte("state root adjacent layer placeholder"), leaf},
		StateRoot:           types.Hash{},
	}
}

func TestRunLastSuccess(t *testing.T) {
	in := buildLastInputs(t, big.NewInt(123))
	out, err := RunLast(in)
	if err != nil {
		t.Fatalf("RunLast failed: %v", err)
	}
	if out.CommitUpper == nil || out.EncryptedBalance == nil || out.Nullifier == nil {
		t.Fatal("expected non-nil outputs")
	}
	if out.EncryptedBalance.Cmp(in.Account.Balance) != 0 {
		t.Fatalf("unencrypted balance should pass through verbatim: got %s, want %s", out.EncryptedBalance, in.Account.Balance)
	}
}

func TestRunLastEncryptedBalanceDiffers(t *testing.T) {
	in := buildLastInputs(t, big.NewInt(123))
	in.Encrypted = true
	out, err := RunLast(in)
	if err != nil {
		t.Fatalf("RunLast failed: %v", err)
	}
	if out.EncryptedBalance.Cmp(in.Account.Balance) == 0 {
		t.Fatal("encrypted balance should differ from the plaintext balance")
	}
	want := burn.ProcessBalance(in.Account.Balance, in.Salt, true)
	if out.EncryptedBalance.Cmp(want) != 0 {
		t.Fatalf("encrypted balance mismatch: got %s, want %s", out.EncryptedBalance, want)
	}
}

func TestRunLastChainTooShort(t *testing.T) {
	in := buildLastInputs(t, big.NewInt(123))
	in.AccountProof = in.AccountProof[len(in.AccountProof)-1:]
	_, err := RunLast(in)
	if !errors.Is(err, ErrChainTooShort) {
		t.Fatalf("expected ErrChainTooShort, got %v", err)
	}
}

func TestRunLastInvalidLeafStructure(t *testing.T) {
	in := buildLastInputs(t, big.NewInt(123))
	// Corrupt the leaf so account_rlp is no longer a substring of it.
	leaf := in.AccountProof[len(in.AccountProof)-1]
	corrupted := append([]byte{}, leaf...)
	corrupted[len(corrupted)-1] ^= 0xff
	in.AccountProof[len(in.AccountProof)-1] = corrupted
	_, err := RunLast(in)
	if !errors.Is(err, ErrInvalidLeafStructure) {
		t.Fatalf("expected ErrInvalidLeafStructure, got %v", err)
	}
}

func TestRunLastPrefixMismatchOnStorageHashTamper(t *testing.T) {
	in := buildLastInputs(t, big.NewInt(123))
	// Flipping storage_hash changes account_rlp, which in turn can shift
	// or break the embedding -- either InvalidLeafStructure or
	// PrefixMismatch is an acceptable rejection per the spec's invariant.
	in.Account.StorageRoot[0] ^= 0xff
	_, err := RunLast(in)
	if !errors.Is(err, ErrInvalidLeafStructure) && !errors.Is(err, ErrPrefixMismatch) {
		t.Fatalf("expected ErrInvalidLeafStructure or ErrPrefixMismatch, got %v", err)
	}
}

func TestRunLastPrefixMismatchOnCodeHashTamper(t *testing.T) {
	in := buildLastInputs(t, big.NewInt(123))
	in.Account.CodeHash[0] ^= 0xff
	_, err := RunLast(in)
	if !errors.Is(err, ErrInvalidLeafStructure) && !errors.Is(err, ErrPrefixMismatch) {
		t.Fatalf("expected ErrInvalidLeafStructure or ErrPrefixMismatch, got %v", err)
	}
}

func TestRunLastPrefixMismatchOnFlippedPrefixByte(t *testing.T) {
	in := buildLastInputs(t, big.NewInt(123))
	// Flip a byte inside the expected-tail region (the last
	// SecurityParameter+2 bytes of the prefix) so the embedded prefix and
	// the supplied prefix stay consistent with each other but no longer
	// bind the burn address.
	tailStart := len(in.LowerLayerPrefix) - (burn.SecurityParameter + 2)
	in.LowerLayerPrefix[tailStart] ^= 0xff
	leaf := in.AccountProof[len(in.AccountProof)-1]
	rebuilt := append(append([]byte{}, in.LowerLayerPrefix...), leaf[len(in.LowerLayerPrefix):]...)
	in.AccountProof[len(in.AccountProof)-1] = rebuilt
	_, err := RunLast(in)
	if !errors.Is(err, ErrPrefixMismatch) {
		t.Fatalf("expected ErrPrefixMismatch, got %v", err)
	}
}

func TestRunLastDeterministic(t *testing.T) {
	in := buildLastInputs(t, big.NewInt(123))
	out1, err := RunLast(in)
	if err != nil {
		t.Fatalf("RunLast failed: %v", err)
	}
	out2, err := RunLast(in)
	if err != nil {
		t.Fatalf("RunLast failed: %v", err)
	}
	if out1.CommitUpper.Cmp(out2.CommitUpper) != 0 ||
		out1.EncryptedBalance.Cmp(out2.EncryptedBalance) != 0 ||
		out1.Nullifier.Cmp(out2.Nullifier) != 0 {
		t.Fatal("RunLast should be deterministic for identical inputs")
	}
}

func TestRunLastNullifierMatchesBurnPackage(t *testing.T) {
	preimage := big.NewInt(123)
	in := buildLastInputs(t, preimage)
	out, err := RunLast(in)
	if err != nil {
		t.Fatalf("RunLast failed: %v", err)
	}
	want := burn.DeriveNullifier(preimage)
	if out.Nullifier.Cmp(want) != 0 {
		t.Fatalf("nullifier mismatch: got %s, want %s", out.Nullifier, want)
	}
}
