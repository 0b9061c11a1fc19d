// Package wallet persists the burn-to-mint note ledger: a BIP-39 mnemonic
// backing deterministic per-index burn addresses, and the coins minted
// against them.
package wallet

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/tyler-smith/go-bip39"

	"github.com/Shivannsh/DarkMint/pkg/burn"
	"github.com/Shivannsh/DarkMint/pkg/core/types"
	"github.com/Shivannsh/DarkMint/pkg/crypto"
)

// entropyBits is the BIP-39 entropy size used for new wallets: 256 bits
// yields a 24-word mnemonic, matching the 32-byte entropy the persisted
// layout stores.
const entropyBits = 256

var (
	ErrInvalidMnemonic = errors.New("wallet: invalid mnemonic phrase")
	ErrNoCoinAtIndex   = errors.New("wallet: no coin at the given index")
)

// Coin is one minted note: its plaintext amount, its blinding salt, and
// whether it was minted in encrypted mode. EncryptedValue derives the value
// the note commits to.
type Coin struct {
	Amount    *big.Int `json:"amount"`
	Salt      *big.Int `json:"salt"`
	Encrypted bool     `json:"encrypted"`
}

// EncryptedValue returns the value this coin actually commits to: the raw
// amount if unencrypted, or H(amount, salt) if encrypted.
func (c Coin) EncryptedValue() *big.Int {
	return burn.ProcessBalance(c.Amount, c.Salt, c.Encrypted)
}

// walletFile is the on-disk JSON layout: a hex-encoded entropy seed plus
// the coin ledger.
type walletFile struct {
	Entropy string `json:"entropy"`
	Coins   []Coin `json:"coins"`
}

// Wallet is a BIP-39-backed burn address and note ledger.
type Wallet struct {
	mnemonic string
	entropy  []byte
	coins    []Coin
}

// BurnAddress is one derived burn identity: the private preimage and the
// public 20-byte address it hashes to.
type BurnAddress struct {
	Preimage *big.Int
	Address  types.Address
}

// New generates a fresh wallet backed by a new 24-word BIP-39 mnemonic.
func New() (*Wallet, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return nil, fmt.Errorf("wallet: generating entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("wallet: generating mnemonic: %w", err)
	}
	return &Wallet{mnemonic: mnemonic, entropy: entropy}, nil
}

// FromMnemonic reconstructs a wallet from an existing mnemonic phrase.
func FromMnemonic(mnemonic string) (*Wallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMnemonic, err)
	}
	return &Wallet{mnemonic: mnemonic, entropy: entropy}, nil
}

// OpenOrCreate loads a wallet from path, creating and persisting a new one
// if the file does not yet exist.
func OpenOrCreate(path string) (*Wallet, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		w, err := New()
		if err != nil {
			return nil, err
		}
		if err := w.Save(path); err != nil {
			return nil, err
		}
		return w, nil
	}
	if err != nil {
		return nil, fmt.Errorf("wallet: reading %s: %w", path, err)
	}

	var wf walletFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("wallet: parsing %s: %w", path, err)
	}
	entropy, err := hex.DecodeString(wf.Entropy)
	if err != nil {
		return nil, fmt.Errorf("wallet: decoding entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("wallet: deriving mnemonic from entropy: %w", err)
	}
	return &Wallet{mnemonic: mnemonic, entropy: entropy, coins: wf.Coins}, nil
}

// Save persists the wallet's entropy and coin ledger to path as pretty
// JSON, matching the external persisted-state layout.
func (w *Wallet) Save(path string) error {
	wf := walletFile{
		Entropy: hex.EncodeToString(w.entropy),
		Coins:   w.coins,
	}
	data, err := json.MarshalIndent(wf, "", "  ")
	if err != nil {
		return fmt.Errorf("wallet: encoding: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("wallet: writing %s: %w", path, err)
	}
	return nil
}

// Mnemonic returns the wallet's BIP-39 recovery phrase.
func (w *Wallet) Mnemonic() string { return w.mnemonic }

// Coins returns the wallet's minted note ledger.
func (w *Wallet) Coins() []Coin {
	return append([]Coin(nil), w.coins...)
}

// DeriveBurnAddress derives the burn identity at the given account index,
// domain-separating the entropy with the index before reducing it to a
// field element: preimage = bytes_to_field(sha256(entropy || le_u64(index))),
// address = derive_burn_address(preimage).
func (w *Wallet) DeriveBurnAddress(index uint64) BurnAddress {
	var idx [8]byte
	binary.LittleEndian.PutUint64(idx[:], index)

	h := sha256.New()
	h.Write(w.entropy)
	h.Write(idx[:])
	digest := h.Sum(nil)

	preimage := crypto.BytesToField(digest)
	address := burn.DeriveAddress(preimage)
	return BurnAddress{Preimage: preimage, Address: address}
}

// DeriveCoin creates a new coin for the given amount, with a fresh
// cryptographically random salt.
func DeriveCoin(amount *big.Int, encrypted bool) (Coin, error) {
	saltBytes := make([]byte, 32)
	if _, err := rand.Read(saltBytes); err != nil {
		return Coin{}, fmt.Errorf("wallet: generating salt: %w", err)
	}
	return Coin{
		Amount:    new(big.Int).Set(amount),
		Salt:      new(big.Int).SetBytes(saltBytes),
		Encrypted: encrypted,
	}, nil
}

// AddCoin appends a coin to the ledger and persists the wallet.
func (w *Wallet) AddCoin(path string, coin Coin) error {
	w.coins = append(w.coins, coin)
	return w.Save(path)
}

// RemoveCoin removes the coin at index and persists the wallet.
func (w *Wallet) RemoveCoin(path string, index int) error {
	if index < 0 || index >= len(w.coins) {
		return ErrNoCoinAtIndex
	}
	w.coins = append(w.coins[:index], w.coins[index+1:]...)
	return w.Save(path)
}
