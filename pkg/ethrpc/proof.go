// Package ethrpc fetches the Merkle-Patricia account proof and block header
// a burn-to-mint witness is built from, over a standard Ethereum JSON-RPC
// endpoint.
package ethrpc

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/Shivannsh/DarkMint/pkg/core/types"
)

// Client is a thin wrapper around go-ethereum's JSON-RPC client scoped to
// the calls the CLI needs: eth_getProof, eth_getBlockByNumber and
// eth_getBalance.
type Client struct {
	rpc *rpc.Client
}

// Dial connects to an Ethereum JSON-RPC endpoint (HTTP or WebSocket).
func Dial(ctx context.Context, rawurl string) (*Client, error) {
	c, err := rpc.DialContext(ctx, rawurl)
	if err != nil {
		return nil, fmt.Errorf("ethrpc: dialing %s: %w", rawurl, err)
	}
	return &Client{rpc: c}, nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() { c.rpc.Close() }

// accountProofResult mirrors the eth_getProof JSON response shape; only the
// fields the prover witness consumes are decoded.
type accountProofResult struct {
	Address      common.Address   `json:"address"`
	AccountProof []hexutil.Bytes  `json:"accountProof"`
	Balance      *hexutil.Big     `json:"balance"`
	Nonce        hexutil.Uint64   `json:"nonce"`
	StorageHash  common.Hash      `json:"storageHash"`
	CodeHash     common.Hash      `json:"codeHash"`
}

// AccountProof is the subset of an eth_getProof response the orchestrator
// needs: the nonce/balance/storage/code fields that reconstruct the leaf's
// account RLP, plus the raw proof chain.
type AccountProof struct {
	Nonce        uint64
	Balance      *big.Int
	StorageHash  types.Hash
	CodeHash     types.Hash
	AccountProof [][]byte // as returned by the node: root node first, leaf last
}

// GetProof fetches the EIP-1186 account proof for address at the given
// block number (nil for "latest").
func (c *Client) GetProof(ctx context.Context, address common.Address, blockNumber *big.Int) (AccountProof, error) {
	var result accountProofResult
	blockTag := "latest"
	if blockNumber != nil {
		blockTag = hexutil.EncodeBig(blockNumber)
	}
	if err := c.rpc.CallContext(ctx, &result, "eth_getProof", address, []string{}, blockTag); err != nil {
		return AccountProof{}, fmt.Errorf("ethrpc: eth_getProof: %w", err)
	}

	proof := make([][]byte, len(result.AccountProof))
	for i, node := range result.AccountProof {
		proof[i] = []byte(node)
	}

	balance := new(big.Int)
	if result.Balance != nil {
		balance = result.Balance.ToInt()
	}

	return AccountProof{
		Nonce:        uint64(result.Nonce),
		Balance:      balance,
		StorageHash:  types.BytesToHash(result.StorageHash.Bytes()),
		CodeHash:     types.BytesToHash(result.CodeHash.Bytes()),
		AccountProof: proof,
	}, nil
}

// blockHeaderResult decodes only the state root and hash of a block header.
type blockHeaderResult struct {
	Hash      common.Hash `json:"hash"`
	StateRoot common.Hash `json:"stateRoot"`
	Number    *hexutil.Big `json:"number"`
}

// StateRoot fetches the state root committed in the block identified by
// number (nil for "latest").
func (c *Client) StateRoot(ctx context.Context, blockNumber *big.Int) (types.Hash, error) {
	var result blockHeaderResult
	blockTag := "latest"
	if blockNumber != nil {
		blockTag = hexutil.EncodeBig(blockNumber)
	}
	if err := c.rpc.CallContext(ctx, &result, "eth_getBlockByNumber", blockTag, false); err != nil {
		return types.Hash{}, fmt.Errorf("ethrpc: eth_getBlockByNumber: %w", err)
	}
	return types.BytesToHash(result.StateRoot.Bytes()), nil
}

// BalanceOf fetches the wei balance of address at the given block (nil for
// "latest"), used by the burn command to find a burn address that does not
// hold any balance yet.
func (c *Client) BalanceOf(ctx context.Context, address common.Address, blockNumber *big.Int) (*big.Int, error) {
	var result hexutil.Big
	blockTag := "latest"
	if blockNumber != nil {
		blockTag = hexutil.EncodeBig(blockNumber)
	}
	if err := c.rpc.CallContext(ctx, &result, "eth_getBalance", address, blockTag); err != nil {
		return nil, fmt.Errorf("ethrpc: eth_getBalance: %w", err)
	}
	return result.ToInt(), nil
}
