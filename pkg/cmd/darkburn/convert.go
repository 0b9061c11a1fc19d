package main

import (
	"github.com/ethereum/go-ethereum/common"

	coretypes "github.com/Shivannsh/DarkMint/pkg/core/types"
)

// commonAddress converts our minimal Address type to go-ethereum's
// common.Address, the type its RPC and transaction-signing APIs expect.
func commonAddress(a coretypes.Address) common.Address {
	return common.BytesToAddress(a.Bytes())
}
