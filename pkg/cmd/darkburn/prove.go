package main

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/Shivannsh/DarkMint/pkg/ethrpc"
	"github.com/Shivannsh/DarkMint/pkg/log"
	"github.com/Shivannsh/DarkMint/pkg/prover"
	"github.com/Shivannsh/DarkMint/pkg/wallet"
)

// proveAddrSearchDepth mirrors burnAddrSearchDepth: the prove command must
// rediscover which wallet index a burn address belongs to before it can
// recover the private preimage that address was derived from.
const proveAddrSearchDepth = 10

var (
	proveDstAddr      string
	proveSrcBurnAddr  string
	provePrivSrc      string
	proveEncrypted    bool
)

var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Prove that a burned balance is genuinely embedded in a block's state trie",
	RunE:  runProve,
}

func init() {
	proveCmd.Flags().StringVar(&proveDstAddr, "dst-addr", "", "destination address receiving the minted note (informational)")
	proveCmd.Flags().StringVar(&proveSrcBurnAddr, "src-burn-addr", "", "the burn address to prove inclusion for")
	proveCmd.Flags().StringVar(&provePrivSrc, "priv-src", "", "unused by prove; accepted for CLI-surface symmetry with burn")
	proveCmd.Flags().BoolVar(&proveEncrypted, "encrypted", false, "mint the balance in encrypted form")
	proveCmd.MarkFlagRequired("src-burn-addr")
	rootCmd.AddCommand(proveCmd)
}

func runProve(cmd *cobra.Command, args []string) error {
	logger := log.Default().Module("prove")
	ctx := context.Background()

	if !common.IsHexAddress(proveSrcBurnAddr) {
		return fmt.Errorf("--src-burn-addr is not a valid address: %s", proveSrcBurnAddr)
	}
	want := common.HexToAddress(proveSrcBurnAddr)

	w, err := wallet.OpenOrCreate(walletPath)
	if err != nil {
		return fmt.Errorf("opening wallet: %w", err)
	}

	var found *wallet.BurnAddress
	for i := uint64(0); i < proveAddrSearchDepth; i++ {
		candidate := w.DeriveBurnAddress(i)
		if commonAddress(candidate.Address) == want {
			found = &candidate
			break
		}
	}
	if found == nil {
		return fmt.Errorf("burn address %s does not belong to this wallet's first %d indices", proveSrcBurnAddr, proveAddrSearchDepth)
	}

	client, err := ethrpc.Dial(ctx, resolveRPCURL())
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", resolveRPCURL(), err)
	}
	defer client.Close()

	accountProof, err := client.GetProof(ctx, want, nil)
	if err != nil {
		return fmt.Errorf("fetching account proof: %w", err)
	}
	stateRoot, err := client.StateRoot(ctx, nil)
	if err != nil {
		return fmt.Errorf("fetching state root: %w", err)
	}

	coin, err := wallet.DeriveCoin(accountProof.Balance, proveEncrypted)
	if err != nil {
		return fmt.Errorf("deriving coin salt: %w", err)
	}

	witness := ethrpc.ToWitness(accountProof, found.Preimage, coin.Salt, proveEncrypted, stateRoot)

	result, err := prover.Run(witness)
	if err != nil {
		return fmt.Errorf("proof orchestration failed: %w", err)
	}

	if err := w.AddCoin(walletPath, coin); err != nil {
		return fmt.Errorf("persisting minted coin: %w", err)
	}

	encoded := result.PublicVals.Encode()
	logger.Info("proof produced",
		"src_burn_addr", proveSrcBurnAddr,
		"dst_addr", proveDstAddr,
		"encrypted", proveEncrypted,
		"path_hops", len(result.PathHops),
		"public_values_bytes", len(encoded),
	)
	fmt.Printf("Public values (hex): %s\n", hex.EncodeToString(encoded))
	return nil
}
