package main

import (
	"bufio"
	"context"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"

	"github.com/Shivannsh/DarkMint/pkg/ethrpc"
	"github.com/Shivannsh/DarkMint/pkg/log"
	"github.com/Shivannsh/DarkMint/pkg/wallet"
)

// burnAddrSearchDepth bounds how many wallet indices the burn command will
// scan looking for an unused (zero-balance) burn address, mirroring the
// original collaborator's 0..10 search window.
const burnAddrSearchDepth = 10

var (
	burnAmountETH float64
	burnPrivSrc   string
	burnYes       bool
)

var burnCmd = &cobra.Command{
	Use:   "burn",
	Short: "Burn ETH by sending it to a freshly derived shielded address",
	RunE:  runBurn,
}

func init() {
	burnCmd.Flags().Float64Var(&burnAmountETH, "amount", 0, "amount of ETH to burn")
	burnCmd.Flags().StringVar(&burnPrivSrc, "priv-src", "", "hex-encoded private key funding the burn transaction")
	burnCmd.Flags().BoolVarP(&burnYes, "yes", "y", false, "skip the interactive confirmation prompt")
	burnCmd.MarkFlagRequired("amount")
	burnCmd.MarkFlagRequired("priv-src")
	rootCmd.AddCommand(burnCmd)
}

func runBurn(cmd *cobra.Command, args []string) error {
	logger := log.Default().Module("burn")
	ctx := context.Background()

	key, err := crypto.HexToECDSA(strings.TrimPrefix(burnPrivSrc, "0x"))
	if err != nil {
		return fmt.Errorf("parsing --priv-src: %w", err)
	}
	from := crypto.PubkeyToAddress(key.PublicKey)

	w, err := wallet.OpenOrCreate(walletPath)
	if err != nil {
		return fmt.Errorf("opening wallet: %w", err)
	}

	rpc, err := ethrpc.Dial(ctx, resolveRPCURL())
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", resolveRPCURL(), err)
	}
	defer rpc.Close()

	var target *wallet.BurnAddress
	for i := uint64(0); i < burnAddrSearchDepth; i++ {
		candidate := w.DeriveBurnAddress(i)
		balance, err := rpc.BalanceOf(ctx, commonAddress(candidate.Address), nil)
		if err != nil {
			return fmt.Errorf("checking balance at index %d: %w", i, err)
		}
		if balance.Sign() == 0 {
			target = &candidate
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no unused burn address found in the first %d indices", burnAddrSearchDepth)
	}

	amountWei := new(big.Int).Mul(
		big.NewInt(int64(burnAmountETH*1e9)),
		big.NewInt(1e9),
	)

	logger.Info("prepared burn transaction", "to", target.Address.Hex(), "amount_wei", amountWei.String())

	if !burnYes {
		fmt.Printf("Burning %g ETH by sending it to %s. Continue? (y/N): ", burnAmountETH, target.Address.Hex())
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(line)) != "y" {
			fmt.Println("Burn cancelled.")
			return nil
		}
	}

	client, err := ethclient.DialContext(ctx, resolveRPCURL())
	if err != nil {
		return fmt.Errorf("connecting ethclient: %w", err)
	}
	defer client.Close()

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return fmt.Errorf("fetching nonce: %w", err)
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("fetching gas price: %w", err)
	}
	chainID, err := client.NetworkID(ctx)
	if err != nil {
		return fmt.Errorf("fetching chain id: %w", err)
	}

	tx := types.NewTransaction(nonce, commonAddress(target.Address), amountWei, 21000, gasPrice, nil)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(chainID), key)
	if err != nil {
		return fmt.Errorf("signing transaction: %w", err)
	}
	if err := client.SendTransaction(ctx, signedTx); err != nil {
		return fmt.Errorf("sending transaction: %w", err)
	}

	logger.Info("burn transaction sent", "hash", signedTx.Hash().Hex())
	fmt.Printf("Transaction sent! Hash: %s\n", signedTx.Hash().Hex())
	return nil
}
