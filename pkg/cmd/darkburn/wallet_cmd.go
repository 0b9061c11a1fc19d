package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Shivannsh/DarkMint/pkg/wallet"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Inspect and manage the local wallet file",
}

var walletGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create a new wallet backed by a fresh BIP-39 mnemonic",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.New()
		if err != nil {
			return fmt.Errorf("generating wallet: %w", err)
		}
		if err := w.Save(walletPath); err != nil {
			return fmt.Errorf("saving wallet: %w", err)
		}
		fmt.Printf("Wallet created at %s\n", walletPath)
		fmt.Printf("Mnemonic: %s\n", w.Mnemonic())
		fmt.Println("Store this phrase securely; it cannot be recovered if lost.")
		return nil
	},
}

var walletDeriveCmd = &cobra.Command{
	Use:   "derive <index>",
	Short: "Derive the burn address at the given account index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}
		w, err := wallet.OpenOrCreate(walletPath)
		if err != nil {
			return fmt.Errorf("opening wallet: %w", err)
		}
		addr := w.DeriveBurnAddress(index)
		fmt.Printf("Index %d burn address: %s\n", index, commonAddress(addr.Address).Hex())
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the coins held in the wallet's ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.OpenOrCreate(walletPath)
		if err != nil {
			return fmt.Errorf("opening wallet: %w", err)
		}
		coins := w.Coins()
		if len(coins) == 0 {
			fmt.Println("No coins yet.")
			return nil
		}
		for i, c := range coins {
			fmt.Printf("[%d] amount=%s encrypted=%v salt=%s\n", i, c.Amount, c.Encrypted, c.Salt)
		}
		return nil
	},
}

func init() {
	walletCmd.AddCommand(walletGenerateCmd, walletDeriveCmd, walletListCmd)
	rootCmd.AddCommand(walletCmd)
}
