package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/smartcv/go-smartcv/pkg/wallet"
	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Offers wallet utilites",
	Long:  `Offers wallet utilites for the keys used by smartcvd and the toolkit`,
	Args:  cobra.ExactArgs(1),
}

var walletCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates an ETH wallet",
	Long:  `Creates an ETH wallet and stores its hex encoded private key, without the 0x prefix`,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename, err := cmd.Flags().GetString("filename")
		if err != nil {
			return errors.New("failed to parse filename")
		}
		privateKey, err := crypto.GenerateKey()
		if err != nil {
			return fmt.Errorf("generate key: %s", err)
		}
		w, err := wallet.FromECDSA(privateKey)
		if err != nil {
			return fmt.Errorf("create wallet: %s", err)
		}

		encoded := strings.TrimPrefix(hexutil.Encode(crypto.FromECDSA(privateKey)), "0x")
		if err := os.WriteFile(filename, []byte(encoded), 0o600); err != nil {
			return fmt.Errorf("writing to file %s: %s", filename, err)
		}

		fmt.Printf("Wallet address %s created\n", w.Address())
		fmt.Printf("Private key saved in %s\n", filename)

		return nil
	},
}

var walletAddressCmd = &cobra.Command{
	Use:   "address <privatekey>",
	Short: "Returns address of ETH wallet",
	Long:  `Returns address of ETH wallet given its hex encoded private key, with or without the 0x prefix`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.NewWallet(args[0])
		if err != nil {
			return fmt.Errorf("decode key: %s", err)
		}
		fmt.Printf("Wallet address %s\n", w.Address())

		return nil
	},
}

var walletKeyringCmd = &cobra.Command{
	Use:   "keyring <wallets.json>",
	Short: "Lists the addresses of a wallets.json keyring",
	Long: `Lists the addresses of a wallets.json keyring, in the order the daemon indexes them.
Index 0 is the master wallet by default.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyring, err := wallet.LoadKeyring(args[0])
		if err != nil {
			return fmt.Errorf("load keyring: %s", err)
		}

		for i := 0; i < keyring.Len(); i++ {
			w, err := keyring.At(i)
			if err != nil {
				return fmt.Errorf("get wallet %d: %s", i, err)
			}
			fmt.Printf("%d: %s\n", i, w.Address())
		}

		return nil
	},
}
