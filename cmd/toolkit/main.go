package main

import (
	"github.com/smartcv/go-smartcv/buildinfo"
	"github.com/smartcv/go-smartcv/pkg/logging"
	"github.com/spf13/cobra"
)

var cliName = "toolkit"

var rootCmd = &cobra.Command{
	Use:   cliName,
	Short: "toolkit is CLI for SmartCV developers",
	Long:  `toolkit is CLI for SmartCV developers executing mundane tasks`,
	Args:  cobra.ExactArgs(0),
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		debug, err := cmd.Flags().GetBool("debug")
		if err != nil {
			return err
		}
		logging.SetupLogger(logging.Config{
			Service: cliName,
			Version: buildinfo.GitCommit,
			Debug:   debug,
			Human:   true,
		})
		return nil
	},
}

func main() {
	rootCmd.Execute() //nolint
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "log the transaction queue at debug level")
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(txCmd)
	rootCmd.AddCommand(scCmd)

	walletCreateCmd.Flags().String("filename", "privatekey.hex", "Filename to store hex representation of private key")
	walletCmd.AddCommand(walletCreateCmd)
	walletCmd.AddCommand(walletAddressCmd)
	walletCmd.AddCommand(walletKeyringCmd)

	for _, cmd := range []*cobra.Command{txCmd, scCmd} {
		cmd.PersistentFlags().Int64("chain-id", 31337, "chain id")
		cmd.PersistentFlags().String("privatekey", "", "the private key used to sign transactions")
		cmd.PersistentFlags().String("gateway", "http://localhost:8545", "URL of an Ethereum node API")
		cmd.PersistentFlags().Bool("mine", false, "call evm_mine after each broadcast (development networks only)")
	}
	txTransferCmd.Flags().Int("count", 1, "number of transfers enqueued at once")
	txCmd.AddCommand(txTransferCmd)

	scCmd.PersistentFlags().String("contract-address", "", "the ui manager contract address")
	scCmd.AddCommand(whitelistCmd)
	scCmd.AddCommand(removeWhitelistCmd)
	scCmd.AddCommand(mintCmd)
	scCmd.AddCommand(storeCertificateCmd)
	scCmd.AddCommand(balanceCmd)
	scCmd.AddCommand(certificateCmd)
}
