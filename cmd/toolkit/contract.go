package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	"github.com/smartcv/go-smartcv/pkg/uimanager"
	"github.com/smartcv/go-smartcv/pkg/uimanager/impl/ethereum"
	"github.com/spf13/cobra"
)

var scCmd = &cobra.Command{
	Use:   "sc",
	Short: "Offers smart contract calls",
	Long:  `Offers smart contract calls to the UI manager contract`,
	Args:  cobra.ExactArgs(1),
}

var whitelistCmd = &cobra.Command{
	Use:   "whitelist <address>",
	Short: "Whitelists a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entity, err := txqueue.ParseAddress(args[0])
		if err != nil {
			return err
		}

		ctx := context.Background()
		s, client, err := newContractSession(ctx, cmd)
		if err != nil {
			return err
		}
		defer s.close()

		return s.submit(ctx, client.AddWhiteListEntity(s.signer, entity))
	},
}

var removeWhitelistCmd = &cobra.Command{
	Use:   "remove-whitelist <address>",
	Short: "Revokes a whitelisted company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entity, err := txqueue.ParseAddress(args[0])
		if err != nil {
			return err
		}

		ctx := context.Background()
		s, client, err := newContractSession(ctx, cmd)
		if err != nil {
			return err
		}
		defer s.close()

		return s.submit(ctx, client.RemoveWhiteListEntity(s.signer, entity))
	},
}

var mintCmd = &cobra.Command{
	Use:   "mint <address> <amount>",
	Short: "Mints tokens to an address, signed by the contract owner",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := txqueue.ParseAddress(args[0])
		if err != nil {
			return err
		}
		amount, ok := new(big.Int).SetString(args[1], 10)
		if !ok || amount.Sign() <= 0 {
			return fmt.Errorf("invalid amount %q", args[1])
		}

		ctx := context.Background()
		s, client, err := newContractSession(ctx, cmd)
		if err != nil {
			return err
		}
		defer s.close()

		return s.submit(ctx, client.MintUserTokens(s.signer, to, amount))
	},
}

var storeCertificateCmd = &cobra.Command{
	Use:   "store-certificate <certificate-hash> <cid>",
	Short: "Stores a certificate signed by the given private key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := uimanager.NewCertificateHash(args[0])
		if err != nil {
			return err
		}

		ctx := context.Background()
		s, client, err := newContractSession(ctx, cmd)
		if err != nil {
			return err
		}
		defer s.close()

		return s.submit(ctx, client.StoreCertificate(s.signer, s.signer.Address(), hash, args[1]))
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Prints the token balance of an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := txqueue.ParseAddress(args[0])
		if err != nil {
			return err
		}

		ctx := context.Background()
		s, client, err := newContractSession(ctx, cmd)
		if err != nil {
			return err
		}
		defer s.close()

		balance, err := client.GetUserTokenBalance(ctx, user)
		if err != nil {
			return fmt.Errorf("get balance: %s", err)
		}
		fmt.Printf("%s: %s tokens\n", user.Hex(), balance)
		return nil
	},
}

var certificateCmd = &cobra.Command{
	Use:   "certificate <certificate-hash>",
	Short: "Prints the stored information of a certificate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := uimanager.NewCertificateHash(args[0])
		if err != nil {
			return err
		}

		ctx := context.Background()
		s, client, err := newContractSession(ctx, cmd)
		if err != nil {
			return err
		}
		defer s.close()

		cert, err := client.GetCertificateInfoView(ctx, hash)
		if err != nil {
			return fmt.Errorf("get certificate: %s", err)
		}
		if !cert.Exists {
			fmt.Printf("certificate %s not found\n", hash)
			return nil
		}
		fmt.Printf("certificate %s: %s\n", hash, cert.Info)
		return nil
	},
}

func newContractSession(ctx context.Context, cmd *cobra.Command) (*chainSession, *ethereum.Client, error) {
	contractAddress, err := cmd.Flags().GetString("contract-address")
	if err != nil {
		return nil, nil, errors.New("failed to parse contract-address")
	}
	if !common.IsHexAddress(contractAddress) {
		return nil, nil, fmt.Errorf("invalid contract address %q", contractAddress)
	}

	s, err := newChainSession(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}
	var backend bind.ContractBackend = s.conn
	client, err := ethereum.NewClient(backend, s.chainID, common.HexToAddress(contractAddress))
	if err != nil {
		s.close()
		return nil, nil, fmt.Errorf("new contract client: %s", err)
	}
	return s, client, nil
}
