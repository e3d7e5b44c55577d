package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/smartcv/go-smartcv/pkg/txqueue"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Sends transactions through the wallet queue",
	Long:  `Sends transactions through the wallet queue, assigning nonces locally`,
	Args:  cobra.ExactArgs(1),
}

var txTransferCmd = &cobra.Command{
	Use:   "transfer <to> <value-wei>",
	Short: "Transfers wei to an address",
	Long:  `Transfers wei to an address. With --count, all transfers are enqueued concurrently`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := txqueue.ParseAddress(args[0])
		if err != nil {
			return err
		}
		value, ok := new(big.Int).SetString(args[1], 10)
		if !ok {
			return fmt.Errorf("invalid value %q", args[1])
		}
		count, err := cmd.Flags().GetInt("count")
		if err != nil {
			return errors.New("failed to parse count")
		}

		ctx := context.Background()
		s, err := newChainSession(ctx, cmd)
		if err != nil {
			return err
		}
		defer s.close()

		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < count; i++ {
			g.Go(func() error {
				return s.submit(gctx, txqueue.TransferFactory(s.conn, s.signer, s.chainID, to, value))
			})
		}
		return g.Wait()
	},
}
