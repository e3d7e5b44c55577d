package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	txqueueimpl "github.com/smartcv/go-smartcv/pkg/txqueue/impl"
	"github.com/smartcv/go-smartcv/pkg/wallet"
	"github.com/spf13/cobra"
)

// chainSession holds the connections shared by the commands that send transactions.
type chainSession struct {
	conn    *ethclient.Client
	rpc     *rpc.Client
	chainID *big.Int
	signer  *wallet.Wallet
	queue   *txqueueimpl.Manager
}

func newChainSession(ctx context.Context, cmd *cobra.Command) (*chainSession, error) {
	chainID, err := cmd.Flags().GetInt64("chain-id")
	if err != nil {
		return nil, errors.New("failed to parse chain-id")
	}
	privateKey, err := cmd.Flags().GetString("privatekey")
	if err != nil {
		return nil, errors.New("failed to parse privatekey")
	}
	gatewayEndpoint, err := cmd.Flags().GetString("gateway")
	if err != nil {
		return nil, errors.New("failed to parse gateway")
	}
	mine, err := cmd.Flags().GetBool("mine")
	if err != nil {
		return nil, errors.New("failed to parse mine")
	}

	signer, err := wallet.NewWallet(privateKey)
	if err != nil {
		return nil, fmt.Errorf("new wallet: %s", err)
	}

	rpcClient, err := rpc.DialContext(ctx, gatewayEndpoint)
	if err != nil {
		return nil, fmt.Errorf("dial: %s", err)
	}
	conn := ethclient.NewClient(rpcClient)

	var miner txqueue.Miner
	if mine {
		miner = txqueueimpl.NewRPCMiner(rpcClient)
	}
	queue, err := txqueueimpl.NewManager(conn, signer.Address(), miner)
	if err != nil {
		rpcClient.Close()
		return nil, fmt.Errorf("new queue: %s", err)
	}

	return &chainSession{
		conn:    conn,
		rpc:     rpcClient,
		chainID: big.NewInt(chainID),
		signer:  signer,
		queue:   queue,
	}, nil
}

// submit enqueues the factory with the signer wallet and prints the outcome once mined.
func (s *chainSession) submit(ctx context.Context, factory txqueue.TxFactory) error {
	pending := s.queue.EnqueueMaster(ctx, factory)
	receipt, err := pending.Result()
	if err != nil {
		return err
	}
	nonce, _ := pending.Nonce()
	fmt.Printf("tx %s mined in block %s (nonce %d)\n", receipt.TxHash.Hex(), receipt.BlockNumber, nonce)
	return nil
}

func (s *chainSession) close() {
	s.queue.Close()
	s.rpc.Close()
}
