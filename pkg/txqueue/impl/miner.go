package impl

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
)

// RPCMiner mines blocks on demand in Hardhat and Anvil nodes.
type RPCMiner struct {
	client *rpc.Client
}

var _ txqueue.Miner = (*RPCMiner)(nil)

// NewRPCMiner returns an RPCMiner.
func NewRPCMiner(client *rpc.Client) *RPCMiner {
	return &RPCMiner{client: client}
}

// Mine calls evm_mine.
func (m *RPCMiner) Mine(ctx context.Context) error {
	if err := m.client.CallContext(ctx, nil, "evm_mine"); err != nil {
		return fmt.Errorf("calling evm_mine: %s", err)
	}
	return nil
}
