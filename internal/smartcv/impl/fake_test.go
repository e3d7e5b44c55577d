package impl

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/smartcv/go-smartcv/pkg/uimanager"
	uimanagerimpl "github.com/smartcv/go-smartcv/pkg/uimanager/impl/ethereum"
)

// fakeContract sends real transactions through the embedded client, but answers view calls from memory
// since the simulated chain has no UI manager contract deployed.
type fakeContract struct {
	*uimanagerimpl.Client

	mu           sync.Mutex
	err          error
	whitelisted  map[common.Address]bool
	certificates map[uimanager.CertificateHash]string
	balances     map[common.Address]int64
	lookup       string
}

var tokenManagerAddr = common.HexToAddress("0x00000000000000000000000000000000000070c0")

func newFakeContract(client *uimanagerimpl.Client) *fakeContract {
	return &fakeContract{
		Client:       client,
		whitelisted:  make(map[common.Address]bool),
		certificates: make(map[uimanager.CertificateHash]string),
		balances:     make(map[common.Address]int64),
	}
}

func (c *fakeContract) IsWhitelisted(_ context.Context, entity common.Address) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	return c.whitelisted[entity], nil
}

func (c *fakeContract) GetUserTokenBalance(_ context.Context, user common.Address) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return big.NewInt(c.balances[user]), nil
}

func (c *fakeContract) TokenManager(context.Context) (common.Address, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return common.Address{}, c.err
	}
	return tokenManagerAddr, nil
}

// CertificateLookup answers the configured lookup, since no contract emits the event.
func (c *fakeContract) CertificateLookup(receipt *types.Receipt) (string, error) {
	c.mu.Lock()
	lookup := c.lookup
	c.mu.Unlock()
	if lookup == "" {
		return c.Client.CertificateLookup(receipt)
	}
	return lookup, nil
}

func (c *fakeContract) GetCertificateInfoView(
	_ context.Context,
	hash uimanager.CertificateHash,
) (uimanager.Certificate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return uimanager.Certificate{}, c.err
	}
	info, ok := c.certificates[hash]
	return uimanager.Certificate{Exists: ok, Info: info}, nil
}

func (c *fakeContract) setWhitelisted(entity common.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.whitelisted[entity] = true
}

func (c *fakeContract) setCertificate(hash uimanager.CertificateHash, info string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.certificates[hash] = info
}

func (c *fakeContract) setBalance(user common.Address, tokens int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[user] = tokens
}

func (c *fakeContract) setLookup(info string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookup = info
}

func (c *fakeContract) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}
