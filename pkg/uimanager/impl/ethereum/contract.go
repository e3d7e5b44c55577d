package ethereum

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// UIManagerABI is the subset of the SCV_UI_manager contract ABI used by the gateway.
const UIManagerABI = `[
	{"type":"function","name":"addWhiteListEntity","stateMutability":"nonpayable",
		"inputs":[{"name":"_entity","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"removeWhiteListEntity","stateMutability":"nonpayable",
		"inputs":[{"name":"_entity","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"isWhitelisted","stateMutability":"view",
		"inputs":[{"name":"_entity","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"storeCertificate","stateMutability":"nonpayable",
		"inputs":[
			{"name":"_entity","type":"address"},
			{"name":"_certificateHash","type":"bytes32"},
			{"name":"_ipfsCid","type":"string"}
		],
		"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"getCertificateInfo","stateMutability":"nonpayable",
		"inputs":[{"name":"_certificateHash","type":"bytes32"}],
		"outputs":[{"name":"","type":"bool"},{"name":"","type":"string"}]},
	{"type":"function","name":"getCertificateInfoView","stateMutability":"view",
		"inputs":[{"name":"_certificateHash","type":"bytes32"}],
		"outputs":[{"name":"exists","type":"bool"},{"name":"info","type":"string"}]},
	{"type":"function","name":"buyTokens","stateMutability":"payable","inputs":[],"outputs":[]},
	{"type":"function","name":"transferTokens","stateMutability":"nonpayable",
		"inputs":[{"name":"_to","type":"address"},{"name":"_amount","type":"uint256"}],
		"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"mintUserTokens","stateMutability":"nonpayable",
		"inputs":[{"name":"_to","type":"address"},{"name":"_amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"tokenManager","stateMutability":"view",
		"inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"getUserTokenBalance","stateMutability":"view",
		"inputs":[{"name":"_user","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"event","name":"EntityWhitelisted","anonymous":false,
		"inputs":[{"name":"entity","type":"address","indexed":true}]},
	{"type":"event","name":"EntityRemovedFromWhitelist","anonymous":false,
		"inputs":[{"name":"entity","type":"address","indexed":true}]},
	{"type":"event","name":"CertificateStored","anonymous":false,
		"inputs":[
			{"name":"entity","type":"address","indexed":true},
			{"name":"certificateHash","type":"bytes32","indexed":true},
			{"name":"ipfsCid","type":"string","indexed":false}
		]},
	{"type":"event","name":"CertificateLookup","anonymous":false,
		"inputs":[
			{"name":"requester","type":"address","indexed":true},
			{"name":"certificateHash","type":"bytes32","indexed":true},
			{"name":"ipfsCid","type":"string","indexed":false}
		]}
]`

// TokenManagerABI is the subset of the SCV_token_manager ERC20 ABI used by the gateway.
const TokenManagerABI = `[
	{"type":"function","name":"approve","stateMutability":"nonpayable",
		"inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],
		"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
		"inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

// Contract is a binding of the UI manager contract.
type Contract struct {
	address common.Address
	abi     abi.ABI
	bound   *bind.BoundContract
}

// CertificateLookupEvent is the CertificateLookup event of the contract.
type CertificateLookupEvent struct {
	Requester       common.Address
	CertificateHash [32]byte
	IpfsCid         string
}

// NewContract creates a new binding of the contract deployed at address.
func NewContract(address common.Address, backend bind.ContractBackend) (*Contract, error) {
	parsed, err := abi.JSON(strings.NewReader(UIManagerABI))
	if err != nil {
		return nil, fmt.Errorf("parsing abi: %s", err)
	}

	return &Contract{
		address: address,
		abi:     parsed,
		bound:   bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}
