// Package config holds the chain-keyed catalogs TychoRouterEncoder needs at
// startup: router/executor addresses and per-protocol configuration blobs.
// Grounded on the teacher's chain-ID-to-ContractConfig map in the original
// config.GetContractConfig, generalized from Safe proxy-factory addresses to
// swap-router/executor addresses.
package config

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/swapencoder"
	"github.com/tycho-go/router-encoding/tychoerr"
)

// ChainConfig holds everything NewTychoRouterEncoder/NewDefaultRegistry
// need for one chain.
type ChainConfig struct {
	ChainID            int64
	NativeToken        common.Address
	WrappedNativeToken common.Address
	RouterAddress      common.Address
	// Executors maps protocol_system to its deployed executor contract.
	Executors map[string]common.Address
	// ProtocolConfig carries optional per-protocol configuration blobs
	// (e.g. a Curve registry address); protocols absent from this map get
	// a nil Config.
	ProtocolConfig map[string]swapencoder.Config
}

// mainnet is the Ethereum mainnet catalog. Executor addresses are
// deployment-specific and intentionally left to be populated by the host
// (via AddChainConfig or direct mutation) rather than hardcoded here,
// since unlike the teacher's fixed Safe factory/singleton addresses these
// vary per router deployment.
var mainnet = &ChainConfig{
	ChainID:            1,
	NativeToken:        common.Address{},
	WrappedNativeToken: common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
	Executors:          map[string]common.Address{},
	ProtocolConfig:     map[string]swapencoder.Config{},
}

var chainConfigs = map[int64]*ChainConfig{
	1: mainnet,
}

// GetChainConfig returns the catalog for chainID.
func GetChainConfig(chainID int64) (*ChainConfig, error) {
	cfg, ok := chainConfigs[chainID]
	if !ok {
		return nil, tychoerr.InvalidInputf("config: unsupported chain ID %d", chainID)
	}
	return cfg, nil
}

// AddChainConfig registers or replaces the catalog for cfg.ChainID.
func AddChainConfig(cfg *ChainConfig) {
	chainConfigs[cfg.ChainID] = cfg
}

// GetSupportedChainIDs lists every chain ID with a registered catalog.
func GetSupportedChainIDs() []int64 {
	ids := make([]int64, 0, len(chainConfigs))
	for id := range chainConfigs {
		ids = append(ids, id)
	}
	return ids
}

// Validate checks that a ChainConfig is usable: a router address and at
// least one executor must be present.
func (c *ChainConfig) Validate() error {
	if c.ChainID <= 0 {
		return tychoerr.InvalidInputf("config: chain ID must be positive")
	}
	if c.RouterAddress == (common.Address{}) {
		return tychoerr.InvalidInputf("config: RouterAddress is required")
	}
	if len(c.Executors) == 0 {
		return tychoerr.InvalidInputf("config: at least one executor address is required")
	}
	return nil
}

func (c *ChainConfig) String() string {
	return fmt.Sprintf("ChainConfig{ChainID: %d, RouterAddress: %s, executors: %d}",
		c.ChainID, c.RouterAddress.Hex(), len(c.Executors))
}
