package swapencoder

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/approvals"
	"github.com/tycho-go/router-encoding/tychoerr"
)

// Registry resolves a protocol_system string to the Encoder that knows how
// to pack it. Built once per chain at startup and shared across every
// encode_solutions call.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry returns an empty Registry; use Register to populate it
// manually or NewDefaultRegistry to build the standard protocol set.
func NewRegistry() *Registry {
	return &Registry{encoders: make(map[string]Encoder)}
}

// Register installs or overrides the encoder for protocol.
func (r *Registry) Register(protocol string, enc Encoder) {
	r.encoders[protocol] = enc
}

// Get returns the encoder registered for protocol, if any.
func (r *Registry) Get(protocol string) (Encoder, bool) {
	enc, ok := r.encoders[protocol]
	return enc, ok
}

// ChainParams carries the chain-level constants several encoders need:
// the native token sentinel, the wrapped native token, and the chain ID
// (Rocket Pool is Ethereum-only).
type ChainParams struct {
	ChainID             int64
	NativeToken         common.Address
	WrappedNativeToken  common.Address
}

// NewDefaultRegistry builds a Registry from a protocol_system -> executor
// address catalog and an optional protocol_system -> Config map, the Go
// equivalent of add_default_encoders/create_encoder in the reference
// registry. aerodrome_slipstreams and velodrome_slipstreams are aliased to
// the Uniswap V3 encoder: both are concentrated-liquidity Uniswap V3 forks
// with an identical pool layout, and no dedicated encoder source survives
// in this codebase's reference material.
func NewDefaultRegistry(chain ChainParams, executors map[string]common.Address, protocolConfig map[string]Config, approvalMgr approvals.Manager) (*Registry, error) {
	registry := NewRegistry()
	for protocol, executor := range executors {
		enc, err := createEncoder(protocol, executor, protocolConfig[protocol], chain, approvalMgr)
		if err != nil {
			return nil, err
		}
		registry.Register(protocol, enc)
	}
	return registry, nil
}

func createEncoder(protocol string, executor common.Address, config Config, chain ChainParams, approvalMgr approvals.Manager) (Encoder, error) {
	switch protocol {
	case "uniswap_v2", "sushiswap_v2", "pancakeswap_v2":
		return NewUniswapV2Encoder(executor, config)
	case "uniswap_v3", "pancakeswap_v3", "aerodrome_slipstreams", "velodrome_slipstreams":
		return NewUniswapV3Encoder(executor, config)
	case "uniswap_v4":
		return NewUniswapV4Encoder(executor, config)
	case "ekubo_v2":
		return NewEkuboV2Encoder(executor, config)
	case "ekubo_v3":
		return NewEkuboV3Encoder(executor, config)
	case "vm:curve":
		return NewCurveEncoder(executor, config, chain.NativeToken, chain.WrappedNativeToken, approvalMgr)
	case "vm:maverick_v2":
		return NewMaverickV2Encoder(executor, config)
	case "vm:balancer_v2":
		return NewBalancerV2Encoder(executor, config, approvalMgr)
	case "vm:balancer_v3":
		return NewBalancerV3Encoder(executor, config)
	case "rfq:bebop":
		return NewBebopEncoder(executor, config, chain.NativeToken, approvalMgr)
	case "rfq:hashflow":
		return NewHashflowEncoder(executor, config, chain.NativeToken, approvalMgr)
	case "rfq:liquorice":
		return NewLiquoriceEncoder(executor, config, approvalMgr)
	case "fluid_v1":
		return NewFluidV1Encoder(executor, chain.NativeToken, config)
	case "rocketpool":
		return NewRocketpoolEncoder(executor, chain.NativeToken, chain.ChainID)
	case "erc4626":
		return NewERC4626Encoder(executor, config, approvalMgr)
	case "lido":
		return NewLidoEncoder(executor, config, chain.NativeToken, approvalMgr)
	case "etherfi":
		return NewEtherfiEncoder(executor, chain.NativeToken, approvalMgr)
	default:
		return nil, tychoerr.Fatalf("unknown protocol system: %s", protocol)
	}
}
