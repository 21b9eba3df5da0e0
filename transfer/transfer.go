// Package transfer implements the transfer-optimization planner: for each
// SwapGroup it decides the TransferType a swap encoder packs into its
// EncodingContext, and the receiver address chaining consecutive hops so a
// pool can hand tokens straight to the next pool instead of routing them
// back through the router. Grounded on TransferOptimization in
// original_source/src/encoding/evm/strategy_encoder/transfer_optimizations.rs,
// adapted to the named TransferType enum already used by this codebase's
// EncodingContext rather than the reference's (bool, address, bool) tuple.
package transfer

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// InTransferRequired is the set of protocol_system tags whose pool contract
// must receive its input token directly rather than relying on a prior
// approval pulled by the router.
var InTransferRequired = map[string]bool{
	"uniswap_v2":            true,
	"sushiswap_v2":          true,
	"pancakeswap_v2":        true,
	"uniswap_v3":            true,
	"pancakeswap_v3":        true,
	"aerodrome_slipstreams": true,
	"velodrome_slipstreams": true,
	"uniswap_v4":            true,
	"vm:balancer_v2":        true,
	"fluid_v1":              true,
	"vm:maverick_v2":        true,
}

// CallbackConstrained is the subset of InTransferRequired whose swap
// callback needs the router, not the next pool, holding custody — so the
// receiver-chaining optimization must not be applied ahead of them.
var CallbackConstrained = map[string]bool{
	"uniswap_v3":            true,
	"pancakeswap_v3":        true,
	"aerodrome_slipstreams": true,
	"velodrome_slipstreams": true,
}

// Planner decides TransferType and receiver chaining for one solution.
type Planner struct {
	Native              common.Address
	Wrapped             common.Address
	TokenInAlreadyInRouter bool
	RouterAddress       common.Address
}

func NewPlanner(native, wrapped common.Address, tokenInAlreadyInRouter bool, routerAddress common.Address) *Planner {
	return &Planner{Native: native, Wrapped: wrapped, TokenInAlreadyInRouter: tokenInAlreadyInRouter, RouterAddress: routerAddress}
}

// TransferType decides how group's input token reaches its pool. wrap is
// true when the solution performs a native-token wrap before this group's
// swaps run. placedInPool is true when a prior receiver-chaining decision
// already deposited the tokens directly into this group's pool (i.e. the
// previous iteration's Receiver call returned optimized=true for this
// group), in which case no further transfer is required here.
func (p *Planner) TransferType(group types.SwapGroup, wrap bool, placedInPool bool) types.TransferType {
	switch {
	case group.TokenIn == p.Native:
		return types.TransferNone
	case group.TokenIn == p.Wrapped && wrap:
		return types.Transfer
	case InTransferRequired[group.ProtocolSystem]:
		if placedInPool {
			return types.TransferNone
		}
		if p.TokenInAlreadyInRouter {
			return types.Transfer
		}
		return types.TransferFrom
	default:
		if p.TokenInAlreadyInRouter {
			return types.TransferNone
		}
		return types.TransferFrom
	}
}

// Receiver picks the address the current hop should deliver its output to.
// next is the following SwapGroup, or nil if this is the solution's last
// hop. It returns the receiver and whether it is an optimized (next-pool)
// receiver — the caller threads that bool into the next group's
// TransferType(placedInPool) argument.
func (p *Planner) Receiver(solutionReceiver common.Address, next *types.SwapGroup) (common.Address, bool, error) {
	if next == nil {
		return solutionReceiver, false, nil
	}
	if !InTransferRequired[next.ProtocolSystem] {
		return p.RouterAddress, false, nil
	}
	if CallbackConstrained[next.ProtocolSystem] {
		return p.RouterAddress, false, nil
	}
	addr, err := packing.BytesToAddress(next.Swaps[0].Component.ID)
	if err != nil {
		return common.Address{}, false, tychoerr.WrapFatal(err, "transfer: next group's component id is not a receiver address")
	}
	return addr, true, nil
}
