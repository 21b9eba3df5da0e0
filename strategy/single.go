package strategy

import (
	"context"

	"github.com/tycho-go/router-encoding/grouping"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// encodeSingle implements spec.md §4.F "Single-swap": exactly one group,
// no split, emitting executor_address(20) ++ concat(encode_swap per hop).
func (e *Encoder) encodeSingle(ctx context.Context, sol types.Solution) (types.EncodedSolution, error) {
	groups := grouping.GroupSwaps(sol.Swaps)
	if len(groups) != 1 {
		return types.EncodedSolution{}, tychoerr.InvalidInputf("single strategy requires exactly one swap group, got %d", len(groups))
	}
	group := groups[0]
	if group.Split != 0 {
		return types.EncodedSolution{}, tychoerr.InvalidInputf("single strategy does not support splits")
	}

	wrap, unwrap := deriveWrapUnwrap(sol)
	receiver := sol.Receiver
	if unwrap {
		receiver = e.RouterAddress
	}
	tt := e.planner().TransferType(group, wrap, false)

	routerAddr := e.RouterAddress
	ectx := types.EncodingContext{
		Receiver:      receiver,
		ExactOut:      sol.ExactOut,
		RouterAddress: &routerAddr,
		GroupTokenIn:  group.TokenIn,
		GroupTokenOut: group.TokenOut,
		TransferType:  tt,
	}

	data, executor, err := e.encodeGroup(ctx, group, ectx)
	if err != nil {
		return types.EncodedSolution{}, err
	}

	swapsBytes := make([]byte, 0, 20+len(data))
	swapsBytes = append(swapsBytes, executor.Bytes()...)
	swapsBytes = append(swapsBytes, data...)

	return types.EncodedSolution{
		FunctionSignature: e.selector(Single),
		InteractingWith:   e.RouterAddress,
		Swaps:             swapsBytes,
		NTokens:           0,
	}, nil
}
