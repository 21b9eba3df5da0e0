package strategy

import (
	"context"

	"github.com/tycho-go/router-encoding/grouping"
	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
	"github.com/tycho-go/router-encoding/validator"
)

// encodeSequential implements spec.md §4.F "Sequential": all splits zero,
// multiple groups, each executor_address(20) ++ concat(encode_swap) blob
// ple_encoded together. Receiver chaining between groups uses the transfer
// planner so a pool may hand off straight to the next pool.
func (e *Encoder) encodeSequential(ctx context.Context, sol types.Solution) (types.EncodedSolution, error) {
	for _, s := range sol.Swaps {
		if s.Split != 0 {
			return types.EncodedSolution{}, tychoerr.InvalidInputf("sequential strategy does not support splits")
		}
	}

	groups := grouping.GroupSwaps(sol.Swaps)
	wrap, unwrap := deriveWrapUnwrap(sol)

	fromToken := sol.GivenToken
	if wrap {
		fromToken = e.Wrapped
	}
	toToken := sol.CheckedToken
	if unwrap {
		toToken = e.Wrapped
	}
	if err := validator.ValidatePathConnectivity(groups, fromToken, toToken); err != nil {
		return types.EncodedSolution{}, err
	}

	planner := e.planner()
	blobs := make([][]byte, 0, len(groups))
	placedInPool := false

	for i := range groups {
		group := groups[i]
		var next *types.SwapGroup
		if i+1 < len(groups) {
			next = &groups[i+1]
		}

		receiver := sol.Receiver
		optimizedNext := false
		if next != nil {
			r, opt, err := planner.Receiver(sol.Receiver, next)
			if err != nil {
				return types.EncodedSolution{}, err
			}
			receiver, optimizedNext = r, opt
		} else if unwrap {
			receiver = e.RouterAddress
		}

		tt := planner.TransferType(group, wrap, placedInPool)
		placedInPool = optimizedNext

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

		blob := make([]byte, 0, 20+len(data))
		blob = append(blob, executor.Bytes()...)
		blob = append(blob, data...)
		blobs = append(blobs, blob)
	}

	encoded, err := packing.PLEEncode(blobs)
	if err != nil {
		return types.EncodedSolution{}, err
	}

	return types.EncodedSolution{
		FunctionSignature: e.selector(Sequential),
		InteractingWith:   e.RouterAddress,
		Swaps:             encoded,
		NTokens:           0,
	}, nil
}
