package strategy

import (
	"context"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/grouping"
	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/types"
	"github.com/tycho-go/router-encoding/validator"
)

// encodeSplit implements spec.md §4.F "Split" exactly as laid out in its
// five numbered steps, grounded on SplitSwapStrategyEncoder::encode_strategy
// in strategy_encoders.rs: validate split percentages and path
// connectivity, build the token index table, then per group emit
// token_in_index(1) ++ token_out_index(1) ++ split_uint24(3) ++
// executor_address(20) ++ concat(encode_swap), ple_encoded together.
func (e *Encoder) encodeSplit(ctx context.Context, sol types.Solution) (types.EncodedSolution, error) {
	if err := validator.ValidateSplitPercentages(sol.Swaps); err != nil {
		return types.EncodedSolution{}, err
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

	tokens := buildTokenTable(groups, sol, wrap, unwrap, e.Wrapped)

	planner := e.planner()
	blobs := make([][]byte, 0, len(groups))
	for _, group := range groups {
		receiver := e.RouterAddress
		if !unwrap && group.TokenOut == sol.CheckedToken {
			receiver = sol.Receiver
		}
		tt := planner.TransferType(group, wrap, false)

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

		tokenInIdx, err := tokenPosition(tokens, group.TokenIn)
		if err != nil {
			return types.EncodedSolution{}, err
		}
		tokenOutIdx, err := tokenPosition(tokens, group.TokenOut)
		if err != nil {
			return types.EncodedSolution{}, err
		}
		splitBytes, err := packing.PercentageToUint24(group.Split)
		if err != nil {
			return types.EncodedSolution{}, err
		}

		blob := make([]byte, 0, 2+3+20+len(data))
		blob = append(blob, tokenInIdx, tokenOutIdx)
		blob = append(blob, splitBytes...)
		blob = append(blob, executor.Bytes()...)
		blob = append(blob, data...)
		blobs = append(blobs, blob)
	}

	encoded, err := packing.PLEEncode(blobs)
	if err != nil {
		return types.EncodedSolution{}, err
	}

	nTokens := len(tokens)
	if sol.GivenToken == sol.CheckedToken {
		nTokens--
	}

	return types.EncodedSolution{
		FunctionSignature: e.selector(Split),
		InteractingWith:   e.RouterAddress,
		Swaps:             encoded,
		NTokens:           uint64(nTokens),
	}, nil
}

// buildTokenTable builds the [given(or wrapped), …intermediaries (sorted),
// checked(or wrapped)] table spec.md §4.F step 3 describes. given/checked
// are included even when equal; the caller accounts for the duplicate in
// NTokens.
func buildTokenTable(groups []types.SwapGroup, sol types.Solution, wrap, unwrap bool, wrapped common.Address) []common.Address {
	solutionTokens := map[common.Address]bool{sol.GivenToken: true, sol.CheckedToken: true}

	seen := make(map[common.Address]bool)
	var intermediaries []common.Address
	for _, g := range groups {
		for _, t := range []common.Address{g.TokenIn, g.TokenOut} {
			if solutionTokens[t] || seen[t] {
				continue
			}
			seen[t] = true
			intermediaries = append(intermediaries, t)
		}
	}
	sort.Slice(intermediaries, func(i, j int) bool {
		return intermediaries[i].Hex() < intermediaries[j].Hex()
	})

	tokens := make([]common.Address, 0, 2+len(intermediaries))
	if wrap {
		tokens = append(tokens, wrapped)
	} else {
		tokens = append(tokens, sol.GivenToken)
	}
	tokens = append(tokens, intermediaries...)
	if unwrap {
		tokens = append(tokens, wrapped)
	} else {
		tokens = append(tokens, sol.CheckedToken)
	}
	return tokens
}
