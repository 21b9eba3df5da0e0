// Package strategy implements the three swap-encoding strategies described
// in spec.md §4.F: Single, Sequential, and Split. Each turns a validated
// Solution into a types.EncodedSolution by grouping hops (package grouping),
// planning transfers and receivers (package transfer), and delegating the
// per-hop byte packing to the swapencoder registry. Grounded on
// SingleSwapStrategyEncoder/SequentialSwapStrategyEncoder/
// SplitSwapStrategyEncoder in
// original_source/src/encoding/evm/strategy_encoder/strategy_encoders.rs.
package strategy

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/grouping"
	"github.com/tycho-go/router-encoding/swapencoder"
	"github.com/tycho-go/router-encoding/transfer"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// Kind selects which strategy encodes a solution.
type Kind int

const (
	Single Kind = iota
	Sequential
	Split
)

func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case Sequential:
		return "sequential"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// Choose implements spec.md §4.H step 2's strategy selection: exactly one
// group (or one groupable protocol with no splits) picks Single; all splits
// zero picks Sequential; any split > 0 picks Split.
func Choose(swaps []types.Swap) Kind {
	for _, s := range swaps {
		if s.Split != 0 {
			return Split
		}
	}
	groups := grouping.GroupSwaps(swaps)
	if len(groups) == 1 {
		return Single
	}
	return Sequential
}

// Encoder packs a Solution under a fixed router/chain configuration. One
// Encoder instance is shared across every encode_strategy call for a chain.
type Encoder struct {
	Registry               *swapencoder.Registry
	Native                 common.Address
	Wrapped                common.Address
	RouterAddress          common.Address
	TokenInAlreadyInRouter bool
	Permit2Active          bool
}

// EncodeStrategy dispatches to the strategy named by kind.
func (e *Encoder) EncodeStrategy(ctx context.Context, sol types.Solution, kind Kind) (types.EncodedSolution, error) {
	switch kind {
	case Single:
		return e.encodeSingle(ctx, sol)
	case Sequential:
		return e.encodeSequential(ctx, sol)
	case Split:
		return e.encodeSplit(ctx, sol)
	default:
		return types.EncodedSolution{}, tychoerr.Fatalf("strategy: unknown kind %v", kind)
	}
}

func (e *Encoder) planner() *transfer.Planner {
	return transfer.NewPlanner(e.Native, e.Wrapped, e.TokenInAlreadyInRouter, e.RouterAddress)
}

// deriveWrapUnwrap translates a Solution's NativeAction into the wrap/
// unwrap booleans every strategy and the transfer planner consume.
func deriveWrapUnwrap(sol types.Solution) (wrap, unwrap bool) {
	switch sol.NativeAction {
	case types.NativeActionWrap:
		return true, false
	case types.NativeActionUnwrap:
		return false, true
	default:
		return false, false
	}
}

// encodeGroup runs every hop in group through its registered encoder and
// returns the concatenated protocol bytes alongside the executor address
// that must prefix them.
func (e *Encoder) encodeGroup(ctx context.Context, group types.SwapGroup, ectx types.EncodingContext) ([]byte, common.Address, error) {
	enc, ok := e.Registry.Get(group.ProtocolSystem)
	if !ok {
		return nil, common.Address{}, tychoerr.InvalidInputf("strategy: no swap encoder registered for protocol %q", group.ProtocolSystem)
	}
	var data []byte
	for _, swap := range group.Swaps {
		part, err := enc.EncodeSwap(ctx, swap, ectx)
		if err != nil {
			return nil, common.Address{}, err
		}
		data = append(data, part...)
	}
	return data, enc.ExecutorAddress(), nil
}

func tokenPosition(tokens []common.Address, token common.Address) (byte, error) {
	for i, t := range tokens {
		if t == token {
			if i > 255 {
				return 0, tychoerr.Fatalf("strategy: token table index %d exceeds uint8 range", i)
			}
			return byte(i), nil
		}
	}
	return 0, tychoerr.Fatalf("strategy: token %s not present in the solution's token table", token.Hex())
}
