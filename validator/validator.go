// Package validator implements the pre-encoding checks every strategy runs
// before touching the swap graph: the top-level solution invariants (§4.G)
// and the path-connectivity / split-percentage checks the Sequential and
// Split strategies run on top of them. Grounded on validate_solution in
// original_source/src/encoding/evm/tycho_encoder.rs and the
// SequentialSwapValidator/SplitSwapValidator call sites in
// strategy_encoders.rs.
package validator

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// ValidateSolution enforces the invariants that apply regardless of which
// strategy eventually encodes the solution.
func ValidateSolution(sol types.Solution, native, wrapped common.Address) error {
	if sol.ExactOut {
		return tychoerr.Fatalf("validator: exact output solutions are not supported")
	}
	if len(sol.Swaps) == 0 {
		return tychoerr.Fatalf("validator: no swaps found in solution")
	}

	first := sol.Swaps[0]
	last := sol.Swaps[len(sol.Swaps)-1]

	switch sol.NativeAction {
	case types.NativeActionWrap:
		if sol.GivenToken != native {
			return tychoerr.Fatalf("validator: native token must be the input token in order to wrap")
		}
		if first.TokenIn != wrapped {
			return tychoerr.Fatalf("validator: wrapped token must be the first swap's input in order to wrap")
		}
	case types.NativeActionUnwrap:
		if sol.CheckedToken != native {
			return tychoerr.Fatalf("validator: native token must be the output token in order to unwrap")
		}
		if last.TokenOut != wrapped {
			return tychoerr.Fatalf("validator: wrapped token must be the last swap's output in order to unwrap")
		}
	}

	return validateTokenAppearance(sol)
}

// validateTokenAppearance enforces the cyclical-swap rule: a genuine
// intermediate token (neither the solution's given nor checked token) may
// only recur through the natural chain junction between two consecutive
// swaps (hop i's token_out feeding hop i+1's token_in) — that is ordinary
// multi-hop flow, not a loop. The given and checked tokens themselves are
// exempt from this count, since they legitimately recur whenever a split
// fans out from one source or fans in to one destination; the "must be a
// deliberate round trip" restriction applies only to that endpoint pair,
// via the given==checked + native_action check below, never to an
// unrelated intermediate that happens to repeat twice in a linear chain.
func validateTokenAppearance(sol types.Solution) error {
	swaps := sol.Swaps

	junction := make(map[common.Address]int)
	for i := 0; i+1 < len(swaps); i++ {
		if swaps[i].TokenOut == swaps[i+1].TokenIn {
			junction[swaps[i].TokenOut] += 2
		}
	}

	seen := make(map[common.Address]int)
	for _, s := range swaps {
		seen[s.TokenIn]++
		seen[s.TokenOut]++
	}

	for token, count := range seen {
		if token == sol.GivenToken || token == sol.CheckedToken {
			continue
		}
		if count > 2 || count > junction[token] {
			return tychoerr.InvalidInputf("validator: token %s appears more than once outside of a direct chain hop", token.Hex())
		}
	}

	if sol.GivenToken == sol.CheckedToken && sol.NativeAction != types.NativeActionNone {
		return tychoerr.InvalidInputf("validator: native_action is not permitted on a cyclical solution")
	}
	return nil
}

// ValidatePathConnectivity checks that every group's input token is
// reachable from fromToken through the outputs of the groups before it, and
// that the last group's output is toToken. Used by both the Sequential and
// Split strategies (step 2 of the Split algorithm in spec.md §4.F); a split
// fans several groups out of the same reachable token.
func ValidatePathConnectivity(groups []types.SwapGroup, fromToken, toToken common.Address) error {
	if len(groups) == 0 {
		return tychoerr.InvalidInputf("validator: no swap groups to validate")
	}
	reachable := map[common.Address]bool{fromToken: true}
	for i, g := range groups {
		if !reachable[g.TokenIn] {
			return tychoerr.InvalidInputf("validator: group %d's input token is not reachable from the solution's given token", i)
		}
		reachable[g.TokenOut] = true
	}
	if groups[len(groups)-1].TokenOut != toToken {
		return tychoerr.InvalidInputf("validator: last group's output token does not match the solution's checked token")
	}
	return nil
}

// ValidateSplitPercentages enforces spec.md §4.F step 1: splits per source
// token sum to strictly less than 1.0, and every source token has at most
// one remainder hop (split == 0).
func ValidateSplitPercentages(swaps []types.Swap) error {
	sums := make(map[common.Address]float64)
	remainderSeen := make(map[common.Address]bool)
	for _, s := range swaps {
		if s.Split == 0 {
			if remainderSeen[s.TokenIn] {
				return tychoerr.InvalidInputf("validator: token %s has more than one remainder hop", s.TokenIn.Hex())
			}
			remainderSeen[s.TokenIn] = true
			continue
		}
		if s.Split < 0 || s.Split >= 1 {
			return tychoerr.InvalidInputf("validator: split for token %s must be in [0, 1)", s.TokenIn.Hex())
		}
		sums[s.TokenIn] += s.Split
	}
	for token, sum := range sums {
		if sum >= 1.0 {
			return tychoerr.InvalidInputf("validator: splits for token %s sum to %.6f, must be strictly less than 1.0", token.Hex(), sum)
		}
	}
	return nil
}
