// Package grouping folds a flat sequence of swap hops into SwapGroups: runs
// of adjacent hops on a venue whose router contract expects one combined
// call rather than one call per hop (Uniswap V4, Ekubo V2/V3). Grounded on
// the grouping shape implied by the strategy encoders in strategy_encoders.rs,
// which all operate on grouped_swaps rather than raw hops.
package grouping

import (
	"github.com/tycho-go/router-encoding/types"
)

// Groupable reports the protocol_system tags whose hops may be folded into
// one SwapGroup when adjacent. ekubo_v3 joins ekubo_v2 here since it shares
// the same grouped-path executor layout.
var Groupable = map[string]bool{
	"uniswap_v4": true,
	"ekubo_v2":   true,
	"ekubo_v3":   true,
}

// GroupSwaps folds swaps into SwapGroups. Adjacent hops a, b join the same
// group iff a.protocol_system == b.protocol_system and that tag is
// Groupable, a.token_out == b.token_in, and neither hop carries a split.
// Order is preserved; a lone non-groupable hop becomes its own one-swap
// group.
func GroupSwaps(swaps []types.Swap) []types.SwapGroup {
	groups := make([]types.SwapGroup, 0, len(swaps))
	for _, swap := range swaps {
		if n := len(groups); n > 0 {
			last := &groups[n-1]
			prev := last.Swaps[len(last.Swaps)-1]
			if joins(prev, swap, last.ProtocolSystem) {
				last.Swaps = append(last.Swaps, swap)
				last.TokenOut = swap.TokenOut
				continue
			}
		}
		groups = append(groups, types.SwapGroup{
			ProtocolSystem: swap.Component.ProtocolSystem,
			TokenIn:        swap.TokenIn,
			TokenOut:       swap.TokenOut,
			Split:          swap.Split,
			Swaps:          []types.Swap{swap},
		})
	}
	return groups
}

func joins(prev, next types.Swap, groupProtocol string) bool {
	if next.Component.ProtocolSystem != groupProtocol || !Groupable[groupProtocol] {
		return false
	}
	if prev.TokenOut != next.TokenIn {
		return false
	}
	return prev.Split == 0 && next.Split == 0
}
