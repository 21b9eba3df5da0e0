package grouping

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/tycho-go/router-encoding/types"
)

var (
	weth = common.HexToAddress("0x0000000000000000000000000000000000000A")
	dai  = common.HexToAddress("0x0000000000000000000000000000000000000B")
	usdc = common.HexToAddress("0x0000000000000000000000000000000000000C")
)

func swap(protocol string, tokenIn, tokenOut common.Address, split float64) types.Swap {
	return types.Swap{
		Component: types.ProtocolComponent{ProtocolSystem: protocol, ID: []byte{0x01}},
		TokenIn:   tokenIn,
		TokenOut:  tokenOut,
		Split:     split,
	}
}

func TestGroupSwaps_SingleHopIsOwnGroup(t *testing.T) {
	swaps := []types.Swap{swap("vm:curve", weth, dai, 0)}
	groups := GroupSwaps(swaps)

	assert.Len(t, groups, 1)
	assert.Equal(t, weth, groups[0].TokenIn)
	assert.Equal(t, dai, groups[0].TokenOut)
}

func TestGroupSwaps_AdjacentSameGroupableProtocolJoins(t *testing.T) {
	swaps := []types.Swap{
		swap("uniswap_v4", weth, dai, 0),
		swap("uniswap_v4", dai, usdc, 0),
	}
	groups := GroupSwaps(swaps)

	assert.Len(t, groups, 1)
	assert.Equal(t, weth, groups[0].TokenIn)
	assert.Equal(t, usdc, groups[0].TokenOut)
	assert.Len(t, groups[0].Swaps, 2)
}

func TestGroupSwaps_NonGroupableProtocolNeverJoins(t *testing.T) {
	swaps := []types.Swap{
		swap("uniswap_v2", weth, dai, 0),
		swap("uniswap_v2", dai, usdc, 0),
	}
	groups := GroupSwaps(swaps)

	assert.Len(t, groups, 2, "uniswap_v2 is not in Groupable, so each hop stays its own group")
}

func TestGroupSwaps_SplitBreaksGrouping(t *testing.T) {
	swaps := []types.Swap{
		swap("uniswap_v4", weth, dai, 0.5),
		swap("uniswap_v4", dai, usdc, 0),
	}
	groups := GroupSwaps(swaps)

	assert.Len(t, groups, 2, "a split hop never joins its neighbor even on a groupable protocol")
}

func TestGroupSwaps_TokenMismatchBreaksGrouping(t *testing.T) {
	swaps := []types.Swap{
		swap("ekubo_v2", weth, dai, 0),
		swap("ekubo_v2", usdc, dai, 0),
	}
	groups := GroupSwaps(swaps)

	assert.Len(t, groups, 2)
}
