package validator

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

var (
	native  = common.Address{}
	wrapped = common.HexToAddress("0x000000000000000000000000000000000000AA")
	dai     = common.HexToAddress("0x000000000000000000000000000000000000BB")
	usdc    = common.HexToAddress("0x000000000000000000000000000000000000CC")
)

func baseSolution() types.Solution {
	return types.Solution{
		GivenToken:    dai,
		GivenAmount:   big.NewInt(100),
		CheckedToken:  usdc,
		CheckedAmount: big.NewInt(90),
		Swaps: []types.Swap{
			{TokenIn: dai, TokenOut: usdc},
		},
	}
}

func TestValidateSolution_ExactOutIsFatal(t *testing.T) {
	sol := baseSolution()
	sol.ExactOut = true

	err := ValidateSolution(sol, native, wrapped)
	assert.Error(t, err)
	assert.True(t, tychoerr.Is(err, tychoerr.Fatal))
}

func TestValidateSolution_NoSwapsIsFatal(t *testing.T) {
	sol := baseSolution()
	sol.Swaps = nil

	err := ValidateSolution(sol, native, wrapped)
	assert.Error(t, err)
	assert.True(t, tychoerr.Is(err, tychoerr.Fatal))
}

func TestValidateSolution_WrapRequiresNativeGivenToken(t *testing.T) {
	sol := baseSolution()
	sol.NativeAction = types.NativeActionWrap
	sol.Swaps[0].TokenIn = wrapped

	err := ValidateSolution(sol, native, wrapped)
	assert.Error(t, err, "given_token must be native to wrap")
}

func TestValidateSolution_WrapSucceedsWhenConsistent(t *testing.T) {
	sol := baseSolution()
	sol.GivenToken = native
	sol.NativeAction = types.NativeActionWrap
	sol.Swaps[0].TokenIn = wrapped

	assert.NoError(t, ValidateSolution(sol, native, wrapped))
}

func TestValidateSolution_LinearMultiHopIntermediateAllowed(t *testing.T) {
	wbtc := common.HexToAddress("0x000000000000000000000000000000000000DD")
	sol := types.Solution{
		GivenToken:   dai,
		CheckedToken: usdc,
		Swaps: []types.Swap{
			{TokenIn: dai, TokenOut: wbtc},
			{TokenIn: wbtc, TokenOut: usdc},
		},
	}
	assert.NoError(t, ValidateSolution(sol, native, wrapped))
}

func TestValidateSolution_CyclicalRoundTripAllowed(t *testing.T) {
	sol := types.Solution{
		GivenToken:   dai,
		CheckedToken: dai,
		Swaps: []types.Swap{
			{TokenIn: dai, TokenOut: usdc},
			{TokenIn: usdc, TokenOut: dai},
		},
	}
	assert.NoError(t, ValidateSolution(sol, native, wrapped))
}

func TestValidateSolution_CyclicalWithNativeActionRejected(t *testing.T) {
	sol := types.Solution{
		GivenToken:   native,
		CheckedToken: native,
		NativeAction: types.NativeActionWrap,
		Swaps: []types.Swap{
			{TokenIn: wrapped, TokenOut: usdc},
			{TokenIn: usdc, TokenOut: wrapped},
		},
	}
	err := ValidateSolution(sol, native, wrapped)
	assert.Error(t, err)
}

func TestValidateSplitPercentages_SumUnderOneAccepted(t *testing.T) {
	swaps := []types.Swap{
		{TokenIn: dai, Split: 0.5},
		{TokenIn: dai, Split: 0},
	}
	assert.NoError(t, ValidateSplitPercentages(swaps))
}

func TestValidateSplitPercentages_SumAtLeastOneRejected(t *testing.T) {
	swaps := []types.Swap{
		{TokenIn: dai, Split: 0.6},
		{TokenIn: dai, Split: 0.4},
	}
	err := ValidateSplitPercentages(swaps)
	assert.Error(t, err)
}

func TestValidateSplitPercentages_TwoRemaindersRejected(t *testing.T) {
	swaps := []types.Swap{
		{TokenIn: dai, Split: 0},
		{TokenIn: dai, Split: 0},
	}
	err := ValidateSplitPercentages(swaps)
	assert.Error(t, err)
}

func TestValidatePathConnectivity_BrokenChainRejected(t *testing.T) {
	groups := []types.SwapGroup{
		{TokenIn: dai, TokenOut: usdc},
		{TokenIn: wrapped, TokenOut: dai},
	}
	err := ValidatePathConnectivity(groups, dai, dai)
	assert.Error(t, err)
}
