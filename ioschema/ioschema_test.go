package ioschema

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

const solutionJSON = `{
	"exact_out": false,
	"given_token": "0x0000000000000000000000000000000000000001",
	"given_amount": "1000000000000000000",
	"checked_token": "0x0000000000000000000000000000000000000002",
	"checked_amount": "900000000000000000",
	"sender": "0x0000000000000000000000000000000000000003",
	"receiver": "0x0000000000000000000000000000000000000004",
	"native_action": "wrap",
	"swaps": [
		{
			"component": {
				"id": "0x000000000000000000000000000000000000000a",
				"protocol_system": "uniswap_v2",
				"static_attributes": {"fee": "0x01f4"}
			},
			"token_in": "0x0000000000000000000000000000000000000001",
			"token_out": "0x0000000000000000000000000000000000000002",
			"split": 0.5
		}
	]
}`

func TestDecodeSolution_ParsesEveryField(t *testing.T) {
	sol, err := DecodeSolution([]byte(solutionJSON))
	require.NoError(t, err)

	assert.False(t, sol.ExactOut)
	assert.Equal(t, common.HexToAddress("0x0000000000000000000000000000000000000001"), sol.GivenToken)
	assert.Equal(t, big.NewInt(1000000000000000000), sol.GivenAmount)
	assert.Equal(t, common.HexToAddress("0x0000000000000000000000000000000000000002"), sol.CheckedToken)
	assert.Equal(t, types.NativeActionWrap, sol.NativeAction)
	require.Len(t, sol.Swaps, 1)
	assert.Equal(t, "uniswap_v2", sol.Swaps[0].Component.ProtocolSystem)
	assert.Equal(t, []byte{0x01, 0xf4}, sol.Swaps[0].Component.StaticAttributes["fee"])
	assert.Equal(t, 0.5, sol.Swaps[0].Split)
}

func TestDecodeSolution_InvalidAddressIsInvalidInput(t *testing.T) {
	_, err := DecodeSolution([]byte(`{"given_token": "not-an-address", "checked_token": "0x0", "sender": "0x0", "receiver": "0x0"}`))
	require.Error(t, err)
	assert.True(t, tychoerr.Is(err, tychoerr.InvalidInput))
}

func TestDecodeSolution_InvalidDecimalIsInvalidInput(t *testing.T) {
	_, err := DecodeSolution([]byte(`{
		"given_token": "0x000000000000000000000000000000000000000a",
		"given_amount": "not-a-number",
		"checked_token": "0x000000000000000000000000000000000000000b",
		"sender": "0x000000000000000000000000000000000000000c",
		"receiver": "0x000000000000000000000000000000000000000d"
	}`))
	require.Error(t, err)
	assert.True(t, tychoerr.Is(err, tychoerr.InvalidInput))
}

func TestDecodeSolution_UnknownNativeActionIsInvalidInput(t *testing.T) {
	_, err := DecodeSolution([]byte(`{
		"given_token": "0x000000000000000000000000000000000000000a",
		"given_amount": "1",
		"checked_token": "0x000000000000000000000000000000000000000b",
		"checked_amount": "1",
		"sender": "0x000000000000000000000000000000000000000c",
		"receiver": "0x000000000000000000000000000000000000000d",
		"native_action": "bridge"
	}`))
	require.Error(t, err)
	assert.True(t, tychoerr.Is(err, tychoerr.InvalidInput))
}

func TestEncodeEncodedSolution_OmitsPermitWhenAbsent(t *testing.T) {
	es := types.EncodedSolution{
		FunctionSignature: "single_swap(...)",
		InteractingWith:   common.HexToAddress("0x0000000000000000000000000000000000000001"),
		Swaps:             []byte{0xde, 0xad},
		NTokens:           0,
	}
	out := EncodeEncodedSolution(es)
	assert.Equal(t, "0xdead", out.Swaps)
	assert.Equal(t, "", out.Permit)
	assert.Equal(t, "0", out.NTokens)
}

func TestEncodeEncodedSolution_CarriesSignatureOnlyPermit(t *testing.T) {
	es := types.EncodedSolution{
		Permit:    &types.PermitSingle{},
		Signature: []byte{0x01, 0x02, 0x03},
		NTokens:   3,
	}
	out := EncodeEncodedSolution(es)
	assert.Equal(t, "0x010203", out.Permit)
	assert.Equal(t, "3", out.NTokens)
}

func TestEncodeTransaction_RendersDecimalValue(t *testing.T) {
	tx := types.Transaction{
		To:    common.HexToAddress("0x0000000000000000000000000000000000000001"),
		Value: big.NewInt(42),
		Data:  []byte{0xff},
	}
	out := EncodeTransaction(tx)
	assert.Equal(t, "42", out.Value)
	assert.Equal(t, "0xff", out.Data)
}
