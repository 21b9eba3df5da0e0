// Package ioschema implements the inbound/outbound JSON shapes from
// spec.md §6: integers as decimal strings, addresses and byte strings as
// 0x-prefixed hex. cmd/tycho-encode is the only consumer; the core package
// (types) never depends on this, so a library caller can build a
// types.Solution directly without touching JSON at all.
package ioschema

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// Solution is the inbound JSON shape of a types.Solution.
type Solution struct {
	ExactOut      bool   `json:"exact_out"`
	GivenToken    string `json:"given_token"`
	GivenAmount   string `json:"given_amount"`
	CheckedToken  string `json:"checked_token"`
	CheckedAmount string `json:"checked_amount"`
	Sender        string `json:"sender"`
	Receiver      string `json:"receiver"`
	Swaps         []Swap `json:"swaps"`
	// NativeAction is "wrap", "unwrap", or omitted/empty for none.
	NativeAction string `json:"native_action,omitempty"`
}

// ProtocolComponent is the inbound JSON shape of a types.ProtocolComponent.
type ProtocolComponent struct {
	ID               string            `json:"id"`
	ProtocolSystem   string            `json:"protocol_system"`
	StaticAttributes map[string]string `json:"static_attributes"`
}

// Swap is the inbound JSON shape of a types.Swap. RFQ protocol state is not
// representable over JSON (it is a live capability object per spec.md §3);
// CLI-submitted swaps against RFQ protocols must be wired to a RFQState by
// the host before encoding, not through this schema.
type Swap struct {
	Component ProtocolComponent `json:"component"`
	TokenIn   string            `json:"token_in"`
	TokenOut  string            `json:"token_out"`
	Split     float64           `json:"split"`
	UserData  string            `json:"user_data,omitempty"`
}

// DecodeSolution parses raw JSON into a types.Solution.
func DecodeSolution(raw []byte) (types.Solution, error) {
	var in Solution
	if err := json.Unmarshal(raw, &in); err != nil {
		return types.Solution{}, tychoerr.WrapFatal(err, "ioschema: failed to parse solution JSON")
	}
	return in.toTypes()
}

func (in Solution) toTypes() (types.Solution, error) {
	givenToken, err := parseAddress(in.GivenToken)
	if err != nil {
		return types.Solution{}, err
	}
	checkedToken, err := parseAddress(in.CheckedToken)
	if err != nil {
		return types.Solution{}, err
	}
	sender, err := parseAddress(in.Sender)
	if err != nil {
		return types.Solution{}, err
	}
	receiver, err := parseAddress(in.Receiver)
	if err != nil {
		return types.Solution{}, err
	}
	givenAmount, err := parseDecimal(in.GivenAmount)
	if err != nil {
		return types.Solution{}, err
	}
	checkedAmount, err := parseDecimal(in.CheckedAmount)
	if err != nil {
		return types.Solution{}, err
	}

	swaps := make([]types.Swap, 0, len(in.Swaps))
	for i, s := range in.Swaps {
		swap, err := s.toTypes()
		if err != nil {
			return types.Solution{}, tychoerr.WrapFatal(err, "ioschema: swap %d", i)
		}
		swaps = append(swaps, swap)
	}

	nativeAction, err := parseNativeAction(in.NativeAction)
	if err != nil {
		return types.Solution{}, err
	}

	return types.Solution{
		ExactOut:      in.ExactOut,
		GivenToken:    givenToken,
		GivenAmount:   givenAmount,
		CheckedToken:  checkedToken,
		CheckedAmount: checkedAmount,
		Sender:        sender,
		Receiver:      receiver,
		Swaps:         swaps,
		NativeAction:  nativeAction,
	}, nil
}

func (s Swap) toTypes() (types.Swap, error) {
	tokenIn, err := parseAddress(s.TokenIn)
	if err != nil {
		return types.Swap{}, err
	}
	tokenOut, err := parseAddress(s.TokenOut)
	if err != nil {
		return types.Swap{}, err
	}

	attrs := make(map[string][]byte, len(s.Component.StaticAttributes))
	for name, hex := range s.Component.StaticAttributes {
		b, err := parseBytes(hex)
		if err != nil {
			return types.Swap{}, tychoerr.WrapFatal(err, "ioschema: static_attributes[%s]", name)
		}
		attrs[name] = b
	}

	componentID, err := parseBytes(s.Component.ID)
	if err != nil {
		return types.Swap{}, err
	}

	var userData []byte
	if s.UserData != "" {
		userData, err = parseBytes(s.UserData)
		if err != nil {
			return types.Swap{}, err
		}
	}

	return types.Swap{
		Component: types.ProtocolComponent{
			ID:               componentID,
			ProtocolSystem:   s.Component.ProtocolSystem,
			StaticAttributes: attrs,
		},
		TokenIn:  tokenIn,
		TokenOut: tokenOut,
		Split:    s.Split,
		UserData: userData,
	}, nil
}

func parseNativeAction(s string) (types.NativeAction, error) {
	switch strings.ToLower(s) {
	case "":
		return types.NativeActionNone, nil
	case "wrap":
		return types.NativeActionWrap, nil
	case "unwrap":
		return types.NativeActionUnwrap, nil
	default:
		return types.NativeActionNone, tychoerr.InvalidInputf("ioschema: unknown native_action %q", s)
	}
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, tychoerr.InvalidInputf("ioschema: invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

func parseBytes(s string) ([]byte, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, tychoerr.InvalidInputf("ioschema: invalid hex byte string %q: %v", s, err)
	}
	return b, nil
}

func parseDecimal(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, tychoerr.InvalidInputf("ioschema: invalid decimal integer %q", s)
	}
	return v, nil
}
