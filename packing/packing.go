// Package packing implements the fixed-width, big-endian byte-packing
// primitives every swap encoder and strategy builds on: address/integer
// conversion, prefix-length framing, and selector computation. All packing
// here is big-endian and never emits ABI offsets or length prefixes other
// than PLEEncode's own.
package packing

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// maxUint24 is 2^24 - 1, the denominator for percentage_to_uint24.
const maxUint24 = (1 << 24) - 1

// canonicalABIOffset is the 32-byte offset 0x...0020 an ABI codec prepends
// to a single dynamic `bytes` argument.
var canonicalABIOffset = append(make([]byte, 31), 0x20)

// BytesToAddress requires raw to be exactly 20 bytes.
func BytesToAddress(raw []byte) (common.Address, error) {
	if len(raw) != 20 {
		return common.Address{}, tychoerr.Fatalf("invalid address length: got %d bytes, want 20", len(raw))
	}
	return common.BytesToAddress(raw), nil
}

// BigUintToU256 packs v as 32 big-endian bytes. Fails if v is negative or
// exceeds 2^256 - 1.
func BigUintToU256(v *big.Int) ([]byte, error) {
	if v == nil || v.Sign() < 0 {
		return nil, tychoerr.Fatalf("value must be a non-negative integer")
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, tychoerr.Fatalf("value %s overflows uint256", v.String())
	}
	b := u.Bytes32()
	return b[:], nil
}

// PercentageToUint24 packs x (a fraction in [0,1]) as round(x*(2^24-1)) in
// 3 big-endian bytes. x=0 is the "remainder" sentinel and must emit exactly
// three zero bytes.
func PercentageToUint24(x float64) ([]byte, error) {
	if x < 0 || x > 1 {
		return nil, tychoerr.Fatalf("percentage %v out of range [0,1]", x)
	}
	if x == 0 {
		return []byte{0, 0, 0}, nil
	}
	scaled := uint32(x*float64(maxUint24) + 0.5)
	if scaled > maxUint24 {
		scaled = maxUint24
	}
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, scaled)
	return buf[1:], nil
}

// PadToFixedSize left-zero-pads b to n bytes. Fails if b is already longer
// than n.
func PadToFixedSize(b []byte, n int) ([]byte, error) {
	if len(b) > n {
		return nil, tychoerr.Fatalf("value of %d bytes does not fit in %d bytes", len(b), n)
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out, nil
}

// GetStaticAttribute returns the raw bytes for name on swap.Component, or a
// Fatal error if the attribute is missing.
func GetStaticAttribute(swap types.Swap, name string) ([]byte, error) {
	val, ok := swap.Component.Attribute(name)
	if !ok {
		return nil, tychoerr.Fatalf("swap on component %x missing required static attribute %q", swap.Component.ID, name)
	}
	return val, nil
}

// PLEEncode concatenates, for each part, its length as 2 big-endian bytes
// followed by the part's bytes. It is a left fold:
// PLEEncode([a,b,c]) == PLEEncode([a,b]) ++ len16(c) ++ c.
func PLEEncode(parts [][]byte) ([]byte, error) {
	var out []byte
	for _, p := range parts {
		if len(p) > 0xFFFF {
			return nil, tychoerr.Fatalf("part of %d bytes exceeds the 16-bit PLE length field", len(p))
		}
		var lenBuf [2]byte
		binary.BigEndian.PutUint16(lenBuf[:], uint16(len(p)))
		out = append(out, lenBuf[:]...)
		out = append(out, p...)
	}
	return out, nil
}

// EncodeInput computes the 4-byte Keccak-256 selector of signature and
// concatenates it with args. If args begins with the 32-byte canonical ABI
// offset for a single dynamic root (0x00...20), that prefix is stripped
// first — the external ABI codec emits it for dynamic roots, but the router
// expects the tail directly.
func EncodeInput(signature string, args []byte) []byte {
	selector := crypto.Keccak256([]byte(signature))[:4]
	if len(args) >= 32 && string(args[:32]) == string(canonicalABIOffset) {
		args = args[32:]
	}
	out := make([]byte, 0, 4+len(args))
	out = append(out, selector...)
	out = append(out, args...)
	return out
}

// ZeroToOne compares two 20-byte addresses as unsigned big-endian integers.
func ZeroToOne(tokenIn, tokenOut common.Address) bool {
	for i := 0; i < common.AddressLength; i++ {
		if tokenIn[i] != tokenOut[i] {
			return tokenIn[i] < tokenOut[i]
		}
	}
	return false
}

// PackBool packs a boolean as a single byte (0x00 / 0x01). Per spec §9 Open
// Questions, approval_needed and transfer booleans are fixed at 1 byte for
// every packed encoder, never ABI-packed 32-byte booleans.
func PackBool(b bool) byte {
	if b {
		return 1
	}
	return 0
}
