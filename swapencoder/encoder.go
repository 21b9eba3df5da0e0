// Package swapencoder implements one Encoder per protocol system: each
// knows how to turn a single Swap hop into the packed bytes the executor
// contract for that protocol expects. Byte layouts are load-bearing and
// must match the deployed executors exactly; nothing here is ABI-encoded
// unless a field comment says so.
package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/types"
)

// Encoder packs one swap hop for its executor contract.
type Encoder interface {
	// EncodeSwap packs swap for execution under ectx. ectx.GroupTokenIn/Out
	// identify the hop's position within a SwapGroup; most encoders ignore
	// them, the grouped-path ones (Uniswap V4, Ekubo) use them to detect
	// the first hop of a group and omit the header on later hops.
	EncodeSwap(ctx context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error)
	// ExecutorAddress is the contract the router delegates this swap to.
	ExecutorAddress() common.Address
}

// Config is the per-protocol string configuration handed to a constructor,
// mirroring a venue's deployment addresses and feature flags. Keys are
// protocol-specific; see each constructor's doc comment for which it reads.
type Config map[string]string

func (c Config) get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c[key]
	return v, ok
}
