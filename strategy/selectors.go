package strategy

// Router function signatures, bit-exact per spec.md §6; used both as the
// EncodedSolution.FunctionSignature value and, by the router package, for
// selector computation via crypto.Keccak256.
const (
	SingleSwapSig            = "singleSwap(uint256,address,address,uint256,bool,bool,address,bool,bytes)"
	SingleSwapPermit2Sig     = "singleSwapPermit2(uint256,address,address,uint256,bool,bool,address,((address,uint160,uint48,uint48),address,uint256),bytes,bytes)"
	SequentialSwapSig        = "sequentialSwap(uint256,address,address,uint256,bool,bool,address,bool,bytes)"
	SequentialSwapPermit2Sig = "sequentialSwapPermit2(uint256,address,address,uint256,bool,bool,address,((address,uint160,uint48,uint48),address,uint256),bytes,bytes)"
	SplitSwapSig             = "splitSwap(uint256,address,address,uint256,bool,bool,uint256,address,bool,bytes)"
	SplitSwapPermit2Sig      = "splitSwapPermit2(uint256,address,address,uint256,bool,bool,uint256,address,((address,uint160,uint48,uint48),address,uint256),bytes,bytes)"
)

func (e *Encoder) selector(kind Kind) string {
	switch kind {
	case Single:
		if e.Permit2Active {
			return SingleSwapPermit2Sig
		}
		return SingleSwapSig
	case Sequential:
		if e.Permit2Active {
			return SequentialSwapPermit2Sig
		}
		return SequentialSwapSig
	case Split:
		if e.Permit2Active {
			return SplitSwapPermit2Sig
		}
		return SplitSwapSig
	default:
		return ""
	}
}
