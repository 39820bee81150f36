package txqueue

import "math/big"

// FeeMultiplier is the fixed replace-by-fee bar: a replacement must bid at
// least this many times the per-operation fee of what it replaces.
const FeeMultiplier = 10

// canReplaceByFee reports whether newTx out-bids oldTx per-operation by at
// least FeeMultiplier (§4.1):
//
//	newFee * max(1, oldOps) >= FeeMultiplier * oldFee * max(1, newOps)
//
// The teacher computes gas prices with math/big.Int (core/gasprice_default.go,
// core/tx_pool.go's gasPrice field); big.Int gives unbounded precision,
// which trivially satisfies the 128-bit intermediate requirement from
// SPEC_FULL.md §4.1 without a hand-rolled widening multiply.
func canReplaceByFee(newTx, oldTx Tx) bool {
	newFee := big.NewInt(newTx.FeeBid())
	oldFee := big.NewInt(oldTx.FeeBid())
	newOps := big.NewInt(int64(numOps(newTx)))
	oldOps := big.NewInt(int64(numOps(oldTx)))

	lhs := new(big.Int).Mul(newFee, oldOps)

	rhs := new(big.Int).Mul(oldFee, newOps)
	rhs.Mul(rhs, big.NewInt(FeeMultiplier))

	return lhs.Cmp(rhs) >= 0
}
