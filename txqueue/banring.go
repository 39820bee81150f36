package txqueue

import "github.com/ledgerfed/fedqueue/ledger"

// banRing is a fixed-depth ring of hash sets (§3, BanRing). Position 0 is
// the most recently banned set; position banDepth-1 is the oldest. shift
// drops the oldest set and prepends a fresh empty one, so a hash banned at
// depth 0 becomes eligible again after exactly banDepth calls to shift.
type banRing struct {
	sets []map[ledger.Hash]struct{}
}

func newBanRing(depth int) *banRing {
	r := &banRing{sets: make([]map[ledger.Hash]struct{}, depth)}
	for i := range r.sets {
		r.sets[i] = make(map[ledger.Hash]struct{})
	}
	return r
}

// banFront adds h to the most recent ban set.
func (r *banRing) banFront(h ledger.Hash) {
	r.sets[0][h] = struct{}{}
}

// isBanned reports whether h appears in any ring position.
func (r *banRing) isBanned(h ledger.Hash) bool {
	for _, s := range r.sets {
		if _, ok := s[h]; ok {
			return true
		}
	}
	return false
}

// count returns the size of the set at the given ring position.
func (r *banRing) count(index int) int {
	return len(r.sets[index])
}

// shift rotates the ring: the oldest set is discarded and a new empty set
// becomes the front (§4.8 step 1).
func (r *banRing) shift() {
	copy(r.sets[1:], r.sets[:len(r.sets)-1])
	r.sets[0] = make(map[ledger.Hash]struct{})
}

// clear empties every set in the ring, used by MaybeVersionUpgraded
// (§4.10) when the protocol version crosses the fee-bump threshold.
func (r *banRing) clear() {
	for i := range r.sets {
		r.sets[i] = make(map[ledger.Hash]struct{})
	}
}
