package txqueue

import (
	"testing"

	"github.com/ledgerfed/fedqueue/ledger"
)

// Banning an earlier transaction in an account's contiguous sequence must
// also ban, and drop, every transaction queued after it — not just the one
// explicitly named.
func TestBanCascadesToLaterQueuedTxs(t *testing.T) {
	q, src := newTestQueue(Config{})
	a := acct(1)
	src.balances[a] = 10000

	tx5 := newFakeTx(5, a, 5, 1, 100)
	tx6 := newFakeTx(6, a, 6, 1, 100)
	tx7 := newFakeTx(7, a, 7, 1, 100)
	for _, tx := range []Tx{tx5, tx6, tx7} {
		if status := q.TryAdd(tx); status != StatusPending {
			t.Fatalf("admitting seq %d: got %v", tx.SeqNum(), status)
		}
	}

	q.Ban([]Tx{tx5})

	if info := q.AccountInfo(a); info != (AccountInfo{}) {
		t.Fatalf("account state should be empty after the whole tail is banned, got %+v", info)
	}
	for _, tx := range []Tx{tx5, tx6, tx7} {
		if !q.IsBanned(tx.FullHash()) {
			t.Fatalf("seq %d should have been banned along with its predecessor", tx.SeqNum())
		}
	}
	for _, tx := range []Tx{tx6, tx7} {
		if status := q.TryAdd(tx); status != StatusTryAgainLater {
			t.Fatalf("resubmitting cascaded-ban seq %d: got %v, want TryAgainLater", tx.SeqNum(), status)
		}
	}
}

// A ban naming a stale hash (e.g. for a sequence number that has since
// been replaced by fee-bump) must not cut the slot's current, unrelated
// occupant.
func TestBanIgnoresStaleHashAtSameSeq(t *testing.T) {
	q, src := newTestQueue(Config{})
	a := acct(1)
	src.balances[a] = 10000

	orig := newFakeTx(1, a, 5, 1, 100)
	if status := q.TryAdd(orig); status != StatusPending {
		t.Fatalf("first admission: got %v", status)
	}

	bump := newFakeTx(2, a, 5, 1, 1000)
	bump.envelope = EnvelopeFeeBump
	bump.innerHash = ledger.Hash{9}
	if status := q.TryAdd(bump); status != StatusPending {
		t.Fatalf("replacement: got %v", status)
	}

	// orig's hash no longer occupies seq 5; banning it must not drop bump.
	q.Ban([]Tx{orig})

	if info := q.AccountInfo(a); info == (AccountInfo{}) {
		t.Fatalf("replacement transaction should survive banning its stale predecessor")
	}
	if q.IsBanned(bump.FullHash()) {
		t.Fatalf("current occupant should not be banned by a stale-hash ban")
	}
}
