package txqueue

import (
	"testing"

	"github.com/ledgerfed/fedqueue/ledger"
	"github.com/ledgerfed/fedqueue/txmetrics"
)

func TestToTxSetIncludesEverythingByDefault(t *testing.T) {
	q, src := newTestQueue(Config{})
	a := acct(1)
	src.balances[a] = 10000

	q.TryAdd(newFakeTx(1, a, 5, 1, 100))
	q.TryAdd(newFakeTx(2, a, 6, 1, 100))

	set := q.ToTxSet(ledger.Header{LedgerSeq: 100})
	if len(set) != 2 {
		t.Fatalf("ToTxSet returned %d transactions, want 2", len(set))
	}
}

func TestToTxSetPacesAtStartingSeqCeiling(t *testing.T) {
	q, src := newTestQueue(Config{})
	a := acct(1)
	src.balances[a] = 10000
	src.startingSeqFn = func(uint32) int64 { return 6 } // ceiling = 5

	q.TryAdd(newFakeTx(1, a, 5, 1, 100))
	q.TryAdd(newFakeTx(2, a, 6, 1, 100))
	q.TryAdd(newFakeTx(3, a, 7, 1, 100))

	set := q.ToTxSet(ledger.Header{LedgerSeq: 100})
	if len(set) != 1 || set[0].SeqNum() != 5 {
		t.Fatalf("ToTxSet paced at ceiling = %+v, want exactly seq 5", set)
	}
}

func TestMaybeVersionUpgradedRewritesQueuedEnvelopes(t *testing.T) {
	src := newFakeSource()
	src.header.LedgerVersion = 12
	src.maxTxSetOps = 1000
	q := New(Config{}, src, "test network", txmetrics.NopSink())

	a := acct(1)
	src.balances[a] = 10000
	tx := newFakeTx(1, a, 5, 1, 100)
	q.TryAdd(tx)

	if upgrades := q.MaybeVersionUpgraded(); upgrades != nil {
		t.Fatalf("should not upgrade below the threshold, got %+v", upgrades)
	}

	src.header.LedgerVersion = ledger.ProtocolVersionFeeBump
	upgrades := q.MaybeVersionUpgraded()
	if len(upgrades) != 1 {
		t.Fatalf("expected exactly one rewritten envelope, got %d", len(upgrades))
	}
	if upgrades[0].Old != tx {
		t.Fatalf("Old handle should be the original tx")
	}
	if upgrades[0].New.FullHash() == tx.FullHash() {
		t.Fatalf("New handle should carry a distinct hash after conversion")
	}

	// A second call at the same version is a no-op.
	if upgrades := q.MaybeVersionUpgraded(); upgrades != nil {
		t.Fatalf("repeat call at unchanged version should be a no-op, got %+v", upgrades)
	}
}
