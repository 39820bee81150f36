package txqueue

import "github.com/ledgerfed/fedqueue/ledger"

// ToTxSet builds a candidate transaction set from the current queue
// contents for a ledger closing on top of lcl (§4.9). Account iteration
// order is unspecified (map order); within an account, transactions are
// always emitted in ascending sequence order, which is the only ordering
// invariant a ledger-close consumer depends on.
//
// Each account contributes transactions starting at its queue's front, and
// stops as soon as it reaches the one whose sequence number is
// startingSeq-1, where startingSeq is StartingSequenceNumber(lcl.LedgerSeq+1):
// an account paced to one queued transaction per ledger close never offers
// more than the next ledger can actually apply.
func (q *TransactionQueue) ToTxSet(lcl ledger.Header) []Tx {
	startingSeq := q.source.StartingSequenceNumber(lcl.LedgerSeq + 1)
	ceiling := startingSeq - 1

	var out []Tx
	for _, state := range q.states {
		for _, tx := range state.txs.txs {
			out = append(out, tx)
			if tx.SeqNum() == ceiling {
				break
			}
		}
	}
	return out
}

// VersionUpgrade pairs a queued transaction's old handle with the new
// handle that replaced it, returned by MaybeVersionUpgraded so callers can
// re-announce the rewritten envelopes.
type VersionUpgrade struct {
	Old Tx
	New Tx
}

// MaybeVersionUpgraded checks the ledger's current protocol version
// against the version cached at construction (or at the last call to this
// method), and if it has just crossed ledger.ProtocolVersionFeeBump,
// rewrites every queued transaction's envelope in place via
// ConvertForProtocol13 and clears the ban ring (§4.10): hashes computed
// under the pre-upgrade wire format are meaningless once every envelope's
// encoding has changed underneath them.
func (q *TransactionQueue) MaybeVersionUpgraded() []VersionUpgrade {
	current := q.source.LastClosedHeader().LedgerVersion
	previous := q.cachedLedgerVersion
	q.cachedLedgerVersion = current

	if !(previous < ledger.ProtocolVersionFeeBump && current >= ledger.ProtocolVersionFeeBump) {
		return nil
	}

	q.log.Info("ledger protocol version crossed fee-bump threshold, rewriting queued envelopes",
		"from", previous, "to", current)

	var upgrades []VersionUpgrade
	for _, state := range q.states {
		for i, tx := range state.txs.txs {
			newTx, err := tx.ConvertForProtocol13(q.networkID)
			if err != nil {
				crit("failed to convert queued transaction for protocol 13", "err", err)
			}
			state.txs.txs[i] = newTx
			upgrades = append(upgrades, VersionUpgrade{Old: tx, New: newTx})
		}
	}
	q.banned.clear()
	q.metrics.refreshBanCounts(q.banned)

	return upgrades
}
