package txqueue

import "github.com/ledgerfed/fedqueue/ledger"

// releaseFeeMaybeErase undoes tx's contribution to its fee source's
// totalFees and erases that fee-source account's state entirely if it is
// left with no queued transactions and no remaining fee liability (§4.4,
// invariant I4). tx's own source-account state (its position in the
// accountQueue) is never touched here — callers adjust that separately.
func (q *TransactionQueue) releaseFeeMaybeErase(tx Tx) {
	feeSource := tx.FeeSource()
	state := q.states[feeSource]
	assertf(state != nil, "releasing fee for account with no tracked state", "account", feeSource)
	state.totalFees -= tx.FeeBid()
	if feeSource != tx.Source() && state.txs.empty() && state.totalFees == 0 {
		delete(q.states, feeSource)
	}
}

// drop removes the half-open range [begin, end) of state's queue, releasing
// each dropped transaction's fee and operation accounting along the way
// (§4.5). If state is left with no queued transactions and no fee
// liability it is erased; otherwise its age is reset to 0.
func (q *TransactionQueue) drop(acct ledger.AccountID, state *accountState, begin, end int) {
	for i := begin; i < end; i++ {
		tx := state.txs.txs[i]
		q.releaseFeeMaybeErase(tx)
		ops := int64(numOps(tx))
		state.queueSizeOps -= ops
		q.queueSizeOps -= ops
	}
	state.txs.removeRange(begin, end)
	if state.txs.empty() && state.totalFees == 0 {
		delete(q.states, acct)
	} else {
		state.age = 0
	}
	q.metrics.queueOps.Update(q.queueSizeOps)
}

// RemoveApplied removes, for each account touched by applied, every queued
// transaction whose sequence number is now covered by the ledger (§4.6).
// It is idempotent: an account or sequence number already absent from the
// queue is simply skipped.
func (q *TransactionQueue) RemoveApplied(applied []Tx) {
	highestSeq := make(map[ledger.AccountID]int64)
	for _, tx := range applied {
		if seq, ok := highestSeq[tx.Source()]; !ok || tx.SeqNum() > seq {
			highestSeq[tx.Source()] = tx.SeqNum()
		}
	}
	for acct, seq := range highestSeq {
		state := q.states[acct]
		if state == nil || state.txs.empty() {
			continue
		}
		end := 0
		for end < state.txs.len() && state.txs.txs[end].SeqNum() <= seq {
			end++
		}
		if end > 0 {
			q.drop(acct, state, 0, end)
		}
	}
}

// Ban bans every transaction in txs: each is added to the front ban set
// (making it ineligible for re-admission until BanDepth shift cycles pass)
// and, if currently queued, it and every transaction queued after it for
// the same source account are dropped (§4.7) — a later transaction cannot
// remain valid once an earlier one in its contiguous sequence is banned.
func (q *TransactionQueue) Ban(txs []Tx) {
	q.ban(txs)
}

func (q *TransactionQueue) ban(txs []Tx) {
	byAccount := make(map[ledger.AccountID][]Tx)
	for _, tx := range txs {
		q.banned.banFront(tx.FullHash())
		byAccount[tx.Source()] = append(byAccount[tx.Source()], tx)
	}

	for acct, group := range byAccount {
		state := q.states[acct]
		if state == nil || state.txs.empty() {
			continue
		}
		// A banned transaction invalidates itself and everything queued
		// after it; take the earliest affected position across the group.
		// A slot only counts if its occupant's hash actually matches the
		// banned tx — a stale or already-superseded seq_num must not cut
		// an unrelated transaction still occupying that slot.
		cut := state.txs.len()
		for _, tx := range group {
			if pos, found := state.txs.findBySeq(tx.SeqNum()); found && !state.txs.isEnd(pos) {
				if state.txs.txs[pos].FullHash() == tx.FullHash() && pos < cut {
					cut = pos
				}
			}
		}
		if cut < state.txs.len() {
			for i := cut; i < state.txs.len(); i++ {
				q.banned.banFront(state.txs.txs[i].FullHash())
			}
			q.drop(acct, state, cut, state.txs.len())
		}
	}

	q.metrics.refreshBanCounts(q.banned)
}
