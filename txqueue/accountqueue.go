package txqueue

// accountQueue is the ordered sequence of transactions queued for one
// source account: strictly ascending by seq_num and contiguous (no gaps),
// per invariant I1. It is the Go analogue of the teacher's (pack-missing
// but referenced by core/tx_list_test.go) txList — here a flat slice
// rather than a nonce-keyed map, because this spec's sequence numbers are
// always contiguous, so position is simply seq - firstSeq.
type accountQueue struct {
	txs []Tx
}

// len reports the number of queued transactions.
func (q *accountQueue) len() int { return len(q.txs) }

func (q *accountQueue) empty() bool { return len(q.txs) == 0 }

func (q *accountQueue) front() Tx { return q.txs[0] }

func (q *accountQueue) back() Tx { return q.txs[len(q.txs)-1] }

// findBySeq returns the position of the transaction with sequence number
// seq, per §4.2: if seq is within [firstSeq, lastSeq], pos points at the
// existing slot (found=true). If seq == lastSeq+1, pos is len(txs) — an
// "end" position representing the next free slot, still found=true so
// callers can distinguish "next slot" from "out of range". Anything else
// is not found.
func (q *accountQueue) findBySeq(seq int64) (pos int, found bool) {
	if q.empty() {
		return 0, false
	}
	first := q.front().SeqNum()
	last := q.back().SeqNum()
	if seq < first || seq > last+1 {
		return 0, false
	}
	return int(seq - first), true
}

// isEnd reports whether pos (as returned by findBySeq) is the one-past-end
// slot rather than an occupied one.
func (q *accountQueue) isEnd(pos int) bool { return pos == len(q.txs) }

// append adds tx to the back of the queue. Caller must ensure tx.SeqNum()
// == back().SeqNum()+1 (or the queue is empty).
func (q *accountQueue) append(tx Tx) { q.txs = append(q.txs, tx) }

// replaceAt overwrites the transaction at pos in place (a fee-bump
// replacement never changes ordering or contiguity).
func (q *accountQueue) replaceAt(pos int, tx Tx) { q.txs[pos] = tx }

// removeRange erases the half-open range [begin, end) from the queue.
func (q *accountQueue) removeRange(begin, end int) {
	q.txs = append(q.txs[:begin], q.txs[end:]...)
}

// isDuplicate implements the duplicate rule of §4.2: transactions with the
// same envelope type are duplicates iff their full hashes match; a
// fee-bump old transaction is a duplicate of a normal new one iff the
// fee-bump's inner hash equals the new transaction's full hash.
func isDuplicate(old, new Tx) bool {
	if old.EnvelopeType() == new.EnvelopeType() {
		return old.FullHash() == new.FullHash()
	}
	if old.EnvelopeType() == EnvelopeFeeBump {
		return old.InnerFullHash() == new.FullHash()
	}
	return false
}
