// Package txqueue implements the pending transaction queue (mempool) of a
// node participating in a federated byzantine agreement protocol: a
// bounded, ordered, fee-aware buffer of candidate transactions between
// submission and ledger close.
//
// TransactionQueue is not safe for concurrent use. It is designed to be
// driven synchronously from a single logical executor (the node's herder
// loop); see SPEC_FULL.md §5.
package txqueue

import (
	"github.com/ledgerfed/fedqueue/ledger"
	"github.com/ledgerfed/fedqueue/txlog"
	"github.com/ledgerfed/fedqueue/txmetrics"
)

// TransactionQueue is the pending transaction queue described by C1–C8.
type TransactionQueue struct {
	config Config
	source ledger.Source

	// networkID is threaded through to ConvertForProtocol13 on a version
	// upgrade (§4.10); the queue itself never inspects it.
	networkID string

	states map[ledger.AccountID]*accountState
	banned *banRing

	queueSizeOps        int64
	cachedLedgerVersion uint32

	metrics *queueMetrics
	log     txlog.Logger

	admitted *AdmittedFeed
}

// New constructs a TransactionQueue. source provides read access to ledger
// state; sink receives the queue's metrics (use txmetrics.NopSink() if
// none are wanted).
func New(config Config, source ledger.Source, networkID string, sink txmetrics.Sink) *TransactionQueue {
	config = config.sanitize()
	log := txlog.New("pkg", "txqueue")
	q := &TransactionQueue{
		config:              config,
		source:              source,
		networkID:           networkID,
		states:              make(map[ledger.AccountID]*accountState),
		banned:              newBanRing(config.BanDepth),
		cachedLedgerVersion: source.LastClosedHeader().LedgerVersion,
		metrics:             newQueueMetrics(sink, config.PendingDepth, config.BanDepth),
		log:                 log,
		admitted:            newAdmittedFeed(log.Warn),
	}
	return q
}

// maxQueueSizeOps is last_max_tx_set_size_ops() * pool_ledger_multiplier,
// re-read from the ledger on every call (§4.3).
func (q *TransactionQueue) maxQueueSizeOps() int64 {
	return int64(q.source.LastMaxTxSetSizeOps()) * int64(q.config.PoolLedgerMultiplier)
}

// TryAdd attempts to admit tx into the queue (§4.3).
func (q *TransactionQueue) TryAdd(tx Tx) Status {
	status := q.tryAdd(tx)
	q.metrics.recordStatus(status)
	return status
}

func (q *TransactionQueue) tryAdd(tx Tx) Status {
	hash := tx.FullHash()
	if q.banned.isBanned(hash) {
		return StatusTryAgainLater
	}

	netFee := tx.FeeBid()
	netOps := int64(numOps(tx))
	var seqForValidation int64

	var oldTx Tx
	hasOld, oldPos := false, 0

	state := q.states[tx.Source()]
	if state != nil && !state.txs.empty() {
		switch tx.EnvelopeType() {
		case EnvelopeNormal:
			if pos, found := state.txs.findBySeq(tx.SeqNum()); found && !state.txs.isEnd(pos) {
				if isDuplicate(state.txs.txs[pos], tx) {
					return StatusDuplicate
				}
			}
			// The new transaction's sequence number must be back()+1; the
			// validator (check_valid) enforces that, we only supply the
			// reference point.
			seqForValidation = state.txs.back().SeqNum()

		case EnvelopeFeeBump:
			pos, found := state.txs.findBySeq(tx.SeqNum())
			if !found {
				tx.SetResultCode(ResultBadSeq)
				return StatusError
			}
			if !state.txs.isEnd(pos) {
				old := state.txs.txs[pos]
				if isDuplicate(old, tx) {
					return StatusDuplicate
				}
				if !canReplaceByFee(tx, old) {
					tx.SetResultCode(ResultInsufficientFee)
					return StatusError
				}
				oldTx, hasOld, oldPos = old, true, pos
				netOps -= int64(numOps(old))
				if old.FeeSource() == tx.FeeSource() {
					netFee -= old.FeeBid()
				}
			}
			seqForValidation = tx.SeqNum() - 1
		}
	}

	// Global capacity (§4.3 step 5). A failed admission here still costs
	// the submitter a ban, to prevent an immediate, identical retry from
	// re-running this same expensive check every ledger.
	if netOps+q.queueSizeOps > q.maxQueueSizeOps() {
		q.log.Debug("rejecting tx, global operation budget exceeded", "hash", hash)
		q.ban([]Tx{tx})
		return StatusTryAgainLater
	}

	snapshot, err := q.source.OpenReadSnapshot()
	if err != nil {
		crit("failed to open ledger read snapshot", "err", err)
	}
	defer snapshot.Close()

	if !tx.CheckValid(snapshot, seqForValidation) {
		q.log.Debug("rejecting tx, failed check_valid", "hash", hash)
		return StatusError
	}

	available, err := snapshot.AvailableBalance(tx.FeeSource())
	if err != nil {
		crit("failed to read available balance", "err", err)
	}
	existingFees := int64(0)
	if feeState := q.states[tx.FeeSource()]; feeState != nil {
		existingFees = feeState.totalFees
	}
	if available-netFee < existingFees {
		tx.SetResultCode(ResultInsufficientBalance)
		q.log.Debug("rejecting tx, insufficient balance", "hash", hash)
		return StatusError
	}

	// Admit.
	if state == nil {
		state = newAccountState()
		q.states[tx.Source()] = state
	}
	if hasOld {
		q.releaseFeeMaybeErase(oldTx)
		// releaseFeeMaybeErase may have erased the state keyed by the old
		// transaction's fee source, but never this state: it still holds
		// at least oldTx until replaceAt runs below.
		state.queueSizeOps -= int64(numOps(oldTx))
		q.queueSizeOps -= int64(numOps(oldTx))
		state.txs.replaceAt(oldPos, tx)
	} else {
		state.txs.append(tx)
		q.metrics.sizeByAge[state.age].Inc(1)
	}
	state.queueSizeOps += int64(numOps(tx))
	q.queueSizeOps += int64(numOps(tx))
	q.metrics.queueOps.Update(q.queueSizeOps)

	feeState := q.states[tx.FeeSource()]
	if feeState == nil {
		feeState = newAccountState()
		q.states[tx.FeeSource()] = feeState
	}
	feeState.totalFees += tx.FeeBid()

	q.admitted.send(AdmittedEvent{Tx: tx})
	return StatusPending
}

// Subscribe registers ch to receive an AdmittedEvent for every transaction
// this queue admits from here on.
func (q *TransactionQueue) Subscribe(ch chan<- AdmittedEvent) { q.admitted.Subscribe(ch) }

// Unsubscribe removes and closes ch.
func (q *TransactionQueue) Unsubscribe(ch chan<- AdmittedEvent) { q.admitted.Unsubscribe(ch) }

// AccountInfo returns the query-surface snapshot of §4.11.
func (q *TransactionQueue) AccountInfo(acct ledger.AccountID) AccountInfo {
	state := q.states[acct]
	if state == nil {
		return AccountInfo{}
	}
	var maxSeq int64
	if !state.txs.empty() {
		maxSeq = state.txs.back().SeqNum()
	}
	return AccountInfo{
		MaxSeq:       maxSeq,
		TotalFees:    state.totalFees,
		QueueSizeOps: state.queueSizeOps,
		Age:          state.age,
	}
}

// CountBanned returns the size of the i-th ban ring set (0 = most recent).
func (q *TransactionQueue) CountBanned(index int) int {
	return q.banned.count(index)
}

// IsBanned reports whether h is present in any ban ring position.
func (q *TransactionQueue) IsBanned(h ledger.Hash) bool {
	return q.banned.isBanned(h)
}

// Stats returns the number of accounts with live state and the total
// number of queued transactions — a direct analogue of the teacher's
// TxPool.Stats (core/tx_pool.go), exposed for telemetry even though
// spec.md's public surface does not name it.
func (q *TransactionQueue) Stats() (numAccounts, numQueuedTxs int) {
	for _, s := range q.states {
		numAccounts++
		numQueuedTxs += s.txs.len()
	}
	return numAccounts, numQueuedTxs
}
