package txqueue

import "github.com/ledgerfed/fedqueue/ledger"

// EnvelopeType distinguishes a plain transaction envelope from one wrapped
// in a fee-bump envelope. The queue never inspects an envelope's contents
// beyond this tag; see SPEC_FULL.md §9 on avoiding inheritance in favor of
// a tagged sum.
type EnvelopeType int

const (
	EnvelopeNormal EnvelopeType = iota
	EnvelopeFeeBump
)

// ResultCode is the closed set of user-visible rejection reasons the queue
// itself assigns to a Tx via SetResultCode. check_valid may assign others;
// the queue treats those opaquely.
type ResultCode int

const (
	ResultNone ResultCode = iota
	ResultBadSeq
	ResultInsufficientFee
	ResultInsufficientBalance
)

func (c ResultCode) String() string {
	switch c {
	case ResultNone:
		return "none"
	case ResultBadSeq:
		return "txBAD_SEQ"
	case ResultInsufficientFee:
		return "txINSUFFICIENT_FEE"
	case ResultInsufficientBalance:
		return "txINSUFFICIENT_BALANCE"
	default:
		return "txUNKNOWN"
	}
}

// Tx is the capability set the queue uses on a candidate or queued
// transaction. It is intentionally narrow: signature checking, XDR
// encoding, and operation-level semantics all live outside this package.
// A Tx is a cheap handle (e.g. backed by a pointer to an immutable
// envelope); the queue stores one handle per slot and never copies the
// underlying envelope.
type Tx interface {
	FullHash() ledger.Hash

	// InnerFullHash identifies the wrapped inner transaction of a fee-bump
	// envelope. Only meaningful when EnvelopeType() == EnvelopeFeeBump.
	InnerFullHash() ledger.Hash

	EnvelopeType() EnvelopeType
	Source() ledger.AccountID
	FeeSource() ledger.AccountID
	SeqNum() int64
	NumOperations() uint32
	FeeBid() int64

	// CheckValid runs external semantic/signature validation against a
	// read-only ledger snapshot. When the source account already has a
	// queued predecessor or is being extended by a fee-bump replacement,
	// currentSeq carries the sequence number that predecessor establishes
	// as the continuity point; an implementation validating against an
	// account with no queued predecessor reads the actual on-ledger
	// sequence number from snapshot itself and currentSeq is unused. It may
	// call SetResultCode on failure.
	CheckValid(snapshot ledger.Snapshot, currentSeq int64) bool

	SetResultCode(code ResultCode)

	// ConvertForProtocol13 rebuilds this transaction's envelope under the
	// protocol-13 wire format, returning a new Tx handle with everything
	// but the envelope (seq, fee, ops, source, fee source) unchanged. Used
	// by MaybeVersionUpgraded (§4.10).
	ConvertForProtocol13(networkID string) (Tx, error)
}

// numOps returns max(1, tx.NumOperations()) per the fee-ratio rule in
// §4.1 and the accounting rule in §4.3 step 2.
func numOps(tx Tx) uint32 {
	if n := tx.NumOperations(); n > 1 {
		return n
	}
	return 1
}
