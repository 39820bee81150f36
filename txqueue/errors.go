package txqueue

import "github.com/ledgerfed/fedqueue/txlog"

// critFunc is called on fatal precondition violations. It defaults to
// txlog.Crit (log then exit the process); it is a variable so a test can
// replace it with a function that panics instead and assert on the panic
// without killing the test binary.
var critFunc = txlog.Crit

func crit(msg string, ctx ...interface{}) {
	critFunc(msg, ctx...)
}

// Status is the closed set of outcomes TryAdd can return (§7). It is the
// Go analogue of the teacher's TxStatus (core/tx_pool.go).
type Status int

const (
	// StatusPending means the transaction was admitted, either as a new
	// entry or as a fee-bump replacement of an existing one.
	StatusPending Status = iota

	// StatusDuplicate means the transaction is bit-identical (by the hash
	// rules of §4.2) to one already queued; no state changed.
	StatusDuplicate

	// StatusError means the transaction was rejected for a user-visible
	// reason recorded via Tx.SetResultCode.
	StatusError

	// StatusTryAgainLater means the transaction's hash is currently banned,
	// or admitting it would exceed the global operation budget (in which
	// case its hash has just been banned to prevent an immediate retry).
	StatusTryAgainLater
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusDuplicate:
		return "duplicate"
	case StatusError:
		return "error"
	case StatusTryAgainLater:
		return "try_again_later"
	default:
		return "unknown"
	}
}

// assertf halts the process via txlog.Crit when an internal precondition
// is violated — invariant breakage that §7 classifies as fatal, never a
// returned error. Mirrors the teacher's use of log.Crit for conditions
// that should never happen on a correctly operating node.
func assertf(cond bool, msg string, ctx ...interface{}) {
	if !cond {
		crit(msg, ctx...)
	}
}
