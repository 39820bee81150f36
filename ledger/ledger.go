// Package ledger defines the narrow, read-only interfaces the transaction
// queue consumes from its host node. The queue never opens a database,
// never signs anything, and never knows how a Snapshot is implemented; it
// only calls the methods declared here. This mirrors the teacher's own
// style of declaring a minimal `blockChain` interface next to the
// transaction pool (core/tx_pool.go) rather than importing a concrete
// blockchain package.
package ledger

// Hash identifies a transaction envelope by its content.
type Hash [32]byte

// AccountID identifies a ledger account. In a federated byzantine
// agreement ledger this is typically an ed25519 public key, hence the
// fixed 32-byte width.
type AccountID [32]byte

// Header is the subset of a closed ledger's header the queue needs.
type Header struct {
	LedgerSeq     uint32
	LedgerVersion uint32
	BaseFee       int64
	Hash          Hash
}

// ProtocolVersionFeeBump is the ledger protocol version at which fee-bump
// envelopes become valid. maybe_version_upgraded (§4.10) rewrites every
// queued transaction in place the first time the ledger crosses this
// threshold. Named the way the teacher names protocol constants in
// params/version.go.
const ProtocolVersionFeeBump uint32 = 13

// Snapshot is a short-lived, read-only view into ledger state, opened once
// per admission attempt and released before try_add returns (§5).
type Snapshot interface {
	// AvailableBalance returns the balance of acct that is available to pay
	// transaction fees (i.e. net of the account's minimum balance and any
	// obligations check_valid itself is not responsible for).
	AvailableBalance(acct AccountID) (int64, error)
	Close() error
}

// Source is the constructor-time dependency the queue uses to read ledger
// state. Implementations typically wrap the node's ledger manager.
type Source interface {
	// LastClosedHeader returns the header of the most recently closed ledger.
	LastClosedHeader() Header

	// LastMaxTxSetSizeOps returns the operation-count capacity of the most
	// recently closed ledger's transaction set.
	LastMaxTxSetSizeOps() uint32

	// OpenReadSnapshot opens a new read-only ledger snapshot. Callers must
	// Close it once validation is complete.
	OpenReadSnapshot() (Snapshot, error)

	// StartingSequenceNumber returns the smallest sequence number valid for
	// transactions that will apply in ledger ledgerSeq.
	StartingSequenceNumber(ledgerSeq uint32) int64
}
