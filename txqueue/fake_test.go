package txqueue

import (
	"errors"

	"github.com/ledgerfed/fedqueue/ledger"
)

// fakeTx is a minimal, plain-struct Tx used by this package's tests — no
// mocking framework, in the style of the teacher's TestStrictTxListAdd
// (core/tx_list_test.go), which builds real transaction values by hand
// rather than stubbing an interface.
type fakeTx struct {
	hash      ledger.Hash
	innerHash ledger.Hash
	envelope  EnvelopeType
	source    ledger.AccountID
	feeSource ledger.AccountID
	seq       int64
	ops       uint32
	fee       int64

	result    ResultCode
	validErr  bool // force CheckValid to fail
	converted int  // number of times ConvertForProtocol13 was called
}

func newFakeTx(hash byte, source ledger.AccountID, seq int64, ops uint32, fee int64) *fakeTx {
	return &fakeTx{
		hash:      ledger.Hash{hash},
		source:    source,
		feeSource: source,
		seq:       seq,
		ops:       ops,
		fee:       fee,
	}
}

func (t *fakeTx) FullHash() ledger.Hash         { return t.hash }
func (t *fakeTx) InnerFullHash() ledger.Hash    { return t.innerHash }
func (t *fakeTx) EnvelopeType() EnvelopeType    { return t.envelope }
func (t *fakeTx) Source() ledger.AccountID      { return t.source }
func (t *fakeTx) FeeSource() ledger.AccountID   { return t.feeSource }
func (t *fakeTx) SeqNum() int64                 { return t.seq }
func (t *fakeTx) NumOperations() uint32         { return t.ops }
func (t *fakeTx) FeeBid() int64                 { return t.fee }
func (t *fakeTx) SetResultCode(code ResultCode) { t.result = code }

// CheckValid stands in for external semantic/signature validation. Real
// implementations read the source account's actual on-ledger sequence
// number from the snapshot themselves; currentSeq is only a continuity
// hint the queue supplies when a queued predecessor already exists. The
// fake doesn't model an on-ledger sequence at all, so it only honors the
// forced-failure knob.
func (t *fakeTx) CheckValid(snapshot ledger.Snapshot, currentSeq int64) bool {
	return !t.validErr
}

func (t *fakeTx) ConvertForProtocol13(networkID string) (Tx, error) {
	t.converted++
	clone := *t
	clone.hash[31] = 0xFB
	return &clone, nil
}

func acct(b byte) ledger.AccountID { return ledger.AccountID{b} }

// fakeSnapshot answers AvailableBalance from a fixed map captured at the
// moment OpenReadSnapshot was called, the way a real ledger snapshot is
// immutable for its lifetime.
type fakeSnapshot struct {
	balances map[ledger.AccountID]int64
	closed   bool
}

func (s *fakeSnapshot) AvailableBalance(a ledger.AccountID) (int64, error) {
	if bal, ok := s.balances[a]; ok {
		return bal, nil
	}
	return 0, nil
}

func (s *fakeSnapshot) Close() error {
	s.closed = true
	return nil
}

// fakeSource is an in-memory ledger.Source with fields tests mutate
// directly between calls into the queue.
type fakeSource struct {
	header        ledger.Header
	maxTxSetOps   uint32
	balances      map[ledger.AccountID]int64
	startingSeqFn func(ledgerSeq uint32) int64
	openErr       error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		balances: make(map[ledger.AccountID]int64),
	}
}

func (s *fakeSource) LastClosedHeader() ledger.Header { return s.header }
func (s *fakeSource) LastMaxTxSetSizeOps() uint32     { return s.maxTxSetOps }

func (s *fakeSource) OpenReadSnapshot() (ledger.Snapshot, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	snapshot := make(map[ledger.AccountID]int64, len(s.balances))
	for k, v := range s.balances {
		snapshot[k] = v
	}
	return &fakeSnapshot{balances: snapshot}, nil
}

func (s *fakeSource) StartingSequenceNumber(ledgerSeq uint32) int64 {
	if s.startingSeqFn != nil {
		return s.startingSeqFn(ledgerSeq)
	}
	return 0
}

var errFakeOpen = errors.New("fake: snapshot unavailable")
