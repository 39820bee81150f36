package txqueue

// accountState is the per-account record kept by the queue's account-state
// table (§3). It is created lazily on first admission referencing the
// account as source or fee source, and erased once both txs is empty and
// totalFees is zero (invariant I4).
type accountState struct {
	txs          accountQueue
	totalFees    int64
	queueSizeOps int64
	age          int
}

func newAccountState() *accountState {
	return &accountState{}
}

// AccountInfo is the query-surface result of §4.11: account_info.
type AccountInfo struct {
	MaxSeq       int64
	TotalFees    int64
	QueueSizeOps int64
	Age          int
}
