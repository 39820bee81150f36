package txqueue

import "github.com/ledgerfed/fedqueue/txlog"

// DefaultPendingDepth, DefaultBanDepth and DefaultPoolLedgerMultiplier are
// the fallback values Config.sanitize applies when the caller leaves a
// field at its zero value, in the spirit of the teacher's
// DefaultTxPoolConfig (core/tx_pool.go).
const (
	DefaultPendingDepth         = 12
	DefaultBanDepth             = 10
	DefaultPoolLedgerMultiplier = 4
)

// Config holds the three construction-time tunables named in SPEC_FULL.md
// §6. Unlike the rest of the queue's public surface, these are fixed for
// the lifetime of the queue; there is no runtime Reconfigure.
type Config struct {
	// PendingDepth is the number of age buckets; an account whose queue
	// survives this many shift cycles without activity is forcibly banned.
	PendingDepth int

	// BanDepth is the number of historical ban sets retained in the ring.
	BanDepth int

	// PoolLedgerMultiplier scales the last closed ledger's max tx set
	// operation count into this queue's global operation budget.
	PoolLedgerMultiplier uint32
}

// sanitize clamps out-of-range fields to their defaults, logging a warning
// for each one changed — the same graceful-degradation philosophy as
// TxPoolConfig.sanitize in the teacher, which never fails construction
// over an operator typo.
func (c Config) sanitize() Config {
	if c.PendingDepth <= 0 {
		txlog.Warn("Sanitizing invalid txqueue pending depth", "provided", c.PendingDepth, "updated", DefaultPendingDepth)
		c.PendingDepth = DefaultPendingDepth
	}
	if c.BanDepth <= 0 {
		txlog.Warn("Sanitizing invalid txqueue ban depth", "provided", c.BanDepth, "updated", DefaultBanDepth)
		c.BanDepth = DefaultBanDepth
	}
	if c.PoolLedgerMultiplier == 0 {
		txlog.Warn("Sanitizing invalid txqueue pool ledger multiplier", "provided", c.PoolLedgerMultiplier, "updated", DefaultPoolLedgerMultiplier)
		c.PoolLedgerMultiplier = DefaultPoolLedgerMultiplier
	}
	return c
}
