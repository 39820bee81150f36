package txqueue

// Shift ages the queue by one ledger close (§4.8). It rotates the ban
// ring, ages every account with a nonempty queue by one, force-bans (and
// drops) any account that has gone PendingDepth cycles without its age
// being reset by RemoveApplied or Ban, and republishes the per-age size
// counters from scratch.
func (q *TransactionQueue) Shift() {
	q.banned.shift()
	q.metrics.refreshBanCounts(q.banned)

	sizes := make([]int64, q.config.PendingDepth)

	// Collect the stale accounts first: dropping while iterating the
	// states map would be safe in Go, but ban() itself mutates q.states,
	// so keep the phases separate for clarity.
	var stale []Tx

	for _, state := range q.states {
		if state.txs.empty() {
			continue
		}
		state.age++
		if state.age >= q.config.PendingDepth {
			stale = append(stale, state.txs.txs...)
			continue
		}
		sizes[state.age] += int64(state.txs.len())
	}

	if len(stale) > 0 {
		q.ban(stale)
	}

	q.metrics.setSizeByAge(sizes)
}
