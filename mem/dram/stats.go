package dram

// rankCycleStat is the per-rank power-accounting row that PrintStats flushes
// into the recorder: one row per rank, refreshed every call.
type rankCycleStat struct {
	Rank            int
	ActiveCycles    uint64
	IdleCycles      uint64
	SrefCycles      uint64
	IdleCyclesNow   uint64
	WriteCount      uint64
	WriteLatencySum uint64
}

// rankAccounting tracks the per-rank cycle counters that feed
// rankCycleStat. rankIdleCycles is reset to zero the moment a command
// issues against that rank, held at zero while the rank is in self-refresh,
// and is otherwise the running idle streak used to decide whether a rank is
// a self-refresh-entry candidate.
type rankAccounting struct {
	activeCycles    []uint64
	idleCycles      []uint64
	srefCycles      []uint64
	rankIdleCycles  []uint64
	writeCount      []uint64
	writeLatencySum []uint64
}

func newRankAccounting(numRank int) rankAccounting {
	return rankAccounting{
		activeCycles:    make([]uint64, numRank),
		idleCycles:      make([]uint64, numRank),
		srefCycles:      make([]uint64, numRank),
		rankIdleCycles:  make([]uint64, numRank),
		writeCount:      make([]uint64, numRank),
		writeLatencySum: make([]uint64, numRank),
	}
}

// accountCycle runs the per-rank power-accounting step of the controller's
// per-cycle order: every rank not currently asleep is either active (a
// command targeted it this cycle) or idle.
func (a *rankAccounting) accountCycle(issuedRank int, issued bool, inSelfRefresh func(rank int) bool) {
	for r := range a.activeCycles {
		switch {
		case inSelfRefresh != nil && inSelfRefresh(r):
			a.srefCycles[r]++
			a.rankIdleCycles[r] = 0
		case issued && r == issuedRank:
			a.activeCycles[r]++
			a.rankIdleCycles[r] = 0
		default:
			a.idleCycles[r]++
			a.rankIdleCycles[r]++
		}
	}
}

// recordWriteLatency accumulates one write's issue_command latency
// (clk - added_cycle + write_delay) against the rank it targeted.
func (a *rankAccounting) recordWriteLatency(rank int, latency uint64) {
	a.writeCount[rank]++
	a.writeLatencySum[rank] += latency
}

func (a *rankAccounting) reset() {
	for r := range a.activeCycles {
		a.activeCycles[r] = 0
		a.idleCycles[r] = 0
		a.srefCycles[r] = 0
		a.rankIdleCycles[r] = 0
		a.writeCount[r] = 0
		a.writeLatencySum[r] = 0
	}
}

// PrintStats flushes the current per-rank cycle accounting into the
// configured recorder, one row per rank, under the "dram_rank_stats" table.
// A Comp built without WithStatsRecorder keeps accounting in memory but has
// nowhere to flush it, so PrintStats is then a no-op.
func (c *Comp) PrintStats() {
	if c.recorder == nil {
		return
	}

	const table = "dram_rank_stats"

	c.recorder.CreateTable(table, rankCycleStat{})

	for r := range c.accounting.activeCycles {
		c.recorder.InsertData(table, rankCycleStat{
			Rank:            r,
			ActiveCycles:    c.accounting.activeCycles[r],
			IdleCycles:      c.accounting.idleCycles[r],
			SrefCycles:      c.accounting.srefCycles[r],
			IdleCyclesNow:   c.accounting.rankIdleCycles[r],
			WriteCount:      c.accounting.writeCount[r],
			WriteLatencySum: c.accounting.writeLatencySum[r],
		})
	}

	c.recorder.Flush()
}

// ResetStats zeroes every per-rank counter without touching bank or channel
// state, matching the core's separation between functional state and stats.
func (c *Comp) ResetStats() {
	c.accounting.reset()
}
