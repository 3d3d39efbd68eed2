package cmdq

import (
	"github.com/sarchlab/akita/v4/mem/dram/internal/addressmapping"
	"github.com/sarchlab/akita/v4/mem/dram/internal/signal"
)

// QueueStructure selects whether commands are grouped per bank or per
// rank.
type QueueStructure int

// The two supported command-queue structures.
const (
	QueueStructurePerBank QueueStructure = iota
	QueueStructurePerRank
)

// Queue is an ordered, bounded sequence of pending commands belonging to
// one bank or one rank.
type Queue []*signal.Command

// CommandQueueImpl is the default CommandQueue implementation: a flat array
// of per-bank (or per-rank) queues with a round-robin issue arbiter.
type CommandQueueImpl struct {
	Queues           []Queue
	CapacityPerQueue int
	Channel          Channel

	Structure     QueueStructure
	BankGroups    int
	BanksPerGroup int

	nextQueueIndex int

	// RefQIndices marks the queues that are currently blocked by an
	// in-progress rank or bank refresh; the arbiter skips them.
	RefQIndices map[int]bool

	pendingRefresh *signal.Command
}

// RefreshWaiting reports whether a rank or bank refresh is currently
// occupying the queue, blocking the arbiter from issuing ordinary commands
// against the affected queues.
func (q *CommandQueueImpl) RefreshWaiting() bool {
	return q.pendingRefresh != nil
}

// InsertRefresh admits a rank- or bank-scoped refresh command ahead of the
// normal per-queue arbitration, blocking every queue the refresh affects
// until FinishRefresh reports completion.
func (q *CommandQueueImpl) InsertRefresh(cmd *signal.Command) {
	q.pendingRefresh = cmd

	if q.RefQIndices == nil {
		q.RefQIndices = make(map[int]bool)
	}

	for _, idx := range q.refreshIndices(cmd) {
		q.RefQIndices[idx] = true
	}
}

// refreshIndices lists the queue indices a pending refresh blocks: the
// single owning queue for REFRESH_BANK, or every queue in the rank for the
// rank-wide REFRESH.
func (q *CommandQueueImpl) refreshIndices(cmd *signal.Command) []int {
	if cmd.Kind == signal.CmdKindRefreshBank {
		return []int{q.indexOf(cmd)}
	}

	indices := make([]int, 0, q.BankGroups*q.BanksPerGroup)

	for bg := 0; bg < q.BankGroups; bg++ {
		for bk := 0; bk < q.BanksPerGroup; bk++ {
			probe := &signal.Command{
				Location: addressmapping.Location{
					Rank: cmd.Location.Rank, BankGroup: bg, Bank: bk,
				},
			}
			indices = append(indices, q.indexOf(probe))
		}
	}

	return indices
}

// FinishRefresh advances the pending refresh toward completion. A
// REFRESH_BANK only needs its one bank precharged; a rank-wide REFRESH
// needs every bank in the rank precharged first, so the caller may see a
// sequence of PRECHARGE commands, retargeted bank by bank, before the
// REFRESH itself is returned. Returns nil while waiting on a bank that has
// not yet reached the required state.
func (q *CommandQueueImpl) FinishRefresh() *signal.Command {
	if q.pendingRefresh == nil {
		return nil
	}

	if q.pendingRefresh.Kind == signal.CmdKindRefreshBank {
		ready := q.Channel.GetReadyCommand(q.pendingRefresh)
		if ready == nil {
			return nil
		}

		if ready.Kind == signal.CmdKindRefreshBank {
			q.clearRefreshBlock()
		}

		return ready
	}

	rank := q.pendingRefresh.Location.Rank

	for bg := 0; bg < q.BankGroups; bg++ {
		for bk := 0; bk < q.BanksPerGroup; bk++ {
			probe := &signal.Command{
				Kind: signal.CmdKindRefresh,
				Location: addressmapping.Location{
					Rank: rank, BankGroup: bg, Bank: bk,
				},
			}

			ready := q.Channel.GetReadyCommand(probe)
			if ready == nil {
				return nil
			}

			if ready.Kind != signal.CmdKindRefresh {
				return ready
			}
		}
	}

	q.clearRefreshBlock()

	return q.pendingRefresh
}

func (q *CommandQueueImpl) clearRefreshBlock() {
	q.pendingRefresh = nil
	q.RefQIndices = nil
}

// indexOf computes which queue a command belongs to, given the configured
// queue structure.
func (q *CommandQueueImpl) indexOf(cmd *signal.Command) int {
	loc := cmd.Location

	if q.Structure == QueueStructurePerRank {
		return q.rankIndex(loc.Rank)
	}

	idx := (loc.Rank*q.BankGroups+loc.BankGroup)*q.BanksPerGroup + loc.Bank
	if len(q.Queues) == 0 {
		return 0
	}

	return idx % len(q.Queues)
}

func (q *CommandQueueImpl) rankIndex(rank int) int {
	if len(q.Queues) == 0 {
		return 0
	}

	return rank % len(q.Queues)
}

// Empty reports whether every queue is currently empty.
func (q *CommandQueueImpl) Empty() bool {
	for _, queue := range q.Queues {
		if len(queue) > 0 {
			return false
		}
	}

	return true
}

// RankPending reports whether any queue belonging to rank holds a pending
// command.
func (q *CommandQueueImpl) RankPending(rank int) bool {
	if q.Structure == QueueStructurePerRank {
		return len(q.Queues[q.rankIndex(rank)]) > 0
	}

	for bg := 0; bg < q.BankGroups; bg++ {
		for bk := 0; bk < q.BanksPerGroup; bk++ {
			probe := &signal.Command{
				Location: addressmapping.Location{Rank: rank, BankGroup: bg, Bank: bk},
			}
			if len(q.Queues[q.indexOf(probe)]) > 0 {
				return true
			}
		}
	}

	return false
}

// CanAccept reports whether the queue owning cmd's location has spare
// capacity.
func (q *CommandQueueImpl) CanAccept(cmd *signal.Command) bool {
	idx := q.indexOf(cmd)

	return len(q.Queues[idx]) < q.CapacityPerQueue
}

// Accept enqueues cmd onto the queue owning its location.
func (q *CommandQueueImpl) Accept(cmd *signal.Command) {
	idx := q.indexOf(cmd)
	q.Queues[idx] = append(q.Queues[idx], cmd)
}

// GetCommandToIssue runs one round of the round-robin arbiter. The cursor
// advances exactly once per call regardless of whether a command is
// returned, which guarantees that every queue eventually gets a turn even
// when an earlier queue is persistently ready.
func (q *CommandQueueImpl) GetCommandToIssue() *signal.Command {
	n := len(q.Queues)
	if n == 0 {
		return nil
	}

	start := q.nextQueueIndex
	q.nextQueueIndex = (q.nextQueueIndex + 1) % n

	for i := 0; i < n; i++ {
		idx := (start + i) % n

		if q.RefQIndices[idx] {
			continue
		}

		if cmd := q.tryIssueFrom(idx); cmd != nil {
			return cmd
		}
	}

	return nil
}

// tryIssueFrom walks one queue head to tail, looking for the first entry
// whose required precondition (or itself) is ready.
func (q *CommandQueueImpl) tryIssueFrom(idx int) *signal.Command {
	queue := q.Queues[idx]

	for i, candidate := range queue {
		ready := q.Channel.GetReadyCommand(candidate)
		if ready == nil {
			continue
		}

		if !q.admissible(queue, i, ready) {
			continue
		}

		if ready.Kind == candidate.Kind {
			q.Queues[idx] = append(queue[:i:i], queue[i+1:]...)
		}

		return ready
	}

	return nil
}

// rowHitStarvationCap bounds how many consecutive row hits a bank may serve
// before a pending PRECHARGE for that bank is forced through regardless of
// whether a later entry would still hit the open row.
const rowHitStarvationCap = 4

// admissible applies the precharge-arbitration and write-after-read
// dependency checks from the command-queue design.
func (q *CommandQueueImpl) admissible(
	queue Queue, candidateIdx int, ready *signal.Command,
) bool {
	candidate := queue[candidateIdx]

	if ready.Kind.ClosesRow() && ready.Kind != candidate.Kind {
		if q.precedingEntryTargetsSameBank(queue, candidateIdx, candidate) {
			return false
		}

		if !q.prechargeAdmissible(queue, candidateIdx, candidate) {
			return false
		}
	}

	if ready.Kind.IsWrite() {
		if q.precedingReadTargetsSameAddress(queue, candidateIdx, candidate) {
			return false
		}
	}

	return true
}

// prechargeAdmissible implements the second half of the precharge
// arbitration rule, applied when the bank answers a queued command with a
// PRECHARGE precursor: that PRECHARGE is only admitted if no later pending
// entry targeting the
// same bank would still hit the currently open row, unless the bank has
// already served rowHitStarvationCap consecutive hits without closing.
func (q *CommandQueueImpl) prechargeAdmissible(
	queue Queue, candidateIdx int, candidate *signal.Command,
) bool {
	openRow, rowHitCount := q.Channel.RowState(candidate.Location)
	if rowHitCount >= rowHitStarvationCap {
		return true
	}

	return !q.laterEntryWouldHitRow(queue, candidateIdx, candidate, openRow)
}

// laterEntryWouldHitRow reports whether a later entry in queue targets the
// same bank as candidate and would hit the bank's currently open row.
func (q *CommandQueueImpl) laterEntryWouldHitRow(
	queue Queue, candidateIdx int, candidate *signal.Command, openRow int,
) bool {
	for i := candidateIdx + 1; i < len(queue); i++ {
		other := queue[i]
		if sameBank(other.Location, candidate.Location) &&
			other.Location.Row == openRow {
			return true
		}
	}

	return false
}

func (q *CommandQueueImpl) precedingEntryTargetsSameBank(
	queue Queue, candidateIdx int, candidate *signal.Command,
) bool {
	for i := 0; i < candidateIdx; i++ {
		other := queue[i]
		if sameBank(other.Location, candidate.Location) {
			return true
		}
	}

	return false
}

func (q *CommandQueueImpl) precedingReadTargetsSameAddress(
	queue Queue, candidateIdx int, candidate *signal.Command,
) bool {
	for i := 0; i < candidateIdx; i++ {
		other := queue[i]
		if other.Kind.IsRead() && other.Location == candidate.Location {
			return true
		}
	}

	return false
}

func sameBank(a, b addressmapping.Location) bool {
	return a.Rank == b.Rank && a.BankGroup == b.BankGroup && a.Bank == b.Bank
}
