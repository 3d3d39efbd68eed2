package trans

import (
	"github.com/sarchlab/akita/v4/mem/dram/internal/addressmapping"
	"github.com/sarchlab/akita/v4/mem/dram/internal/cmdq"
	"github.com/sarchlab/akita/v4/mem/dram/internal/signal"
)

// writeDrainSizeThreshold is the write-buffer occupancy above which the
// scheduler prefers draining writes once the command queue has gone idle,
// even though the buffer has not yet filled to Capacity.
const writeDrainSizeThreshold = 8

// FCFSSubTransactionQueue buffers pending reads and writes separately and
// drains one of the two every tick, in the order each was pushed. It never
// reorders within a queue; a sub-transaction that cannot yet be accepted
// blocks the ones behind it in the same queue.
//
// A sub-transaction is marked complete only once its command has actually
// been issued by the command queue's arbiter, not merely accepted onto it;
// FCFSSubTransactionQueue's job ends at acceptance, and the memory
// controller stamps Completed/CompleteCycle from the issue path.
type FCFSSubTransactionQueue struct {
	Capacity   int
	CmdQueue   cmdq.CommandQueue
	CmdCreator CommandCreator

	reads  []*signal.SubTransaction
	writes []*signal.SubTransaction

	// writeDraining counts down the writes remaining in the drain the
	// scheduler committed to; it is set to len(writes) when the write
	// buffer trips a drain condition and reset to 0 if a pending read to
	// the same address forces the drain to abort.
	writeDraining int
}

// CanPush reports whether n more sub-transactions can be buffered without
// exceeding Capacity, counting reads and writes together.
func (q *FCFSSubTransactionQueue) CanPush(n int) bool {
	return len(q.reads)+len(q.writes)+n <= q.Capacity
}

// Push enqueues every sub-transaction belonging to t into the read or write
// buffer according to the transaction's type.
func (q *FCFSSubTransactionQueue) Push(t *signal.Transaction) {
	if t.IsWrite() {
		q.writes = append(q.writes, t.SubTransactions...)
		return
	}

	q.reads = append(q.reads, t.SubTransactions...)
}

// Tick drains one sub-transaction from the source queue schedule_transaction
// selects this cycle.
func (q *FCFSSubTransactionQueue) Tick() bool {
	if q.selectSource() {
		return q.drain(&q.writes, true)
	}

	return q.drain(&q.reads, false)
}

// selectSource implements the read/write source-queue policy: continue an
// in-progress write drain, start one if the write buffer is full or backed
// up with the command queue idle, start one if no read is buffered and the
// command queue is idle (so buffered writes are never left waiting forever),
// and otherwise drain reads.
func (q *FCFSSubTransactionQueue) selectSource() (drainWrites bool) {
	if q.writeDraining > 0 {
		return true
	}

	full := len(q.writes) >= q.Capacity
	backedUp := len(q.writes) > writeDrainSizeThreshold && q.CmdQueue.Empty()
	idle := len(q.reads) == 0 && len(q.writes) > 0 && q.CmdQueue.Empty()

	if full || backedUp || idle {
		q.writeDraining = len(q.writes)
		return true
	}

	return false
}

// drain offers the head of queue to the command queue. A write drain aborts
// (and schedule_transaction reverts to reading next tick) if a pending read
// targets the same location as the head write, honoring the R-after-W
// dependency the scheduler must never violate.
func (q *FCFSSubTransactionQueue) drain(
	queue *[]*signal.SubTransaction, isWrite bool,
) bool {
	if len(*queue) == 0 {
		q.writeDraining = 0
		return false
	}

	head := (*queue)[0]

	if isWrite && q.readPending(head.Location) {
		q.writeDraining = 0
		return false
	}

	cmd := q.CmdCreator.Create(head)

	if !q.CmdQueue.CanAccept(cmd) {
		return false
	}

	q.CmdQueue.Accept(cmd)
	*queue = (*queue)[1:]

	if isWrite {
		q.writeDraining--
	}

	return true
}

// readPending reports whether a pending read targets loc, blocking a write
// drain from racing ahead of an earlier read to the same address.
func (q *FCFSSubTransactionQueue) readPending(loc addressmapping.Location) bool {
	for _, st := range q.reads {
		if st.Location == loc {
			return true
		}
	}

	return false
}
