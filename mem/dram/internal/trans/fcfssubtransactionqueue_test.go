package trans

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/mem/dram/internal/addressmapping"
	"github.com/sarchlab/akita/v4/mem/dram/internal/cmdq"
	"github.com/sarchlab/akita/v4/mem/dram/internal/signal"
)

func makeSubTrans(isWrite bool, loc addressmapping.Location) *signal.SubTransaction {
	transType := signal.TransactionTypeRead
	if isWrite {
		transType = signal.TransactionTypeWrite
	}

	return &signal.SubTransaction{
		Location:    loc,
		Transaction: &signal.Transaction{Type: transType},
	}
}

var _ = Describe("FCFSSubTransactionQueue", func() {
	var (
		cmdQueue *cmdq.CommandQueueImpl
		q        *FCFSSubTransactionQueue
	)

	BeforeEach(func() {
		cmdQueue = &cmdq.CommandQueueImpl{
			Queues:           make([]cmdq.Queue, 1),
			CapacityPerQueue: 16,
		}
		q = &FCFSSubTransactionQueue{
			Capacity:   32,
			CmdQueue:   cmdQueue,
			CmdCreator: ClosePageCommandCreator{},
		}
	})

	It("should buffer reads and writes separately", func() {
		q.Push(&signal.Transaction{
			Type:            signal.TransactionTypeRead,
			SubTransactions: []*signal.SubTransaction{makeSubTrans(false, addressmapping.Location{})},
		})
		q.Push(&signal.Transaction{
			Type:            signal.TransactionTypeWrite,
			SubTransactions: []*signal.SubTransaction{makeSubTrans(true, addressmapping.Location{})},
		})

		Expect(q.reads).To(HaveLen(1))
		Expect(q.writes).To(HaveLen(1))
		Expect(q.CanPush(30)).To(BeTrue())
		Expect(q.CanPush(31)).To(BeFalse())
	})

	It("should drain reads by default", func() {
		st := makeSubTrans(false, addressmapping.Location{})
		q.reads = append(q.reads, st)

		madeProgress := q.Tick()

		Expect(madeProgress).To(BeTrue())
		Expect(q.reads).To(BeEmpty())
		Expect(cmdQueue.Queues[0]).To(HaveLen(1))
	})

	It("should start a write drain once the write buffer reaches capacity", func() {
		for i := 0; i < q.Capacity; i++ {
			q.writes = append(q.writes, makeSubTrans(true, addressmapping.Location{Bank: i}))
		}

		drainWrites := q.selectSource()

		Expect(drainWrites).To(BeTrue())
		Expect(q.writeDraining).To(Equal(q.Capacity))
	})

	It("should start a write drain once backed up with the command queue idle", func() {
		for i := 0; i < writeDrainSizeThreshold+1; i++ {
			q.writes = append(q.writes, makeSubTrans(true, addressmapping.Location{Bank: i}))
		}

		drainWrites := q.selectSource()

		Expect(drainWrites).To(BeTrue())
	})

	It("should not start a write drain while the command queue still has pending work", func() {
		cmdQueue.Queues[0] = append(cmdQueue.Queues[0], &signal.Command{})

		for i := 0; i < writeDrainSizeThreshold+1; i++ {
			q.writes = append(q.writes, makeSubTrans(true, addressmapping.Location{Bank: i}))
		}

		drainWrites := q.selectSource()

		Expect(drainWrites).To(BeFalse())
	})

	It("should keep draining writes until the committed count runs out", func() {
		q.writes = append(q.writes,
			makeSubTrans(true, addressmapping.Location{Bank: 0}),
			makeSubTrans(true, addressmapping.Location{Bank: 1}),
		)
		q.writeDraining = 2

		Expect(q.Tick()).To(BeTrue())
		Expect(q.writeDraining).To(Equal(1))
		Expect(q.writes).To(HaveLen(1))

		Expect(q.Tick()).To(BeTrue())
		Expect(q.writeDraining).To(Equal(0))
		Expect(q.writes).To(BeEmpty())
	})

	It("should abort a write drain when a pending read targets the same address", func() {
		loc := addressmapping.Location{Bank: 3}
		q.writes = append(q.writes, makeSubTrans(true, loc))
		q.reads = append(q.reads, makeSubTrans(false, loc))
		q.writeDraining = 1

		madeProgress := q.Tick()

		Expect(madeProgress).To(BeFalse())
		Expect(q.writeDraining).To(Equal(0))
		Expect(q.writes).To(HaveLen(1))
	})

	It("should report nothing to do once both queues are empty", func() {
		madeProgress := q.Tick()

		Expect(madeProgress).To(BeFalse())
	})
})
