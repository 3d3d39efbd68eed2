package cmdq

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/mem/dram/internal/addressmapping"
	"github.com/sarchlab/akita/v4/mem/dram/internal/signal"
	"go.uber.org/mock/gomock"
)

var _ = Describe("CommandQueueImpl", func() {
	var (
		mockCtrl *gomock.Controller
		channel  *MockChannel
		q        CommandQueueImpl
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		channel = NewMockChannel(mockCtrl)
		q = CommandQueueImpl{
			Queues:           make([]Queue, 8),
			CapacityPerQueue: 8,
			nextQueueIndex:   0,
			Channel:          channel,
		}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should get the next command to issue", func() {
		cmd1 := &signal.Command{
			ID:   "1",
			Kind: signal.CmdKindRead,
			Location: addressmapping.Location{
				Rank: 0,
				Bank: 0,
			},
		}
		q.Queues[0] = append(q.Queues[0], cmd1)

		cmd2 := &signal.Command{
			ID:   "2",
			Kind: signal.CmdKindRead,
			Location: addressmapping.Location{
				Rank: 0,
				Bank: 0,
			},
		}
		q.Queues[0] = append(q.Queues[0], cmd2)

		cmd3 := &signal.Command{
			ID:   "3",
			Kind: signal.CmdKindRead,
			Location: addressmapping.Location{
				Rank: 0,
				Bank: 1,
			},
		}
		q.Queues[1] = append(q.Queues[1], cmd3)

		channel.EXPECT().
			GetReadyCommand(cmd1).
			Return(nil)
		channel.EXPECT().
			GetReadyCommand(cmd2).
			Return(cmd2)

		readyCmd := q.GetCommandToIssue()

		Expect(readyCmd).To(BeIdenticalTo(cmd2))
		Expect(q.Queues[0]).NotTo(ContainElement(cmd2))
	})

	It("should accept new commands", func() {
		cmd := &signal.Command{}

		Expect(q.CanAccept(cmd)).To(BeTrue())

		q.Accept(cmd)

		Expect(q.Queues[0]).To(ContainElement(cmd))
	})

	Context("precharge arbitration", func() {
		// candidate targets a row other than the one currently open, so the
		// bank FSM's required command is PRECHARGE, not the candidate's own
		// kind - the scenario admissible's ClosesRow branch guards.
		bankLoc := addressmapping.Location{Rank: 0, Bank: 0, Row: 9}
		precharge := &signal.Command{ID: "c", Kind: signal.CmdKindPrecharge, Location: bankLoc}

		It("should refuse a precharge when a later entry would still hit the open row", func() {
			candidate := &signal.Command{ID: "c", Kind: signal.CmdKindRead, Location: bankLoc}
			laterHit := &signal.Command{
				ID: "r", Kind: signal.CmdKindRead,
				Location: addressmapping.Location{Rank: 0, Bank: 0, Row: 7},
			}
			q.Queues[0] = append(q.Queues[0], candidate, laterHit)

			channel.EXPECT().GetReadyCommand(candidate).Return(precharge)
			channel.EXPECT().RowState(bankLoc).Return(7, 1)
			channel.EXPECT().GetReadyCommand(laterHit).Return(nil)

			readyCmd := q.GetCommandToIssue()

			Expect(readyCmd).To(BeNil())
		})

		It("should allow a precharge when no later entry would hit the open row", func() {
			candidate := &signal.Command{ID: "c", Kind: signal.CmdKindRead, Location: bankLoc}
			laterMiss := &signal.Command{
				ID: "r", Kind: signal.CmdKindRead,
				Location: addressmapping.Location{Rank: 0, Bank: 0, Row: 3},
			}
			q.Queues[0] = append(q.Queues[0], candidate, laterMiss)

			channel.EXPECT().GetReadyCommand(candidate).Return(precharge)
			channel.EXPECT().RowState(bankLoc).Return(7, 1)

			readyCmd := q.GetCommandToIssue()

			Expect(readyCmd).To(BeIdenticalTo(precharge))
		})

		It("should force the precharge through once the row-hit starvation cap is reached", func() {
			candidate := &signal.Command{ID: "c", Kind: signal.CmdKindRead, Location: bankLoc}
			laterHit := &signal.Command{
				ID: "r", Kind: signal.CmdKindRead,
				Location: addressmapping.Location{Rank: 0, Bank: 0, Row: 7},
			}
			q.Queues[0] = append(q.Queues[0], candidate, laterHit)

			channel.EXPECT().GetReadyCommand(candidate).Return(precharge)
			channel.EXPECT().RowState(bankLoc).Return(7, rowHitStarvationCap)

			readyCmd := q.GetCommandToIssue()

			Expect(readyCmd).To(BeIdenticalTo(precharge))
		})
	})
})
