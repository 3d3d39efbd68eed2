package dram

import (
	"log"

	"github.com/sarchlab/akita/v4/datarecording"
	"github.com/sarchlab/akita/v4/mem/dram/internal/addressmapping"
	"github.com/sarchlab/akita/v4/mem/dram/internal/cmdq"
	"github.com/sarchlab/akita/v4/mem/dram/internal/org"
	"github.com/sarchlab/akita/v4/mem/dram/internal/refresh"
	"github.com/sarchlab/akita/v4/mem/dram/internal/signal"
	"github.com/sarchlab/akita/v4/mem/dram/internal/trans"
	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/akita/v4/tracing"
)

// Protocol defines the category of the memory controller.
type Protocol int

// A list of all supported DRAM protocols.
const (
	DDR3 Protocol = iota
	DDR4
	GDDR5
	GDDR5X
	GDDR6
	LPDDR
	LPDDR3
	LPDDR4
	HBM
	HBM2
	HMC
)

func (p Protocol) isGDDR() bool {
	return p == GDDR5 || p == GDDR5X || p == GDDR6
}

func (p Protocol) isHBM() bool {
	return p == HBM || p == HBM2
}

// Comp is a memory controller that turns read and write requests into
// JEDEC-timed DRAM commands and drains completed accesses back out its top
// port.
type Comp struct {
	*sim.TickingComponent
	sim.MiddlewareHolder

	topPort sim.Port

	storage             *mem.Storage
	addrConverter       mem.AddressConverter
	subTransSplitter    trans.SubTransSplitter
	addrMapper          addressmapping.Mapper
	subTransactionQueue trans.SubTransactionQueue
	cmdQueue            cmdq.RefreshQueue
	channel             org.Channel
	refreshScheduler    *refresh.Scheduler

	recorder   datarecording.DataRecorder
	accounting rankAccounting

	inflightTransactions []*signal.Transaction

	clk        uint64
	readDelay  int
	writeDelay int

	numBankGroup int
	numBank      int

	selfRefreshEnabled bool
	srefThreshold      int
	selfRefresh        *selfRefreshState
}

// Tick updates memory controller's internal state.
func (c *Comp) Tick() bool {
	return c.MiddlewareHolder.Tick()
}

type middleware struct {
	*Comp
}

// Tick updates memory controller's internal state cycle by cycle, following
// the controller's fixed per-cycle order: respond to completed
// transactions, tick the channel, issue a command, apply the self-refresh
// policy, drain a sub-transaction into the command queue, accept new
// transactions, then advance the clock.
func (m *middleware) Tick() (madeProgress bool) {
	madeProgress = m.respond() || madeProgress
	madeProgress = m.respond() || madeProgress
	madeProgress = m.channel.Tick() || madeProgress

	issued := m.issue()
	madeProgress = issued || madeProgress

	m.applySelfRefreshPolicy(issued)

	madeProgress = m.subTransactionQueue.Tick() || madeProgress
	madeProgress = m.parseTop() || madeProgress

	m.clk++

	return madeProgress
}

func (m *middleware) parseTop() (madeProgress bool) {
	msg := m.topPort.PeekIncoming()
	if msg == nil {
		return false
	}

	t := &signal.Transaction{AddedCycle: m.clk}
	switch req := msg.(type) {
	case *mem.ReadReq:
		t.Read = req
		t.Type = signal.TransactionTypeRead
	case *mem.WriteReq:
		t.Write = req
		t.Type = signal.TransactionTypeWrite
	default:
		log.Panicf("dram: unsupported message type %T", msg)
	}

	m.assignTransInternalAddress(t)
	m.subTransSplitter.Split(t)

	if !m.subTransactionQueue.CanPush(len(t.SubTransactions)) {
		return false
	}

	m.subTransactionQueue.Push(t)
	m.inflightTransactions = append(m.inflightTransactions, t)
	m.topPort.RetrieveIncoming()

	tracing.TraceReqReceive(msg, m.Comp)

	return true
}

func (m *middleware) assignTransInternalAddress(t *signal.Transaction) {
	if m.addrConverter != nil {
		t.InternalAddress = m.addrConverter.ConvertExternalToInternal(
			t.GlobalAddress())
		return
	}

	t.InternalAddress = t.GlobalAddress()
}

// issue follows the controller's fixed per-cycle order: the refresh
// scheduler gets first look, and a refresh already in flight takes priority
// over ordinary arbitration until it finishes.
func (m *middleware) issue() (madeProgress bool) {
	if m.refreshScheduler != nil {
		m.refreshScheduler.Tick()
	}

	var cmd *signal.Command

	if m.cmdQueue.RefreshWaiting() {
		cmd = m.cmdQueue.FinishRefresh()
	}

	if cmd == nil {
		cmd = m.cmdQueue.GetCommandToIssue()
	}

	if cmd == nil {
		m.accounting.accountCycle(0, false, m.selfRefresh.InSelfRefresh)
		return false
	}

	m.channel.StartCommand(cmd)
	m.channel.UpdateTiming(cmd)
	m.finalizeIssuedSubTransaction(cmd)
	m.accounting.accountCycle(cmd.Location.Rank, true, m.selfRefresh.InSelfRefresh)

	return true
}

// finalizeIssuedSubTransaction implements issue_command's completion
// bookkeeping: a sub-transaction only completes once the arbiter has
// returned its actual READ/WRITE(_PRECHARGE) command, not a precursor like
// ACTIVATE or PRECHARGE, and cmd carries no back-reference for commands the
// controller synthesizes itself (refreshes, self-refresh enter/exit).
func (m *middleware) finalizeIssuedSubTransaction(cmd *signal.Command) {
	st := cmd.SubTransaction
	if st == nil {
		return
	}

	switch {
	case cmd.Kind.IsRead():
		st.Completed = true
		st.CompleteCycle = m.clk + uint64(m.readDelay)
	case cmd.Kind.IsWrite():
		st.Completed = true
		st.CompleteCycle = m.clk + uint64(m.writeDelay)
		latency := m.clk - st.Transaction.AddedCycle + uint64(m.writeDelay)
		m.accounting.recordWriteLatency(cmd.Location.Rank, latency)
	}
}

// applySelfRefreshPolicy implements clock_tick step 6: a rank asleep with
// pending work wakes up, and a rank that has sat idle for at least
// srefThreshold cycles with nothing pending goes to sleep. It only runs on
// a cycle where ordinary arbitration issued nothing, since SREF_ENTER and
// SREF_EXIT themselves occupy the channel for a cycle.
func (m *middleware) applySelfRefreshPolicy(issued bool) {
	if !m.selfRefreshEnabled || issued {
		return
	}

	for rank := 0; rank < len(m.selfRefresh.asleep); rank++ {
		if m.selfRefresh.asleep[rank] {
			if m.cmdQueue.RankPending(rank) {
				m.trySelfRefreshExit(rank)
			}

			continue
		}

		if !m.cmdQueue.RankPending(rank) &&
			m.accounting.rankIdleCycles[rank] >= uint64(m.srefThreshold) {
			m.trySelfRefreshEnter(rank)
		}
	}
}

func (m *middleware) trySelfRefreshEnter(rank int) {
	cmd := &signal.Command{
		Kind:     signal.CmdKindSelfRefreshEnter,
		Location: addressmapping.Location{Rank: rank},
	}

	if !m.rankReadyFor(cmd) {
		return
	}

	m.channel.StartCommand(cmd)
	m.channel.UpdateTiming(cmd)
	m.selfRefresh.asleep[rank] = true
}

func (m *middleware) trySelfRefreshExit(rank int) {
	cmd := &signal.Command{
		Kind:     signal.CmdKindSelfRefreshExit,
		Location: addressmapping.Location{Rank: rank},
	}

	if !m.rankReadyFor(cmd) {
		return
	}

	m.channel.StartCommand(cmd)
	m.channel.UpdateTiming(cmd)
	m.selfRefresh.asleep[rank] = false
}

// rankReadyFor probes every bank in the rank the way FinishRefresh probes a
// rank-wide REFRESH: cmd is only ready if every bank returns it unmodified,
// meaning no bank still needs a precursor command first.
func (m *middleware) rankReadyFor(cmd *signal.Command) bool {
	for bg := 0; bg < m.numBankGroup; bg++ {
		for bk := 0; bk < m.numBank; bk++ {
			probe := &signal.Command{
				Kind: cmd.Kind,
				Location: addressmapping.Location{
					Rank: cmd.Location.Rank, BankGroup: bg, Bank: bk,
				},
			}

			ready := m.channel.GetReadyCommand(probe)
			if ready == nil || ready.Kind != cmd.Kind {
				return false
			}
		}
	}

	return true
}

// selfRefreshState tracks which ranks the self-refresh policy has put to
// sleep, and implements refresh.SelfRefreshChecker so the periodic refresh
// scheduler skips them.
type selfRefreshState struct {
	asleep []bool
}

func newSelfRefreshState(numRank int) *selfRefreshState {
	return &selfRefreshState{asleep: make([]bool, numRank)}
}

// InSelfRefresh reports whether rank is currently asleep. A nil receiver
// (a Comp whose middleware has not been built through Builder) reports
// every rank awake.
func (s *selfRefreshState) InSelfRefresh(rank int) bool {
	if s == nil {
		return false
	}

	return s.asleep[rank]
}

func (m *middleware) respond() (madeProgress bool) {
	for i, t := range m.inflightTransactions {
		if t.IsCompleted(m.clk) {
			if m.finalizeTransaction(t, i) {
				return true
			}
		}
	}

	return false
}

func (m *middleware) finalizeTransaction(
	t *signal.Transaction,
	i int,
) (done bool) {
	if t.Type == signal.TransactionTypeWrite {
		done = m.finalizeWriteTrans(t, i)
	} else {
		done = m.finalizeReadTrans(t, i)
	}

	return done
}

func (m *middleware) finalizeWriteTrans(
	t *signal.Transaction,
	i int,
) (done bool) {
	err := m.storage.Write(t.InternalAddress, t.Write.Data)
	if err != nil {
		log.Panic(err)
	}

	rsp := mem.WriteDoneRspBuilder{}.
		WithSrc(m.topPort.AsRemote()).
		WithDst(t.Write.Src).
		WithRspTo(t.Write.ID).
		Build()

	sendErr := m.topPort.Send(rsp)
	if sendErr == nil {
		m.removeInflightTransaction(i)
		tracing.TraceReqComplete(t.Write, m.Comp)

		return true
	}

	return false
}

func (m *middleware) finalizeReadTrans(
	t *signal.Transaction,
	i int,
) (done bool) {
	data, err := m.storage.Read(t.InternalAddress, t.Read.AccessByteSize)
	if err != nil {
		log.Panic(err)
	}

	rsp := mem.DataReadyRspBuilder{}.
		WithSrc(m.topPort.AsRemote()).
		WithDst(t.Read.Src).
		WithRspTo(t.Read.ID).
		WithData(data).
		Build()

	sendErr := m.topPort.Send(rsp)
	if sendErr == nil {
		m.removeInflightTransaction(i)
		tracing.TraceReqComplete(t.Read, m.Comp)

		return true
	}

	return false
}

func (m *middleware) removeInflightTransaction(i int) {
	m.inflightTransactions = append(
		m.inflightTransactions[:i],
		m.inflightTransactions[i+1:]...)
}
