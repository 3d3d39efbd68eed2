package dram

import (
	"fmt"

	"github.com/sarchlab/akita/v4/datarecording"
	"github.com/sarchlab/akita/v4/mem/dram/internal/addressmapping"
	"github.com/sarchlab/akita/v4/mem/dram/internal/cmdq"
	"github.com/sarchlab/akita/v4/mem/dram/internal/org"
	"github.com/sarchlab/akita/v4/mem/dram/internal/refresh"
	"github.com/sarchlab/akita/v4/mem/dram/internal/signal"
	"github.com/sarchlab/akita/v4/mem/dram/internal/trans"
	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can build new memory controllers.
type Builder struct {
	engine        sim.Engine
	freq          sim.Freq
	storage       *mem.Storage
	addrConverter mem.AddressConverter
	hooks         []sim.Hook
	recorder      datarecording.DataRecorder

	protocol             Protocol
	transactionQueueSize int
	commandQueueSize     int
	busWidth             int
	burstLength          int
	deviceWidth          int
	numChannel           int
	numRank              int
	numBankGroup         int
	numBank              int
	numRow               int
	numCol               int

	burstCycle int
	tAL        int
	tCL        int
	tCWL       int
	tRL        int
	tWL        int
	readDelay  int
	writeDelay int
	tRCD       int
	tRP        int
	tRAS       int
	tCCDL      int
	tCCDS      int
	tRTRS      int
	tRTP       int
	tWTRL      int
	tWTRS      int
	tWR        int
	tPPD       int
	tRC        int
	tRRDL      int
	tRRDS      int
	tRCDRD     int
	tRCDWR     int
	tREFI      int
	tREFIb     int
	tRFC       int
	tRFCb      int
	tCKESR     int
	tXS        int

	refreshPolicy refresh.Policy

	enableSelfRefresh bool
	srefThreshold     int
}

// MakeBuilder creates a builder with default configuration, modeled after a
// DDR3-1600 part.
func MakeBuilder() Builder {
	b := Builder{
		freq:                 1600 * sim.MHz,
		protocol:             DDR3,
		transactionQueueSize: 32,
		commandQueueSize:     8,
		busWidth:             64,
		burstLength:          8,
		deviceWidth:          16,
		numChannel:           1,
		numRank:              2,
		numBankGroup:         1,
		numBank:              8,
		numRow:               32768,
		numCol:               1024,
		burstCycle:           4,
		tAL:                  0,
		tCL:                  11,
		tCWL:                 8,
		tRCD:                 11,
		tRP:                  11,
		tRAS:                 28,
		tCCDL:                4,
		tCCDS:                4,
		tRTRS:                1,
		tRTP:                 6,
		tWTRL:                6,
		tWTRS:                6,
		tWR:                  12,
		tPPD:                 0,
		tRRDL:                5,
		tRRDS:                5,
		tRCDRD:               24,
		tRCDWR:               20,
		tREFI:                6240,
		tREFIb:               780,
		tRFC:                 208,
		tRFCb:                1950,
		tCKESR:               5,
		tXS:                  216,
		refreshPolicy:        refresh.RankLevelStaggered,
		enableSelfRefresh:    false,
		srefThreshold:        1000,
	}

	return b
}

// WithEngine sets the simulation engine the controller ticks against. When
// not called, Build defaults to a private serial engine, which is enough
// for standalone use and unit testing but not for wiring the controller
// into a larger simulation.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the builder.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithGlobalStorage asks the DRAM to use a global storage instead of a local
// storage. Use this when you want to provide a unified storage for your whole
// simulation. The address of the storage is the global physical address.
func (b Builder) WithGlobalStorage(s *mem.Storage) Builder {
	b.storage = s
	return b
}

// WithInterleavingAddrConversion sets the rule to convert the global physical
// address to the internal physical address.
//
// For example, in a GPU that has 8 memory controllers. The addresses are
// interleaved across all the memory controllers at the page granularity. The
// current DRAM is the 3rd in the array of 8 memory controller. Also, there are
// 4 GPUs in total and each GPU has 4GB memory. The CPU also has 4GB memory,
// occupying the physical address from 0-4GB. The current GPU is the 2nd GPU. So
// the address range is from 8GB - 12GB. In this case, the use should call this
// function as `WithInterleavingAddrConversion(4096, 8, 3, 8*mem.GB)`.
//
// If there is only one memory controller in your simulation, this function
// should not be called and the global physical address is equivalent to the
// DRAM controller's internal physical address.
func (b Builder) WithInterleavingAddrConversion(
	interleaveGranularity uint64,
	numTotalUnit, currentUnitIndex int,
	lowerBound uint64,
) Builder {
	b.addrConverter = mem.InterleavingConverter{
		InterleavingSize:    interleaveGranularity,
		TotalNumOfElements:  numTotalUnit,
		CurrentElementIndex: currentUnitIndex,
		Offset:              lowerBound,
	}

	return b
}

// WithProtocol sets the protocol of the memory controller.
func (b Builder) WithProtocol(protocol Protocol) Builder {
	b.protocol = protocol
	return b
}

// WithTransactionQueueSize sets the number of transactions can be buffered
// before converting them into commands. Note that accesses that touches
// multiple access units (BusWidth/8*BurstLength bytes) may need to be split
// into multiple sub-transactions.
func (b Builder) WithTransactionQueueSize(n int) Builder {
	b.transactionQueueSize = n
	return b
}

// WithCommandQueueSize sets the number of commands that each per-bank command
// queue can hold.
func (b Builder) WithCommandQueueSize(n int) Builder {
	b.commandQueueSize = n
	return b
}

// WithBusWidth sets the number of bits that can be transferred out of the
// banks at the same time.
func (b Builder) WithBusWidth(n int) Builder {
	b.busWidth = n
	return b
}

// WithBurstLength sets the number of beats (each beat moves BusWidth bits)
// that take place as one burst.
func (b Builder) WithBurstLength(n int) Builder {
	b.burstLength = n
	return b
}

// WithDeviceWidth sets the number of bits a single device can deliver at
// the same time.
func (b Builder) WithDeviceWidth(n int) Builder {
	b.deviceWidth = n
	return b
}

// WithNumChannel sets the number of channels that the memory controller
// controls.
func (b Builder) WithNumChannel(n int) Builder {
	b.numChannel = n
	return b
}

// WithNumRank sets the number of ranks in each channel.
func (b Builder) WithNumRank(n int) Builder {
	b.numRank = n
	return b
}

// WithNumBankGroup sets the number of bank groups in each rank.
func (b Builder) WithNumBankGroup(n int) Builder {
	b.numBankGroup = n
	return b
}

// WithNumBank sets the number of banks in each bank group.
func (b Builder) WithNumBank(n int) Builder {
	b.numBank = n
	return b
}

// WithNumRow sets the number of rows in each DRAM array.
func (b Builder) WithNumRow(n int) Builder {
	b.numRow = n
	return b
}

// WithNumCol sets the number of columns in each DRAM array.
func (b Builder) WithNumCol(n int) Builder {
	b.numCol = n
	return b
}

// WithAdditionalHooks adds the given hook to the memory controller and all
// of its banks.
func (b Builder) WithAdditionalHooks(h sim.Hook) Builder {
	b.hooks = append(b.hooks, h)
	return b
}

// WithTAL sets the additional latency to column access in cycles.
func (b Builder) WithTAL(cycle int) Builder {
	b.tAL = cycle
	return b
}

// WithTCL sets the column access strobe latency in cycles.
func (b Builder) WithTCL(cycle int) Builder {
	b.tCL = cycle
	return b
}

// WithTCWL sets the column write strobe latency in cycles.
func (b Builder) WithTCWL(cycle int) Builder {
	b.tCWL = cycle
	return b
}

// WithTRCD sets the row-to-column delay in cycles.
func (b Builder) WithTRCD(cycle int) Builder {
	b.tRCD = cycle
	return b
}

// WithTRP sets the row precharge latency in cycles.
func (b Builder) WithTRP(cycle int) Builder {
	b.tRP = cycle
	return b
}

// WithTRAS sets the row access strobe latency in cycles.
func (b Builder) WithTRAS(cycle int) Builder {
	b.tRAS = cycle
	return b
}

// WithTCCDL sets the long column-to-column delay in cycles. The long delay
// describes accesses to banks in the same bank group.
func (b Builder) WithTCCDL(cycle int) Builder {
	b.tCCDL = cycle
	return b
}

// WithTCCDS sets the short column-to-column delay in cycles. The short
// delay describes accesses to banks from different bank groups.
func (b Builder) WithTCCDS(cycle int) Builder {
	b.tCCDS = cycle
	return b
}

// WithTRTRS sets the rank-to-rank switching latency.
func (b Builder) WithTRTRS(cycle int) Builder {
	b.tRTRS = cycle
	return b
}

// WithTRTP sets the read-to-precharge latency in cycles.
func (b Builder) WithTRTP(cycle int) Builder {
	b.tRTP = cycle
	return b
}

// WithTWTRL sets the long write-to-read latency in cycles. The long latency
// describes write and read to banks from the same bank group.
func (b Builder) WithTWTRL(cycle int) Builder {
	b.tWTRL = cycle
	return b
}

// WithTWTRS sets the short write-to-read latency in cycles. The short
// latency describes write and read to banks from different bank groups.
func (b Builder) WithTWTRS(cycle int) Builder {
	b.tWTRS = cycle
	return b
}

// WithTWR sets the write recovery time in cycles.
func (b Builder) WithTWR(cycle int) Builder {
	b.tWR = cycle
	return b
}

// WithTPPD sets the precharge-to-precharge delay in cycles.
func (b Builder) WithTPPD(cycle int) Builder {
	b.tPPD = cycle
	return b
}

// WithTRRDL sets the long activate-to-activate latency in cycles. The long
// latency describes activating different banks from the same bank group.
func (b Builder) WithTRRDL(cycle int) Builder {
	b.tRRDL = cycle
	return b
}

// WithTRRDS sets the short activate-to-activate latency in cycles. The
// short latency describes activating banks from different bank groups.
func (b Builder) WithTRRDS(cycle int) Builder {
	b.tRRDS = cycle
	return b
}

// WithTRCDRD sets the activate-to-read latency in cycles. It only applies
// to GDDR and HBM protocols.
func (b Builder) WithTRCDRD(cycle int) Builder {
	b.tRCDRD = cycle
	return b
}

// WithTRCDWR sets the activate-to-write latency in cycles. It only applies
// to GDDR and HBM protocols.
func (b Builder) WithTRCDWR(cycle int) Builder {
	b.tRCDWR = cycle
	return b
}

// WithTREFI sets the refresh interval in cycles.
func (b Builder) WithTREFI(cycle int) Builder {
	b.tREFI = cycle
	return b
}

// WithTRFC sets the refresh cycle time in cycles.
func (b Builder) WithTRFC(cycle int) Builder {
	b.tRFC = cycle
	return b
}

// WithTRFCb sets the refresh-to-activate-bank latency in cycles.
func (b Builder) WithTRFCb(cycle int) Builder {
	b.tRFCb = cycle
	return b
}

// WithTREFIb sets the per-bank refresh interval in cycles, used only under
// BankLevelStaggered.
func (b Builder) WithTREFIb(cycle int) Builder {
	b.tREFIb = cycle
	return b
}

// WithRefreshPolicy selects how the refresh scheduler fans periodic refresh
// out across ranks and banks.
func (b Builder) WithRefreshPolicy(policy refresh.Policy) Builder {
	b.refreshPolicy = policy
	return b
}

// WithStatsRecorder sets the backend that PrintStats flushes per-rank power
// accounting into. Without one, PrintStats is a no-op.
func (b Builder) WithStatsRecorder(r datarecording.DataRecorder) Builder {
	b.recorder = r
	return b
}

// WithEnableSelfRefresh turns on the automatic self-refresh policy: a rank
// that has been idle for at least the configured threshold enters
// self-refresh, and exits again as soon as a command targets it.
func (b Builder) WithEnableSelfRefresh(enable bool) Builder {
	b.enableSelfRefresh = enable
	return b
}

// WithSrefThreshold sets the number of consecutive idle cycles a rank must
// accumulate before the self-refresh policy puts it to sleep.
func (b Builder) WithSrefThreshold(cycle int) Builder {
	b.srefThreshold = cycle
	return b
}

// Build builds a new MemController.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil {
		b.engine = sim.NewSerialEngine()
	}

	m := &Comp{
		addrConverter: b.addrConverter,
		storage:       b.storage,
		recorder:      b.recorder,
		accounting:    newRankAccounting(b.numRank),
	}
	m.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, m)

	b.attachHooks(m)

	timing := b.generateTiming()
	b.buildChannel(name, m, timing)

	m.readDelay = b.readDelay
	m.writeDelay = b.writeDelay
	m.numBankGroup = b.numBankGroup
	m.numBank = b.numBank
	m.selfRefreshEnabled = b.enableSelfRefresh
	m.srefThreshold = b.srefThreshold
	m.selfRefresh = newSelfRefreshState(b.numRank)

	m.addrMapper = addressmapping.MakeBuilder().
		WithBurstLength(b.burstLength).
		WithBusWidth(b.busWidth).
		WithChannels(b.numChannel).
		WithRanks(b.numRank).
		WithBankGroups(b.numBankGroup).
		WithBanksPerGroup(b.numBank).
		WithColumns(b.numCol).
		WithRows(b.numRow).
		Build()

	numAccessUnitBit, _ := log2(uint64(b.busWidth / 8 * b.burstLength))
	splitter := trans.NewSubTransSplitter(int(numAccessUnitBit))
	splitter.Mapper = m.addrMapper
	m.subTransSplitter = splitter

	m.cmdQueue = &cmdq.CommandQueueImpl{
		Queues:           make([]cmdq.Queue, b.numRank*b.numBankGroup*b.numBank),
		CapacityPerQueue: b.commandQueueSize,
		Channel:          m.channel,
		Structure:        cmdq.QueueStructurePerBank,
		BankGroups:       b.numBankGroup,
		BanksPerGroup:    b.numBank,
	}
	m.subTransactionQueue = &trans.FCFSSubTransactionQueue{
		Capacity:   b.transactionQueueSize,
		CmdQueue:   m.cmdQueue,
		CmdCreator: &trans.ClosePageCommandCreator{},
	}

	m.refreshScheduler = &refresh.Scheduler{
		Policy:       b.refreshPolicy,
		Queue:        m.cmdQueue,
		NumRank:      b.numRank,
		NumBankGroup: b.numBankGroup,
		NumBank:      b.numBank,
		Interval:     b.refreshInterval(),
		SelfRefresh:  m.selfRefresh,
	}

	if b.storage != nil {
		m.storage = b.storage
	} else {
		devicePerRank := b.busWidth / b.deviceWidth
		bankSize := b.numCol * b.numRow * b.deviceWidth / 8
		rankSize := bankSize * b.numBank * devicePerRank
		totalSize := rankSize * b.numRank * b.numChannel
		m.storage = mem.NewStorage(uint64(totalSize))
	}

	m.topPort = sim.NewPort(m, 1024, 1024, name+".TopPort")
	m.AddPort("Top", m.topPort)

	middleware := &middleware{Comp: m}
	m.AddMiddleware(middleware)

	return m
}

func (b Builder) attachHooks(hookable sim.Hookable) {
	for _, hook := range b.hooks {
		hookable.AcceptHook(hook)
	}
}

func (b Builder) buildChannel(name string, m *Comp, timing org.Timing) {
	channel := &org.ChannelImpl{
		Timing: timing,
	}

	channel.Banks = org.MakeBanks(b.numRank, b.numBankGroup, b.numBank)
	for i := 0; i < b.numRank; i++ {
		for j := 0; j < b.numBankGroup; j++ {
			for k := 0; k < b.numBank; k++ {
				bankName := fmt.Sprintf("%s.Bank[%d][%d][%d]",
					name, i, j, k)
				channel.Banks[i][j][k] = org.NewBankImpl(bankName)

				b.attachHooks(channel.Banks[i][j][k])
			}
		}
	}

	m.channel = channel
}

//nolint:gocyclo,funlen,govet
func (b *Builder) generateTiming() org.Timing {
	t := org.Timing{
		SameBank:              org.MakeTimeTable(),
		OtherBanksInBankGroup: org.MakeTimeTable(),
		SameRank:              org.MakeTimeTable(),
		OtherRanks:            org.MakeTimeTable(),
		RankWide:              org.MakeTimeTable(),
	}

	b.calculateBurstCycle()

	b.tRL = b.tAL + b.tCL
	b.tWL = b.tAL + b.tCWL
	b.readDelay = b.tRL + b.burstCycle
	b.writeDelay = b.tWL + b.burstCycle
	b.tRC = b.tRAS + b.tRP

	readToReadL := max(b.burstCycle, b.tCCDL)
	readToReadS := max(b.burstCycle, b.tCCDS)
	readToReadO := b.burstCycle + b.tRTRS
	readToWrite := b.tRL + b.burstCycle - b.tWL + b.tRTRS
	readToWriteO := b.readDelay + b.burstCycle +
		b.tRTRS - b.writeDelay
	readToPrecharge := b.tAL + b.tRTP
	readpToAct := b.tAL + b.burstCycle + b.tRTP + b.tRP

	writeToReadL := b.writeDelay + b.tWTRL
	writeToReadS := b.writeDelay + b.tWTRS
	writeToReadO := b.writeDelay + b.burstCycle +
		b.tRTRS - b.readDelay
	writeToWriteL := max(b.burstCycle, b.tCCDL)
	writeToWriteS := max(b.burstCycle, b.tCCDS)
	writeToWriteO := b.burstCycle
	writeToPrecharge := b.tWL + b.burstCycle + b.tWR

	prechargeToActivate := b.tRP
	prechargeToPrecharge := b.tPPD
	readToActivate := readToPrecharge + prechargeToActivate
	writeToActivate := writeToPrecharge + prechargeToActivate

	activateToActivate := b.tRC
	activateToActivateL := b.tRRDL
	activateToActivateS := b.tRRDS
	activateToPrecharge := b.tRAS
	activateToRead := b.tRCD - b.tAL
	activateToWrite := b.tRCD - b.tAL

	if b.protocol.isGDDR() || b.protocol.isHBM() {
		activateToRead = b.tRCDRD
		activateToWrite = b.tRCDWR
	}

	activateToRefresh := b.tRC // need to precharge before ref, so it's tRC

	refreshToRefresh := b.tREFI
	refreshToActivate := b.tRFC
	refreshToActivateBank := b.tRFCb

	selfRefreshEntryToExit := b.tCKESR
	selfRefreshExit := b.tXS

	if b.numBankGroup == 1 {
		// Bank groups can be disabled. In that case the value of tXXX_S
		// should be used instead of tXXX_L (because now the device is
		// running at a lower frequency); we overwrite the following
		// values so that we don't have to change the assignment below.
		readToReadL = max(b.burstCycle, b.tCCDS)
		writeToReadL = b.writeDelay + b.tWTRS
		writeToWriteL = max(b.burstCycle, b.tCCDS)
		activateToActivateL = b.tRRDS
	}

	t.SameBank[signal.CmdKindRead] = []org.TimeTableEntry{
		{Kind: signal.CmdKindRead, Delta: readToReadL},
		{Kind: signal.CmdKindWrite, Delta: readToWrite},
		{Kind: signal.CmdKindReadPrecharge, Delta: readToReadL},
		{Kind: signal.CmdKindWritePrecharge, Delta: readToWrite},
		{Kind: signal.CmdKindPrecharge, Delta: readToPrecharge},
	}

	t.OtherBanksInBankGroup[signal.CmdKindRead] = []org.TimeTableEntry{
		{Kind: signal.CmdKindRead, Delta: readToReadL},
		{Kind: signal.CmdKindWrite, Delta: readToWrite},
		{Kind: signal.CmdKindReadPrecharge, Delta: readToReadL},
		{Kind: signal.CmdKindWritePrecharge, Delta: readToWrite},
	}
	t.SameRank[signal.CmdKindRead] = []org.TimeTableEntry{
		{Kind: signal.CmdKindRead, Delta: readToReadS},
		{Kind: signal.CmdKindWrite, Delta: readToWrite},
		{Kind: signal.CmdKindReadPrecharge, Delta: readToReadS},
	}
	t.OtherRanks[signal.CmdKindRead] = []org.TimeTableEntry{
		{Kind: signal.CmdKindRead, Delta: readToReadO},
		{Kind: signal.CmdKindWrite, Delta: readToWriteO},
	}

	t.SameBank[signal.CmdKindWrite] = []org.TimeTableEntry{
		{Kind: signal.CmdKindRead, Delta: writeToReadL},
		{Kind: signal.CmdKindWrite, Delta: writeToWriteL},
		{Kind: signal.CmdKindReadPrecharge, Delta: writeToReadL},
		{Kind: signal.CmdKindPrecharge, Delta: writeToPrecharge},
	}
	t.OtherBanksInBankGroup[signal.CmdKindWrite] = []org.TimeTableEntry{
		{Kind: signal.CmdKindRead, Delta: writeToReadL},
		{Kind: signal.CmdKindWrite, Delta: writeToWriteL},
		{Kind: signal.CmdKindReadPrecharge, Delta: writeToReadL},
	}
	t.SameRank[signal.CmdKindWrite] = []org.TimeTableEntry{
		{Kind: signal.CmdKindRead, Delta: writeToReadS},
		{Kind: signal.CmdKindWrite, Delta: writeToWriteS},
		{Kind: signal.CmdKindReadPrecharge, Delta: writeToReadS},
	}
	t.OtherRanks[signal.CmdKindWrite] = []org.TimeTableEntry{
		{Kind: signal.CmdKindRead, Delta: writeToReadO},
		{Kind: signal.CmdKindWrite, Delta: writeToWriteO},
		{Kind: signal.CmdKindReadPrecharge, Delta: writeToReadO},
		{Kind: signal.CmdKindWritePrecharge, Delta: writeToWriteO},
	}

	// command READ_PRECHARGE
	t.SameBank[signal.CmdKindReadPrecharge] = []org.TimeTableEntry{
		{Kind: signal.CmdKindActivate, Delta: readpToAct},
		{Kind: signal.CmdKindRefresh, Delta: readToActivate},
		{Kind: signal.CmdKindRefreshBank, Delta: readToActivate},
		{Kind: signal.CmdKindSelfRefreshEnter, Delta: readToActivate},
	}
	t.OtherBanksInBankGroup[signal.CmdKindReadPrecharge] = []org.TimeTableEntry{
		{Kind: signal.CmdKindRead, Delta: readToReadL},
		{Kind: signal.CmdKindWrite, Delta: readToWrite},
		{Kind: signal.CmdKindReadPrecharge, Delta: readToReadL},
		{Kind: signal.CmdKindWritePrecharge, Delta: readToWrite},
	}
	t.SameRank[signal.CmdKindReadPrecharge] = []org.TimeTableEntry{
		{Kind: signal.CmdKindRead, Delta: readToReadS},
		{Kind: signal.CmdKindWrite, Delta: readToWrite},
		{Kind: signal.CmdKindReadPrecharge, Delta: readToReadS},
	}
	t.OtherRanks[signal.CmdKindReadPrecharge] = []org.TimeTableEntry{
		{Kind: signal.CmdKindRead, Delta: readToReadO},
		{Kind: signal.CmdKindWrite, Delta: readToWriteO},
		{Kind: signal.CmdKindReadPrecharge, Delta: readToReadO},
		{Kind: signal.CmdKindWritePrecharge, Delta: readToWriteO},
	}

	// command WRITE_PRECHARGE
	t.SameBank[signal.CmdKindWritePrecharge] = []org.TimeTableEntry{
		{Kind: signal.CmdKindActivate, Delta: writeToActivate},
		{Kind: signal.CmdKindRefresh, Delta: writeToActivate},
		{Kind: signal.CmdKindRefreshBank, Delta: writeToActivate},
		{Kind: signal.CmdKindSelfRefreshEnter, Delta: writeToActivate},
	}
	t.OtherBanksInBankGroup[signal.CmdKindWritePrecharge] = []org.TimeTableEntry{
		{Kind: signal.CmdKindRead, Delta: writeToReadL},
		{Kind: signal.CmdKindWrite, Delta: writeToWriteL},
		{Kind: signal.CmdKindReadPrecharge, Delta: writeToReadL},
	}
	t.SameRank[signal.CmdKindWritePrecharge] = []org.TimeTableEntry{
		{Kind: signal.CmdKindRead, Delta: writeToReadS},
		{Kind: signal.CmdKindWrite, Delta: writeToWriteS},
		{Kind: signal.CmdKindReadPrecharge, Delta: writeToReadS},
	}
	t.OtherRanks[signal.CmdKindWritePrecharge] = []org.TimeTableEntry{
		{Kind: signal.CmdKindRead, Delta: writeToReadO},
		{Kind: signal.CmdKindWrite, Delta: writeToWriteO},
		{Kind: signal.CmdKindReadPrecharge, Delta: writeToReadO},
	}

	// command ACTIVATE
	t.SameBank[signal.CmdKindActivate] = []org.TimeTableEntry{
		{Kind: signal.CmdKindActivate, Delta: activateToActivate},
		{Kind: signal.CmdKindRead, Delta: activateToRead},
		{Kind: signal.CmdKindWrite, Delta: activateToWrite},
		{Kind: signal.CmdKindReadPrecharge, Delta: activateToRead},
		{Kind: signal.CmdKindWritePrecharge, Delta: activateToWrite},
		{Kind: signal.CmdKindPrecharge, Delta: activateToPrecharge},
	}
	t.OtherBanksInBankGroup[signal.CmdKindActivate] = []org.TimeTableEntry{
		{Kind: signal.CmdKindActivate, Delta: activateToActivateL},
		{Kind: signal.CmdKindRefreshBank, Delta: activateToRefresh},
	}
	t.SameRank[signal.CmdKindActivate] = []org.TimeTableEntry{
		{Kind: signal.CmdKindActivate, Delta: activateToActivateS},
		{Kind: signal.CmdKindRefreshBank, Delta: activateToRefresh},
	}

	// command PRECHARGE
	t.SameBank[signal.CmdKindPrecharge] = []org.TimeTableEntry{
		{Kind: signal.CmdKindActivate, Delta: prechargeToActivate},
		{Kind: signal.CmdKindRefresh, Delta: prechargeToActivate},
		{Kind: signal.CmdKindRefreshBank, Delta: prechargeToActivate},
		{Kind: signal.CmdKindSelfRefreshEnter, Delta: prechargeToActivate},
	}

	// devices that need tPPD
	if b.protocol.isGDDR() || b.protocol == LPDDR4 {
		t.OtherBanksInBankGroup[signal.CmdKindPrecharge] = []org.TimeTableEntry{
			{Kind: signal.CmdKindPrecharge, Delta: prechargeToPrecharge},
		}
		t.SameRank[signal.CmdKindPrecharge] = []org.TimeTableEntry{
			{Kind: signal.CmdKindPrecharge, Delta: prechargeToPrecharge},
		}
	}

	// command REFRESH_BANK (per-bank refresh, still constrains its rank)
	t.SameBank[signal.CmdKindRefreshBank] = []org.TimeTableEntry{
		{Kind: signal.CmdKindActivate, Delta: refreshToActivateBank},
		{Kind: signal.CmdKindRefresh, Delta: refreshToActivateBank},
		{Kind: signal.CmdKindRefreshBank, Delta: refreshToActivateBank},
		{Kind: signal.CmdKindSelfRefreshEnter, Delta: refreshToActivateBank},
	}
	t.OtherBanksInBankGroup[signal.CmdKindRefreshBank] = []org.TimeTableEntry{
		{Kind: signal.CmdKindActivate, Delta: refreshToActivate},
		{Kind: signal.CmdKindRefreshBank, Delta: refreshToRefresh},
	}
	t.SameRank[signal.CmdKindRefreshBank] = []org.TimeTableEntry{
		{Kind: signal.CmdKindActivate, Delta: refreshToActivate},
		{Kind: signal.CmdKindRefreshBank, Delta: refreshToRefresh},
	}

	// REFRESH, SREF_ENTER and SREF_EXIT apply to the entire rank, so their
	// propagation lives in RankWide rather than in the four bank-scoped
	// tables above.
	t.RankWide[signal.CmdKindRefresh] = []org.TimeTableEntry{
		{Kind: signal.CmdKindActivate, Delta: refreshToActivate},
		{Kind: signal.CmdKindRefresh, Delta: refreshToActivate},
		{Kind: signal.CmdKindSelfRefreshEnter, Delta: refreshToActivate},
	}

	// TODO: add power down commands
	t.RankWide[signal.CmdKindSelfRefreshEnter] = []org.TimeTableEntry{
		{Kind: signal.CmdKindSelfRefreshExit, Delta: selfRefreshEntryToExit},
	}

	t.RankWide[signal.CmdKindSelfRefreshExit] = []org.TimeTableEntry{
		{Kind: signal.CmdKindActivate, Delta: selfRefreshExit},
		{Kind: signal.CmdKindRefresh, Delta: selfRefreshExit},
		{Kind: signal.CmdKindRefreshBank, Delta: selfRefreshExit},
	}

	return t
}

func (b *Builder) calculateBurstCycle() {
	b.burstLengthMustNotBeZero()

	switch b.protocol {
	case GDDR5:
		b.burstCycle = b.burstLength / 4
	case GDDR5X:
		b.burstCycle = b.burstLength / 8
	case GDDR6:
		b.burstCycle = b.burstLength / 16
	case DDR3, DDR4, LPDDR, LPDDR3, LPDDR4, HBM, HBM2, HMC:
		b.burstCycle = b.burstLength / 2
	default:
		panic("dram: unknown protocol")
	}
}

func (b *Builder) burstLengthMustNotBeZero() {
	if b.burstLength == 0 {
		panic("dram: burst length cannot be 0")
	}
}

// refreshInterval computes the cycle count between successive
// insert_refresh calls for the configured policy: tREFI/ranks for
// rank-staggered, tREFI for simultaneous, tREFIb for bank-staggered.
func (b Builder) refreshInterval() int {
	switch b.refreshPolicy {
	case refresh.RankLevelSimultaneous:
		return b.tREFI
	case refresh.BankLevelStaggered:
		return b.tREFIb
	default:
		return b.tREFI / b.numRank
	}
}

// log2 returns the log2 of a number. It also returns false if the number is
// not a power of two.
func log2(n uint64) (uint64, bool) {
	oneCount := 0
	onePos := uint64(0)

	for i := uint64(0); i < 64; i++ {
		if n&(1<<i) > 0 {
			onePos = i
			oneCount++
		}
	}

	return onePos, oneCount == 1
}

func max(a, b int) int {
	if a > b {
		return a
	}

	return b
}
