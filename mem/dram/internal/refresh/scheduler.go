// Package refresh injects periodic REFRESH and REFRESH_BANK commands into a
// command queue at a cadence fixed by the configured policy.
package refresh

import (
	"github.com/sarchlab/akita/v4/mem/dram/internal/addressmapping"
	"github.com/sarchlab/akita/v4/mem/dram/internal/cmdq"
	"github.com/sarchlab/akita/v4/mem/dram/internal/signal"
)

// Policy selects the granularity and fan-out of periodic refresh.
type Policy int

// The three refresh policies a Scheduler can run.
const (
	// RankLevelStaggered refreshes one rank at a time, cycling through all
	// ranks so each is refreshed once every tREFI.
	RankLevelStaggered Policy = iota

	// RankLevelSimultaneous inserts, every tREFI, one REFRESH for the first
	// rank not in self-refresh; the other ranks are not refreshed on that
	// tick.
	RankLevelSimultaneous

	// BankLevelStaggered refreshes one bank at a time, walking bankgroup,
	// then bank, then rank.
	BankLevelStaggered
)

// SelfRefreshChecker reports whether a rank is currently in self-refresh,
// letting the scheduler skip a rank the controller has powered down. A nil
// checker is treated as "no rank is ever in self-refresh".
type SelfRefreshChecker interface {
	InSelfRefresh(rank int) bool
}

// Scheduler advances a cycle counter and, every Interval cycles, inserts the
// next refresh command required by Policy into Queue.
type Scheduler struct {
	Policy Policy
	Queue  cmdq.RefreshQueue

	NumRank      int
	NumBankGroup int
	NumBank      int

	// Interval is the number of cycles between successive insert_refresh
	// calls: tREFI/NumRank for rank-staggered, tREFI for simultaneous,
	// tREFIb for bank-staggered.
	Interval int

	// SelfRefresh reports which ranks are currently asleep; a rank in
	// self-refresh is skipped rather than refreshed. Optional.
	SelfRefresh SelfRefreshChecker

	cycle int

	nextRank      int
	nextBankGroup int
	nextBank      int
}

// Tick advances the cycle counter by one and, when it reaches Interval,
// resets it and inserts the next due refresh command. Returns true whenever
// the interval elapsed this cycle, including when the targeted rank was
// skipped for being in self-refresh and nothing was inserted.
func (s *Scheduler) Tick() bool {
	s.cycle++

	if s.cycle < s.Interval {
		return false
	}

	s.cycle = 0
	s.insertRefresh()

	return true
}

func (s *Scheduler) insertRefresh() {
	switch s.Policy {
	case RankLevelSimultaneous:
		s.insertSimultaneous()
	case BankLevelStaggered:
		s.insertBankStaggered()
	default:
		s.insertRankStaggered()
	}
}

// insertSimultaneous enqueues a REFRESH for the first rank not currently in
// self-refresh and returns; the command names only that rank, so the other
// ranks are not refreshed by it.
func (s *Scheduler) insertSimultaneous() {
	for rank := 0; rank < s.NumRank; rank++ {
		if s.inSelfRefresh(rank) {
			continue
		}

		s.Queue.InsertRefresh(&signal.Command{
			Kind:     signal.CmdKindRefresh,
			Location: addressmapping.Location{Rank: rank},
		})

		return
	}
}

// insertRankStaggered enqueues a REFRESH against the next rank in rotation,
// advancing the cursor modulo NumRank regardless of whether that rank was
// skipped for being in self-refresh.
func (s *Scheduler) insertRankStaggered() {
	rank := s.nextRank
	s.nextRank = (s.nextRank + 1) % s.NumRank

	if s.inSelfRefresh(rank) {
		return
	}

	s.Queue.InsertRefresh(&signal.Command{
		Kind:     signal.CmdKindRefresh,
		Location: addressmapping.Location{Rank: rank},
	})
}

// insertBankStaggered enqueues a REFRESH_BANK against the next
// (rank, bankgroup, bank) coordinate in rotation. JEDEC fixes the iteration
// order: bankgroup advances first; when it wraps, bank advances; when bank
// wraps, rank advances.
func (s *Scheduler) insertBankStaggered() {
	rank, bg, bank := s.nextRank, s.nextBankGroup, s.nextBank

	s.advanceBankCursor()

	if s.inSelfRefresh(rank) {
		return
	}

	s.Queue.InsertRefresh(&signal.Command{
		Kind: signal.CmdKindRefreshBank,
		Location: addressmapping.Location{
			Rank: rank, BankGroup: bg, Bank: bank,
		},
	})
}

func (s *Scheduler) advanceBankCursor() {
	s.nextBankGroup++
	if s.nextBankGroup < s.NumBankGroup {
		return
	}

	s.nextBankGroup = 0
	s.nextBank++

	if s.nextBank < s.NumBank {
		return
	}

	s.nextBank = 0
	s.nextRank = (s.nextRank + 1) % s.NumRank
}

func (s *Scheduler) inSelfRefresh(rank int) bool {
	if s.SelfRefresh == nil {
		return false
	}

	return s.SelfRefresh.InSelfRefresh(rank)
}
