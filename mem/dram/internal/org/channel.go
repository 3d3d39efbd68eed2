package org

import (
	"github.com/sarchlab/akita/v4/mem/dram/internal/addressmapping"
	"github.com/sarchlab/akita/v4/mem/dram/internal/signal"
)

// A Channel aggregates the bank states of one DRAM channel and is the only
// component the command queue consults to decide whether a pending command
// is ready to be issued.
type Channel interface {
	GetReadyCommand(cmd *signal.Command) *signal.Command
	StartCommand(cmd *signal.Command)
	UpdateTiming(cmd *signal.Command)
	Tick() bool

	// RowState reports the addressed bank's open row and its row-hit count,
	// letting the command queue's precharge arbiter decide whether closing
	// the row now would cost a pending row hit.
	RowState(loc addressmapping.Location) (openRow, rowHitCount int)
}

// ChannelImpl is the default Channel implementation: a rank x bankgroup x
// bank array of Bank state machines plus the Timing matrix that governs
// how issuing one command constrains the others.
type ChannelImpl struct {
	Banks  Banks
	Timing Timing

	cycle uint64
}

// GetReadyCommand delegates to the bank addressed by cmd.Location. Callers
// probing a rank-scoped command (REFRESH, SREF_ENTER, SREF_EXIT) call it
// once per bank of the rank, as the command queue's FinishRefresh and the
// controller's self-refresh policy do.
func (c *ChannelImpl) GetReadyCommand(
	cmd *signal.Command,
) *signal.Command {
	bank := c.Banks.GetBank(cmd.Location.Rank, cmd.Location.BankGroup, cmd.Location.Bank)

	return bank.GetReadyCommand(cmd)
}

// StartCommand applies the command's FSM transition. Rank-scoped commands
// apply to every bank in the addressed rank; all other commands apply only
// to the one addressed bank.
func (c *ChannelImpl) StartCommand(cmd *signal.Command) {
	if cmd.Kind.IsRankScoped() {
		for bg := 0; bg < c.Banks.BankGroups(); bg++ {
			for bk := 0; bk < c.Banks.BanksPerGroup(); bk++ {
				c.Banks.GetBank(cmd.Location.Rank, bg, bk).StartCommand(cmd)
			}
		}

		return
	}

	c.Banks.GetBank(cmd.Location.Rank, cmd.Location.BankGroup, cmd.Location.Bank).
		StartCommand(cmd)
}

// UpdateTiming walks the timing matrix for the issued command's kind and
// propagates the resulting next-legal-time updates to every bank in scope.
func (c *ChannelImpl) UpdateTiming(cmd *signal.Command) {
	loc := cmd.Location

	if cmd.Kind.IsRankScoped() {
		c.applyToRank(loc.Rank, c.Timing.RankWide[cmd.Kind])
		return
	}

	c.applyToBank(loc.Rank, loc.BankGroup, loc.Bank, c.Timing.SameBank[cmd.Kind])
	c.applyToOtherBanksInGroup(loc.Rank, loc.BankGroup, loc.Bank,
		c.Timing.OtherBanksInBankGroup[cmd.Kind])
	c.applyToOtherGroupsInRank(loc.Rank, loc.BankGroup,
		c.Timing.SameRank[cmd.Kind])
	c.applyToOtherRanks(loc.Rank, c.Timing.OtherRanks[cmd.Kind])
}

func (c *ChannelImpl) applyToBank(
	rank, bankgroup, bank int,
	entries []TimeTableEntry,
) {
	b := c.Banks.GetBank(rank, bankgroup, bank)
	for _, e := range entries {
		b.UpdateTiming(e.Kind, int(c.cycle)+e.Delta)
	}
}

func (c *ChannelImpl) applyToOtherBanksInGroup(
	rank, bankgroup, exceptBank int,
	entries []TimeTableEntry,
) {
	for bk := 0; bk < c.Banks.BanksPerGroup(); bk++ {
		if bk == exceptBank {
			continue
		}

		c.applyToBank(rank, bankgroup, bk, entries)
	}
}

func (c *ChannelImpl) applyToOtherGroupsInRank(
	rank, exceptBankgroup int,
	entries []TimeTableEntry,
) {
	for bg := 0; bg < c.Banks.BankGroups(); bg++ {
		if bg == exceptBankgroup {
			continue
		}

		for bk := 0; bk < c.Banks.BanksPerGroup(); bk++ {
			c.applyToBank(rank, bg, bk, entries)
		}
	}
}

func (c *ChannelImpl) applyToOtherRanks(
	exceptRank int,
	entries []TimeTableEntry,
) {
	for r := 0; r < c.Banks.Ranks(); r++ {
		if r == exceptRank {
			continue
		}

		for bg := 0; bg < c.Banks.BankGroups(); bg++ {
			for bk := 0; bk < c.Banks.BanksPerGroup(); bk++ {
				c.applyToBank(r, bg, bk, entries)
			}
		}
	}
}

func (c *ChannelImpl) applyToRank(rank int, entries []TimeTableEntry) {
	for bg := 0; bg < c.Banks.BankGroups(); bg++ {
		for bk := 0; bk < c.Banks.BanksPerGroup(); bk++ {
			c.applyToBank(rank, bg, bk, entries)
		}
	}
}

// RowState delegates to the addressed bank.
func (c *ChannelImpl) RowState(loc addressmapping.Location) (openRow, rowHitCount int) {
	bank := c.Banks.GetBank(loc.Rank, loc.BankGroup, loc.Bank)

	return bank.OpenRow(), bank.RowHitCount()
}

// Tick advances the channel's cycle counter and every bank's in lock step.
func (c *ChannelImpl) Tick() bool {
	c.cycle++

	for r := 0; r < c.Banks.Ranks(); r++ {
		for bg := 0; bg < c.Banks.BankGroups(); bg++ {
			for bk := 0; bk < c.Banks.BanksPerGroup(); bk++ {
				c.Banks.GetBank(r, bg, bk).Tick()
			}
		}
	}

	return false
}
