package org

import "github.com/sarchlab/akita/v4/mem/dram/internal/signal"

// TimeTableEntry records that issuing the owning command kind pushes the
// earliest legal time of `Kind` forward by `Delta` cycles.
type TimeTableEntry struct {
	Kind  signal.CommandKind
	Delta int
}

// TimeTable maps an issued command kind to the list of timing updates it
// causes within one propagation scope.
type TimeTable [10][]TimeTableEntry

// MakeTimeTable creates an empty TimeTable ready to be populated.
func MakeTimeTable() TimeTable {
	return TimeTable{}
}

// Timing holds the five propagation-scope tables described by the JEDEC
// timing matrix. Four scopes apply to bank- and bank-group-scoped commands
// (READ, WRITE, their *_PRECHARGE variants, PRECHARGE, REFRESH_BANK):
// SameBank, OtherBanksInBankGroup, SameRank (meaning: other bankgroups in
// the same rank), and OtherRanks. A fifth scope, RankWide, is used only for
// the rank-scoped commands REFRESH, SREF_ENTER, and SREF_EXIT, and applies
// to every bank in the affected rank, including banks in the same
// bankgroup that the other four scope tables never touch for a bank-scoped
// command. Timing is constructed once per channel and is read-only
// thereafter.
type Timing struct {
	SameBank              TimeTable
	OtherBanksInBankGroup TimeTable
	SameRank              TimeTable
	OtherRanks            TimeTable
	RankWide              TimeTable
}
