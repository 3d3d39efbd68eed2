package org

import (
	"fmt"

	"github.com/sarchlab/akita/v4/mem/dram/internal/signal"
	"github.com/sarchlab/akita/v4/sim"
)

// BankFSMState enumerates the states of a single DRAM bank.
type BankFSMState int

// The bank states. PD (power-down) is declared for completeness but no
// transition into or out of it is specified by the core; it is reserved
// and currently unused.
const (
	BankStateClosed BankFSMState = iota
	BankStateOpen
	BankStateSelfRefresh
	BankStatePowerDown
)

const noOpenRow = -1

// BankImpl is the default implementation of Bank: a single-bank state
// machine plus its next-legal-time table.
type BankImpl struct {
	sim.HookableBase

	name string

	state        BankFSMState
	openRow      int
	rowHitCount  int
	nextOK       [10]uint64
	currentCycle uint64
}

// NewBankImpl creates a bank in the CLOSED state with every command
// immediately eligible.
func NewBankImpl(name string) *BankImpl {
	b := &BankImpl{
		name:    name,
		state:   BankStateClosed,
		openRow: noOpenRow,
	}

	return b
}

// Name returns the name of the bank.
func (b *BankImpl) Name() string {
	return b.name
}

// GetReadyCommand computes the command that must be issued next to make
// progress toward cmd, or nil if that command is not yet legal at the
// bank's current cycle.
func (b *BankImpl) GetReadyCommand(
	cmd *signal.Command,
) *signal.Command {
	required := b.requiredKind(cmd)
	if required < 0 {
		return nil
	}

	if b.currentCycle < b.nextOK[required] {
		return nil
	}

	ready := *cmd
	ready.Kind = required

	return &ready
}

// requiredKind implements the "required-command policy" of §4.1: given the
// bank's current state, what command kind must be issued to make progress
// toward cmd. A negative return means the combination is illegal (e.g. an
// access to a bank that is in self refresh).
func (b *BankImpl) requiredKind(cmd *signal.Command) signal.CommandKind {
	switch b.state {
	case BankStateClosed:
		if cmd.Kind.IsRead() || cmd.Kind.IsWrite() {
			return signal.CmdKindActivate
		}

		return cmd.Kind

	case BankStateOpen:
		if cmd.Kind.IsRead() || cmd.Kind.IsWrite() {
			if cmd.Location.Row == b.openRow {
				return cmd.Kind
			}

			return signal.CmdKindPrecharge
		}

		return signal.CmdKindPrecharge

	case BankStateSelfRefresh:
		if cmd.Kind == signal.CmdKindSelfRefreshExit ||
			cmd.Kind.IsRead() || cmd.Kind.IsWrite() {
			return signal.CmdKindSelfRefreshExit
		}

		return -1

	default:
		return -1
	}
}

// StartCommand transitions the bank's FSM according to the command being
// issued. Any combination not enumerated by the FSM is a programmer error,
// not a runtime condition, and aborts immediately with the offending
// state/command pair.
func (b *BankImpl) StartCommand(cmd *signal.Command) {
	switch {
	case b.state == BankStateClosed && cmd.Kind == signal.CmdKindActivate:
		b.state = BankStateOpen
		b.openRow = cmd.Location.Row
		b.rowHitCount = 0

	case b.state == BankStateClosed &&
		(cmd.Kind == signal.CmdKindRefresh || cmd.Kind == signal.CmdKindRefreshBank):
		// no state change

	case b.state == BankStateClosed && cmd.Kind == signal.CmdKindSelfRefreshEnter:
		b.state = BankStateSelfRefresh

	case b.state == BankStateOpen && (cmd.Kind == signal.CmdKindRead || cmd.Kind == signal.CmdKindWrite):
		b.rowHitCount++

	case b.state == BankStateOpen && cmd.Kind.ClosesRow():
		b.state = BankStateClosed
		b.openRow = noOpenRow
		b.rowHitCount = 0

	case b.state == BankStateSelfRefresh && cmd.Kind == signal.CmdKindSelfRefreshExit:
		b.state = BankStateClosed

	default:
		panic(fmt.Sprintf(
			"org: illegal command %s issued against bank %q in state %d",
			cmd.Kind, b.name, b.state))
	}
}

// UpdateTiming records that cmdKind may not be issued again until
// cycleNeeded, never moving the bound backward.
func (b *BankImpl) UpdateTiming(cmdKind signal.CommandKind, cycleNeeded int) {
	if uint64(cycleNeeded) > b.nextOK[cmdKind] {
		b.nextOK[cmdKind] = uint64(cycleNeeded)
	}
}

// Tick advances the bank's internal notion of the current cycle. A bank
// never makes progress on its own; ticking it only keeps its clock in
// sync with the channel that owns it.
func (b *BankImpl) Tick() bool {
	b.currentCycle++
	return false
}

// State returns the bank's current FSM state.
func (b *BankImpl) State() BankFSMState {
	return b.state
}

// OpenRow returns the currently open row, or noOpenRow if the bank is not
// in the OPEN state.
func (b *BankImpl) OpenRow() int {
	return b.openRow
}

// RowHitCount returns the number of consecutive row hits since the last
// ACTIVATE.
func (b *BankImpl) RowHitCount() int {
	return b.rowHitCount
}
