// Package cmdq provides command queue implementations.
package cmdq

import (
	"github.com/sarchlab/akita/v4/mem/dram/internal/addressmapping"
	"github.com/sarchlab/akita/v4/mem/dram/internal/signal"
)

// A CommandQueue is a queue of commands that needs to be executed by a rank
// or a bank.
type CommandQueue interface {
	GetCommandToIssue() *signal.Command
	CanAccept(command *signal.Command) bool
	Accept(command *signal.Command)

	// Empty reports whether every underlying queue is empty.
	Empty() bool

	// RankPending reports whether any queue belonging to rank holds a
	// pending command, which a self-refresh policy uses to tell whether a
	// sleeping rank still has work waiting for it.
	RankPending(rank int) bool
}

// A RefreshQueue is a CommandQueue that additionally admits refresh
// scheduler commands ahead of ordinary arbitration and reports when one is
// occupying the queue.
type RefreshQueue interface {
	CommandQueue

	InsertRefresh(cmd *signal.Command)
	FinishRefresh() *signal.Command
	RefreshWaiting() bool
}

// Channel is the subset of the channel state that the command queue needs
// in order to decide whether a pending command is ready to be issued.
type Channel interface {
	GetReadyCommand(cmd *signal.Command) *signal.Command

	// RowState reports the addressed bank's open row and row-hit count, used
	// by the precharge arbiter's starvation check.
	RowState(loc addressmapping.Location) (openRow, rowHitCount int)
}
