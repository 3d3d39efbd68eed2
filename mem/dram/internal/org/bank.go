package org

import (
	"github.com/sarchlab/akita/v4/mem/dram/internal/signal"
	"github.com/sarchlab/akita/v4/sim"
)

// A Bank is a DRAM Bank. It contains a number of rows and columns.
//
//go:generate mockgen -destination "mock_bank_test.go" -package $GOPACKAGE -write_package_comment=false . Bank
type Bank interface {
	sim.Named
	sim.Hookable

	GetReadyCommand(
		cmd *signal.Command,
	) *signal.Command
	StartCommand(cmd *signal.Command)
	UpdateTiming(cmdKind signal.CommandKind, cycleNeeded int)
	Tick() bool

	// OpenRow returns the currently open row, or a negative value if the
	// bank is not in the OPEN state.
	OpenRow() int

	// RowHitCount returns the number of consecutive row hits since the
	// bank's last ACTIVATE.
	RowHitCount() int
}
