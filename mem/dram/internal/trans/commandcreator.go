package trans

import (
	"github.com/sarchlab/akita/v4/mem/dram/internal/signal"
)

// A CommandCreator can convert a subtransaction to a command.
type CommandCreator interface {
	Create(subTrans *signal.SubTransaction) *signal.Command
}

// OpenPageCommandCreator creates READ/WRITE commands that leave the row
// open after the access, following the OPEN_PAGE row-buffer policy.
type OpenPageCommandCreator struct{}

// Create builds a READ or WRITE command for the given subtransaction.
func (c OpenPageCommandCreator) Create(
	subTrans *signal.SubTransaction,
) *signal.Command {
	kind := signal.CmdKindRead
	if subTrans.Transaction.IsWrite() {
		kind = signal.CmdKindWrite
	}

	return &signal.Command{
		ID:             subTrans.ID,
		Kind:           kind,
		Location:       subTrans.Location,
		HexAddr:        subTrans.Transaction.InternalAddress,
		SubTransaction: subTrans,
	}
}

// ClosePageCommandCreator creates READ_PRECHARGE/WRITE_PRECHARGE commands
// that auto-precharge the row after the access, following the CLOSE_PAGE
// row-buffer policy.
type ClosePageCommandCreator struct{}

// Create builds a READ_PRECHARGE or WRITE_PRECHARGE command for the given
// subtransaction.
func (c ClosePageCommandCreator) Create(
	subTrans *signal.SubTransaction,
) *signal.Command {
	kind := signal.CmdKindReadPrecharge
	if subTrans.Transaction.IsWrite() {
		kind = signal.CmdKindWritePrecharge
	}

	return &signal.Command{
		ID:             subTrans.ID,
		Kind:           kind,
		Location:       subTrans.Location,
		HexAddr:        subTrans.Transaction.InternalAddress,
		SubTransaction: subTrans,
	}
}
