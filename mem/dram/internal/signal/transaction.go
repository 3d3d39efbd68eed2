package signal

import (
	"github.com/sarchlab/akita/v4/mem/dram/internal/addressmapping"
	"github.com/sarchlab/akita/v4/mem/mem"
)

type TransactionType int

const (
	TransactionTypeRead TransactionType = iota
	TransactionTypeWrite
)

// Transaction is the state associated with the processing of a read or write
// request.
type Transaction struct {
	Type  TransactionType
	Read  *mem.ReadReq
	Write *mem.WriteReq

	AddedCycle      uint64
	InternalAddress uint64
	SubTransactions []*SubTransaction
}

// GlobalAddress returns the address that the transaction is accessing.
func (t *Transaction) GlobalAddress() uint64 {
	if t.Type == TransactionTypeRead {
		return t.Read.Address
	}

	return t.Write.Address
}

// AccessByteSize returns the number of bytes that the transaction is accessing.
func (t *Transaction) AccessByteSize() uint64 {
	if t.Type == TransactionTypeRead {
		return t.Read.AccessByteSize
	}

	return uint64(len(t.Write.Data))
}

// IsRead returns true if the transaction is a read transaction.
func (t *Transaction) IsRead() bool {
	return t.Type == TransactionTypeRead
}

// IsWrite returns true if the transaction is a write transaction.
func (t *Transaction) IsWrite() bool {
	return t.Type == TransactionTypeWrite
}

// IsCompleted returns true if every sub-transaction has issued its command
// and the cycle at which its data becomes available has passed.
func (t *Transaction) IsCompleted(clk uint64) bool {
	for _, st := range t.SubTransactions {
		if !st.Completed || clk < st.CompleteCycle {
			return false
		}
	}

	return true
}

// SubTransaction is the piece of a Transaction that maps onto a single DRAM
// command. A transaction whose access crosses a burst boundary is split
// into several sub-transactions, each becoming one Command in a command
// queue; the parent Transaction only completes once all of its
// sub-transactions have completed.
type SubTransaction struct {
	ID          string
	Location    addressmapping.Location
	Transaction *Transaction

	// Completed is set once the command queue has actually issued this
	// sub-transaction's command, not merely accepted it. CompleteCycle is
	// the cycle at which the data transfer (read_delay or write_delay after
	// issue) finishes; the sub-transaction isn't done until both hold.
	Completed     bool
	CompleteCycle uint64
}
