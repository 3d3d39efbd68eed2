package trans

import (
	"fmt"

	"github.com/sarchlab/akita/v4/mem/dram/internal/addressmapping"
	"github.com/sarchlab/akita/v4/mem/dram/internal/signal"
)

// A SubTransSplitter cuts a Transaction into one or more SubTransactions,
// each of which fits within a single burst-aligned chunk and therefore maps
// onto exactly one DRAM command.
//
//go:generate mockgen -destination "mock_trans_test.go" -package $GOPACKAGE -write_package_comment=false . SubTransSplitter
type SubTransSplitter interface {
	Split(t *signal.Transaction)
}

// DefaultSubTransSplitter splits a transaction's byte range at the
// boundaries of a fixed-size chunk, sized 1<<ChunkShiftBits bytes. It
// additionally maps each sub-transaction's start address to a bank/row/
// column Location through Mapper, so that a chunk never straddles two rows.
type DefaultSubTransSplitter struct {
	ChunkShiftBits int
	Mapper         addressmapping.Mapper

	nextID int
}

// NewSubTransSplitter creates a splitter that cuts transactions at every
// 1<<chunkShiftBits-byte boundary.
func NewSubTransSplitter(chunkShiftBits int) *DefaultSubTransSplitter {
	return &DefaultSubTransSplitter{ChunkShiftBits: chunkShiftBits}
}

// Split appends one SubTransaction per chunk-aligned piece of t's access
// range to t.SubTransactions.
func (s *DefaultSubTransSplitter) Split(t *signal.Transaction) {
	chunkSize := uint64(1) << uint(s.ChunkShiftBits)

	addr := t.GlobalAddress()
	end := addr + t.AccessByteSize()

	for cur := addr; cur < end; {
		next := (cur/chunkSize + 1) * chunkSize
		if next > end {
			next = end
		}

		st := &signal.SubTransaction{
			ID:          s.newID(),
			Transaction: t,
		}

		if s.Mapper != nil {
			st.Location = s.Mapper.Map(cur)
		}

		t.SubTransactions = append(t.SubTransactions, st)

		cur = next
	}
}

func (s *DefaultSubTransSplitter) newID() string {
	s.nextID++
	return fmt.Sprintf("subtrans-%d", s.nextID)
}
