package addressmapping

import (
	"fmt"
	"math/bits"
)

// field identifies which of the six Location coordinates a two-letter token
// in the address-mapping string refers to.
type field int

const (
	fieldChannel field = iota
	fieldRank
	fieldBankGroup
	fieldBank
	fieldRow
	fieldColumn
	numFields
)

func parseToken(token string) (field, error) {
	switch token {
	case "ch":
		return fieldChannel, nil
	case "ra":
		return fieldRank, nil
	case "bg":
		return fieldBankGroup, nil
	case "ba":
		return fieldBank, nil
	case "ro":
		return fieldRow, nil
	case "co":
		return fieldColumn, nil
	default:
		return 0, fmt.Errorf("address mapping: unknown field token %q", token)
	}
}

// Builder derives a Mapper from the DRAM geometry and the externally
// configured field order. The mapping string is a 12-character sequence of
// six two-letter tokens; the rightmost token occupies the lowest address
// bits, mirroring the convention used by the original configuration file
// format.
type Builder struct {
	channels, ranks, bankgroups, banksPerGroup, rows, columns int
	busWidthBytes                                             int
	burstLength                                               int
	fieldOrder                                                string
}

// MakeBuilder creates a Builder with the defaults described in the core's
// configuration surface (chrobabgraco / bus_width=64 / BL=8).
func MakeBuilder() Builder {
	return Builder{
		channels:      1,
		ranks:         1,
		bankgroups:    2,
		banksPerGroup: 2,
		rows:          65536,
		columns:       1024,
		busWidthBytes: 64 / 8,
		burstLength:   8,
		fieldOrder:    "chrobabgraco",
	}
}

// WithChannels sets the number of channels.
func (b Builder) WithChannels(n int) Builder {
	b.channels = n
	return b
}

// WithRanks sets the number of ranks per channel.
func (b Builder) WithRanks(n int) Builder {
	b.ranks = n
	return b
}

// WithBankGroups sets the number of bankgroups per rank.
func (b Builder) WithBankGroups(n int) Builder {
	b.bankgroups = n
	return b
}

// WithBanksPerGroup sets the number of banks per bankgroup.
func (b Builder) WithBanksPerGroup(n int) Builder {
	b.banksPerGroup = n
	return b
}

// WithRows sets the number of rows per bank.
func (b Builder) WithRows(n int) Builder {
	b.rows = n
	return b
}

// WithColumns sets the number of columns per row.
func (b Builder) WithColumns(n int) Builder {
	b.columns = n
	return b
}

// WithBusWidth sets the data bus width, in bits.
func (b Builder) WithBusWidth(bitWidth int) Builder {
	b.busWidthBytes = bitWidth / 8
	return b
}

// WithBurstLength sets the burst length (BL). A value of 0 means "perfect
// bandwidth"; Build then computes the address shift as if BL were 8, for
// every protocol.
func (b Builder) WithBurstLength(bl int) Builder {
	b.burstLength = bl
	return b
}

// WithFieldOrder sets the 12-character address-mapping string.
func (b Builder) WithFieldOrder(order string) Builder {
	b.fieldOrder = order
	return b
}

// Build derives a Mapper, panicking on a malformed field-order string; a
// malformed configuration string is a construction-time error, never a
// runtime condition (see the core's error-handling design).
func (b Builder) Build() Mapper {
	if len(b.fieldOrder) != 12 {
		panic(fmt.Sprintf(
			"address mapping: field order %q must be 12 characters",
			b.fieldOrder))
	}

	widths := [numFields]int{
		fieldChannel:   widthFor(b.channels),
		fieldRank:      widthFor(b.ranks),
		fieldBankGroup: widthFor(b.bankgroups),
		fieldBank:      widthFor(b.banksPerGroup),
		fieldRow:       widthFor(b.rows),
		fieldColumn:    widthFor(b.columns),
	}

	burstLength := b.burstLength
	if burstLength == 0 {
		burstLength = 8
	}

	shiftBits := widthFor(b.busWidthBytes * burstLength)

	order := make([]field, 0, 6)
	for i := 0; i < 12; i += 2 {
		f, err := parseToken(b.fieldOrder[i : i+2])
		if err != nil {
			panic(err)
		}

		order = append(order, f)
	}

	shift := [numFields]int{}
	pos := shiftBits

	for i := len(order) - 1; i >= 0; i-- {
		f := order[i]
		shift[f] = pos
		pos += widths[f]
	}

	mask := [numFields]uint64{}
	for f := field(0); f < numFields; f++ {
		mask[f] = (uint64(1) << widths[f]) - 1
	}

	return &bitFieldMapper{
		shiftBits: shiftBits,
		shift:     shift,
		mask:      mask,
	}
}

// widthFor returns the number of bits needed to enumerate n distinct
// values, treating n<=1 as requiring zero bits.
func widthFor(n int) int {
	if n <= 1 {
		return 0
	}

	return bits.Len(uint(n - 1))
}

type bitFieldMapper struct {
	shiftBits int
	shift     [numFields]int
	mask      [numFields]uint64
}

func (m *bitFieldMapper) Map(address uint64) Location {
	a := address >> uint(m.shiftBits)

	return Location{
		Channel:   int((a >> uint(m.shift[fieldChannel])) & m.mask[fieldChannel]),
		Rank:      int((a >> uint(m.shift[fieldRank])) & m.mask[fieldRank]),
		BankGroup: int((a >> uint(m.shift[fieldBankGroup])) & m.mask[fieldBankGroup]),
		Bank:      int((a >> uint(m.shift[fieldBank])) & m.mask[fieldBank]),
		Row:       int((a >> uint(m.shift[fieldRow])) & m.mask[fieldRow]),
		Column:    int((a >> uint(m.shift[fieldColumn])) & m.mask[fieldColumn]),
	}
}
