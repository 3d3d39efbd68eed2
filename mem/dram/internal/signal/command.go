package signal

import "github.com/sarchlab/akita/v4/mem/dram/internal/addressmapping"

// CommandKind enumerates the low-level DRAM commands that a controller can
// issue against a channel.
type CommandKind int

// The complete set of DRAM commands modeled by the core.
const (
	CmdKindRead CommandKind = iota
	CmdKindReadPrecharge
	CmdKindWrite
	CmdKindWritePrecharge
	CmdKindActivate
	CmdKindPrecharge
	CmdKindRefreshBank
	CmdKindRefresh
	CmdKindSelfRefreshEnter
	CmdKindSelfRefreshExit
)

// IsRankScoped reports whether a command kind applies to an entire rank
// rather than to a single bank.
func (k CommandKind) IsRankScoped() bool {
	switch k {
	case CmdKindRefresh, CmdKindSelfRefreshEnter, CmdKindSelfRefreshExit:
		return true
	default:
		return false
	}
}

// IsRead reports whether the command kind reads data out of a bank.
func (k CommandKind) IsRead() bool {
	return k == CmdKindRead || k == CmdKindReadPrecharge
}

// IsWrite reports whether the command kind writes data into a bank.
func (k CommandKind) IsWrite() bool {
	return k == CmdKindWrite || k == CmdKindWritePrecharge
}

// ClosesRow reports whether issuing the command leaves the addressed bank
// closed (no open row) afterward.
func (k CommandKind) ClosesRow() bool {
	switch k {
	case CmdKindReadPrecharge, CmdKindWritePrecharge, CmdKindPrecharge:
		return true
	default:
		return false
	}
}

// String gives a human-readable name, mirroring JEDEC command mnemonics.
func (k CommandKind) String() string {
	switch k {
	case CmdKindRead:
		return "READ"
	case CmdKindReadPrecharge:
		return "READ_PRECHARGE"
	case CmdKindWrite:
		return "WRITE"
	case CmdKindWritePrecharge:
		return "WRITE_PRECHARGE"
	case CmdKindActivate:
		return "ACTIVATE"
	case CmdKindPrecharge:
		return "PRECHARGE"
	case CmdKindRefreshBank:
		return "REFRESH_BANK"
	case CmdKindRefresh:
		return "REFRESH"
	case CmdKindSelfRefreshEnter:
		return "SREF_ENTER"
	case CmdKindSelfRefreshExit:
		return "SREF_EXIT"
	default:
		return "UNKNOWN"
	}
}

// Command is a single low-level DRAM command travelling through a command
// queue. A nil *Command is used throughout the core as the "not ready"
// sentinel in place of an invalid-command value.
type Command struct {
	ID       string
	Kind     CommandKind
	Location addressmapping.Location

	// HexAddr is the original physical address that produced this command,
	// kept around so completions can be routed back to the transaction that
	// spawned it.
	HexAddr uint64

	// SubTransaction is the sub-transaction that spawned this command, or
	// nil for a command synthesized internally (a refresh, a precursor
	// probe, a self-refresh enter/exit). GetReadyCommand substitutes a
	// precursor command kind by copying the whole struct, so this pointer
	// survives that substitution and still lets the controller find its way
	// back to the waiting sub-transaction once the real command issues.
	SubTransaction *SubTransaction
}
