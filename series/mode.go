package series

import (
	"strconv"
	"strings"
)

// Mode is the operating regime of the upstream companion plant. It selects
// which of the two routing formulas governs the regulated flow into the
// reservoir. A row is always in exactly one mode.
type Mode string

const (
	ModeGen   Mode = "GEN"
	ModeSpill Mode = "SPILL"
)

// ParseMode normalizes the heterogeneous mode representations seen at the
// ingestion boundary. The historian reports mode as 0 (GEN) / 1 (SPILL),
// sometimes as a numeric string, and operator edits arrive as text.
//
// Any value parseable as a number >= 0.5 is SPILL, below 0.5 is GEN.
// Non-numeric text is matched case-insensitively against GEN/SPILL.
// Anything else defaults to GEN, the routinely expected operating mode.
func ParseMode(raw string) Mode {
	trimmed := strings.TrimSpace(raw)

	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if v >= 0.5 {
			return ModeSpill
		}
		return ModeGen
	}

	switch strings.ToUpper(trimmed) {
	case "SPILL":
		return ModeSpill
	case "GEN":
		return ModeGen
	}
	return ModeGen
}
