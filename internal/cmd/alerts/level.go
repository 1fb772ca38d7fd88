package alerts

import "fmt"

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failed run.
	LevelError Level = iota
	// LevelWarning indicates a run that finished with problems.
	LevelWarning
	// LevelInfo indicates general informational messages.
	LevelInfo
	// LevelSuccess indicates a clean run.
	LevelSuccess
)

// Symbols used in status lines.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "!"
	SymbolInfo    = "i"
)

// String returns the string representation of the alert level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Icon returns the symbol for the alert level.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return SymbolError
	case LevelWarning:
		return SymbolWarning
	case LevelSuccess:
		return SymbolSuccess
	default:
		return SymbolInfo
	}
}
