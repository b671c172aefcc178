package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName             = "benchbook"
	DefaultKeyringUser  = "database-connection"
	IdentityKeyringUser = "identity"
	DefaultConfigPath   = "~/.config/benchbook/benchbook.db"
	EnvDBConnection     = "BENCHBOOK_DB_CONNECTION"
	Version             = "v1.2.1"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Slot constants
	SlotsPerDay   = 24
	SlotsPerHalf  = 12
	SlotLabelMax  = 15
	SectionOther  = "OTHER"
	SectionSep    = "_"
	RefreshPeriod = 5 * time.Second

	// Identity constraints
	MaxDisplayNameLen = 50
	RequesterIDLen    = 8

	// Viewer constants
	ViewerFilePrefix = "MyHost_"
	ViewerFileSuffix = ".vnc"

	// Store timeouts for backends that take a context
	StoreTimeout = 5 * time.Second
)

// Session States
const (
	StateLogin SessionState = iota
	StateBrowse
	StateChallenge
	StateConfirm
)
