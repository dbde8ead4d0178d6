package exitcodes

// Exit codes for the dirsweep CLI
// These codes form the operational contract with wrapper scripts and operators
const (
	Success          = 0 // Run completed, including runs that deleted nothing
	InvalidConfig    = 2 // Configuration file invalid or unreadable
	TargetUnreadable = 3 // Initial target missing, unreadable, or not a directory
	RuntimeError     = 4 // Infrastructure failure (history database, log file)
)
