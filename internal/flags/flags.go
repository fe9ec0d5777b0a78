package flags

// Centralized definitions for CLI flags used across the application

const (
	// Collections flags override the collections file path from the config
	Collections      = "collections"
	CollectionsShort = "c"

	// Force flags are used to bypass interactive confirmation prompts for destructive operations
	Force      = "force"
	ForceShort = "f"

	// Debug flags are used to enable verbose logging
	Debug      = "debug"
	DebugShort = "d"
)
