package defaults

// Exit codes for the CLI.
const (
	ExitSuccess     = 0 // Scan completed, with or without matches
	ExitUserError   = 2 // Invalid target/port spec or flags
	ExitLookupError = 3 // ASN or prefix-file collaborator failure
	ExitInternalErr = 4 // Unexpected internal error
)
