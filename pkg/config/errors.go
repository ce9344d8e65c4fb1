package config

import "errors"

// ErrUsage marks errors caused by invalid flags or targets; the CLI
// maps it to the user-error exit code.
var ErrUsage = errors.New("usage error")
