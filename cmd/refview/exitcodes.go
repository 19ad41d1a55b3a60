package main

// Exit codes of the refview binary.
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitNoComparison = 2 // Selection quietly resolved to nothing comparable
)
