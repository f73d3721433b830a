package errors

type ExitCode int

const (
	// Returned for any failure without a more specific code.
	GenericFailureExitCode ExitCode = 1

	// Bad flags or an unusable --config.
	ConfigFailureExitCode ExitCode = 64

	// Input specific exit codes
	InputNotFoundExitCode     ExitCode = 70
	InputReadFailureExitCode  ExitCode = 71
	InputParseFailureExitCode ExitCode = 72

	OutputWriteFailureExitCode ExitCode = 80

	// An instruction left the scheduler in an inconsistent state.
	CheckFailureExitCode ExitCode = 90
)
