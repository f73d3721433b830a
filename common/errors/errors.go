package errors

// ExitCodeError is an error the process should exit with a specific code for.
type ExitCodeError struct {
	code ExitCode
	error
}

func NewError(err error, exitCode ExitCode) *ExitCodeError {
	if err == nil {
		return nil
	}
	return &ExitCodeError{exitCode, err}
}

func (e *ExitCodeError) GetExitCode() ExitCode {
	if e == nil {
		return 0
	}
	return e.code
}

// Cause exposes the wrapped error to github.com/pkg/errors.Cause.
func (e *ExitCodeError) Cause() error {
	return e.error
}

type causer interface {
	Cause() error
}

// GetExitCode returns 0 for nil, otherwise the code of the outermost
// ExitCodeError along the cause chain of err, or GenericFailureExitCode.
func GetExitCode(err error) ExitCode {
	if err == nil {
		return 0
	}
	for cur := err; cur != nil; {
		if e, ok := cur.(*ExitCodeError); ok {
			return e.code
		}
		c, ok := cur.(causer)
		if !ok {
			break
		}
		cur = c.Cause()
	}
	return GenericFailureExitCode
}
