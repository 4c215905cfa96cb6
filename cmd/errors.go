package cmd

import (
	"errors"

	"github.com/fulmenhq/svdregress/pkg/catalog"
	"github.com/fulmenhq/svdregress/pkg/exitcode"
)

// codedError pins an exit code to an error raised by a command.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, err: err}
}

// exitCodeFor maps a command error to a process exit code.
func exitCodeFor(err error) int {
	var coded *codedError
	switch {
	case err == nil:
		return exitcode.Success
	case errors.As(err, &coded):
		return coded.code
	case errors.Is(err, catalog.ErrNoSource):
		return exitcode.ConfigError
	case catalog.IsFileAccessError(err):
		return exitcode.FileSystemError
	case catalog.IsParseError(err):
		return exitcode.ValidationError
	default:
		return exitcode.GeneralError
	}
}
