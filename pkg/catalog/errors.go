package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSource indicates the first load was attempted without a catalog path.
	ErrNoSource = errors.New("no test cases specified")

	// ErrUnknownExtension indicates the catalog path has neither a YAML nor a JSON suffix.
	ErrUnknownExtension = errors.New("unknown file extension")

	// ErrMultipleDocuments indicates a YAML catalog holds more than one document.
	ErrMultipleDocuments = errors.New("catalog must be a single YAML document")
)

// FileAccessError indicates the catalog file could not be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("couldn't open file %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError indicates the catalog content did not match the record schema.
// Index is the zero-based record position, or -1 when the error is not tied
// to a record. Field is empty when the error is not tied to a field.
type ParseError struct {
	Path  string
	Index int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse ")
	b.WriteString(e.Path)
	if e.Index >= 0 {
		fmt.Fprintf(&b, ": record %d", e.Index)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %s", e.Field)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsFileAccessError reports whether err is or wraps a *FileAccessError.
func IsFileAccessError(err error) bool {
	var fe *FileAccessError
	return errors.As(err, &fe)
}
